package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/overcomingroom/bellbell/internal/config"
	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/pkg/circuitbreaker"
	apperrors "github.com/overcomingroom/bellbell/pkg/errors"
	"github.com/overcomingroom/bellbell/pkg/metrics"
)

const (
	currentObservationPath = "/getUltraSrtNcst"
	resultCodeOK           = "00"
	// Hourly observations become available at forty minutes past the hour.
	publishMinute = 40
)

var kst = time.FixedZone("KST", 9*60*60)

// errAborted marks calls cut short by the caller's context rather than by the upstream.
var errAborted = errors.New("weather request aborted")

// Forecaster fetches the current observation for a grid cell.
type Forecaster interface {
	Current(ctx context.Context, nx, ny int, at time.Time) (*model.Weather, error)
}

// BaseDateTime returns the base_date (YYYYMMDD) and base_time (HH00) of the latest
// published observation at t.
func BaseDateTime(t time.Time) (string, string) {
	t = t.In(kst)
	if t.Minute() < publishMinute {
		t = t.Add(-time.Hour)
	}
	return t.Format("20060102"), t.Format("15") + "00"
}

type apiResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items struct {
				Item []apiItem `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

type apiItem struct {
	BaseDate  string `json:"baseDate"`
	BaseTime  string `json:"baseTime"`
	Category  string `json:"category"`
	NX        int    `json:"nx"`
	NY        int    `json:"ny"`
	ObsrValue string `json:"obsrValue"`
}

type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	cache      *cache.Cache
	metrics    *metrics.Metrics
}

func NewClient(cfg config.WeatherConfig, m *metrics.Metrics) *Client {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: timeout},
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "weather-api",
			MaxFailures: 5,
			Timeout:     30 * time.Second,
			IsFailure: func(err error) bool {
				return err != nil && !errors.Is(err, apperrors.New(apperrors.WeatherAPIResResultIsEmpty))
			},
			IsExcluded: func(err error) bool {
				return errors.Is(err, errAborted)
			},
		}),
		cache:   cache.New(ttl, 2*ttl),
		metrics: m,
	}
}

func cacheKey(nx, ny int, baseDate, baseTime string) string {
	return fmt.Sprintf("%d:%d:%s:%s", nx, ny, baseDate, baseTime)
}

func (c *Client) Current(ctx context.Context, nx, ny int, at time.Time) (*model.Weather, error) {
	baseDate, baseTime := BaseDateTime(at)
	key := cacheKey(nx, ny, baseDate, baseTime)

	if cached, ok := c.cache.Get(key); ok {
		c.countCache("hit")
		w := *cached.(*model.Weather)
		return &w, nil
	}
	c.countCache("miss")

	var w *model.Weather
	err := c.breaker.Execute(func() error {
		var err error
		w, err = c.fetch(ctx, nx, ny, baseDate, baseTime)
		return err
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			c.countRequest("rejected")
			return nil, apperrors.Wrap(apperrors.APICallBadRequest, err)
		}
		return nil, err
	}

	c.cache.SetDefault(key, w)
	cp := *w
	return &cp, nil
}

func (c *Client) fetch(ctx context.Context, nx, ny int, baseDate, baseTime string) (*model.Weather, error) {
	q := url.Values{}
	q.Set("serviceKey", c.serviceKey)
	q.Set("pageNo", "1")
	q.Set("numOfRows", "10")
	q.Set("dataType", "JSON")
	q.Set("base_date", baseDate)
	q.Set("base_time", baseTime)
	q.Set("nx", strconv.Itoa(nx))
	q.Set("ny", strconv.Itoa(ny))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+currentObservationPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.WeatherLatency.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.countRequest("aborted")
			return nil, fmt.Errorf("%w: %w", errAborted, ctxErr)
		}
		c.countRequest("transport_error")
		return nil, apperrors.Wrap(apperrors.APICallBadRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.countRequest("bad_status")
		log.Warn().Int("status", resp.StatusCode).Int("nx", nx).Int("ny", ny).Msg("weather API returned non-2xx")
		return nil, apperrors.Wrap(apperrors.APICallBadRequest, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.countRequest("bad_body")
		return nil, apperrors.Wrap(apperrors.APICallBadRequest, fmt.Errorf("failed to decode weather response: %w", err))
	}

	header := body.Response.Header
	if header.ResultCode != resultCodeOK {
		c.countRequest("bad_result")
		log.Warn().Str("result_code", header.ResultCode).Str("result_msg", header.ResultMsg).Msg("weather API rejected request")
		return nil, apperrors.Wrap(apperrors.APICallBadRequest, fmt.Errorf("result code %q: %s", header.ResultCode, header.ResultMsg))
	}

	items := body.Response.Body.Items.Item
	if len(items) == 0 {
		c.countRequest("empty")
		return nil, apperrors.New(apperrors.WeatherAPIResResultIsEmpty)
	}

	c.countRequest("ok")
	return toWeather(nx, ny, baseDate, baseTime, items), nil
}

// toWeather folds per-category items into one observation. Unknown categories and
// unparsable values are skipped.
func toWeather(nx, ny int, baseDate, baseTime string, items []apiItem) *model.Weather {
	w := &model.Weather{
		BaseDate: baseDate,
		BaseTime: baseTime,
		NX:       nx,
		NY:       ny,
	}

	for _, it := range items {
		if it.Category == "PTY" {
			w.PrecipitationType = precipitationType(it.ObsrValue)
			continue
		}

		v, err := strconv.ParseFloat(it.ObsrValue, 64)
		if err != nil {
			continue
		}
		switch it.Category {
		case "T1H":
			w.Temperature = v
		case "REH":
			w.Humidity = v
		case "RN1":
			w.Rainfall = v
		case "WSD":
			w.WindSpeed = v
		}
	}
	return w
}

func precipitationType(code string) string {
	switch code {
	case "0":
		return "NONE"
	case "1":
		return "RAIN"
	case "2":
		return "RAIN_SNOW"
	case "3":
		return "SNOW"
	case "5":
		return "DRIZZLE"
	case "6":
		return "DRIZZLE_SNOW"
	case "7":
		return "SNOW_FLURRY"
	default:
		return "UNKNOWN"
	}
}

func (c *Client) countRequest(result string) {
	if c.metrics != nil {
		c.metrics.WeatherRequests.WithLabelValues(result).Inc()
	}
}

func (c *Client) countCache(outcome string) {
	if c.metrics != nil {
		c.metrics.WeatherCache.WithLabelValues(outcome).Inc()
	}
}
