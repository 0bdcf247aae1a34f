package response

import "net/http"

// Code identifies a successful outcome returned in the response envelope.
type Code struct {
	Name       string
	HTTPStatus int
	Code       string
	Message    string
}

func (c Code) String() string {
	return c.Name
}

// Member
var (
	MemberInfoGetSuccessful = Code{"MEMBER_INFO_GET_SUCCESSFUL", http.StatusOK, "200", "member information retrieved"}
)

// UserNotification
var (
	UserNotificationCreateSuccessful = Code{"USER_NOTIFICATION_CREATE_SUCCESSFUL", http.StatusOK, "200", "user notification created"}
	UserNotificationGetSuccessful    = Code{"USER_NOTIFICATION_GET_SUCCESSFUL", http.StatusOK, "200", "user notifications retrieved"}
	UserNotificationDeleteSuccessful = Code{"USER_NOTIFICATION_DELETE_SUCCESSFUL", http.StatusOK, "200", "user notification deleted"}
)

// BasicNotification
var (
	BasicNotificationGetSuccessful  = Code{"BASIC_NOTIFICATION_GET_SUCCESSFUL", http.StatusOK, "200", "basic notifications retrieved"}
	BasicNotificationSaveSuccessful = Code{"BASIC_NOTIFICATION_SAVE_SUCCESSFUL", http.StatusOK, "200", "basic notification saved"}
)

// Weather
var (
	LocationInformationSearchSuccessful = Code{"LOCATION_INFORMATION_SEARCH_SUCCESSFUL", http.StatusOK, "200", "location information retrieved"}
	MemberLocationSaveSuccessful        = Code{"MEMBER_LOCATION_SAVE_SUCCESSFUL", http.StatusOK, "200", "member location saved"}
	WeatherInfoGetSuccessful            = Code{"WEATHER_INFO_GET_SUCCESSFUL", http.StatusOK, "200", "weather information retrieved"}
)

var registry = func() map[string]Code {
	m := make(map[string]Code)
	for _, c := range []Code{
		MemberInfoGetSuccessful,
		UserNotificationCreateSuccessful, UserNotificationGetSuccessful, UserNotificationDeleteSuccessful,
		BasicNotificationGetSuccessful, BasicNotificationSaveSuccessful,
		LocationInformationSearchSuccessful, MemberLocationSaveSuccessful, WeatherInfoGetSuccessful,
	} {
		m[c.Name] = c
	}
	return m
}()

// Lookup returns the registered code with the given name.
func Lookup(name string) (Code, bool) {
	c, ok := registry[name]
	return c, ok
}

// Envelope is the uniform body of every successful response.
type Envelope struct {
	ResponseCode string      `json:"responseCode"`
	Code         string      `json:"code"`
	Message      string      `json:"message"`
	Data         interface{} `json:"data"`
}

// Envelope wraps data with this outcome.
func (c Code) Envelope(data interface{}) Envelope {
	return Envelope{
		ResponseCode: c.Name,
		Code:         c.Code,
		Message:      c.Message,
		Data:         data,
	}
}

// ErrorEnvelope is the body written for failed requests.
type ErrorEnvelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
