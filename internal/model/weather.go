package model

// Weather is a current-conditions observation on the forecast grid.
type Weather struct {
	BaseDate          string  `json:"baseDate"`
	BaseTime          string  `json:"baseTime"`
	NX                int     `json:"nx"`
	NY                int     `json:"ny"`
	Temperature       float64 `json:"temperature"`
	Humidity          float64 `json:"humidity"`
	PrecipitationType string  `json:"precipitationType"`
	Rainfall          float64 `json:"rainfall"`
	WindSpeed         float64 `json:"windSpeed"`
}
