package model

// Condition is one provider-defined weather phenomenon. ID follows the
// OpenWeatherMap taxonomy (e.g. 800 = clear sky).
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
}

// CurrentWeather is one decoded current-weather snapshot. Values are never
// mutated in place; a new fetch replaces the snapshot wholesale.
type CurrentWeather struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Sunrise     int64       `json:"sunrise"`
	Sunset      int64       `json:"sunset"`
	Conditions  []Condition `json:"conditions"`
	Temperature float64     `json:"temperature"`
	FeelsLike   float64     `json:"feels_like"`
	Pressure    float64     `json:"pressure"`
	Humidity    float64     `json:"humidity"`
	WindSpeed   float64     `json:"wind_speed"`
	WindDeg     int         `json:"wind_deg"`
}

// ForecastEntry is one 3-hourly forecast slot.
type ForecastEntry struct {
	Dt          int64       `json:"dt"`
	Temperature float64     `json:"temperature"`
	FeelsLike   float64     `json:"feels_like"`
	Pressure    float64     `json:"pressure"`
	Humidity    float64     `json:"humidity"`
	Conditions  []Condition `json:"conditions"`
}

// Forecast keeps the provider order; entries are never re-sorted or
// de-duplicated client-side.
type Forecast []ForecastEntry
