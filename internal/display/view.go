package display

import "github.com/ELGYOUSS/MeteoApp/internal/model"

// CurrentView is the current-weather snapshot shaped for rendering: icon
// name resolved, wind bearing as a compass label, sun times as hour labels.
type CurrentView struct {
	City          string  `json:"city"`
	Country       string  `json:"country"`
	Icon          string  `json:"icon"`
	Description   string  `json:"description"`
	Temperature   float64 `json:"temperature"`
	FeelsLike     float64 `json:"feels_like"`
	Pressure      float64 `json:"pressure"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection string  `json:"wind_direction"`
	Sunrise       string  `json:"sunrise"`
	Sunset        string  `json:"sunset"`
}

// ForecastEntryView is one forecast slot shaped for rendering.
type ForecastEntryView struct {
	Hour        string  `json:"hour"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Pressure    float64 `json:"pressure"`
	Humidity    float64 `json:"humidity"`
}

// NewCurrentView shapes a current-weather snapshot for display. The first
// condition entry drives the icon and description.
func NewCurrentView(weather *model.CurrentWeather) CurrentView {
	view := CurrentView{
		City:          weather.City,
		Country:       weather.Country,
		Temperature:   weather.Temperature,
		FeelsLike:     weather.FeelsLike,
		Pressure:      weather.Pressure,
		Humidity:      weather.Humidity,
		WindSpeed:     weather.WindSpeed,
		WindDirection: CompassDirection(weather.WindDeg),
		Sunrise:       HourLabel(weather.Sunrise),
		Sunset:        HourLabel(weather.Sunset),
	}
	if len(weather.Conditions) > 0 {
		view.Icon = IconFor(weather.Conditions[0].ID)
		view.Description = weather.Conditions[0].Description
	}
	return view
}

// NewForecastView shapes the next limit forecast entries for display.
// Truncation happens here; the client always returns the full list.
func NewForecastView(forecast model.Forecast, limit int) []ForecastEntryView {
	if limit > 0 && len(forecast) > limit {
		forecast = forecast[:limit]
	}
	views := make([]ForecastEntryView, 0, len(forecast))
	for _, entry := range forecast {
		view := ForecastEntryView{
			Hour:        HourLabel(entry.Dt),
			Temperature: entry.Temperature,
			FeelsLike:   entry.FeelsLike,
			Pressure:    entry.Pressure,
			Humidity:    entry.Humidity,
		}
		if len(entry.Conditions) > 0 {
			view.Icon = IconFor(entry.Conditions[0].ID)
			view.Description = entry.Conditions[0].Description
		}
		views = append(views, view)
	}
	return views
}
