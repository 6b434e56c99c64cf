package display

import (
	"math"
	"time"
)

// compassLabels are the 16-point compass labels, clockwise from north.
var compassLabels = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// IconFor maps an OpenWeatherMap condition code to a symbolic icon name.
// Codes outside the documented taxonomy are expected and map to "unknown".
func IconFor(code int) string {
	switch {
	case code >= 200 && code <= 232:
		return "storm"
	case code >= 300 && code <= 321:
		return "drizzle"
	case code >= 500 && code <= 531:
		return "rain"
	case code >= 600 && code <= 622:
		return "snow"
	case code >= 701 && code <= 771:
		return "haze/mist"
	case code == 781:
		return "tornado"
	case code == 800:
		return "clear"
	case code == 801:
		return "partly-cloudy"
	case code >= 802 && code <= 804:
		return "cloudy"
	default:
		return "unknown"
	}
}

// CompassDirection buckets a wind bearing in degrees into one of the 16
// compass labels. Bearings outside [0, 360) are normalized first.
func CompassDirection(degrees int) string {
	degrees = ((degrees % 360) + 360) % 360
	idx := int(math.Floor((float64(degrees)+11.25)/22.5)) % 16
	return compassLabels[idx]
}

// HourLabel formats a Unix timestamp (seconds) as "HH:mm" in the ambient
// local time zone.
func HourLabel(unixSeconds int64) string {
	return time.Unix(unixSeconds, 0).Format("15:04")
}
