package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ELGYOUSS/MeteoApp/internal/config"
	"github.com/ELGYOUSS/MeteoApp/internal/display"
	"github.com/ELGYOUSS/MeteoApp/internal/model"
	"github.com/ELGYOUSS/MeteoApp/internal/viewmodel"
)

// StateProvider is the view-model surface the handlers depend on.
type StateProvider interface {
	SelectCity(ctx context.Context, city string)
	Snapshot() viewmodel.Snapshot
}

// WeatherHandler serves the display surface: city selection plus the two
// observable result slots shaped for rendering.
type WeatherHandler struct {
	State          StateProvider
	ForecastWindow int
}

func NewWeatherHandler(state StateProvider, forecastWindow int) *WeatherHandler {
	if forecastWindow <= 0 {
		forecastWindow = config.GetForecastWindow()
	}
	return &WeatherHandler{
		State:          state,
		ForecastWindow: forecastWindow,
	}
}

func (h *WeatherHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.GetLogger().Errorw("Could not encode json", "error", err)
	}
}

func (h *WeatherHandler) requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		errMsg := "Method not allowed"
		w.Header().Set("Allow", http.MethodGet)
		h.writeJSONResponse(w, http.StatusMethodNotAllowed, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return false
	}
	return true
}

// HandleSelectCity triggers both fetches for the requested city and
// returns immediately; results land in the slots when they complete.
func (h *WeatherHandler) HandleSelectCity(w http.ResponseWriter, r *http.Request) {
	if !h.requireGet(w, r) {
		return
	}

	city := r.URL.Query().Get("city")
	if city == "" {
		errMsg := "Missing 'city' query parameter"
		h.writeJSONResponse(w, http.StatusBadRequest, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	h.State.SelectCity(context.Background(), city)
	h.writeJSONResponse(w, http.StatusAccepted, model.Response{
		Data:    city,
		Message: "Fetching weather",
	})
}

// HandleWeather returns the current-weather slot as a display view.
func (h *WeatherHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	if !h.requireGet(w, r) {
		return
	}

	snap := h.State.Snapshot()
	if snap.Current == nil {
		errMsg := "No weather data available yet"
		h.writeJSONResponse(w, http.StatusNotFound, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    display.NewCurrentView(snap.Current),
		Message: "Success",
	})
}

// HandleForecast returns the forecast slot as display views, truncated to
// the configured window.
func (h *WeatherHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	if !h.requireGet(w, r) {
		return
	}

	snap := h.State.Snapshot()
	if snap.Forecast == nil {
		errMsg := "No forecast data available yet"
		h.writeJSONResponse(w, http.StatusNotFound, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    display.NewForecastView(snap.Forecast, h.ForecastWindow),
		Message: "Success",
	})
}
