package main

import (
	"context"
	"net/http"

	"github.com/ELGYOUSS/MeteoApp/internal/config"
	"github.com/ELGYOUSS/MeteoApp/internal/handler"
	"github.com/ELGYOUSS/MeteoApp/internal/owm"
	"github.com/ELGYOUSS/MeteoApp/internal/viewmodel"
)

func main() {
	logger := config.GetLogger()

	apiKey := config.GetOpenWeatherMapAPIKey()
	if apiKey == "" {
		logger.Warnw("OPENWEATHERMAP_API_KEY is not set, provider calls will fail")
	}

	// One credential, one transport, reused across calls.
	client := owm.NewClient(apiKey, config.GetWeatherApiUrl(), config.GetForecastApiUrl(), http.DefaultClient)
	vm := viewmodel.New(client, logger)

	// Observing layer: log each applied completion.
	go func() {
		for range vm.Updates() {
			snap := vm.Snapshot()
			logger.Debugw("Weather state updated",
				"city", snap.City,
				"has_weather", snap.Current != nil,
				"forecast_entries", len(snap.Forecast))
		}
	}()

	// App start: fetch the default city right away.
	vm.SelectCity(context.Background(), config.GetDefaultCity())

	h := handler.NewWeatherHandler(vm, config.GetForecastWindow())
	mux := http.NewServeMux()
	mux.HandleFunc("/city", h.HandleSelectCity)
	mux.HandleFunc("/weather", h.HandleWeather)
	mux.HandleFunc("/forecast", h.HandleForecast)

	server := &http.Server{
		Addr:              ":" + config.GetServerPort(),
		Handler:           mux,
		ReadHeaderTimeout: config.GetServerTimeout("read_header_timeout"),
		ReadTimeout:       config.GetServerTimeout("read_timeout"),
		WriteTimeout:      config.GetServerTimeout("write_timeout"),
		IdleTimeout:       config.GetServerTimeout("idle_timeout"),
	}

	logger.Infow("Weather display server running", "port", config.GetServerPort(), "default_city", config.GetDefaultCity())
	if err := server.ListenAndServe(); err != nil {
		logger.Fatalw("Server stopped", "error", err)
	}
}
