package owm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ELGYOUSS/MeteoApp/internal/model"
)

// Custom error types
var (
	ErrEmptyCity = errors.New("city must not be empty")
	ErrNetwork   = errors.New("weather provider request failed")
	ErrDecode    = errors.New("unexpected weather provider payload")
)

// Client calls the OpenWeatherMap current-weather and forecast endpoints.
// The credential and transport are injected once and reused across calls;
// every call is a single attempt with no retry and no caching.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	weatherURL  string
	forecastURL string
}

// NewClient creates an OpenWeatherMap client. A nil httpClient falls back
// to http.DefaultClient.
func NewClient(apiKey, weatherURL, forecastURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:  httpClient,
		apiKey:      apiKey,
		weatherURL:  weatherURL,
		forecastURL: forecastURL,
	}
}

// currentPayload mirrors the provider's current-weather JSON body.
type currentPayload struct {
	Name    string `json:"name"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  float64 `json:"pressure"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

// forecastPayload mirrors the provider's 3-hourly forecast JSON body.
type forecastPayload struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Pressure  float64 `json:"pressure"`
			Humidity  float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			ID          int    `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

// FetchCurrentWeather retrieves the current weather for city.
func (c *Client) FetchCurrentWeather(ctx context.Context, city string) (*model.CurrentWeather, error) {
	if city == "" {
		return nil, ErrEmptyCity
	}

	body, err := c.get(ctx, c.weatherURL, city)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var data currentPayload
	if err := json.NewDecoder(body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(data.Weather) == 0 {
		return nil, fmt.Errorf("%w: missing weather conditions", ErrDecode)
	}

	weather := &model.CurrentWeather{
		City:        data.Name,
		Country:     data.Sys.Country,
		Sunrise:     data.Sys.Sunrise,
		Sunset:      data.Sys.Sunset,
		Conditions:  make([]model.Condition, 0, len(data.Weather)),
		Temperature: data.Main.Temp,
		FeelsLike:   data.Main.FeelsLike,
		Pressure:    data.Main.Pressure,
		Humidity:    data.Main.Humidity,
		WindSpeed:   data.Wind.Speed,
		WindDeg:     int(data.Wind.Deg),
	}
	for _, w := range data.Weather {
		weather.Conditions = append(weather.Conditions, model.Condition{
			ID:          w.ID,
			Main:        w.Main,
			Description: w.Description,
		})
	}
	return weather, nil
}

// FetchForecast retrieves the 3-hourly forecast for city. Entries are
// returned in provider order, untruncated; bounding the display window is
// a presentation concern.
func (c *Client) FetchForecast(ctx context.Context, city string) (model.Forecast, error) {
	if city == "" {
		return nil, ErrEmptyCity
	}

	body, err := c.get(ctx, c.forecastURL, city)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var data forecastPayload
	if err := json.NewDecoder(body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(data.List) == 0 {
		return nil, fmt.Errorf("%w: missing forecast list", ErrDecode)
	}

	forecast := make(model.Forecast, 0, len(data.List))
	for _, item := range data.List {
		entry := model.ForecastEntry{
			Dt:          item.Dt,
			Temperature: item.Main.Temp,
			FeelsLike:   item.Main.FeelsLike,
			Pressure:    item.Main.Pressure,
			Humidity:    item.Main.Humidity,
			Conditions:  make([]model.Condition, 0, len(item.Weather)),
		}
		for _, w := range item.Weather {
			entry.Conditions = append(entry.Conditions, model.Condition{
				ID:          w.ID,
				Main:        w.Main,
				Description: w.Description,
			})
		}
		forecast = append(forecast, entry)
	}
	return forecast, nil
}

// get issues a single GET against an endpoint and returns the body of a
// 2xx response.
func (c *Client) get(ctx context.Context, baseURL, city string) (io.ReadCloser, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: HTTP %d", ErrNetwork, resp.StatusCode)
	}
	return resp.Body, nil
}
