package integrationtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/ELGYOUSS/MeteoApp/internal/handler"
	"github.com/ELGYOUSS/MeteoApp/internal/owm"
	"github.com/ELGYOUSS/MeteoApp/internal/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// WeatherDisplayTestSuite wires the real client, view model and handlers
// against a mock OpenWeatherMap server.
type WeatherDisplayTestSuite struct {
	suite.Suite
	owmServer *httptest.Server
	appServer *httptest.Server
	vm        *viewmodel.ViewModel

	mu        sync.Mutex
	delayCity string
	delayFor  time.Duration
}

func TestWeatherDisplayTestSuite(t *testing.T) {
	suite.Run(t, new(WeatherDisplayTestSuite))
}

func (s *WeatherDisplayTestSuite) SetupSuite() {
	s.owmServer = httptest.NewServer(http.HandlerFunc(s.mockOWMApi))

	client := owm.NewClient(
		"test_api_key",
		s.owmServer.URL+"/weather",
		s.owmServer.URL+"/forecast",
		s.owmServer.Client(),
	)
	s.vm = viewmodel.New(client, zap.NewNop().Sugar())

	h := handler.NewWeatherHandler(s.vm, 12)
	mux := http.NewServeMux()
	mux.HandleFunc("/city", h.HandleSelectCity)
	mux.HandleFunc("/weather", h.HandleWeather)
	mux.HandleFunc("/forecast", h.HandleForecast)
	s.appServer = httptest.NewServer(mux)
}

func (s *WeatherDisplayTestSuite) TearDownSuite() {
	if s.appServer != nil {
		s.appServer.Close()
	}
	if s.owmServer != nil {
		s.owmServer.Close()
	}
}

// mockOWMApi serves canned provider responses keyed by the q parameter.
// "Nowhere" always fails with a 500; the city configured via delayResponses
// is served after a pause to simulate a slow round trip.
func (s *WeatherDisplayTestSuite) mockOWMApi(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("q")

	s.mu.Lock()
	delayCity, delayFor := s.delayCity, s.delayFor
	s.mu.Unlock()
	if city == delayCity {
		time.Sleep(delayFor)
	}

	if city == "Nowhere" {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"cod":"500"}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/weather":
		fmt.Fprintf(w, `{
			"name": %q,
			"weather": [{"id": 801, "main": "Clouds", "description": "few clouds", "icon": "02d"}],
			"main": {"temp": 19.4, "feels_like": 18.8, "pressure": 1012, "humidity": 55},
			"wind": {"speed": 3.1, "deg": 45},
			"sys": {"country": "CA", "sunrise": 1700000000, "sunset": 1700036000}
		}`, city)
	case "/forecast":
		fmt.Fprint(w, `{
			"list": [
				{"dt": 1700000000, "main": {"temp": 17.0, "feels_like": 16.2, "pressure": 1011, "humidity": 58},
				 "weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}]},
				{"dt": 1700010800, "main": {"temp": 16.1, "feels_like": 15.5, "pressure": 1010, "humidity": 61},
				 "weather": [{"id": 802, "main": "Clouds", "description": "scattered clouds", "icon": "03d"}]}
			]
		}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *WeatherDisplayTestSuite) delayResponses(city string, d time.Duration) {
	s.mu.Lock()
	s.delayCity, s.delayFor = city, d
	s.mu.Unlock()
}

func (s *WeatherDisplayTestSuite) selectCity(city string) {
	resp, err := http.Get(s.appServer.URL + "/city?city=" + url.QueryEscape(city))
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusAccepted, resp.StatusCode)
}

func (s *WeatherDisplayTestSuite) getJSON(path string, out interface{}) int {
	resp, err := http.Get(s.appServer.URL + path)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	if out != nil {
		body, err := io.ReadAll(resp.Body)
		require.NoError(s.T(), err)
		require.NoError(s.T(), json.Unmarshal(body, out))
	}
	return resp.StatusCode
}

func (s *WeatherDisplayTestSuite) TestSelectThenDisplay() {
	s.selectCity("Toronto")
	s.vm.Wait()

	var weatherResp struct {
		Data struct {
			City          string `json:"city"`
			Country       string `json:"country"`
			Icon          string `json:"icon"`
			WindDirection string `json:"wind_direction"`
			Sunrise       string `json:"sunrise"`
		} `json:"data"`
	}
	status := s.getJSON("/weather", &weatherResp)
	assert.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), "Toronto", weatherResp.Data.City)
	assert.Equal(s.T(), "CA", weatherResp.Data.Country)
	assert.Equal(s.T(), "partly-cloudy", weatherResp.Data.Icon)
	assert.Equal(s.T(), "NE", weatherResp.Data.WindDirection)
	assert.NotEmpty(s.T(), weatherResp.Data.Sunrise)

	var forecastResp struct {
		Data []struct {
			Hour string `json:"hour"`
			Icon string `json:"icon"`
		} `json:"data"`
	}
	status = s.getJSON("/forecast", &forecastResp)
	assert.Equal(s.T(), http.StatusOK, status)
	require.Len(s.T(), forecastResp.Data, 2)
	assert.Equal(s.T(), "rain", forecastResp.Data[0].Icon)
	assert.Equal(s.T(), "cloudy", forecastResp.Data[1].Icon)
}

func (s *WeatherDisplayTestSuite) TestFailedFetchKeepsPriorData() {
	s.selectCity("Toronto")
	s.vm.Wait()

	s.selectCity("Nowhere")
	s.vm.Wait()

	// The failed fetch is recorded, the previous snapshot stays visible.
	snap := s.vm.Snapshot()
	assert.Error(s.T(), snap.LastErr)
	require.NotNil(s.T(), snap.Current)
	assert.Equal(s.T(), "Toronto", snap.Current.City)

	var weatherResp struct {
		Data struct {
			City string `json:"city"`
		} `json:"data"`
	}
	status := s.getJSON("/weather", &weatherResp)
	assert.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), "Toronto", weatherResp.Data.City)
}

func (s *WeatherDisplayTestSuite) TestRapidCitySwitch() {
	// Toronto's responses arrive after Montreal's; they must be dropped as
	// stale, not applied last-writer-wins.
	s.delayResponses("Toronto", 300*time.Millisecond)
	defer s.delayResponses("", 0)

	s.selectCity("Toronto")
	s.selectCity("Montreal")
	s.vm.Wait()

	snap := s.vm.Snapshot()
	assert.Equal(s.T(), "Montreal", snap.City)
	require.NotNil(s.T(), snap.Current)
	assert.Equal(s.T(), "Montreal", snap.Current.City)
}

func (s *WeatherDisplayTestSuite) TestMultiWordCity() {
	// The city value must survive the full handler -> view model -> client
	// path with its space intact.
	s.selectCity("Quebec City")
	s.vm.Wait()

	snap := s.vm.Snapshot()
	require.NoError(s.T(), snap.LastErr)
	require.NotNil(s.T(), snap.Current)
	assert.Equal(s.T(), "Quebec City", snap.Current.City)
}

func (s *WeatherDisplayTestSuite) TestMissingCityRejected() {
	status := s.getJSON("/city", nil)
	assert.Equal(s.T(), http.StatusBadRequest, status)
}
