package viewmodel

import (
	"context"
	"sync"

	"github.com/ELGYOUSS/MeteoApp/internal/model"
	"go.uber.org/zap"
)

// Fetcher is the weather provider surface the view model depends on.
type Fetcher interface {
	FetchCurrentWeather(ctx context.Context, city string) (*model.CurrentWeather, error)
	FetchForecast(ctx context.Context, city string) (model.Forecast, error)
}

// Snapshot is a point-in-time copy of the observable slots. Current and
// Forecast are nil until their first successful fetch.
type Snapshot struct {
	City     string
	Current  *model.CurrentWeather
	Forecast model.Forecast
	LastErr  error
}

// ViewModel holds the most recent current-weather and forecast results for
// the selected city. Selecting a city issues both fetches concurrently;
// neither waits for the other. A completion is applied only if its city is
// still the selected one, so a slow response for a previously selected
// city never overwrites newer data.
type ViewModel struct {
	fetcher Fetcher
	logger  *zap.SugaredLogger

	mu       sync.RWMutex
	city     string
	current  *model.CurrentWeather
	forecast model.Forecast
	lastErr  error

	updates chan struct{}
	wg      sync.WaitGroup
}

func New(fetcher Fetcher, logger *zap.SugaredLogger) *ViewModel {
	return &ViewModel{
		fetcher: fetcher,
		logger:  logger,
		updates: make(chan struct{}, 1),
	}
}

// SelectCity records city as the selected one and issues both fetches in
// the background. In-flight fetches for a previous city are not cancelled;
// their results are dropped on completion instead.
func (vm *ViewModel) SelectCity(ctx context.Context, city string) {
	vm.mu.Lock()
	vm.city = city
	vm.mu.Unlock()

	vm.wg.Add(2)
	go func() {
		defer vm.wg.Done()
		weather, err := vm.fetcher.FetchCurrentWeather(ctx, city)
		vm.applyCurrent(city, weather, err)
	}()
	go func() {
		defer vm.wg.Done()
		forecast, err := vm.fetcher.FetchForecast(ctx, city)
		vm.applyForecast(city, forecast, err)
	}()
}

// Snapshot returns a copy of the observable slots.
func (vm *ViewModel) Snapshot() Snapshot {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return Snapshot{
		City:     vm.city,
		Current:  vm.current,
		Forecast: vm.forecast,
		LastErr:  vm.lastErr,
	}
}

// Updates signals after each applied completion. Signals are coalesced;
// observers should re-read Snapshot rather than count them.
func (vm *ViewModel) Updates() <-chan struct{} {
	return vm.updates
}

// Wait blocks until all issued fetches have completed. Used by tests and
// on shutdown.
func (vm *ViewModel) Wait() {
	vm.wg.Wait()
}

func (vm *ViewModel) applyCurrent(city string, weather *model.CurrentWeather, err error) {
	vm.mu.Lock()
	if vm.city != city {
		selected := vm.city
		vm.mu.Unlock()
		vm.logger.Debugw("Dropping stale current weather response", "city", city, "selected", selected)
		return
	}
	if err != nil {
		vm.lastErr = err
		vm.mu.Unlock()
		vm.logger.Warnw("Failed to fetch current weather", "city", city, "error", err)
		vm.notify()
		return
	}
	vm.current = weather
	vm.lastErr = nil
	vm.mu.Unlock()
	vm.notify()
}

func (vm *ViewModel) applyForecast(city string, forecast model.Forecast, err error) {
	vm.mu.Lock()
	if vm.city != city {
		selected := vm.city
		vm.mu.Unlock()
		vm.logger.Debugw("Dropping stale forecast response", "city", city, "selected", selected)
		return
	}
	if err != nil {
		vm.lastErr = err
		vm.mu.Unlock()
		vm.logger.Warnw("Failed to fetch forecast", "city", city, "error", err)
		vm.notify()
		return
	}
	vm.forecast = forecast
	vm.lastErr = nil
	vm.mu.Unlock()
	vm.notify()
}

func (vm *ViewModel) notify() {
	select {
	case vm.updates <- struct{}{}:
	default:
	}
}
