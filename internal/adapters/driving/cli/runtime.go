package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/custodia-labs/finvo-cli/internal/adapters/driven/api"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driven/router"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finvo-cli/internal/core/services"
)

// demoLatency simulates a backend round trip for the demo dataset.
const demoLatency = 120 * time.Millisecond

var defaultConfigDir = file.DefaultDir

// Runtime wires the adapters behind the commands. Parts other than the
// settings are built when a command first asks for them.
type Runtime struct {
	dir         string
	configStore *file.ConfigStore
	settings    *services.SettingsService

	aggregator   *services.FanOutAggregator
	historyStore driven.HistoryStore
	closers      []func() error
}

// NewRuntime opens the configuration in dir.
func NewRuntime(dir string) (*Runtime, error) {
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	return &Runtime{
		dir:         dir,
		configStore: store,
		settings:    services.NewSettingsService(store),
	}, nil
}

// Settings returns the settings service.
func (r *Runtime) Settings() *services.SettingsService {
	return r.settings
}

// ConfigPath returns the path of the configuration file.
func (r *Runtime) ConfigPath() string {
	return r.configStore.Path()
}

// Dir returns the configuration directory.
func (r *Runtime) Dir() string {
	return r.dir
}

// AppSettings returns the current settings with defaults applied.
func (r *Runtime) AppSettings() (domain.AppSettings, error) {
	s, err := r.settings.Get()
	if err != nil {
		return domain.AppSettings{}, fmt.Errorf("reading settings: %w", err)
	}
	return *s, nil
}

// Aggregator returns the fan-out aggregator over the configured searchers.
func (r *Runtime) Aggregator(ctx context.Context) (*services.FanOutAggregator, error) {
	if r.aggregator != nil {
		return r.aggregator, nil
	}
	settings, err := r.AppSettings()
	if err != nil {
		return nil, err
	}

	var searchers []driven.DomainSearcher
	if settings.API.Demo {
		demo := memory.NewDemoRecordStore()
		demo.SetLatency(demoLatency)
		searchers = demo.Searchers()
	} else {
		client := api.NewClient(ctx, api.Config{
			BaseURL:   settings.API.BaseURL,
			Token:     settings.API.Token,
			Timeout:   settings.API.Timeout,
			RateLimit: settings.API.RateLimit,
			Burst:     settings.API.Burst,
			UserAgent: "finvo-cli/" + version,
		})
		searchers = client.Searchers()
	}

	aggregator, err := services.NewFanOutAggregator(searchers, settings.Search.PerDomainLimit)
	if err != nil {
		return nil, fmt.Errorf("creating aggregator: %w", err)
	}
	r.aggregator = aggregator
	return aggregator, nil
}

// History returns a history service whose navigator routes to w in print mode.
// Navigations are persisted in sqlite, or kept in memory when history is disabled.
func (r *Runtime) History(w io.Writer) (*services.HistoryService, error) {
	settings, err := r.AppSettings()
	if err != nil {
		return nil, err
	}
	navigator, err := router.New(settings.Router, w)
	if err != nil {
		return nil, fmt.Errorf("creating router: %w", err)
	}

	if r.historyStore == nil {
		if settings.History.Enabled {
			store, err := sqlite.NewStore(r.dir)
			if err != nil {
				return nil, fmt.Errorf("opening history: %w", err)
			}
			r.closers = append(r.closers, store.Close)
			r.historyStore = store.HistoryStore()
		} else {
			r.historyStore = memory.NewHistoryStore()
		}
	}

	return services.NewHistoryService(r.historyStore, navigator, settings.History.Limit), nil
}

// Watch starts watching the configuration file and returns its change signal.
func (r *Runtime) Watch() (<-chan struct{}, error) {
	w, err := file.NewWatcher(r.configStore)
	if err != nil {
		return nil, fmt.Errorf("watching config: %w", err)
	}
	r.closers = append(r.closers, w.Close)
	return w.Changes(), nil
}

// Close releases everything the runtime opened, newest first.
func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
