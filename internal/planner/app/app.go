// Package app assembles the planner service: SQLite persistence, plan
// synthesis, message rendering, and the domain aggregate behind one
// constructor.
package app

import (
	"fmt"
	"log"

	"github.com/louisbranch/rallypoint/internal/planner/domain"
	"github.com/louisbranch/rallypoint/internal/planner/notify"
	"github.com/louisbranch/rallypoint/internal/planner/storage/sqlite"
	"github.com/louisbranch/rallypoint/internal/planner/synth"
	"golang.org/x/text/language"
)

// Config describes one planner service instance.
type Config struct {
	// DBPath is the SQLite database file path.
	DBPath string
	// Locale selects the outbound message language. Empty means English.
	Locale string
	// CompletionQuorum, SoftLimit, and HardMax tune the planning
	// controllers; zero values select the defaults.
	CompletionQuorum int
	SoftLimit        int
	HardMax          int
	// Logger receives delivery lines; nil falls back to the process default.
	Logger *log.Logger
	// Notifier overrides the log-backed notifier when set, for tests and
	// alternative delivery backends.
	Notifier domain.Notifier
	// Synthesizer overrides the heuristic generator when set.
	Synthesizer domain.PlanSynthesizer
}

// App owns the wired planner service and its resources.
type App struct {
	Planner *domain.Planner

	store *sqlite.Store
}

// New opens storage and wires the planner aggregate.
func New(cfg Config) (*App, error) {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open planner storage: %w", err)
	}

	notifier := cfg.Notifier
	if notifier == nil {
		tag := language.English
		if cfg.Locale != "" {
			parsed, parseErr := language.Parse(cfg.Locale)
			if parseErr != nil {
				_ = store.Close()
				return nil, fmt.Errorf("parse locale %q: %w", cfg.Locale, parseErr)
			}
			tag = parsed
		}
		notifier = notify.NewLogNotifier(notify.NewRenderer(tag), cfg.Logger)
	}

	synthesizer := cfg.Synthesizer
	if synthesizer == nil {
		synthesizer = synth.NewGenerator()
	}

	planner := domain.New(domain.Config{
		Store:            newStoreAdapter(store),
		Synthesizer:      synthesizer,
		Questions:        domain.DefaultCatalog(),
		Notifier:         notifier,
		SoftLimit:        cfg.SoftLimit,
		HardMax:          cfg.HardMax,
		CompletionQuorum: cfg.CompletionQuorum,
	})

	return &App{Planner: planner, store: store}, nil
}

// Close releases the service's resources.
func (a *App) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	return a.store.Close()
}
