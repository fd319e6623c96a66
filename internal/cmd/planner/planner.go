// Package planner parses planner service flags and launches the service.
package planner

import (
	"context"
	"flag"
	"fmt"
	"time"

	apihttp "github.com/louisbranch/rallypoint/internal/planner/api/http"
	"github.com/louisbranch/rallypoint/internal/planner/app"
	entrypoint "github.com/louisbranch/rallypoint/internal/platform/cmd"
)

const shutdownTimeout = 5 * time.Second

// Config holds planner command configuration.
type Config struct {
	Port    int    `env:"RALLYPOINT_PLANNER_PORT" envDefault:"8080"`
	DBPath  string `env:"RALLYPOINT_PLANNER_DB" envDefault:"planner.db"`
	Locale  string `env:"RALLYPOINT_PLANNER_LOCALE" envDefault:"en"`
	Quorum  int    `env:"RALLYPOINT_PLANNER_QUORUM" envDefault:"0"`
	SoftCap int    `env:"RALLYPOINT_PLANNER_SOFT_LIMIT" envDefault:"0"`
	HardCap int    `env:"RALLYPOINT_PLANNER_HARD_MAX" envDefault:"0"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The planner HTTP server port")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "The planner SQLite database path")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "The outbound message locale")
	fs.IntVar(&cfg.Quorum, "quorum", cfg.Quorum, "Completed participants required before plan generation (0 selects the default)")
	fs.IntVar(&cfg.SoftCap, "soft-limit", cfg.SoftCap, "Questions before the continuation prompt (0 selects the default)")
	fs.IntVar(&cfg.HardCap, "hard-max", cfg.HardCap, "Questions before forced completion (0 selects the default)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the planner HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePlanner, func(ctx context.Context) error {
		application, err := app.New(app.Config{
			DBPath:           cfg.DBPath,
			Locale:           cfg.Locale,
			CompletionQuorum: cfg.Quorum,
			SoftLimit:        cfg.SoftCap,
			HardMax:          cfg.HardCap,
		})
		if err != nil {
			return err
		}
		defer func() { _ = application.Close() }()

		router := apihttp.NewRouter(application.Planner)
		errCh := make(chan error, 1)
		go func() {
			errCh <- router.Listen(fmt.Sprintf(":%d", cfg.Port))
		}()

		select {
		case <-ctx.Done():
			if err := router.ShutdownWithTimeout(shutdownTimeout); err != nil {
				return fmt.Errorf("shutdown http server: %w", err)
			}
			return nil
		case err := <-errCh:
			return err
		}
	})
}
