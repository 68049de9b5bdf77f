package setup

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Lombiq/NGM.Forum/backend/internal/content"
	"github.com/Lombiq/NGM.Forum/backend/internal/content/memstore"
	"github.com/Lombiq/NGM.Forum/backend/internal/handler"
	"github.com/Lombiq/NGM.Forum/backend/internal/service"
	"github.com/Lombiq/NGM.Forum/backend/internal/storage/pg"
	"github.com/Lombiq/NGM.Forum/shared/config"
	"github.com/Lombiq/NGM.Forum/shared/logger"
)

// backend is what a content store must offer to be served.
type backend interface {
	content.Store
	content.Writer
	handler.HealthChecker
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config  *config.Config
	Store   content.Store
	Handler *handler.Handler
	cleanup func() error
}

// Close releases the store's resources.
func (d *Dependencies) Close() error {
	if d.cleanup == nil {
		return nil
	}
	return d.cleanup()
}

// SetupDependencies opens the configured store, seeds fixtures when a
// fixtures file is set, and builds the services. Store metrics go to reg.
func SetupDependencies(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*Dependencies, error) {
	log := logger.With("setup")

	var store backend
	cleanup := func() error { return nil }
	switch cfg.Public.Storage {
	case config.StoragePg:
		pgStore, err := pg.New(cfg)
		if err != nil {
			return nil, err
		}
		store, cleanup = pgStore, pgStore.Cleanup
	case config.StorageMemory:
		store = memstore.New()
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Public.Storage)
	}

	if cfg.Public.FixturesPath != "" {
		items, err := content.ReadFixtures(cfg.Public.FixturesPath)
		if err != nil {
			cleanup()
			return nil, err
		}
		if err := content.Seed(ctx, store, items); err != nil {
			cleanup()
			return nil, err
		}
		log.Info("seeded fixtures", "path", cfg.Public.FixturesPath, "items", len(items))
	}

	instrumented := content.Instrumented(store, reg)
	thread := service.NewThread(instrumented, cfg.Public.ThreadContentType)
	forum := service.NewForum(instrumented, cfg.Public.ForumContentType)

	return &Dependencies{
		Config:  cfg,
		Store:   instrumented,
		Handler: handler.New(thread, forum, cfg, store),
		cleanup: cleanup,
	}, nil
}
