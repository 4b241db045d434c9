package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/desperati0n/ismism/internal/catalog"
	"github.com/desperati0n/ismism/internal/config"
	"github.com/desperati0n/ismism/internal/logger"
)

// ProvideCatalog loads the catalog dataset and wraps it in a provider
// for atomic hot swaps. A missing path yields an empty catalog so the
// server can start before a dataset is configured.
func ProvideCatalog(i do.Injector) (*catalog.Provider, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Catalog.Path == "" {
		log.Warn("No catalog path configured, starting with an empty catalog")
		return catalog.NewProvider(nil), nil
	}

	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	log.Info("Catalog loaded", "path", cfg.Catalog.Path, "entries", cat.Len())

	return catalog.NewProvider(cat), nil
}

// CatalogWatcherHandle wraps the catalog watcher with shutdown
// capability. The watcher is nil when watching is disabled.
type CatalogWatcherHandle struct {
	*catalog.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *CatalogWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Close()
}

// ProvideCatalogWatcher provides the dataset file watcher. On each
// successful reload the keyword index is rebuilt from the new catalog.
func ProvideCatalogWatcher(i do.Injector) (*CatalogWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	provider := do.MustInvoke[*catalog.Provider](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	if !cfg.Catalog.Watch || cfg.Catalog.Path == "" {
		return &CatalogWatcherHandle{}, nil
	}

	w, err := catalog.NewWatcher(cfg.Catalog.Path, provider, log.Logger)
	if err != nil {
		return nil, err
	}

	w.SetOnReload(func(cat *catalog.Catalog) {
		if indexHandle.Index == nil {
			return
		}
		if err := indexHandle.IndexCatalog(cat.Entries()); err != nil {
			log.WithError(err).Error("Failed to reindex catalog after reload")
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx)

	log.Info("Catalog watcher started", "path", cfg.Catalog.Path)

	return &CatalogWatcherHandle{Watcher: w, cancel: cancel}, nil
}
