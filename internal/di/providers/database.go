package providers

import (
	"fmt"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/desperati0n/ismism/internal/config"
	"github.com/desperati0n/ismism/internal/logger"
	"github.com/desperati0n/ismism/internal/store"
	"github.com/desperati0n/ismism/internal/store/sqlite"
)

// StoreHandle wraps the interactions store with shutdown capability.
type StoreHandle struct {
	store.Interactions
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the interactions store selected by the
// configured backend.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		db  store.Interactions
		err error
	)
	switch cfg.Data.Backend {
	case config.BackendBadger:
		db, err = store.New(filepath.Join(cfg.Data.BasePath, "db"), log.Logger)
	case config.BackendSQLite:
		db, err = sqlite.Open(filepath.Join(cfg.Data.BasePath, "interactions.db"), log.Logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Data.Backend)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Interaction store initialized", "backend", cfg.Data.Backend)

	return &StoreHandle{Interactions: db}, nil
}
