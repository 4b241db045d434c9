package providers

import (
	"github.com/samber/do/v2"

	"github.com/desperati0n/ismism/internal/catalog"
	"github.com/desperati0n/ismism/internal/config"
	"github.com/desperati0n/ismism/internal/logger"
	"github.com/desperati0n/ismism/internal/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable. The index is nil when keyword
// search is disabled.
func (h *SearchIndexHandle) Shutdown() error {
	if h.Index == nil {
		return nil
	}
	return h.Close()
}

// ProvideSearchIndex provides the Bleve keyword index, populated from
// the loaded catalog.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	provider := do.MustInvoke[*catalog.Provider](i)

	if !cfg.Search.Enabled {
		log.Info("Keyword search disabled")
		return &SearchIndexHandle{}, nil
	}

	index, err := search.New(search.Options{
		DataPath: cfg.Data.BasePath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	if err := index.IndexCatalog(provider.Current().Entries()); err != nil {
		index.Close()
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}
