package providers

import (
	"github.com/samber/do/v2"

	"github.com/desperati0n/ismism/internal/catalog"
	"github.com/desperati0n/ismism/internal/logger"
	"github.com/desperati0n/ismism/internal/service"
)

// ProvideCatalogService provides the catalog query service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	provider := do.MustInvoke[*catalog.Provider](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(provider, indexHandle.Index, log.Logger), nil
}

// ProvideInteractionService provides the interaction service over the
// configured store backend.
func ProvideInteractionService(i do.Injector) (*service.InteractionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewInteractionService(storeHandle.Interactions, log.Logger), nil
}
