// Package service holds the application services that sit between the
// HTTP handlers and the catalog, search and interaction stores.
package service

import (
	"context"
	"log/slog"

	"github.com/desperati0n/ismism/internal/catalog"
	"github.com/desperati0n/ismism/internal/domain"
	"github.com/desperati0n/ismism/internal/search"
	"github.com/desperati0n/ismism/internal/store"
)

// CatalogService answers catalog queries: code lookups, wildcard code
// searches, and full-text keyword searches.
type CatalogService struct {
	provider *catalog.Provider
	index    *search.Index
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service. index may be nil
// when keyword search is disabled.
func NewCatalogService(provider *catalog.Provider, index *search.Index, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		provider: provider,
		index:    index,
		logger:   logger,
	}
}

// List returns every catalog entry in file order.
func (s *CatalogService) List() []domain.Ism {
	return s.provider.Current().Entries()
}

// Get returns the entry at the exact code.
func (s *CatalogService) Get(code string) (*domain.Ism, error) {
	ism, ok := s.provider.Current().Get(code)
	if !ok {
		return nil, store.ErrNotFound.WithMessage("no entry for code " + code)
	}
	return ism, nil
}

// SearchByCode returns the entries whose codes match the query code,
// in catalog order. A malformed query is rejected rather than treated
// as matching nothing, so clients can tell a typo from an empty
// region of the catalog.
func (s *CatalogService) SearchByCode(queryCode string) ([]domain.Ism, error) {
	if !domain.ValidCode(queryCode) {
		return nil, store.ErrInvalidInput.WithMessage("malformed code " + queryCode)
	}
	return s.provider.Current().Search(queryCode), nil
}

// SearchByKeyword runs a full-text query over entry prose and resolves
// the hits back to catalog entries. Hits whose entries vanished from
// the catalog since the last index pass are dropped.
func (s *CatalogService) SearchByKeyword(ctx context.Context, query string, limit, offset int) ([]domain.Ism, error) {
	if s.index == nil {
		return nil, store.ErrInvalidInput.WithMessage("keyword search is not enabled")
	}

	result, err := s.index.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, store.ErrStorage.WithMessage("keyword search failed").WithCause(err)
	}

	cat := s.provider.Current()
	entries := make([]domain.Ism, 0, len(result.Hits))
	for _, hit := range result.Hits {
		if ism, ok := cat.Get(hit.Code); ok {
			entries = append(entries, *ism)
		}
	}
	return entries, nil
}

// Reindex rebuilds the keyword index from the current catalog. Called
// after a catalog reload.
func (s *CatalogService) Reindex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	entries := s.provider.Current().Entries()
	if err := s.index.IndexCatalog(entries); err != nil {
		s.logger.Error("failed to reindex catalog", "error", err)
		return err
	}
	return nil
}
