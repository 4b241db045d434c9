package catalog

import "sync"

// Provider hands out the current catalog and allows atomic replacement
// when the dataset file changes. Readers always see a complete catalog,
// never a partially loaded one.
type Provider struct {
	mu      sync.RWMutex
	current *Catalog
}

// NewProvider creates a provider serving the given catalog.
func NewProvider(c *Catalog) *Provider {
	if c == nil {
		c = New(nil)
	}
	return &Provider{current: c}
}

// Current returns the catalog in effect.
func (p *Provider) Current() *Catalog {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Replace swaps in a new catalog.
func (p *Provider) Replace(c *Catalog) {
	if c == nil {
		return
	}
	p.mu.Lock()
	p.current = c
	p.mu.Unlock()
}
