package mem

import (
	"sort"
	"strings"
	"sync"

	"github.com/goserg/storeserver/internal/domain"
	"github.com/goserg/storeserver/internal/normalize"
)

// Cache is the in-memory typeahead index of store names, refreshed on every
// store mutation.
type Cache struct {
	mu     sync.RWMutex
	valid  bool
	stores map[string]domain.Store
}

func New() *Cache {
	return &Cache{
		stores: make(map[string]domain.Store),
	}
}

func (c *Cache) Update(stores []domain.Store) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stores = make(map[string]domain.Store)
	for i := range stores {
		name := normalize.Name(stores[i].Name)
		c.stores[name] = stores[i]
	}
	c.valid = true
}

func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

func (c *Cache) Valid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.valid
}

// Suggest returns up to limit stores whose normalized name starts with the
// prefix, alphabetically.
func (c *Cache) Suggest(prefix string, limit int) []domain.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()

	prefix = normalize.Name(prefix)
	names := make([]string, 0, len(c.stores))
	for name := range c.stores {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	stores := make([]domain.Store, 0, len(names))
	for _, name := range names {
		stores = append(stores, c.stores[name])
	}
	return stores
}
