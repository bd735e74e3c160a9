package catalog

import (
	"sync"
	"time"

	"modelhub/internal/core"
)

// Store 每個 provider 最多一份目錄；讀寫皆回傳/寫入複本
type Store struct {
	mu       sync.RWMutex
	catalogs map[core.ProviderName]ProviderCatalog
}

func NewStore() *Store {
	return &Store{catalogs: make(map[core.ProviderName]ProviderCatalog)}
}

func (s *Store) Get(p core.ProviderName) (ProviderCatalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.catalogs[p]
	if !ok {
		return ProviderCatalog{}, false
	}
	return c.clone(), true
}

// Put 整份取代，不做 merge
func (s *Store) Put(c ProviderCatalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogs[c.Provider] = c.clone()
}

// IsStale 沒有資料或 now - LastUpdated > TTL 即過期；剛好等於 TTL 仍算新鮮
func (s *Store) IsStale(p core.ProviderName, now time.Time) bool {
	c, ok := s.Get(p)
	if !ok {
		return true
	}
	return isStale(c, now)
}

func isStale(c ProviderCatalog, now time.Time) bool {
	if c.LastUpdated.IsZero() {
		return true
	}
	return now.Sub(c.LastUpdated) > c.TTL()
}

// Snapshot 依 provider 宣告順序回傳目前所有目錄
func (s *Store) Snapshot() []ProviderCatalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ProviderCatalog, 0, len(s.catalogs))
	for _, spec := range core.Providers {
		if c, ok := s.catalogs[spec.Name]; ok {
			out = append(out, c.clone())
		}
	}
	return out
}
