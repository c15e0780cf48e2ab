package memcache

import (
	"sync"
	"time"

	"tripweaver/internal/models/domain_models"
)

// CandidatePoolCache keeps discovered candidate pools per city so repeated
// generation requests do not hammer the database. Discovery bypasses it
// when the engine forces a refresh.
type CandidatePoolCache interface {
	Get(cityID string) ([]domain_models.Candidate, bool)
	Set(cityID string, pool []domain_models.Candidate, ttl time.Duration)
	Invalidate(cityID string)
}

type poolEntry struct {
	pool      []domain_models.Candidate
	expiresAt time.Time
}

type candidatePoolCache struct {
	mu   sync.RWMutex
	data map[string]poolEntry
}

func NewCandidatePoolCache() CandidatePoolCache {
	return &candidatePoolCache{data: make(map[string]poolEntry)}
}

func (c *candidatePoolCache) Get(cityID string) ([]domain_models.Candidate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[cityID]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.pool, true
}

func (c *candidatePoolCache) Set(cityID string, pool []domain_models.Candidate, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[cityID] = poolEntry{pool: pool, expiresAt: time.Now().Add(ttl)}
}

func (c *candidatePoolCache) Invalidate(cityID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, cityID)
}
