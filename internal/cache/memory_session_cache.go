package cache

import (
	"context"
	"sync"
	"time"

	"docrag/internal/model"
)

type MemorySessionCache struct {
	mu       sync.Mutex
	sessions map[string]model.Session
}

func NewMemorySessionCache() *MemorySessionCache {
	return &MemorySessionCache{sessions: make(map[string]model.Session)}
}

func (c *MemorySessionCache) Put(_ context.Context, token string, seen time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[token] = model.Session{Token: token, LastSeen: seen}
	return nil
}

func (c *MemorySessionCache) Touch(_ context.Context, token string, seen time.Time) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sessions[token]; !ok {
		return false, nil
	}
	c.sessions[token] = model.Session{Token: token, LastSeen: seen}
	return true, nil
}

func (c *MemorySessionCache) Get(_ context.Context, token string) (time.Time, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[token]
	return s.LastSeen, ok, nil
}

func (c *MemorySessionCache) Delete(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, token)
	return nil
}
