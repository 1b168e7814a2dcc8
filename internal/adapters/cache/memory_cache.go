package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/core"
)

var (
	// ErrNotFound is returned when a cache entry is not found.
	ErrNotFound = errors.New("cache entry not found")
	// ErrExpired is returned when a cache entry has expired.
	ErrExpired = errors.New("cache entry expired")
)

// MemoryCache is an in-memory implementation of the ReputationCache port.
type MemoryCache struct {
	entries     map[string]*core.ReputationEntry
	mu          sync.RWMutex
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMemoryCache creates a new in-memory reputation cache.
func NewMemoryCache(logger *zap.Logger, cleanupFreq time.Duration) *MemoryCache {
	cache := &MemoryCache{
		entries:     make(map[string]*core.ReputationEntry),
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go cache.startCleanupTask()

	return cache
}

// Get retrieves the cached reputation for a domain.
func (c *MemoryCache) Get(_ context.Context, domain string) (*core.ReputationEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[domain]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, ErrExpired
	}

	return entry, nil
}

// Set stores a reputation entry.
func (c *MemoryCache) Set(_ context.Context, entry *core.ReputationEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[entry.Domain] = entry
	return nil
}

// Delete removes a domain's entry.
func (c *MemoryCache) Delete(_ context.Context, domain string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, domain)
	return nil
}

// Cleanup removes expired entries.
func (c *MemoryCache) Cleanup(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expiredCount := 0

	for domain, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, domain)
			expiredCount++
		}
	}

	c.logger.Debug("Cleaned up expired reputation entries", zap.Int("expired_count", expiredCount))
	return nil
}

func (c *MemoryCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(context.Background()); err != nil {
				c.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task.
func (c *MemoryCache) Stop() {
	close(c.stopCh)
}
