package cache

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrCacheMiss = errors.New("cache miss")

// ReportCache stores serialized reports scoped to a user
type ReportCache interface {
	Get(userID uuid.UUID, key string) ([]byte, error)
	Set(userID uuid.UUID, key string, value []byte) error
	// Generation returns a token for the user's current cache contents. Read it before
	// computing a report and pass it to SetAt.
	Generation(userID uuid.UUID) (string, error)
	// SetAt stores value unless the user was invalidated after generation was read
	SetAt(userID uuid.UUID, generation, key string, value []byte) error
	// InvalidateUser drops every report cached for the user
	InvalidateUser(userID uuid.UUID) error
}

// ReportKey joins report parameters into a cache key
func ReportKey(parts ...string) string {
	return strings.Join(parts, ":")
}

func userPrefix(userID uuid.UUID) string {
	return "report:" + userID.String() + ":"
}

// MemoryReportCache keeps reports in a process-local LRU
type MemoryReportCache struct {
	lru *LRUCache[[]byte]
	ttl time.Duration

	mu          sync.Mutex
	seq         uint64
	invalidated map[uuid.UUID]invalidation
}

type invalidation struct {
	seq uint64
	at  time.Time
}

func NewMemoryReportCache(maxEntries int, ttl time.Duration) *MemoryReportCache {
	return &MemoryReportCache{
		lru:         NewLRUCache[[]byte](maxEntries, ttl),
		ttl:         ttl,
		invalidated: make(map[uuid.UUID]invalidation),
	}
}

func (c *MemoryReportCache) Get(userID uuid.UUID, key string) ([]byte, error) {
	value, ok := c.lru.Get(userPrefix(userID) + key)
	if !ok {
		return nil, ErrCacheMiss
	}
	return value, nil
}

func (c *MemoryReportCache) Set(userID uuid.UUID, key string, value []byte) error {
	c.lru.Set(userPrefix(userID)+key, value)
	return nil
}

// Generation returns the invalidation sequence at the time of the call
func (c *MemoryReportCache) Generation(userID uuid.UUID) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strconv.FormatUint(c.seq, 10), nil
}

func (c *MemoryReportCache) SetAt(userID uuid.UUID, generation, key string, value []byte) error {
	seen, err := strconv.ParseUint(generation, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid cache generation %q: %w", generation, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if mark, ok := c.invalidated[userID]; ok && mark.seq > seen {
		return nil
	}
	c.lru.Set(userPrefix(userID)+key, value)
	return nil
}

func (c *MemoryReportCache) InvalidateUser(userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.invalidated[userID] = invalidation{seq: c.seq, at: time.Now()}
	c.lru.DeletePrefix(userPrefix(userID))
	return nil
}

// CleanExpired lets a Janitor manage the underlying LRU. Invalidation marks older than
// the TTL are dropped with it.
func (c *MemoryReportCache) CleanExpired() int {
	removed := c.lru.CleanExpired()

	c.mu.Lock()
	defer c.mu.Unlock()
	for userID, mark := range c.invalidated {
		if time.Since(mark.at) > c.ttl {
			delete(c.invalidated, userID)
		}
	}
	return removed
}
