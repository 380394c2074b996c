package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/uuid"
)

// MemcacheReportCache stores reports in memcached. Each user has a generation
// counter that is part of every report key, so invalidation is one increment
// and stale entries age out by TTL.
type MemcacheReportCache struct {
	client *memcache.Client
	ttl    time.Duration
}

// NewMemcacheReportCache connects to the given hosts and pings them
func NewMemcacheReportCache(hosts []string, ttl time.Duration) (*MemcacheReportCache, error) {
	if len(hosts) == 0 {
		return nil, errors.New("at least one memcache host is required")
	}

	slog.Info("Connecting to memcached", "hosts", hosts)
	client := memcache.New(hosts...)

	return &MemcacheReportCache{client: client, ttl: ttl}, client.Ping()
}

func generationKey(userID uuid.UUID) string {
	return "report-gen:" + userID.String()
}

func (c *MemcacheReportCache) generation(userID uuid.UUID) (string, error) {
	item, err := c.client.Get(generationKey(userID))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read cache generation: %w", err)
	}
	return string(item.Value), nil
}

func (c *MemcacheReportCache) itemKey(userID uuid.UUID, key string) (string, error) {
	gen, err := c.generation(userID)
	if err != nil {
		return "", err
	}
	return memcacheKey(userID, gen, key), nil
}

func memcacheKey(userID uuid.UUID, generation, key string) string {
	return userPrefix(userID) + "g" + generation + ":" + key
}

func (c *MemcacheReportCache) Get(userID uuid.UUID, key string) ([]byte, error) {
	itemKey, err := c.itemKey(userID, key)
	if err != nil {
		return nil, err
	}

	item, err := c.client.Get(itemKey)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached report: %w", err)
	}
	return item.Value, nil
}

func (c *MemcacheReportCache) Set(userID uuid.UUID, key string, value []byte) error {
	itemKey, err := c.itemKey(userID, key)
	if err != nil {
		return err
	}
	return c.set(itemKey, value)
}

func (c *MemcacheReportCache) set(itemKey string, value []byte) error {
	if err := c.client.Set(&memcache.Item{
		Key:        itemKey,
		Value:      value,
		Expiration: int32(c.ttl.Seconds()),
	}); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// Generation returns the user's current generation counter
func (c *MemcacheReportCache) Generation(userID uuid.UUID) (string, error) {
	return c.generation(userID)
}

// SetAt writes under the given generation. Once the counter moves on, the entry is never read.
func (c *MemcacheReportCache) SetAt(userID uuid.UUID, generation, key string, value []byte) error {
	return c.set(memcacheKey(userID, generation, key), value)
}

func (c *MemcacheReportCache) InvalidateUser(userID uuid.UUID) error {
	_, err := c.client.Increment(generationKey(userID), 1)
	if err == nil {
		return nil
	}
	if !errors.Is(err, memcache.ErrCacheMiss) {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}

	// no counter yet: generation 1 supersedes the implicit generation 0
	err = c.client.Add(&memcache.Item{Key: generationKey(userID), Value: []byte(strconv.Itoa(1))})
	if err != nil && !errors.Is(err, memcache.ErrNotStored) {
		return fmt.Errorf("failed to create cache generation: %w", err)
	}
	return nil
}
