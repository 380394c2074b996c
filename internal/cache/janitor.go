package cache

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Cleaner is a cache that can drop its expired entries
type Cleaner interface {
	CleanExpired() int
}

// Janitor periodically cleans registered caches until stopped
type Janitor struct {
	caches      []Cleaner
	started     atomic.Bool
	stopCleanup chan struct{}
	cleanupDone chan struct{}
}

func NewJanitor(caches ...Cleaner) *Janitor {
	return &Janitor{
		caches:      caches,
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
}

// Start begins the cleanup loop. Later calls are no-ops.
func (j *Janitor) Start(interval time.Duration) {
	if !j.started.CompareAndSwap(false, true) {
		return
	}
	go j.run(interval)
}

func (j *Janitor) run(interval time.Duration) {
	defer close(j.cleanupDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cleaned := 0
			for _, c := range j.caches {
				cleaned += c.CleanExpired()
			}
			if cleaned > 0 {
				slog.Debug("Cleaned expired cache entries", "count", cleaned)
			}
		case <-j.stopCleanup:
			return
		}
	}
}

// Stop ends the cleanup loop and waits for it to exit. A janitor that never started returns at once.
func (j *Janitor) Stop() {
	if !j.started.Load() {
		return
	}
	close(j.stopCleanup)
	<-j.cleanupDone
}
