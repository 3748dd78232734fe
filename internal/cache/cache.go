// Package cache keeps recently assembled pages in memory.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/Shiinama/blog-sub000/internal/post"
)

// CleanupInterval is how often Run evicts expired pages.
const CleanupInterval = 5 * time.Minute

type entry struct {
	page     post.Page
	storedAt time.Time
}

// Store is a thread-safe in-memory page cache with TTL eviction. It holds at
// most maxEntries pages; when full, the oldest page is evicted.
type Store struct {
	mu         sync.Mutex
	pages      map[string]entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewStore creates a Store. A maxEntries of zero or less means no limit.
func NewStore(ttl time.Duration, maxEntries int) *Store {
	return &Store{
		pages:      make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Key derives the cache key for a post source seen by a viewer.
func Key(source string, v post.Viewer, locale string) string {
	return ContentHashHex([]byte(fmt.Sprintf("%t|%t|%s|%s", v.Subscribed, v.Admin, locale, source)))
}

func (s *Store) Put(key string, page post.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[key]; !ok && s.maxEntries > 0 {
		for len(s.pages) >= s.maxEntries {
			s.evictOldestLocked()
		}
	}
	s.pages[key] = entry{page: page, storedAt: s.now()}
}

func (s *Store) evictOldestLocked() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, e := range s.pages {
		if !found || e.storedAt.Before(oldest) {
			oldestKey, oldest, found = key, e.storedAt, true
		}
	}
	delete(s.pages, oldestKey)
}

// Get returns a cached page. Expired pages are misses.
func (s *Store) Get(key string) (post.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.pages[key]
	if !ok {
		return post.Page{}, false
	}
	if s.now().Sub(e.storedAt) > s.ttl {
		delete(s.pages, key)
		return post.Page{}, false
	}
	return e.page, true
}

// Len returns the number of stored pages, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Cleanup removes expired pages.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, e := range s.pages {
		if now.Sub(e.storedAt) > s.ttl {
			delete(s.pages, key)
		}
	}
}

// Run evicts expired pages every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
