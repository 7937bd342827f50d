package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of filtered slices kept per view.
const DefaultCacheSize = 128

// sliceCache memoizes filtered slices keyed by the normalized query. Cached
// slices are shared and must not be modified by callers.
type sliceCache[T any] struct {
	lru *lru.Cache[string, []T]
}

func newSliceCache[T any](size int) (*sliceCache[T], error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, []T](size)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return &sliceCache[T]{lru: c}, nil
}

// getOrBuild returns the cached slice for key or builds and stores it.
func (c *sliceCache[T]) getOrBuild(key string, build func() []T) []T {
	if v, ok := c.lru.Get(key); ok {
		return v
	}
	v := build()
	c.lru.Add(key, v)
	return v
}

func (c *sliceCache[T]) Len() int {
	return c.lru.Len()
}

// GenerateCacheKey builds a deterministic key from a station set and range.
// Station order and duplicates do not affect the key.
func GenerateCacheKey(stationIDs []string, from, to int) string {
	ids := normalizeIDs(stationIDs)
	keyStr := fmt.Sprintf("%s:%d:%d", strings.Join(ids, ","), from, to)

	// Hash the key to keep it reasonably sized
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}

// normalizeIDs returns the distinct ids, sorted.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
