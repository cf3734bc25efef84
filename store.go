// store.go - ordered primary cache and secondary ("second-chance") cache (§3)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

import "sort"

// primaryStore is cache_key -> *Entry, kept ordered by key so that
// invalidation and framebuffer aliasing can run half-open range scans
// without walking the whole cache (§3 "order by key is required").
type primaryStore struct {
	byKey map[CacheKey]*Entry
	order []CacheKey // sorted ascending
}

func newPrimaryStore() *primaryStore {
	return &primaryStore{byKey: make(map[CacheKey]*Entry)}
}

func (s *primaryStore) Get(key CacheKey) (*Entry, bool) {
	e, ok := s.byKey[key]
	return e, ok
}

func (s *primaryStore) Put(key CacheKey, e *Entry) {
	if _, exists := s.byKey[key]; !exists {
		i := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= key })
		s.order = append(s.order, 0)
		copy(s.order[i+1:], s.order[i:])
		s.order[i] = key
	}
	s.byKey[key] = e
}

func (s *primaryStore) Delete(key CacheKey) {
	if _, exists := s.byKey[key]; !exists {
		return
	}
	delete(s.byKey, key)
	i := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= key })
	if i < len(s.order) && s.order[i] == key {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
}

func (s *primaryStore) Len() int { return len(s.byKey) }

// Range calls fn for every entry with key in [lo, hi), in ascending key
// order, stopping early if fn returns false.
func (s *primaryStore) Range(lo, hi CacheKey, fn func(key CacheKey, e *Entry) bool) {
	i := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= lo })
	for ; i < len(s.order) && s.order[i] < hi; i++ {
		key := s.order[i]
		if !fn(key, s.byKey[key]) {
			return
		}
	}
}

// ForEach visits every entry, in ascending key order, stopping early if fn
// returns false. Safe to delete the current key during the callback.
func (s *primaryStore) ForEach(fn func(key CacheKey, e *Entry) bool) {
	keys := make([]CacheKey, len(s.order))
	copy(keys, s.order)
	for _, key := range keys {
		e, ok := s.byKey[key]
		if !ok {
			continue
		}
		if !fn(key, e) {
			return
		}
	}
}

// secondaryStore is (full_hash, clut_hash) -> *Entry (§3). No range-query
// requirement is placed on it by §4.6/§4.8, so a plain map suffices.
type secondaryStore struct {
	byKey map[SecondaryKey]*Entry
}

func newSecondaryStore() *secondaryStore {
	return &secondaryStore{byKey: make(map[SecondaryKey]*Entry)}
}

func (s *secondaryStore) Get(key SecondaryKey) (*Entry, bool) {
	e, ok := s.byKey[key]
	return e, ok
}

func (s *secondaryStore) Put(key SecondaryKey, e *Entry) { s.byKey[key] = e }

func (s *secondaryStore) Delete(key SecondaryKey) { delete(s.byKey, key) }

func (s *secondaryStore) Len() int { return len(s.byKey) }

func (s *secondaryStore) ForEach(fn func(key SecondaryKey, e *Entry) bool) {
	keys := make([]SecondaryKey, 0, len(s.byKey))
	for k := range s.byKey {
		keys = append(keys, k)
	}
	for _, key := range keys {
		e, ok := s.byKey[key]
		if !ok {
			continue
		}
		if !fn(key, e) {
			return
		}
	}
}
