// store_test.go - ordered primary cache container (§3)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

import "testing"

func TestPrimaryStoreRangeIsOrderedAndHalfOpen(t *testing.T) {
	s := newPrimaryStore()
	keys := []CacheKey{10, 30, 20, 5, 25}
	for _, k := range keys {
		s.Put(k, &Entry{Addr: uint32(k)})
	}

	var seen []CacheKey
	s.Range(10, 30, func(key CacheKey, e *Entry) bool {
		seen = append(seen, key)
		return true
	})

	want := []CacheKey{10, 20, 25}
	if len(seen) != len(want) {
		t.Fatalf("Range returned %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("Range returned %v, want %v", seen, want)
		}
	}
}

func TestPrimaryStoreDeleteKeepsOrderConsistent(t *testing.T) {
	s := newPrimaryStore()
	for _, k := range []CacheKey{3, 1, 2} {
		s.Put(k, &Entry{})
	}
	s.Delete(2)
	if s.Len() != 2 {
		t.Fatalf("expected 2 entries after delete, got %d", s.Len())
	}
	var seen []CacheKey
	s.ForEach(func(key CacheKey, e *Entry) bool {
		seen = append(seen, key)
		return true
	})
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 3 {
		t.Fatalf("ForEach order broken after delete: %v", seen)
	}
}

func TestSecondaryStorePutGetDelete(t *testing.T) {
	s := newSecondaryStore()
	key := SecondaryKey{FullHash: 1, ClutHash: 2}
	e := &Entry{}
	s.Put(key, e)
	if got, ok := s.Get(key); !ok || got != e {
		t.Fatalf("expected Get to return the stored entry")
	}
	s.Delete(key)
	if _, ok := s.Get(key); ok {
		t.Fatalf("expected entry to be gone after delete")
	}
}
