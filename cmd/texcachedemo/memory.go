// memory.go - flat VRAM backing store and framebuffer registry for the demo console
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package main

import (
	"sync"

	"github.com/otley-labs/psptexcache"
)

// flatMemory is a plain byte slice standing in for guest VRAM, grounded on
// the teacher's VRAM array backing store with the MMIO dispatch stripped -
// the demo talks to it directly rather than through a simulated bus.
type flatMemory struct {
	buf []byte
}

func newFlatMemory(size int) *flatMemory {
	return &flatMemory{buf: make([]byte, size)}
}

func (m *flatMemory) GetPointer(addr uint32) []byte {
	if int(addr) >= len(m.buf) {
		return nil
	}
	return m.buf[addr:]
}

func (m *flatMemory) IsValidAddress(addr uint32) bool {
	return int(addr) < len(m.buf)
}

func (m *flatMemory) MemcpyUnchecked(dst []byte, srcAddr uint32, n int) {
	src := m.buf[srcAddr:]
	if n > len(src) {
		n = len(src)
	}
	copy(dst, src[:n])
}

// memRegistry is a minimal in-memory texcache.FramebufferRegistry, grounded
// on stats.go's mutex-guarded snapshot-store shape.
type memRegistry struct {
	mu      sync.RWMutex
	entries map[texcache.FramebufferRef]texcache.FramebufferInfo
}

func newMemRegistry() *memRegistry {
	return &memRegistry{entries: make(map[texcache.FramebufferRef]texcache.FramebufferInfo)}
}

func (r *memRegistry) Add(ref texcache.FramebufferRef, info texcache.FramebufferInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[ref] = info
}

func (r *memRegistry) Remove(ref texcache.FramebufferRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, ref)
}

func (r *memRegistry) Lookup(ref texcache.FramebufferRef) (texcache.FramebufferInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.entries[ref]
	return info, ok
}

func (r *memRegistry) Range(addrLo, addrHi uint32, fn func(ref texcache.FramebufferRef, info texcache.FramebufferInfo) bool) {
	r.mu.RLock()
	snapshot := make(map[texcache.FramebufferRef]texcache.FramebufferInfo, len(r.entries))
	for k, v := range r.entries {
		snapshot[k] = v
	}
	r.mu.RUnlock()

	for ref, info := range snapshot {
		if info.Address >= addrLo && info.Address < addrHi {
			if !fn(ref, info) {
				return
			}
		}
	}
}

var _ texcache.Memory = (*flatMemory)(nil)
var _ texcache.FramebufferRegistry = (*memRegistry)(nil)
