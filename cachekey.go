// cachekey.go - the 64-bit cache key (§3)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// CacheKey packs the guest texture address into the high 32 bits and the
// CLUT identity into the low 32 bits, so that entries at the same address
// form a contiguous range suitable for range queries (§3).
type CacheKey uint64

// MakeCacheKey builds the primary lookup key. clutHash/clutFormat are
// ignored (treated as zero) for non-paletted formats.
func MakeCacheKey(texAddr uint32, format PixelFormat, clutHash uint32, clutFormat int) CacheKey {
	low := uint32(0)
	if format.IsPaletted() {
		low = clutHash ^ uint32(clutFormat)
	}
	return CacheKey(uint64(texAddr)<<32 | uint64(low))
}

// FramebufferCacheKey builds the key an attached framebuffer alias is
// stored under: the address with the VRAM mirror bit forced on, no CLUT
// component (§3, §4.7).
func FramebufferCacheKey(fbAddr uint32) CacheKey {
	return CacheKey(uint64(fbAddr|VRAMBit) << 32)
}

// Addr extracts the guest address component.
func (k CacheKey) Addr() uint32 { return uint32(k >> 32) }

// CLUTComponent extracts the low 32 bits (clutHash XOR clutFormat, or 0).
func (k CacheKey) CLUTComponent() uint32 { return uint32(k) }

// SecondaryKey is the (full_hash, clut_hash) key used by the second-chance
// cache (§3, §4.6).
type SecondaryKey struct {
	FullHash uint32
	ClutHash uint32
}
