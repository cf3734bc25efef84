// guest.go - external collaborator interfaces (§6)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// GuestState exposes the rasterizer's current texture-related register
// state as a read-only set of getters, following the "thread it through as
// an explicit reference parameter" rewrite directive in §9 rather than the
// original's process-wide global.
type GuestState interface {
	TexAddr(level int) uint32
	TexBufWidth(level int) int
	TexWidth(level int) int
	TexHeight(level int) int

	TexFormat() int // raw guest format id; >= int(formatCount) is "unknown"
	TexFilter() int // packed min/mag filter nibbles, see sampler.go
	TexLevelMode() uint32
	TexMode() (swizzled bool, mipmapsShareCLUT bool)

	ClutFormat() int
	ClutAddr() uint32
	ClutLoadBytes() int
	ClutIndexStart() int
	ClutIndexMask() int
	ClutIndexShift() int
	TransformClutIndex(i int) int
	IsClutIndexSimple() bool

	IsSwizzled() bool
	IsClampedS() bool
	IsClampedT() bool
	IsColorTestEnabled() bool
}

// Memory is the flat guest address space (§6). The cache never mutates it.
type Memory interface {
	GetPointer(addr uint32) []byte
	IsValidAddress(addr uint32) bool
	MemcpyUnchecked(dst []byte, srcAddr uint32, n int)
}

// FramebufferRef is a non-owning handle into the FramebufferRegistry (§9
// "cyclic ownership" note: the cache only ever holds a weak reference).
type FramebufferRef int

const ZeroFramebufferRef FramebufferRef = 0

// FramebufferInfo mirrors the registry entry shape from §6.
type FramebufferInfo struct {
	Address         uint32
	Stride          int
	Width           int
	Height          int
	Format          PixelFormat
	LastFrameRender uint64
	LastFrameUsed   uint64
	FBO             TextureHandle
}

// FramebufferRegistry is the sibling component owning virtual framebuffers
// (§1 out of scope, §4.7). The cache only ranges over and reads it.
type FramebufferRegistry interface {
	Lookup(ref FramebufferRef) (FramebufferInfo, bool)
	// Range calls fn for every framebuffer whose Address lies in [addrLo, addrHi).
	Range(addrLo, addrHi uint32, fn func(ref FramebufferRef, info FramebufferInfo) bool)
}

// TextureHandle is an opaque host resource handle (§3 "opaque host handle").
type TextureHandle uint64

const NullTextureHandle TextureHandle = 0

// LevelBufW returns the row stride in texels used for a given mip level.
// Per SPEC_FULL.md §3.1, kernel/PPGe-owned textures ignore their own
// per-level texbufwidth register and reuse level 0's stride; ordinary guest
// textures use their own level's register.
func LevelBufW(g GuestState, level int, isKernelTexture bool) int {
	if isKernelTexture {
		return g.TexBufWidth(0)
	}
	return g.TexBufWidth(level)
}

// RoundUpToPowerOf2 rounds n up to the next power of two (§3.1). Neither the
// unswizzler (which rounds heights to a multiple of 8) nor the scaler calls it.
func RoundUpToPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
