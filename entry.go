// entry.go - cache entry state (§3)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// TrustState is the per-entry tri-state controlling rehash frequency (§4.6).
type TrustState int

const (
	TrustHashing TrustState = iota
	TrustReliable
	TrustUnreliable
)

// AlphaState classifies the alpha channel of a decoded texture (§4.6).
type AlphaState int

const (
	AlphaUnknown AlphaState = iota
	AlphaSimple             // every pixel fully opaque or fully transparent
	AlphaFull                // every pixel fully opaque
)

// SamplerState is the last sampler program the entry was bound with, kept so
// the host is only called again when something actually changes (§4.5).
type SamplerState struct {
	MinFilter MinFilter
	MagFilter MagFilter
	ClampS    bool
	ClampT    bool
	LODBias   float32
}

// Entry is a single cache_key -> decoded-texture binding (§3).
type Entry struct {
	Addr       uint32
	SizeInRAM  uint32
	Format     PixelFormat
	DimW       uint8 // log2 width
	DimH       uint8 // log2 height
	MaxLevel   int
	BufW       int

	MiniHash uint32
	FullHash uint32
	ClutHash uint32

	Texture     TextureHandle
	Framebuffer FramebufferRef // zero value means "no alias"

	InvalidHint    int // -1 is the "known-bad framebuffer attach" sentinel
	NumInvalidated int

	NumFrames                int
	LastFrame                uint64
	FramesUntilNextFullHash  int

	Trust TrustState
	Alpha AlphaState

	Sampler SamplerState

	ReplaceImages bool // §3.1: reuse handle via TexSubImage2D instead of reallocating
}

// MatchesGeometry reports whether dim/format/max_level agree with the
// current guest texture state (§4.6 "test geometry identity").
func (e *Entry) MatchesGeometry(dimW, dimH uint8, format PixelFormat, maxLevel int) bool {
	return e.DimW == dimW && e.DimH == dimH && e.Format == format && e.MaxLevel == maxLevel
}

// Width and Height decode the packed log2 dim nibbles back to texel counts.
func (e *Entry) Width() int  { return 1 << e.DimW }
func (e *Entry) Height() int { return 1 << e.DimH }

// IsFramebufferAlias reports whether this entry forwards sampling to a
// render target instead of to decoded pixel memory (§4.7).
func (e *Entry) IsFramebufferAlias() bool {
	return e.Framebuffer != ZeroFramebufferRef
}
