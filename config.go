// config.go - cache-wide configuration (§6 "config")
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// RenderingMode mirrors i_rendering_mode (§6).
type RenderingMode int

const (
	RenderingNonBuffered RenderingMode = iota
	RenderingBuffered
	RenderingSoftware
)

// TexFiltering mirrors i_tex_filtering (§6, §4.5).
type TexFiltering int

const (
	FilterAuto TexFiltering = iota
	FilterNearest
	FilterLinear
	FilterLinearFMV
)

// Config is the host-supplied, hardware-independent configuration the cache
// reads. Grounded on video_interface.go's DisplayConfig: plain fields, no
// flag/env parsing inside the package (that stays in cmd/texcachedemo).
type Config struct {
	RenderingMode   RenderingMode
	TexFiltering    TexFiltering
	Mipmap          bool
	AnisotropyLevel int
	TexScalingLevel int
	LowMemory       bool

	// VideoCount > 0 enables the "linear during FMV" override in §4.5.
	VideoCount int
}

// DefaultConfig matches the guest defaults the original source assumes
// absent any user override.
func DefaultConfig() Config {
	return Config{
		RenderingMode:   RenderingBuffered,
		TexFiltering:    FilterAuto,
		Mipmap:          true,
		AnisotropyLevel: 1,
		TexScalingLevel: 1,
	}
}
