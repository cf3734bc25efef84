// sampler.go - guest filter/clamp state -> host sampler program (§4.5)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// MinFilter enumerates the 6 minification modes (nearest/linear crossed
// with mipmap none/nearest/linear).
// The bit layout descends from voodoo_constants.go's VOODOO_TEX_MINIFY
// field (a 3-bit hardware filter select), repurposed for the PSP's guest
// texfilter encoding rather than the Voodoo's.
type MinFilter int

const (
	MinNearest MinFilter = iota
	MinLinear
	MinNearestMipNearest
	MinLinearMipNearest
	MinNearestMipLinear
	MinLinearMipLinear
)

// MagFilter enumerates the 2 magnification modes.
type MagFilter int

const (
	MagNearest MagFilter = iota
	MagLinear
)

// guest texlevel values that mean "lock LOD to 0" (§4.5 override 3).
const (
	texLevelLockA = 0x000001
	texLevelLockB = 0x100001
)

// TranslateSampler applies §4.5's three ordered overrides and returns the
// resulting min/mag filter pair plus clamp flags. baseLinear, hasMipNearest
// and hasMipLinear are the guest's own request (decoded from TexFilter()).
func TranslateSampler(g GuestState, cfg Config) (min MinFilter, mag MagFilter, clampS, clampT bool) {
	baseLinear := (g.TexFilter() & 0x1) != 0
	hasMipNearest := (g.TexFilter()>>2)&0x1 != 0
	hasMipLinear := (g.TexFilter()>>3)&0x1 != 0

	if baseLinear {
		mag = MagLinear
	} else {
		mag = MagNearest
	}
	min = minFilterFor(baseLinear, hasMipNearest, hasMipLinear)

	// Override 1: force linear, except when color test is enabled.
	wantLinear := cfg.TexFiltering == FilterLinear ||
		(cfg.TexFiltering == FilterLinearFMV && cfg.VideoCount > 0)
	if wantLinear && !g.IsColorTestEnabled() {
		mag = MagLinear
		min = minFilterFor(true, hasMipNearest, hasMipLinear)
	}

	// Override 2: force nearest.
	if cfg.TexFiltering == FilterNearest {
		mag = MagNearest
		min = minFilterFor(false, hasMipNearest, hasMipLinear)
	}

	// Override 3: strip mip-mode bits when mipmaps are disabled or the
	// guest explicitly locks LOD to 0.
	lvl := g.TexLevelMode() & 0xFFFFFF
	if !cfg.Mipmap || lvl == texLevelLockA || lvl == texLevelLockB {
		min = minFilterFor(min == MinLinear || min == MinLinearMipNearest || min == MinLinearMipLinear, false, false)
	}

	clampS = g.IsClampedS()
	clampT = g.IsClampedT()
	return
}

func minFilterFor(linear, mipNearest, mipLinear bool) MinFilter {
	switch {
	case linear && mipLinear:
		return MinLinearMipLinear
	case linear && mipNearest:
		return MinLinearMipNearest
	case linear:
		return MinLinear
	case mipLinear:
		return MinNearestMipLinear
	case mipNearest:
		return MinNearestMipNearest
	default:
		return MinNearest
	}
}

// ClampAnisotropy clamps a requested anisotropy level to the host-reported
// maximum (§4.5).
func ClampAnisotropy(requested, hostMax int) int {
	if requested > hostMax {
		return hostMax
	}
	if requested < 1 {
		return 1
	}
	return requested
}

// SamplerChanged reports whether a newly translated sampler program differs
// from what's currently memoized on the entry, so the cache only calls the
// host driver when something actually changed (§4.5, §8 round-trip test).
func SamplerChanged(cur SamplerState, min MinFilter, mag MagFilter, clampS, clampT bool, lodBias float32) bool {
	return cur.MinFilter != min || cur.MagFilter != mag ||
		cur.ClampS != clampS || cur.ClampT != clampT || cur.LODBias != lodBias
}
