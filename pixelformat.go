// pixelformat.go - guest and host pixel format tags
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// PixelFormat enumerates every guest texture format the cache can decode,
// plus the host-native formats a decoder may emit. This supersedes the
// teacher's video_interface.go PixelFormat enum, which only distinguished
// RGBA/RGB565/Paletted at the display-output level; a texture cache needs
// the full guest format list because decode behavior branches on it.
type PixelFormat int

const (
	FormatRGB565 PixelFormat = iota
	FormatABGR1555
	FormatABGR4444
	FormatABGR8888
	FormatCLUT4
	FormatCLUT8
	FormatCLUT16
	FormatCLUT32
	FormatDXT1
	FormatDXT3
	FormatDXT5
	formatCount // sentinel: any guest value >= this is "unknown" per §4.6 step 2
)

func (f PixelFormat) String() string {
	names := [...]string{
		"RGB565", "ABGR1555", "ABGR4444", "ABGR8888",
		"CLUT4", "CLUT8", "CLUT16", "CLUT32",
		"DXT1", "DXT3", "DXT5",
	}
	if int(f) < 0 || int(f) >= len(names) {
		return "unknown"
	}
	return names[f]
}

// IsPaletted reports whether the format indexes into a CLUT.
func (f PixelFormat) IsPaletted() bool {
	return f >= FormatCLUT4 && f <= FormatCLUT32
}

// IsDXT reports whether the format is one of the S3TC block formats.
func (f PixelFormat) IsDXT() bool {
	return f >= FormatDXT1 && f <= FormatDXT5
}

// BitsPerPixel returns the guest storage width used by quickTexHash's size
// computation (§4.1) and by size_in_ram estimation (§4.6 step 7). DXT
// formats report their average per-texel bit cost (block bytes / 16 texels).
func (f PixelFormat) BitsPerPixel() int {
	switch f {
	case FormatRGB565, FormatABGR1555, FormatABGR4444, FormatCLUT16:
		return 16
	case FormatABGR8888, FormatCLUT32:
		return 32
	case FormatCLUT4:
		return 4
	case FormatCLUT8:
		return 8
	case FormatDXT1:
		return 4
	case FormatDXT3, FormatDXT5:
		return 8
	default:
		return 16
	}
}

// MinBufWidth returns the decoder preamble's minimum buf_w by format (§4.4).
func (f PixelFormat) MinBufWidth() int {
	switch f {
	case FormatCLUT4:
		return 32
	case FormatCLUT8:
		return 8
	case FormatCLUT16:
		return 8
	case FormatCLUT32:
		return 4
	default:
		if f.BitsPerPixel() == 32 {
			return 4
		}
		return 8
	}
}

// HostFormat is the tag a decoder attaches to its scratch output: one of
// the four linear pixel layouts the sampler/upload path understands (§4.4).
type HostFormat int

const (
	HostABGR4444 HostFormat = iota
	HostABGR1555
	HostRGB565
	HostABGR8888
)
