// decode_direct.go - direct (non-paletted, non-DXT) pixel decoders (§4.4)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// DecodeDirect decodes one of the direct 16/32-bit guest formats
// (RGB565/ABGR1555/ABGR4444/ABGR8888) into linear host pixels. Per §4.4 the
// three 16-bit formats need the same colorspace-convert bitfield rotation
// the CLUT path applies in palette.go's convert16, so that a given
// HostFormat tag means the same byte layout regardless of which path
// produced it; ABGR8888 already matches the host layout byte-for-byte.
//
// When the image is linear (not swizzled), bufW == w, and format is
// ABGR8888, this returns src itself with no copy, satisfying the zero-copy
// round-trip property (§8). The 16-bit formats never return src: their
// rotation writes into the tmp16 scratch buffer.
func DecodeDirect(src []byte, format PixelFormat, swizzled bool, bufW, w, h int, scratch *scratchBuffers) ([]byte, HostFormat) {
	bypp := format.BitsPerPixel() / 8
	rowBytes := bufW * bypp

	var linear []byte
	if swizzled {
		linear = scratch.growTmp32(rowBytes * roundUpTo8(h))
		Unswizzle(src, linear, rowBytes, h)
	} else if bufW == w && format == FormatABGR8888 {
		return src, hostFormatFor(format)
	} else {
		linear = src
	}

	out := RectifyRows(linear, rowBytes, bufW, w, h, bypp, scratch)
	hf := hostFormatFor(format)
	if format == FormatABGR8888 {
		return out, hf
	}
	return rotateDirect16(out, format, scratch), hf
}

// rotateDirect16 applies the same bitfield rotation convert16 applies to
// CLUT entries of the matching format, so direct and paletted 16-bit
// textures tagged with the same HostFormat share one byte layout.
func rotateDirect16(src []byte, format PixelFormat, scratch *scratchBuffers) []byte {
	out := scratch.growTmp16(len(src))
	for i := 0; i+2 <= len(src); i += 2 {
		v := uint16(src[i]) | uint16(src[i+1])<<8
		var rv uint16
		switch format {
		case FormatRGB565:
			rv = (v&0x001F)<<11 | (v & 0x07E0) | (v&0xF800)>>11
		case FormatABGR1555:
			rv = (v&0x001F)<<11 | (v&0x03E0)<<1 | (v&0x7C00)>>9 | (v&0x8000)>>15
		case FormatABGR4444:
			rv = (v&0x000F)<<12 | (v&0x00F0)<<4 | (v&0x0F00)>>4 | (v&0xF000)>>12
		default:
			rv = v
		}
		out[i], out[i+1] = byte(rv), byte(rv>>8)
	}
	return out
}

func hostFormatFor(format PixelFormat) HostFormat {
	switch format {
	case FormatRGB565:
		return HostRGB565
	case FormatABGR1555:
		return HostABGR1555
	case FormatABGR4444:
		return HostABGR4444
	default:
		return HostABGR8888
	}
}

// RectifyRows packs a buffer whose rows are bufW pixels wide down to w
// pixels per row when bufW > w (§4.4 "row rectification"). When bufW <= w
// the source is returned unchanged (the caller's bufW is already the
// effective minimum).
func RectifyRows(src []byte, srcRowBytes, bufW, w, h, bypp int, scratch *scratchBuffers) []byte {
	if bufW <= w {
		return src
	}
	dstRowBytes := w * bypp
	out := scratch.growRearrange(dstRowBytes * h)
	for y := 0; y < h; y++ {
		srcOff := y * srcRowBytes
		dstOff := y * dstRowBytes
		if srcOff+dstRowBytes > len(src) || dstOff+dstRowBytes > len(out) {
			break
		}
		copy(out[dstOff:dstOff+dstRowBytes], src[srcOff:srcOff+dstRowBytes])
	}
	return out
}
