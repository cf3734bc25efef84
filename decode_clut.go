// decode_clut.go - palette-indexed pixel decoders (§4.4)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// DecodeCLUT decodes a 4/8/16/32-bit indexed texture through the active
// palette. indexBits selects which of the four index widths the source
// holds; the palette's own entry size (2 or 4 bytes, tracked by the caller
// via entrySize) determines the returned HostFormat, independent of
// indexBits - a CLUT8 texture can point at an ABGR8888 palette just as
// easily as a 16-bit one.
func DecodeCLUT(src []byte, indexBits int, swizzled bool, bufW, w, h, level int, mipmapsShareCLUT bool, pal *Palette, clutFormat ClutFormat, entrySize int, g GuestState, scratch *scratchBuffers) ([]byte, HostFormat) {
	rowBytes := (bufW * indexBits) / 8

	var indexed []byte
	if swizzled {
		indexed = scratch.growTmp32(rowBytes * roundUpTo8(h))
		Unswizzle(src, indexed, rowBytes, h)
	} else {
		indexed = src
	}

	levelOffset4bit := 0
	if !mipmapsShareCLUT && indexBits == 4 {
		levelOffset4bit = level * 16
	}

	hostFmt := hostFormatForClut(clutFormat)
	dstRowBytes := w * entrySize
	out := scratch.growRearrange(dstRowBytes * h)

	naked := g.ClutIndexStart() == 0 && g.ClutIndexMask() == (1<<indexBits)-1 && g.ClutIndexShift() == 0

	for y := 0; y < h; y++ {
		srcRowOff := y * rowBytes
		dstRowOff := y * dstRowBytes
		for x := 0; x < w; x++ {
			idx := readIndex(indexed, srcRowOff, x, indexBits)

			if indexBits == 4 && pal.AlphaLinear && naked {
				writeEntry(out, dstRowOff+x*entrySize, uint32(pal.AlphaLinearColor)|uint32(idx), entrySize)
				continue
			}

			transformed := idx + levelOffset4bit
			if !naked {
				transformed = g.TransformClutIndex(transformed)
			}
			entry := readPaletteEntry(pal.Converted(), transformed, entrySize)
			writeEntry(out, dstRowOff+x*entrySize, entry, entrySize)
		}
	}
	return out, hostFmt
}

func hostFormatForClut(format ClutFormat) HostFormat {
	switch format {
	case ClutABGR4444:
		return HostABGR4444
	case ClutABGR5551:
		return HostABGR1555
	case ClutBGR565:
		return HostRGB565
	default:
		return HostABGR8888
	}
}

func readIndex(buf []byte, rowOff, x, indexBits int) int {
	switch indexBits {
	case 4:
		b := buf[rowOff+x/2]
		if x%2 == 0 {
			return int(b & 0x0F)
		}
		return int(b >> 4)
	case 8:
		return int(buf[rowOff+x])
	case 16:
		off := rowOff + x*2
		return int(buf[off]) | int(buf[off+1])<<8
	default: // 32
		off := rowOff + x*4
		return int(buf[off]) | int(buf[off+1])<<8 | int(buf[off+2])<<16 | int(buf[off+3])<<24
	}
}

func readPaletteEntry(pal []byte, index, entrySize int) uint32 {
	off := index * entrySize
	if off < 0 || off+entrySize > len(pal) {
		return 0
	}
	if entrySize == 2 {
		return uint32(pal[off]) | uint32(pal[off+1])<<8
	}
	return uint32(pal[off]) | uint32(pal[off+1])<<8 | uint32(pal[off+2])<<16 | uint32(pal[off+3])<<24
}

func writeEntry(out []byte, off int, v uint32, entrySize int) {
	if off < 0 || off+entrySize > len(out) {
		return
	}
	out[off] = byte(v)
	out[off+1] = byte(v >> 8)
	if entrySize == 4 {
		out[off+2] = byte(v >> 16)
		out[off+3] = byte(v >> 24)
	}
}
