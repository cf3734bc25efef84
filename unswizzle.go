// unswizzle.go - PSP block deinterleave (§4.2)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// Unswizzle deinterleaves the PSP's 16-byte x 8-row block layout into a
// linear raster written to out. rowBytes is the guest's packed row width in
// bytes (buf_w converted to bytes for the source format); height is rounded
// up to the next multiple of 8 internally, matching the source's guest
// buffer padding. Output pitch equals rowBytes.
//
// Row widths below 16 bytes use specialized de-interleave sub-paths (§4.2);
// width >= 16 uses the generic 16x8 block copy. Grounded on the
// block-reordering idiom in other_examples/Ailyth99-RetroGameLocalization's
// swizzle.go (fixed-stride block copy loops), generalized to the PSP's
// block shape rather than the PS2 CLUT swizzle that file targets.
func Unswizzle(src []byte, out []byte, rowBytes, height int) {
	switch {
	case rowBytes >= 16:
		unswizzleBlocks(src, out, rowBytes, height)
	case rowBytes == 8:
		unswizzleNarrow(src, out, rowBytes, height, 8)
	case rowBytes == 4:
		unswizzleNarrow(src, out, rowBytes, height, 4)
	case rowBytes == 2:
		unswizzleNarrow(src, out, rowBytes, height, 2)
	default:
		unswizzleNarrow(src, out, rowBytes, height, 1)
	}
}

// unswizzleBlocks handles the generic width>=16 case: the guest buffer is a
// row-major sequence of 16x8 blocks (128 bytes each); each block's 8 rows
// land at their natural row but a column offset of bx*16.
func unswizzleBlocks(src, out []byte, rowBytes, height int) {
	ySize := roundUpTo8(height)
	blocksX := rowBytes / 16
	blocksY := ySize / 8
	const blockRowBytes = 16
	const blockSize = blockRowBytes * 8

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			blockOff := (by*blocksX + bx) * blockSize
			if blockOff+blockSize > len(src) {
				return
			}
			for row := 0; row < 8; row++ {
				y := by*8 + row
				if y >= height {
					break
				}
				srcOff := blockOff + row*blockRowBytes
				dstOff := y*rowBytes + bx*16
				if dstOff+16 > len(out) {
					continue
				}
				copy(out[dstOff:dstOff+16], src[srcOff:srcOff+16])
			}
		}
	}
}

// unswizzleNarrow handles rows narrower than 16 bytes (8/4/2/1 byte
// sub-paths). For these, the PSP still packs 8 rows per 128-byte block but
// the block only spans one or a handful of columns, so multiple vertically
// adjacent blocks interleave within the same 128-byte group. The scalar
// fallback here processes one row unit (unitBytes) at a time, which is
// correct but not the SIMD-friendly layout §9 calls for in an accelerated
// implementation.
func unswizzleNarrow(src, out []byte, rowBytes, height, unitBytes int) {
	ySize := roundUpTo8(height)
	unitsPerBlockRow := 16 / unitBytes
	blocksY := ySize / 8
	const blockSize = 16 * 8

	for by := 0; by < blocksY; by++ {
		blockOff := by * blockSize
		if blockOff+blockSize > len(src) {
			return
		}
		for row := 0; row < 8; row++ {
			y := by*8 + row
			if y >= height {
				break
			}
			for u := 0; u < unitsPerBlockRow; u++ {
				srcOff := blockOff + row*16 + u*unitBytes
				dstOff := y*rowBytes + u*unitBytes
				if dstOff+unitBytes > len(out) || srcOff+unitBytes > len(src) {
					continue
				}
				copy(out[dstOff:dstOff+unitBytes], src[srcOff:srcOff+unitBytes])
			}
		}
	}
}

func roundUpTo8(n int) int {
	return (n + 7) &^ 7
}
