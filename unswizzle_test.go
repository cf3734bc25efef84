// unswizzle_test.go
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

import "testing"

func TestUnswizzleBlocksRoundTrip(t *testing.T) {
	const rowBytes = 32 // two 16-byte block columns
	const height = 8    // exactly one block row
	blocksX := rowBytes / 16
	src := make([]byte, blocksX*128)
	// Fill block (bx=0): rows 0-7 = 0x00.., block (bx=1): rows 0-7 = 0x10..
	for bx := 0; bx < blocksX; bx++ {
		for row := 0; row < 8; row++ {
			for b := 0; b < 16; b++ {
				src[bx*128+row*16+b] = byte(bx*0x10 + row)
			}
		}
	}
	out := make([]byte, rowBytes*height)
	Unswizzle(src, out, rowBytes, height)

	for y := 0; y < height; y++ {
		for bx := 0; bx < blocksX; bx++ {
			want := byte(bx*0x10 + y)
			got := out[y*rowBytes+bx*16]
			if got != want {
				t.Fatalf("row %d block %d: got %#x want %#x", y, bx, got, want)
			}
		}
	}
}

func TestUnswizzleNarrowRowsDoesNotPanic(t *testing.T) {
	for _, unit := range []int{8, 4, 2, 1} {
		src := make([]byte, 128*3)
		out := make([]byte, unit*24)
		Unswizzle(src, out, unit, 24)
	}
}
