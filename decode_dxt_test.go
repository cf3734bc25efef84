// decode_dxt_test.go
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

import "testing"

// buildPSPDXT1Block builds an 8-byte block in the PSP's native field order:
// 4 bytes of 2-bit indices, then color1 LE16, then color2 LE16.
func buildPSPDXT1Block(c1, c2 uint16, indices uint32) []byte {
	psp := make([]byte, 8)
	psp[0], psp[1], psp[2], psp[3] = byte(indices), byte(indices>>8), byte(indices>>16), byte(indices>>24)
	psp[4], psp[5] = byte(c1), byte(c1>>8)
	psp[6], psp[7] = byte(c2), byte(c2>>8)
	return psp
}

func TestDecodeDXT1SingleBlockAllIndex0(t *testing.T) {
	const c1 = uint16(0b11111_000000_00000) // pure red in 565
	const c2 = uint16(0b00000_000000_11111) // pure blue in 565
	block := buildPSPDXT1Block(c1, c2, 0) // every texel picks color0

	out := DecodeDXT1(block, 1, 1)
	if len(out) != 4*4*4 {
		t.Fatalf("unexpected output size %d", len(out))
	}
	r, g, b := rgb565(c1)
	for texel := 0; texel < 16; texel++ {
		off := texel * 4
		if out[off] != r || out[off+1] != g || out[off+2] != b || out[off+3] != 255 {
			t.Fatalf("texel %d = %v, want opaque color0 %d/%d/%d", texel, out[off:off+4], r, g, b)
		}
	}
}

func TestDecodeDXT1PunchThroughAlpha(t *testing.T) {
	// c1 <= c2 triggers the alpha=0 color3 case per §4.4.
	const c1 = uint16(0)
	const c2 = uint16(0xFFFF)
	indices := uint32(0)
	for i := 0; i < 16; i++ {
		indices |= 3 << uint(2*i) // every texel selects index 3
	}
	block := buildPSPDXT1Block(c1, c2, indices)
	out := DecodeDXT1(block, 1, 1)
	if out[3] != 0 {
		t.Fatalf("expected alpha=0 on punch-through color3, got %d", out[3])
	}
}

func TestDXT5AlphaTableInterpolation(t *testing.T) {
	table := dxt5AlphaTable(255, 0)
	if table[0] != 255 || table[1] != 0 {
		t.Fatalf("endpoints not preserved: %v", table)
	}
	// a1 > a2: interpolated path, no fixed 0/255 entries.
	for i, v := range table[2:] {
		if v == 0 || v == 255 {
			t.Fatalf("interpolated entry %d is %d, want neither 0 nor 255", i+2, v)
		}
	}

	table2 := dxt5AlphaTable(0, 100)
	if table2[6] != 0 || table2[7] != 255 {
		t.Fatalf("a1<=a2 path must fix entries 6/7 to 0/255, got %v", table2)
	}
}

func TestDecodeDXT3AlphaNibbleReplication(t *testing.T) {
	block := make([]byte, 16)
	// color sub-block: arbitrary, doesn't matter for this alpha check
	block[0], block[1] = 0, 0
	block[2], block[3] = 0, 0
	// alpha nibble 0xA for every texel -> replicated to 0xAA
	for i := 8; i < 16; i++ {
		block[i] = 0xAA
	}
	out := DecodeDXT3(block, 1, 1)
	for texel := 0; texel < 16; texel++ {
		a := out[texel*4+3]
		if a != 0xAA {
			t.Fatalf("texel %d alpha = %#x, want 0xAA", texel, a)
		}
	}
}
