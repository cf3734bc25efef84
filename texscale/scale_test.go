// scale_test.go - upscale filter
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texscale

import "testing"

func TestScaleFactorOneIsNoop(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	got := Scale(buf, 4, 1, 1, 1)
	if len(got) != len(buf) {
		t.Fatalf("factor=1 should return the input length unchanged, got %d", len(got))
	}
}

func TestScaleDoublesABGR8888Dimensions(t *testing.T) {
	w, h := 2, 2
	buf := make([]byte, w*h*4)
	for i := range buf {
		buf[i] = byte(i)
	}
	got := Scale(buf, 4, w, h, 2)
	want := (w * 2) * (h * 2) * 4
	if len(got) != want {
		t.Fatalf("expected %d output bytes, got %d", want, len(got))
	}
}

func TestScaleTriples16BitDimensions(t *testing.T) {
	w, h := 4, 4
	buf := make([]byte, w*h*2)
	got := Scale(buf, 2, w, h, 3)
	want := (w * 3) * (h * 3) * 2
	if len(got) != want {
		t.Fatalf("expected %d output bytes, got %d", want, len(got))
	}
}
