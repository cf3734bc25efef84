// scale.go - texture upscale filter (§4.6 "optional host-side upscale")
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

// Package texscale upscales a decoded texture level by an integer factor
// before it reaches the host driver, grounded on the image-scaling idiom
// seen across the retrieval pack (golang.org/x/image/draw.Scale with a
// CatmullRom kernel) rather than a hand-rolled resampler.
package texscale

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/otley-labs/psptexcache"
)

func init() {
	texcache.RegisterFeature("texscale:catmullrom")
}

// Scale matches texcache.ScaleFunc's signature exactly so it can be
// injected via Cache.SetScaler without texcache importing this package.
//
// buf holds w*h pixels of bypp bytes each in host byte order; factor is
// 2-5 per the PSP's texture scaling range. A 4-byte pixel is taken as
// ABGR8888. A 2-byte pixel is always read and written as RGB565: the
// ABGR4444 and ABGR1555 layouts are not told apart from it, and their alpha
// is not kept. Returns a new buffer of w*factor * h*factor pixels of bypp
// bytes each.
func Scale(buf []byte, bypp, w, h, factor int) []byte {
	if factor <= 1 || w <= 0 || h <= 0 {
		return buf
	}
	src := decodeToRGBA(buf, bypp, w, h)
	dstW, dstH := w*factor, h*factor
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return encodeFromRGBA(dst, bypp)
}

func decodeToRGBA(buf []byte, bypp, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	switch bypp {
	case 4:
		copy(img.Pix, buf[:minInt(len(buf), len(img.Pix))])
	case 2:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				off := (y*w + x) * 2
				if off+2 > len(buf) {
					continue
				}
				v := uint16(buf[off]) | uint16(buf[off+1])<<8
				r := uint8((v >> 11) & 0x1F << 3)
				g := uint8((v >> 5) & 0x3F << 2)
				b := uint8(v & 0x1F << 3)
				img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}
	return img
}

func encodeFromRGBA(src *image.RGBA, bypp int) []byte {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if bypp == 4 {
		out := make([]byte, len(src.Pix))
		copy(out, src.Pix)
		return out
	}
	out := make([]byte, w*h*2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.RGBAAt(x, y)
			v := uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
			off := (y*w + x) * 2
			out[off] = byte(v)
			out[off+1] = byte(v >> 8)
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
