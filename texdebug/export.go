// export.go - copy a decoded texture level to the system clipboard
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

// Package texdebug offers a handful of developer-facing inspection helpers
// for a running cache. Export takes a cache entry's texture dimensions and
// pushes a PNG encoding of caller-supplied RGBA pixels for it onto the
// system clipboard, grounded on the clipboardOnce/clipboardOK idiom
// used to gate optional system integrations elsewhere in the pack.
package texdebug

import (
	"bytes"
	"image"
	"image/png"
	"sync"

	"golang.design/x/clipboard"

	"github.com/otley-labs/psptexcache"
)

var (
	clipboardOnce sync.Once
	clipboardOK   bool
)

func init() {
	texcache.RegisterFeature("texdebug:clipboard-export")
}

func ensureClipboard() bool {
	clipboardOnce.Do(func() {
		clipboardOK = clipboard.Init() == nil
	})
	return clipboardOK
}

// Export encodes pix (tightly packed RGBA8888, w*h*4 bytes, as returned by a
// debug readback from the host driver) as a PNG and writes it to the system
// clipboard. Returns false without error if no clipboard is available on
// this platform, matching the pack's "degrade silently, don't crash" stance
// on optional system integrations.
func Export(e *texcache.Entry, pix []byte) (bool, error) {
	if !ensureClipboard() {
		return false, nil
	}
	w, h := e.Width(), e.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	n := w * h * 4
	if n > len(pix) {
		n = len(pix)
	}
	copy(img.Pix, pix[:n])

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return false, err
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return true, nil
}
