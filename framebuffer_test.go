// framebuffer_test.go - attach/detach policy (§4.7)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

import (
	"testing"

	"github.com/otley-labs/psptexcache/gputexhost/faketesting"
)

func TestAttachEntryExactAddressFormatMismatchIsInvalid(t *testing.T) {
	c := &Cache{diag: newDiagnostics(), cfg: DefaultConfig()}
	e := &Entry{Format: FormatRGB565}
	key := FramebufferCacheKey(0x1000)

	c.attachEntry(key, e, 5, FramebufferInfo{Address: 0x1000, Format: FormatABGR8888})

	if e.Framebuffer != 5 {
		t.Fatalf("expected attachment despite format mismatch, got framebuffer=%v", e.Framebuffer)
	}
	if e.InvalidHint != -1 {
		t.Fatalf("expected invalid_hint=-1 sentinel, got %d", e.InvalidHint)
	}
}

func TestAttachEntryExactAddressMatchingFormat(t *testing.T) {
	c := &Cache{diag: newDiagnostics(), cfg: DefaultConfig()}
	e := &Entry{Format: FormatABGR8888}
	key := FramebufferCacheKey(0x2000)

	c.attachEntry(key, e, 9, FramebufferInfo{Address: 0x2000, Format: FormatABGR8888})

	if e.Framebuffer != 9 || e.InvalidHint != 0 {
		t.Fatalf("expected valid attachment, got framebuffer=%v invalid_hint=%d", e.Framebuffer, e.InvalidHint)
	}
}

func TestDetachFramebufferClearsReferencingEntries(t *testing.T) {
	driver := faketesting.New()
	c, _, fbs := newTestCache(driver, DefaultConfig())
	fbs.Add(3, FramebufferInfo{Address: 0x3000, Format: FormatABGR8888})

	e := &Entry{Format: FormatABGR8888, Framebuffer: 3}
	key := FramebufferCacheKey(0x3000)
	c.primary.Put(key, e)

	c.NotifyFramebuffer(3, FramebufferInfo{Address: 0x3000}, FramebufferDestroyed)

	if e.Framebuffer != ZeroFramebufferRef {
		t.Fatalf("expected detach to clear the framebuffer reference")
	}
}
