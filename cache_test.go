// cache_test.go - SetTexture lookup/decode/rehash scenarios (§8)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

import (
	"testing"

	"github.com/otley-labs/psptexcache/gputexhost/faketesting"
)

func newTestCache(driver *faketesting.Driver, cfg Config) (*Cache, *fakeMemory, *fakeFramebufferRegistry) {
	mem := &fakeMemory{buf: make([]byte, 1<<20)}
	fbs := newFakeFramebufferRegistry()
	c := NewCache(cfg, mem, driver, fbs, NewStats())
	return c, mem, fbs
}

func fillSolidABGR8888(buf []byte, off, w, h int, color uint32) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := off + (y*w+x)*4
			writeU32LE(buf[i:], color)
		}
	}
}

// scenario 1: stable texture, 60 frames unchanged, exactly one decode.
func TestScenarioStableTextureDecodesOnce(t *testing.T) {
	driver := faketesting.New()
	c, mem, _ := newTestCache(driver, DefaultConfig())
	fillSolidABGR8888(mem.buf, 0, 64, 64, 0xFFAA5500)

	g := &fakeGuestState{
		Addrs:  [8]uint32{0},
		Width:  64, Height: 64, BufWidth: 64,
		Format: int(FormatABGR8888),
	}

	for i := 0; i < 60; i++ {
		c.StartFrame()
		c.SetTexture(g, false)
	}

	if got := c.stats.Snapshot().NumTexturesDecoded; got != 1 {
		t.Fatalf("decoded %d times, want exactly 1", got)
	}
	if n := driver.CountCalls("TexImage2D"); n != 1 {
		t.Fatalf("TexImage2D called %d times, want 1", n)
	}
}

// round-trip property: two identical-state calls in a row issue at most
// one BindTexture2D across the pair (the second is a no-op thanks to
// the cache's boundEntry field).
func TestIdenticalCallsBindAtMostOnce(t *testing.T) {
	driver := faketesting.New()
	c, mem, _ := newTestCache(driver, DefaultConfig())
	fillSolidABGR8888(mem.buf, 0, 16, 16, 0x11223344)

	g := &fakeGuestState{Addrs: [8]uint32{0}, Width: 16, Height: 16, BufWidth: 16, Format: int(FormatABGR8888)}

	c.StartFrame()
	c.SetTexture(g, false)
	before := driver.CountCalls("BindTexture2D")
	c.SetTexture(g, false)
	after := driver.CountCalls("BindTexture2D")
	if after != before {
		t.Fatalf("second identical SetTexture issued an extra bind: %d -> %d", before, after)
	}
}

// scenario 4: render-to-texture attaches instead of decoding.
func TestScenarioRenderToTextureAttaches(t *testing.T) {
	driver := faketesting.New()
	c, mem, fbs := newTestCache(driver, DefaultConfig())

	const fbAddr = uint32(0x04100000)
	// The framebuffer address must be valid guest memory for SetTexture to
	// look it up at all.
	mem.buf = make([]byte, int(fbAddr)+64*64*4)
	fbs.Add(1, FramebufferInfo{Address: fbAddr, Stride: 64, Width: 64, Height: 64, Format: FormatABGR8888, FBO: 77})

	g := &fakeGuestState{Addrs: [8]uint32{fbAddr}, Width: 64, Height: 64, BufWidth: 64, Format: int(FormatABGR8888)}

	c.StartFrame()
	c.SetTexture(g, false)

	if driver.CountCalls("TexImage2D") != 0 {
		t.Fatalf("expected no decode/upload for a framebuffer alias")
	}
	if driver.CountCalls("BindColorAsTexture") == 0 {
		t.Fatalf("expected bind_color_as_texture to be called")
	}
}

// scenario 2: self-modifying texture stays re-decoded under explicit
// invalidation.
func TestScenarioSelfModifyingRedecodesAfterInvalidate(t *testing.T) {
	driver := faketesting.New()
	c, mem, _ := newTestCache(driver, DefaultConfig())
	fillSolidABGR8888(mem.buf, 0, 8, 8, 0x01020304)

	g := &fakeGuestState{Addrs: [8]uint32{0}, Width: 8, Height: 8, BufWidth: 8, Format: int(FormatABGR8888)}

	for frame := 0; frame < 8; frame++ {
		c.StartFrame()
		if frame%2 == 1 {
			mem.buf[0] ^= 0xFF
			mem.buf[4] ^= 0xFF
			c.Invalidate(0, 8*8*4, InvalidateNormal)
		}
		c.SetTexture(g, false)
	}

	decoded := c.stats.Snapshot().NumTexturesDecoded
	if decoded < 2 {
		t.Fatalf("expected multiple decodes across self-modification, got %d", decoded)
	}
}

// scenario 6: decimation releases every entry once both caches age out.
func TestScenarioDecimationReleasesAllHandles(t *testing.T) {
	driver := faketesting.New()
	c, mem, _ := newTestCache(driver, DefaultConfig())
	fillSolidABGR8888(mem.buf, 0, 8, 8, 0xAABBCCDD)

	const n = 20
	for i := 0; i < n; i++ {
		g := &fakeGuestState{
			Addrs:  [8]uint32{uint32(i * 1024)},
			Width:  8, Height: 8, BufWidth: 8,
			Format: int(FormatABGR8888),
		}
		c.StartFrame()
		c.SetTexture(g, false)
	}
	if c.primary.Len() != n {
		t.Fatalf("primary cache has %d entries, want %d", c.primary.Len(), n)
	}

	for i := 0; i < TextureKillAge+DecimationInterval+1; i++ {
		c.StartFrame()
	}

	if c.primary.Len() != 0 {
		t.Fatalf("primary cache not empty after decimation: %d entries remain", c.primary.Len())
	}
	gens := driver.CountCalls("GenTexture")
	dels := driver.CountCalls("DeleteTexture")
	if gens != n || dels != n {
		t.Fatalf("GenTexture=%d DeleteTexture=%d, want both %d", gens, dels, n)
	}
}

func TestInvalidateOutsideRangeLeavesEntryAlone(t *testing.T) {
	driver := faketesting.New()
	c, mem, _ := newTestCache(driver, DefaultConfig())
	fillSolidABGR8888(mem.buf, 0, 8, 8, 0x01020304)
	g := &fakeGuestState{Addrs: [8]uint32{0}, Width: 8, Height: 8, BufWidth: 8, Format: int(FormatABGR8888)}

	c.StartFrame()
	c.SetTexture(g, false)

	key := MakeCacheKey(0, FormatABGR8888, 0, 0)
	e, ok := c.primary.Get(key)
	if !ok {
		t.Fatalf("expected entry to be present")
	}
	e.Trust = TrustReliable
	before := e.InvalidHint

	c.Invalidate(e.Addr+e.SizeInRAM+1, 4, InvalidateNormal)

	if e.Trust != TrustReliable {
		t.Fatalf("out-of-range invalidate demoted trust")
	}
	if e.InvalidHint != before {
		t.Fatalf("out-of-range invalidate modified invalid_hint")
	}
}
