// decimate_test.go - age-based eviction (§4.8)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

import (
	"testing"

	"github.com/otley-labs/psptexcache/gputexhost/faketesting"
)

func TestDecimateLowMemoryClearsSecondaryUnconditionally(t *testing.T) {
	driver := faketesting.New()
	cfg := DefaultConfig()
	cfg.LowMemory = true
	c, _, _ := newTestCache(driver, cfg)

	e := &Entry{Texture: TextureHandle(1), LastFrame: c.frame} // freshly touched, would survive age-based eviction
	c.secondary.Put(SecondaryKey{FullHash: 1, ClutHash: 2}, e)

	c.decimate()

	if c.secondary.Len() != 0 {
		t.Fatalf("low-memory mode must clear the secondary cache unconditionally, got %d entries left", c.secondary.Len())
	}
}

func TestDecimateUnbindsCurrentlyBoundTexture(t *testing.T) {
	driver := faketesting.New()
	c, _, _ := newTestCache(driver, DefaultConfig())

	e := &Entry{Texture: TextureHandle(42), LastFrame: 0}
	c.primary.Put(CacheKey(1), e)
	c.boundEntry = e

	c.frame = TextureKillAge + 1
	c.decimate()

	if c.boundEntry != nil {
		t.Fatalf("expected boundEntry to be cleared after its handle was released")
	}
	if driver.Bound() != NullTextureHandle {
		t.Fatalf("expected a null bind after decimating the bound texture")
	}
}
