// decimate.go - age-based eviction across primary and secondary caches (§4.8)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// decimate walks both caches every DecimationInterval frames and deletes
// entries whose last_frame + kill_age is behind the current frame. In
// low-memory mode the secondary cache is cleared unconditionally and
// kill_age drops to TextureKillAgeLowMem.
func (c *Cache) decimate() {
	killAge := uint64(TextureKillAge)
	if c.cfg.LowMemory {
		killAge = TextureKillAgeLowMem
	}

	var unbound bool
	c.primary.ForEach(func(key CacheKey, e *Entry) bool {
		if e.LastFrame+killAge < c.frame {
			c.releaseEntry(e)
			c.primary.Delete(key)
			unbound = unbound || c.boundEntry == e
		}
		return true
	})

	c.secondary.ForEach(func(key SecondaryKey, e *Entry) bool {
		if c.cfg.LowMemory || e.LastFrame+TextureSecondKillAge < c.frame {
			c.releaseEntry(e)
			c.secondary.Delete(key)
			unbound = unbound || c.boundEntry == e
		}
		return true
	})

	if unbound {
		c.boundEntry = nil
		c.driver.BindTexture2D(NullTextureHandle)
	}
}

// releaseEntry destroys the entry's host handle exactly once (§3 invariant
// 5, §8 "destroyed exactly once"). This includes framebuffer-alias entries
// that were decoded before they were attached; an entry with no handle is
// left as it is.
func (c *Cache) releaseEntry(e *Entry) {
	if e.Texture != NullTextureHandle {
		c.driver.DeleteTexture(e.Texture)
		e.Texture = NullTextureHandle
	}
}
