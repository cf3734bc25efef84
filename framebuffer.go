// framebuffer.go - render-to-texture aliasing (§4.7)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// FramebufferEvent mirrors notify_framebuffer's event kind (§4.7).
type FramebufferEvent int

const (
	FramebufferCreated FramebufferEvent = iota
	FramebufferUpdated
	FramebufferDestroyed
)

// attachEntry implements the attachment policy of §4.7 for a single
// candidate entry against a newly created/updated framebuffer.
func (c *Cache) attachEntry(key CacheKey, e *Entry, fbRef FramebufferRef, fb FramebufferInfo) {
	exact := key == FramebufferCacheKey(fb.Address)

	if exact {
		if e.Framebuffer == ZeroFramebufferRef {
			if e.Format != fb.Format {
				e.Framebuffer = fbRef
				e.InvalidHint = -1
				c.diag.warnOnce("fb-format-mismatch", "framebuffer at %#x attached with mismatched format; binding null", fb.Address)
				return
			}
			e.Framebuffer = fbRef
			e.InvalidHint = 0
			return
		}
		return
	}

	if c.cfg.RenderingMode == RenderingSoftware {
		return
	}
	compatible := e.Format == fb.Format ||
		(fb.Format == FormatABGR8888 && e.Format == FormatCLUT32) ||
		(fb.Format != FormatABGR8888 && e.Format == FormatCLUT16)
	if !compatible || fb.Stride != e.BufW {
		return
	}
	if e.Height() > fb.Height {
		// The entry is taller than the framebuffer. The attach below still
		// happens: where the entry starts within the framebuffer's rows is
		// not checked, and no y-offset is tracked.
		c.diag.warnOnce("fb-subarea", "subarea render-to-texture attach at %#x; y-offset not tracked", fb.Address)
	}
	if existing, ok := c.framebuffers.Lookup(e.Framebuffer); ok {
		if existing.LastFrameRender > fb.LastFrameRender {
			return // an existing, newer attachment is preserved
		}
	}
	e.Framebuffer = fbRef
	e.InvalidHint = 0
}

// NotifyFramebuffer implements §4.7: on create/update it scans the primary
// cache range the framebuffer could alias for attachment candidates, and on
// destroy it detaches every referencing entry. It does not add the
// framebuffer to the FramebufferRegistry or remove it from there; the cache
// only reads that registry.
func (c *Cache) NotifyFramebuffer(ref FramebufferRef, fb FramebufferInfo, event FramebufferEvent) {
	if event == FramebufferDestroyed {
		c.detachFramebuffer(ref)
		return
	}

	lo := uint64(FramebufferCacheKey(fb.Address))
	hi := lo + uint64(fb.Stride)*32<<32
	c.primary.Range(CacheKey(lo), CacheKey(hi), func(key CacheKey, e *Entry) bool {
		c.attachEntry(key, e, ref, fb)
		return true
	})
}

func (c *Cache) detachFramebuffer(ref FramebufferRef) {
	c.primary.ForEach(func(key CacheKey, e *Entry) bool {
		if e.Framebuffer == ref {
			e.Framebuffer = ZeroFramebufferRef
			e.InvalidHint = 0
		}
		return true
	})
}

// bindFramebufferAlias implements the framebuffer-binding path referenced
// from SetTexture (§4.6 "If it is a framebuffer alias..."). If the
// attachment is known-bad (invalid_hint == -1) it binds null and returns
// false. If the framebuffer is no longer in the registry it detaches the
// entry, binds nothing and returns false.
func (c *Cache) bindFramebufferAlias(e *Entry) bool {
	c.boundEntry = nil
	if e.InvalidHint < 0 {
		c.driver.BindTexture2D(NullTextureHandle)
		return false
	}
	fb, ok := c.framebuffers.Lookup(e.Framebuffer)
	if !ok {
		e.Framebuffer = ZeroFramebufferRef
		return false
	}
	c.driver.BindColorAsTexture(fb.FBO, 0)
	return true
}
