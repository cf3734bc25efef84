// cache.go - the state machine: lookup, decode, rehash, decimate (§4.6)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// ScaleFunc matches the out-of-scope scaler collaborator's pure-function
// contract (§1, §4.11): decoded bytes in, upscaled bytes out. Injected
// rather than imported directly so this package never depends on texscale
// (which in turn imports this package to register itself as a feature).
type ScaleFunc func(buf []byte, bypp, w, h, factor int) []byte

// Cache is the texture cache core: primary + secondary hash tables, the
// trust state machine, and the decode/upload pipeline. Grounded on
// video_voodoo.go's VoodooEngine: one owning struct, explicit state fields,
// no embedded sub-objects. Not safe for concurrent use (§5) - exactly one
// caller goroutine drives a Cache, the same contract VoodooEngine documents
// for its own register file (whose mutex has no counterpart here because
// there is, by construction, only ever one caller).
type Cache struct {
	cfg          Config
	mem          Memory
	driver       HostDriver
	framebuffers FramebufferRegistry
	stats        *Stats
	pal          *Palette
	scratch      *scratchBuffers
	diag         *diagnostics

	primary   *primaryStore
	secondary *secondaryStore

	frame        uint64
	boundEntry   *Entry
	pendingClear bool

	scaler ScaleFunc
}

// NewCache constructs a Cache bound to one HostDriver, matching the
// teacher's NewVideoOutput(backend) factory shape (§4.10).
func NewCache(cfg Config, mem Memory, driver HostDriver, framebuffers FramebufferRegistry, stats *Stats) *Cache {
	return &Cache{
		cfg:          cfg,
		mem:          mem,
		driver:       driver,
		framebuffers: framebuffers,
		stats:        stats,
		pal:          NewPalette(),
		scratch:      newScratchBuffers(),
		diag:         newDiagnostics(),
		primary:      newPrimaryStore(),
		secondary:    newSecondaryStore(),
	}
}

// SetScaler installs the scaler collaborator (§4.11); nil disables scaling
// regardless of Config.TexScalingLevel.
func (c *Cache) SetScaler(fn ScaleFunc) { c.scaler = fn }

// StartFrame runs the per-frame ordering contract of §5: a queued full
// clear takes priority over the decimation tick.
func (c *Cache) StartFrame() {
	c.frame = c.stats.advanceFlip()
	if c.pendingClear {
		c.clearNow()
		c.pendingClear = false
		return
	}
	if c.frame%DecimationInterval == 0 {
		c.decimate()
	}
}

// ClearNextFrame defers a full cache clear to the start of the next frame
// (§3.1), so a clear requested mid-frame does not yank a texture out from
// under an in-flight draw.
func (c *Cache) ClearNextFrame() { c.pendingClear = true }

func (c *Cache) clearNow() {
	c.primary.ForEach(func(key CacheKey, e *Entry) bool {
		c.releaseEntry(e)
		c.primary.Delete(key)
		return true
	})
	c.secondary.ForEach(func(key SecondaryKey, e *Entry) bool {
		c.releaseEntry(e)
		c.secondary.Delete(key)
		return true
	})
	c.boundEntry = nil
	c.driver.BindTexture2D(NullTextureHandle)
}

// SetTexture is the authoritative lookup contract of §4.6.
func (c *Cache) SetTexture(g GuestState, isKernelTexture bool) {
	addr := g.TexAddr(0) & AddrMask
	if !c.mem.IsValidAddress(addr) {
		c.diag.warn("invalid texture address %#x", addr)
		c.bindNull()
		return
	}

	format := PixelFormat(g.TexFormat())
	if format < 0 || format >= formatCount {
		c.diag.warnOnce("bad-format", "unknown texture format %d, coercing to RGB565", g.TexFormat())
		format = FormatRGB565
	}

	if format.IsPaletted() {
		c.refreshPaletteIfNeeded(g)
	}

	var clutComponent uint32
	if format.IsPaletted() {
		clutComponent = c.pal.Hash ^ uint32(g.ClutFormat())
	}
	key := CacheKey(uint64(addr)<<32 | uint64(clutComponent))

	src := c.mem.GetPointer(addr)
	miniHash := MiniHash(src)

	dimW, dimH := packedDims(g)
	maxLevel := c.computeMaxLevel(g)

	entry, found := c.primary.Get(key)
	if found {
		if entry.IsFramebufferAlias() {
			c.bindFramebufferAlias(entry)
			entry.LastFrame = c.frame
			return
		}

		if entry.MatchesGeometry(dimW, dimH, format, maxLevel) {
			if hit, fullHash, haveFullHash := c.evaluateHit(g, entry, addr, format, miniHash); hit {
				c.bindAndSample(g, entry)
				return
			} else {
				promoted := c.demoteOnMiss(g, entry, key, dimW, dimH, format, maxLevel, fullHash, haveFullHash)
				if promoted != nil {
					c.bindAndSample(g, promoted)
					return
				}
				entry = c.reuseOrFreshEntry(key, entry)
				entry.FullHash = fullHash
			}
		} else {
			c.releaseEntry(entry)
			c.primary.Delete(key)
			entry = &Entry{Trust: TrustHashing}
		}
	} else {
		entry = &Entry{Trust: TrustHashing}
	}

	c.decodeAndUpload(g, entry, key, addr, format, dimW, dimH, maxLevel, miniHash, isKernelTexture)
}

func (c *Cache) bindNull() {
	c.driver.BindTexture2D(NullTextureHandle)
	c.boundEntry = nil
}

// evaluateHit implements the rehash-scheduling and hash-comparison steps of
// §4.6 for an entry whose geometry already matches. Returns whether the
// lookup is a true hit, plus the full_hash computed along the way (if any)
// so the caller can reuse it instead of hashing twice.
func (c *Cache) evaluateHit(g GuestState, e *Entry, addr uint32, format PixelFormat, miniHash uint32) (hit bool, fullHash uint32, haveFullHash bool) {
	e.NumFrames++

	rehashThisTime := false
	if e.FramesUntilNextFullHash == 0 {
		backoff := e.NumFrames
		if backoff > RehashBackoffCap {
			backoff = RehashBackoffCap
		}
		e.FramesUntilNextFullHash = backoff
		rehashThisTime = true
	} else {
		e.FramesUntilNextFullHash--
	}

	if e.InvalidHint > InvalidHintForceRehash ||
		(e.InvalidHint > InvalidHintSmallTexture && int(e.DimW) <= 9 && int(e.DimH) <= 9) {
		rehashThisTime = true
		e.InvalidHint = 0
	}

	mismatch := false
	if miniHash != e.MiniHash {
		fullHash = c.computeFullHash(g, addr, format)
		haveFullHash = true
		if fullHash != e.FullHash {
			mismatch = true
		}
	}

	if rehashThisTime && e.Trust != TrustReliable {
		if !haveFullHash {
			fullHash = c.computeFullHash(g, addr, format)
			haveFullHash = true
		}
		if fullHash == e.FullHash {
			if e.Trust == TrustUnreliable && e.NumFrames > FramesRegainTrust {
				e.Trust = TrustHashing
			}
		} else {
			mismatch = true
		}
	}

	return !mismatch, fullHash, haveFullHash
}

// demoteOnMiss implements the "on miss due to hash failure" branch of §4.6:
// mark UNRELIABLE, attempt the second-chance swap, and otherwise either
// mark replace_images or release the handle outright.
// demoteOnMiss returns the promoted secondary entry when the second-chance
// check found one (the caller treats that as a hit, skipping decode
// entirely); otherwise it returns nil and leaves behind either a
// replace_images-marked entry still at key or nothing.
func (c *Cache) demoteOnMiss(g GuestState, e *Entry, key CacheKey, dimW, dimH uint8, format PixelFormat, maxLevel int, fullHash uint32, haveFullHash bool) *Entry {
	e.Trust = TrustUnreliable
	e.NumFrames = 0
	e.ReplaceImages = false

	if !haveFullHash {
		fullHash = c.computeFullHash(g, e.Addr, format)
	}

	if e.NumInvalidated >= SecondChanceMinInvalid && e.NumInvalidated <= SecondChanceMaxInvalid && !c.cfg.LowMemory {
		var clutHash uint32
		if format.IsPaletted() {
			clutHash = c.pal.Hash
		}
		secKey := SecondaryKey{FullHash: fullHash, ClutHash: clutHash}
		if promoted, ok := c.secondary.Get(secKey); ok && promoted.MatchesGeometry(dimW, dimH, format, maxLevel) {
			c.secondary.Delete(secKey)
			promoted.NumInvalidated--
			c.releaseEntry(e)
			c.primary.Put(key, promoted)
			return promoted
		}
		demoteKey := SecondaryKey{FullHash: e.FullHash, ClutHash: e.ClutHash}
		if old, ok := c.secondary.Get(demoteKey); ok && old != e {
			c.releaseEntry(old)
		}
		c.secondary.Put(demoteKey, e)
		c.primary.Delete(key)
		return nil
	}

	if e.MatchesGeometry(dimW, dimH, format, maxLevel) && c.cfg.TexScalingLevel <= 1 {
		e.ReplaceImages = true
		return nil
	}
	c.releaseEntry(e)
	c.primary.Delete(key)
	return nil
}

// reuseOrFreshEntry returns the entry still installed at key (the
// demoted-but-replace_images entry), or a fresh HASHING entry if
// demoteOnMiss moved or released it, so decodeAndUpload knows what it's
// working with.
func (c *Cache) reuseOrFreshEntry(key CacheKey, previous *Entry) *Entry {
	if e, ok := c.primary.Get(key); ok {
		return e
	}
	if previous.ReplaceImages {
		return previous
	}
	return &Entry{Trust: TrustHashing}
}

func (c *Cache) bindAndSample(g GuestState, e *Entry) {
	e.LastFrame = c.frame
	if c.boundEntry != e {
		c.driver.BindTexture2D(e.Texture)
		c.boundEntry = e
	}
	c.applySampler(g, e)
}

func (c *Cache) applySampler(g GuestState, e *Entry) {
	min, mag, clampS, clampT := TranslateSampler(g, c.cfg)
	lodBias := e.Sampler.LODBias
	if SamplerChanged(e.Sampler, min, mag, clampS, clampT, lodBias) {
		c.driver.TexParameterMinFilter(e.Texture, min)
		c.driver.TexParameterMagFilter(e.Texture, mag)
		c.driver.TexParameterClamp(e.Texture, clampS, clampT)
		c.driver.TexParameterLODBias(e.Texture, lodBias)
		e.Sampler = SamplerState{MinFilter: min, MagFilter: mag, ClampS: clampS, ClampT: clampT, LODBias: lodBias}
	}
	aniso := ClampAnisotropy(c.cfg.AnisotropyLevel, c.driver.MaxAnisotropy())
	c.driver.TexParameterAnisotropy(e.Texture, aniso)
}

// decodeAndUpload implements §4.6 steps 7-13: populate fields, attempt
// framebuffer attachment, then decode and upload level 0 if no
// attachment took it over.
func (c *Cache) decodeAndUpload(g GuestState, e *Entry, key CacheKey, addr uint32, format PixelFormat, dimW, dimH uint8, maxLevel int, miniHash uint32, isKernelTexture bool) {
	bufW := LevelBufW(g, 0, isKernelTexture)
	if bufW < format.MinBufWidth() {
		bufW = format.MinBufWidth()
	}
	h := g.TexHeight(0)

	e.Addr = addr
	e.MiniHash = miniHash
	e.Format = format
	e.LastFrame = c.frame
	e.MaxLevel = maxLevel
	e.Sampler.LODBias = 0
	e.DimW, e.DimH = dimW, dimH
	e.BufW = bufW
	e.SizeInRAM = uint32(format.BitsPerPixel()*bufW*h) / 2 / 8
	if e.FullHash == 0 {
		e.FullHash = c.computeFullHash(g, addr, format)
	}
	if format.IsPaletted() {
		e.ClutHash = c.pal.Hash
	} else {
		e.ClutHash = 0
	}

	lo := addr
	hi := addr + InvalidationSlackBytes
	c.framebuffers.Range(lo, hi, func(ref FramebufferRef, fb FramebufferInfo) bool {
		c.attachEntry(key, e, ref, fb)
		return true
	})

	if e.IsFramebufferAlias() {
		c.primary.Put(key, e)
		c.bindFramebufferAlias(e)
		return
	}

	if e.Texture == NullTextureHandle && !e.ReplaceImages {
		e.Texture = c.driver.GenTexture()
	}
	c.driver.BindTexture2D(e.Texture)
	c.boundEntry = e

	decoded, hostFmt := c.decodeLevel(g, e, 0, format, bufW, isKernelTexture)
	bypp := hostBypp(hostFmt)
	w := g.TexWidth(0)
	if c.scaler != nil && c.cfg.TexScalingLevel > 1 {
		decoded = c.scaler(decoded, bypp, w, h, c.cfg.TexScalingLevel)
		w, h = w*c.cfg.TexScalingLevel, h*c.cfg.TexScalingLevel
	}
	c.uploadLevel0(e, hostFmt, w, h, decoded)

	if c.cfg.Mipmap && e.MaxLevel > 0 {
		c.driver.GenerateMipmap(e.Texture)
		c.driver.TexParameterMaxLevel(e.Texture, e.MaxLevel)
	} else {
		c.driver.TexParameterMaxLevel(e.Texture, 0)
	}

	if e.NumInvalidated > 0 {
		e.Alpha = AlphaUnknown
	} else {
		e.Alpha = scanAlpha(decoded, bypp)
	}

	c.applySampler(g, e)
	c.primary.Put(key, e)
	c.stats.addDecoded(1)
}

// uploadLevel0 implements §5/§7's single recoverable host error: if the
// driver reports OUT_OF_MEMORY, drop into low-memory mode, force a
// decimation pass, and retry exactly once before giving up silently.
func (c *Cache) uploadLevel0(e *Entry, hostFmt HostFormat, w, h int, decoded []byte) {
	upload := c.driver.TexImage2D
	if e.ReplaceImages {
		upload = c.driver.TexSubImage2D
	}
	upload(e.Texture, 0, hostFmt, w, h, decoded)
	if !c.driver.OutOfMemory() {
		return
	}
	c.diag.warnOnce("host-oom", "host texture upload out of memory, entering low-memory mode")
	c.cfg.LowMemory = true
	c.decimate()
	upload(e.Texture, 0, hostFmt, w, h, decoded)
}

func (c *Cache) decodeLevel(g GuestState, e *Entry, level int, format PixelFormat, bufW int, isKernelTexture bool) ([]byte, HostFormat) {
	addr := g.TexAddr(level) & AddrMask
	src := c.mem.GetPointer(addr)
	w, h := g.TexWidth(level), g.TexHeight(level)
	swizzled, mipmapsShareCLUT := g.TexMode()

	switch {
	case format.IsDXT():
		blocksWide, blocksHigh := (bufW+3)/4, (h+3)/4
		var decoded []byte
		switch format {
		case FormatDXT1:
			decoded = DecodeDXT1(src, blocksWide, blocksHigh)
		case FormatDXT3:
			decoded = DecodeDXT3(src, blocksWide, blocksHigh)
		default:
			decoded = DecodeDXT5(src, blocksWide, blocksHigh)
		}
		rectW := roundUpTo4(w)
		if bufW > rectW {
			decoded = RectifyRows(decoded, bufW*4, bufW, rectW, h, 4, c.scratch)
		}
		return decoded, HostABGR8888
	case format.IsPaletted():
		indexBits := format.BitsPerPixel()
		entrySize := 2
		if ClutFormat(g.ClutFormat()) == ClutABGR8888 {
			entrySize = 4
		}
		return DecodeCLUT(src, indexBits, swizzled, bufW, w, h, level, mipmapsShareCLUT, c.pal, ClutFormat(g.ClutFormat()), entrySize, g, c.scratch)
	default:
		return DecodeDirect(src, format, swizzled, bufW, w, h, c.scratch)
	}
}

func roundUpTo4(n int) int { return (n + 3) &^ 3 }

func hostBypp(f HostFormat) int {
	if f == HostABGR8888 {
		return 4
	}
	return 2
}

// scanAlpha classifies the decoded buffer per §4.6's "alpha scan" closing
// paragraph.
func scanAlpha(buf []byte, bypp int) AlphaState {
	if bypp != 4 {
		return AlphaFull // 16-bit formats without a real alpha channel path are treated as opaque
	}
	allOpaque := true
	allSimple := true
	for i := 3; i < len(buf); i += 4 {
		a := buf[i]
		if a != 255 {
			allOpaque = false
		}
		if a != 0 && a != 255 {
			allSimple = false
			break
		}
	}
	if allOpaque {
		return AlphaFull
	}
	if allSimple {
		return AlphaSimple
	}
	return AlphaUnknown
}

func (c *Cache) computeFullHash(g GuestState, addr uint32, format PixelFormat) uint32 {
	bufW := g.TexBufWidth(0)
	h := g.TexHeight(0)
	size := format.BitsPerPixel() * bufW * h / 8
	src := c.mem.GetPointer(addr)
	if size > len(src) {
		size = len(src)
	}
	return QuickTexHash(src, size)
}

func (c *Cache) refreshPaletteIfNeeded(g GuestState) {
	clutFormat := ClutFormat(g.ClutFormat())
	if !c.pal.NeedsRefresh(clutFormat) {
		return
	}
	c.pal.LoadCLUT(c.mem, g.ClutAddr(), g.ClutLoadBytes())
	entrySize := 2
	if clutFormat == ClutABGR8888 {
		entrySize = 4
	}
	c.pal.UpdateCurrentCLUT(clutFormat, g.ClutLoadBytes(), g.ClutIndexStart(), entrySize, g)
}

func (c *Cache) computeMaxLevel(g GuestState) int {
	level := 0
	for level < 7 {
		addr := g.TexAddr(level+1) & AddrMask
		if addr == 0 || !c.mem.IsValidAddress(addr) {
			break
		}
		level++
	}
	return level
}

func packedDims(g GuestState) (dimW, dimH uint8) {
	return uint8(log2(g.TexWidth(0))), uint8(log2(g.TexHeight(0)))
}

func log2(n int) int {
	r := 0
	for n > 1 {
		n >>= 1
		r++
	}
	return r
}

// Invalidate implements §4.9: demote/bump every primary entry whose
// declared byte range overlaps [addr, addr+size).
func (c *Cache) Invalidate(addr uint32, size int, kind InvalidationType) {
	addr &= AddrMask
	lo := uint64(0)
	if addr > InvalidationSlackBytes {
		lo = uint64(addr-InvalidationSlackBytes) << 32
	}
	hi := uint64(addr+uint32(size)+InvalidationSlackBytes) << 32

	var count uint64
	c.primary.Range(CacheKey(lo), CacheKey(hi), func(key CacheKey, e *Entry) bool {
		entryEnd := e.Addr + e.SizeInRAM
		if entryEnd <= addr || e.Addr >= addr+uint32(size) {
			return true
		}
		if e.Trust == TrustReliable {
			e.Trust = TrustHashing
		}
		if kind == InvalidateAllHint {
			e.InvalidHint++
			return true
		}
		count++
		e.NumInvalidated++
		e.InvalidHint++
		if kind == InvalidateSafe {
			e.NumFrames = 256
		} else {
			e.NumFrames = 0
		}
		e.FramesUntilNextFullHash = 0
		return true
	})
	c.stats.addInvalidation(count)
}

// InvalidateAll demotes every RELIABLE entry and bumps invalid_hint across
// the whole primary cache (§4.9).
func (c *Cache) InvalidateAll() {
	var count uint64
	c.primary.ForEach(func(key CacheKey, e *Entry) bool {
		if e.Trust == TrustReliable {
			e.Trust = TrustHashing
		}
		e.InvalidHint++
		count++
		return true
	})
	c.stats.addInvalidation(count)
}

// InvalidationType mirrors invalidate()'s type parameter (§4.9).
type InvalidationType int

const (
	InvalidateNormal InvalidationType = iota
	InvalidateSafe
	InvalidateAllHint
)
