// fakes_test.go - hand-written test doubles shared across this package's tests
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

type fakeMemory struct {
	buf []byte
}

func (m *fakeMemory) GetPointer(addr uint32) []byte {
	if int(addr) >= len(m.buf) {
		return nil
	}
	return m.buf[addr:]
}

func (m *fakeMemory) IsValidAddress(addr uint32) bool {
	return int(addr) < len(m.buf)
}

func (m *fakeMemory) MemcpyUnchecked(dst []byte, srcAddr uint32, n int) {
	copy(dst, m.buf[srcAddr:])
}

// fakeGuestState is a settable GuestState double. Addrs[0] is level 0's
// address; Addrs[level] == 0 for any level beyond what's "present" stops
// computeMaxLevel's walk, matching how a real guest leaves higher mip
// registers pointing at address 0 when unused.
type fakeGuestState struct {
	Addrs           [8]uint32
	BufWidth        int
	Width, Height   int
	Format          int
	Filter          int
	LevelMode       uint32
	Swizzled        bool
	MipmapsShareCLUT bool
	Clut            int
	ClutAddrV       uint32
	ClutLoadBytesV  int
	ClutStart       int
	ClutMask        int
	ClutShift       int
	clutIndexSimple bool
	ClampS, ClampT  bool
	ColorTest       bool
}

func (g *fakeGuestState) TexAddr(level int) uint32 {
	if level < 0 || level >= len(g.Addrs) {
		return 0
	}
	return g.Addrs[level]
}
func (g *fakeGuestState) TexBufWidth(int) int  { return g.BufWidth }
func (g *fakeGuestState) TexWidth(int) int     { return g.Width }
func (g *fakeGuestState) TexHeight(int) int    { return g.Height }
func (g *fakeGuestState) TexFormat() int       { return g.Format }
func (g *fakeGuestState) TexFilter() int       { return g.Filter }
func (g *fakeGuestState) TexLevelMode() uint32 { return g.LevelMode }
func (g *fakeGuestState) TexMode() (bool, bool) {
	return g.Swizzled, g.MipmapsShareCLUT
}
func (g *fakeGuestState) ClutFormat() int              { return g.Clut }
func (g *fakeGuestState) ClutAddr() uint32              { return g.ClutAddrV }
func (g *fakeGuestState) ClutLoadBytes() int            { return g.ClutLoadBytesV }
func (g *fakeGuestState) ClutIndexStart() int           { return g.ClutStart }
func (g *fakeGuestState) ClutIndexMask() int            { return g.ClutMask }
func (g *fakeGuestState) ClutIndexShift() int           { return g.ClutShift }
func (g *fakeGuestState) TransformClutIndex(i int) int  { return i }
func (g *fakeGuestState) IsClutIndexSimple() bool       { return g.clutIndexSimple }
func (g *fakeGuestState) IsSwizzled() bool              { return g.Swizzled }
func (g *fakeGuestState) IsClampedS() bool              { return g.ClampS }
func (g *fakeGuestState) IsClampedT() bool              { return g.ClampT }
func (g *fakeGuestState) IsColorTestEnabled() bool      { return g.ColorTest }

// fakeFramebufferRegistry is a settable FramebufferRegistry double backed
// by a plain map; no production code needs more than linear scan here.
type fakeFramebufferRegistry struct {
	entries map[FramebufferRef]FramebufferInfo
}

func newFakeFramebufferRegistry() *fakeFramebufferRegistry {
	return &fakeFramebufferRegistry{entries: make(map[FramebufferRef]FramebufferInfo)}
}

func (r *fakeFramebufferRegistry) Add(ref FramebufferRef, info FramebufferInfo) {
	r.entries[ref] = info
}

func (r *fakeFramebufferRegistry) Remove(ref FramebufferRef) {
	delete(r.entries, ref)
}

func (r *fakeFramebufferRegistry) Lookup(ref FramebufferRef) (FramebufferInfo, bool) {
	info, ok := r.entries[ref]
	return info, ok
}

func (r *fakeFramebufferRegistry) Range(addrLo, addrHi uint32, fn func(ref FramebufferRef, info FramebufferInfo) bool) {
	for ref, info := range r.entries {
		if info.Address >= addrLo && info.Address < addrHi {
			if !fn(ref, info) {
				return
			}
		}
	}
}

func init() {
	var _ Memory = (*fakeMemory)(nil)
	var _ GuestState = (*fakeGuestState)(nil)
	var _ FramebufferRegistry = (*fakeFramebufferRegistry)(nil)
}
