// fake_driver.go - call-recording HostDriver fake for tests
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

// Package faketesting provides a hand-written HostDriver double, matching
// the teacher's habit (video_voodoo_test.go's manual bus stub) of writing
// test doubles by hand rather than reaching for gomock/testify/mock.
package faketesting

import "github.com/otley-labs/psptexcache"

// Call records one driver invocation for assertion in tests.
type Call struct {
	Method string
	Handle texcache.TextureHandle
	Level  int
	Format texcache.HostFormat
	W, H   int
}

// Driver is a texcache.HostDriver that records every call instead of
// touching a real GPU. nextHandle hands out monotonically increasing
// fake handles so DeleteTexture/BindTexture2D calls are distinguishable.
type Driver struct {
	Calls []Call

	nextHandle  uint64
	bound       texcache.TextureHandle
	maxAniso    int
	outOfMemory bool

	// FailNextUpload, when set, makes the next TexImage2D/TexSubImage2D
	// report OutOfMemory once, then clears itself.
	FailNextUpload bool
}

func New() *Driver {
	return &Driver{maxAniso: 16}
}

func (d *Driver) GenTexture() texcache.TextureHandle {
	d.nextHandle++
	h := texcache.TextureHandle(d.nextHandle)
	d.Calls = append(d.Calls, Call{Method: "GenTexture", Handle: h})
	return h
}

func (d *Driver) DeleteTexture(h texcache.TextureHandle) {
	d.Calls = append(d.Calls, Call{Method: "DeleteTexture", Handle: h})
}

func (d *Driver) BindTexture2D(h texcache.TextureHandle) {
	d.bound = h
	d.Calls = append(d.Calls, Call{Method: "BindTexture2D", Handle: h})
}

func (d *Driver) TexImage2D(h texcache.TextureHandle, level int, format texcache.HostFormat, w, h2 int, data []byte) {
	d.Calls = append(d.Calls, Call{Method: "TexImage2D", Handle: h, Level: level, Format: format, W: w, H: h2})
	d.consumeFailure()
}

func (d *Driver) TexSubImage2D(h texcache.TextureHandle, level int, format texcache.HostFormat, w, h2 int, data []byte) {
	d.Calls = append(d.Calls, Call{Method: "TexSubImage2D", Handle: h, Level: level, Format: format, W: w, H: h2})
	d.consumeFailure()
}

func (d *Driver) consumeFailure() {
	if d.FailNextUpload {
		d.outOfMemory = true
		d.FailNextUpload = false
	} else {
		d.outOfMemory = false
	}
}

func (d *Driver) GenerateMipmap(h texcache.TextureHandle) {
	d.Calls = append(d.Calls, Call{Method: "GenerateMipmap", Handle: h})
}

func (d *Driver) TexParameterMinFilter(h texcache.TextureHandle, f texcache.MinFilter) {
	d.Calls = append(d.Calls, Call{Method: "TexParameterMinFilter", Handle: h})
}

func (d *Driver) TexParameterMagFilter(h texcache.TextureHandle, f texcache.MagFilter) {
	d.Calls = append(d.Calls, Call{Method: "TexParameterMagFilter", Handle: h})
}

func (d *Driver) TexParameterClamp(h texcache.TextureHandle, clampS, clampT bool) {
	d.Calls = append(d.Calls, Call{Method: "TexParameterClamp", Handle: h})
}

func (d *Driver) TexParameterLODBias(h texcache.TextureHandle, bias float32) {
	d.Calls = append(d.Calls, Call{Method: "TexParameterLODBias", Handle: h})
}

func (d *Driver) TexParameterMaxLevel(h texcache.TextureHandle, level int) {
	d.Calls = append(d.Calls, Call{Method: "TexParameterMaxLevel", Handle: h, Level: level})
}

func (d *Driver) TexParameterAnisotropy(h texcache.TextureHandle, level int) {
	d.Calls = append(d.Calls, Call{Method: "TexParameterAnisotropy", Handle: h, Level: level})
}

func (d *Driver) BindColorAsTexture(fbo texcache.TextureHandle, unit int) {
	d.bound = fbo
	d.Calls = append(d.Calls, Call{Method: "BindColorAsTexture", Handle: fbo})
}

func (d *Driver) MaxAnisotropy() int { return d.maxAniso }

func (d *Driver) OutOfMemory() bool { return d.outOfMemory }

// CountCalls returns how many recorded calls match method.
func (d *Driver) CountCalls(method string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Bound returns the handle most recently passed to BindTexture2D or
// BindColorAsTexture.
func (d *Driver) Bound() texcache.TextureHandle { return d.bound }
