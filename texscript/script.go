// script.go - Lua-driven scenario runner for exercising a texcache.Cache
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

// Package texscript lets a test scenario drive a *texcache.Cache from a
// small Lua script instead of a hand-written Go test, using
// github.com/yuin/gopher-lua (listed by the teacher's own go.mod but never
// wired there). The binding surface is deliberately narrow: it exposes the
// coherence entry points a content pipeline or reproduction script needs
// (invalidate, framebuffer notifications, frame advance) rather than the
// full SetTexture path, which needs a live GuestState the guest runtime
// supplies.
package texscript

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/otley-labs/psptexcache"
)

func init() {
	texcache.RegisterFeature("texscript:lua")
}

// Runner owns a *lua.LState bound to one cache for the duration of a
// scenario script.
type Runner struct {
	L     *lua.LState
	cache *texcache.Cache
	fbs   *fbTable
}

// fbTable lets a script refer to framebuffers it creates by a small integer
// id instead of juggling texcache.FramebufferRef/FramebufferInfo pairs.
type fbTable struct {
	next    int
	infos   map[int]texcache.FramebufferInfo
}

// New builds a Runner wired to cache. The caller owns cache's lifetime;
// Close releases only the Lua state.
func New(cache *texcache.Cache) *Runner {
	r := &Runner{
		L:     lua.NewState(),
		cache: cache,
		fbs:   &fbTable{infos: make(map[int]texcache.FramebufferInfo)},
	}
	r.register()
	return r
}

func (r *Runner) Close() { r.L.Close() }

// Run executes a scenario script against the bound cache.
func (r *Runner) Run(script string) error {
	return r.L.DoString(script)
}

func (r *Runner) register() {
	r.L.SetGlobal("invalidate", r.L.NewFunction(r.luaInvalidate))
	r.L.SetGlobal("invalidate_all", r.L.NewFunction(r.luaInvalidateAll))
	r.L.SetGlobal("advance_frame", r.L.NewFunction(r.luaAdvanceFrame))
	r.L.SetGlobal("clear_next_frame", r.L.NewFunction(r.luaClearNextFrame))
	r.L.SetGlobal("create_framebuffer", r.L.NewFunction(r.luaCreateFramebuffer))
	r.L.SetGlobal("destroy_framebuffer", r.L.NewFunction(r.luaDestroyFramebuffer))
}

// invalidate(addr, size [, kind]) - kind is "normal" (default), "safe", or "all_hint"
func (r *Runner) luaInvalidate(L *lua.LState) int {
	addr := uint32(L.CheckInt64(1))
	size := L.CheckInt(2)
	kind := texcache.InvalidateNormal
	if L.GetTop() >= 3 {
		switch L.CheckString(3) {
		case "safe":
			kind = texcache.InvalidateSafe
		case "all_hint":
			kind = texcache.InvalidateAllHint
		}
	}
	r.cache.Invalidate(addr, size, kind)
	return 0
}

func (r *Runner) luaInvalidateAll(L *lua.LState) int {
	r.cache.InvalidateAll()
	return 0
}

// advance_frame([n]) - steps StartFrame n times (default 1)
func (r *Runner) luaAdvanceFrame(L *lua.LState) int {
	n := 1
	if L.GetTop() >= 1 {
		n = L.CheckInt(1)
	}
	for i := 0; i < n; i++ {
		r.cache.StartFrame()
	}
	return 0
}

func (r *Runner) luaClearNextFrame(L *lua.LState) int {
	r.cache.ClearNextFrame()
	return 0
}

// create_framebuffer(addr, width, height, stride, format) -> id
func (r *Runner) luaCreateFramebuffer(L *lua.LState) int {
	info := texcache.FramebufferInfo{
		Address: uint32(L.CheckInt64(1)),
		Width:   L.CheckInt(2),
		Height:  L.CheckInt(3),
		Stride:  L.CheckInt(4),
		Format:  texcache.PixelFormat(L.CheckInt(5)),
	}
	r.fbs.next++
	id := r.fbs.next
	r.fbs.infos[id] = info
	r.cache.NotifyFramebuffer(texcache.FramebufferRef(id), info, texcache.FramebufferCreated)
	L.Push(lua.LNumber(id))
	return 1
}

// destroy_framebuffer(id)
func (r *Runner) luaDestroyFramebuffer(L *lua.LState) int {
	id := L.CheckInt(1)
	info, ok := r.fbs.infos[id]
	if !ok {
		L.RaiseError(fmt.Sprintf("no such framebuffer id %d", id))
		return 0
	}
	delete(r.fbs.infos, id)
	r.cache.NotifyFramebuffer(texcache.FramebufferRef(id), info, texcache.FramebufferDestroyed)
	return 0
}
