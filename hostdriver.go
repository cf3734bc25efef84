// hostdriver.go - the abstract upload/bind/sampler-set seam (§4.10, §6)
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// HostDriver is every externally-visible effect Cache can have on a real
// GPU backend. Grounded on video_interface.go's VideoOutput/TextureCapable
// pairing and video_voodoo.go's VoodooBackend: a small interface, multiple
// concrete implementations selected once at construction.
type HostDriver interface {
	GenTexture() TextureHandle
	DeleteTexture(h TextureHandle)
	BindTexture2D(h TextureHandle)
	TexImage2D(h TextureHandle, level int, format HostFormat, w, h2 int, data []byte)
	TexSubImage2D(h TextureHandle, level int, format HostFormat, w, h2 int, data []byte)
	GenerateMipmap(h TextureHandle)
	TexParameterMinFilter(h TextureHandle, f MinFilter)
	TexParameterMagFilter(h TextureHandle, f MagFilter)
	TexParameterClamp(h TextureHandle, clampS, clampT bool)
	TexParameterLODBias(h TextureHandle, bias float32)
	TexParameterMaxLevel(h TextureHandle, level int)
	TexParameterAnisotropy(h TextureHandle, level int)
	BindColorAsTexture(fbo TextureHandle, unit int)
	MaxAnisotropy() int

	// OutOfMemory reports whether the most recent upload call failed with a
	// host allocation error (§5, §7's single recoverable host error).
	OutOfMemory() bool
}
