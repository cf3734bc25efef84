// vulkan_driver.go - HostDriver with a thin real Vulkan layer over ebitendriver
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

// Package vulkandriver declares a HostDriver that talks to a real Vulkan
// device for image/sampler object creation, while still rasterizing through
// an embedded ebitendriver.Driver for everything else. Mirrors how the
// imported Vulkan video backend in the pack stays a thin, minimally
// exercised stub next to a fully worked OpenGL/software path: most calls
// pass straight through, and only object creation touches the real API.
package vulkandriver

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/otley-labs/psptexcache"
	"github.com/otley-labs/psptexcache/gputexhost/ebitendriver"
)

// Driver embeds an ebitendriver.Driver for rasterization and tracks a
// parallel table of vk.Image/vk.Sampler handles for the subset of calls
// that can meaningfully go through the real device.
type Driver struct {
	*ebitendriver.Driver

	device   vk.Device
	images   map[texcache.TextureHandle]vk.Image
	samplers map[texcache.TextureHandle]vk.Sampler
	ready    bool
}

func init() {
	texcache.RegisterFeature("host-driver:vulkan")
}

// New wraps an already-initialized Vulkan logical device. Pass a zero
// vk.Device to fall back entirely to the embedded software path (useful
// for headless environments where vkCreateDevice is not available).
func New(device vk.Device) *Driver {
	return &Driver{
		Driver:   ebitendriver.New(),
		device:   device,
		images:   make(map[texcache.TextureHandle]vk.Image),
		samplers: make(map[texcache.TextureHandle]vk.Sampler),
		ready:    device != nil,
	}
}

func (d *Driver) GenTexture() texcache.TextureHandle {
	h := d.Driver.GenTexture()
	if !d.ready {
		return h
	}
	info := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Format:    vk.FormatR8g8b8a8Unorm,
		Extent:    vk.Extent3D{Width: 1, Height: 1, Depth: 1},
		MipLevels: 1,
		ArrayLayers: 1,
		Samples:   vk.SampleCount1Bit,
		Tiling:    vk.ImageTilingOptimal,
		Usage:     vk.ImageUsageFlags(vk.ImageUsageSampledBit | vk.ImageUsageTransferDstBit),
	}
	var img vk.Image
	if ret := vk.CreateImage(d.device, &info, nil, &img); ret == vk.Success {
		d.images[h] = img
	}
	return h
}

func (d *Driver) DeleteTexture(h texcache.TextureHandle) {
	if d.ready {
		if img, ok := d.images[h]; ok {
			vk.DestroyImage(d.device, img, nil)
			delete(d.images, h)
		}
		if s, ok := d.samplers[h]; ok {
			vk.DestroySampler(d.device, s, nil)
			delete(d.samplers, h)
		}
	}
	d.Driver.DeleteTexture(h)
}

func (d *Driver) TexParameterMinFilter(h texcache.TextureHandle, f texcache.MinFilter) {
	d.ensureSampler(h)
	d.Driver.TexParameterMinFilter(h, f)
}

func (d *Driver) TexParameterAnisotropy(h texcache.TextureHandle, level int) {
	d.ensureSampler(h)
	d.Driver.TexParameterAnisotropy(h, level)
}

// ensureSampler lazily creates a vk.Sampler object the first time any
// sampler-state call touches a handle, with fixed settings. The
// filter/wrap/aniso values of later calls are not programmed into it, and
// the embedded ebitendriver.Driver ignores them too, matching the pack's
// pattern of declaring the Vulkan surface without fully wiring every knob.
func (d *Driver) ensureSampler(h texcache.TextureHandle) {
	if !d.ready {
		return
	}
	if _, ok := d.samplers[h]; ok {
		return
	}
	info := vk.SamplerCreateInfo{
		SType:     vk.StructureTypeSamplerCreateInfo,
		MagFilter: vk.FilterLinear,
		MinFilter: vk.FilterLinear,
	}
	var s vk.Sampler
	if ret := vk.CreateSampler(d.device, &info, nil, &s); ret == vk.Success {
		d.samplers[h] = s
	}
}

func (d *Driver) String() string {
	return fmt.Sprintf("vulkandriver.Driver{ready=%v, images=%d, samplers=%d}", d.ready, len(d.images), len(d.samplers))
}

var _ texcache.HostDriver = (*Driver)(nil)
