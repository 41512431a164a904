package vulkan

import (
	"errors"
	"fmt"
	"math"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
	gomath "github.com/spaghettifunk/aurora/engine/math"
)

var ErrNoUsableSurfaceFormat = errors.New("surface offers no usable format")
var ErrNoUsablePresentMode = errors.New("surface offers no usable present mode")

// chooseSurfaceFormat picks 8-bit BGRA with sRGB encoding. Rendering
// assumes this format, so anything else is an error rather than a
// silent fallback.
func chooseSurfaceFormat(formats []vk.SurfaceFormat) (vk.SurfaceFormat, error) {
	for _, format := range formats {
		if format.Format == vk.FormatB8g8r8a8Srgb && format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return format, nil
		}
	}
	return vk.SurfaceFormat{}, ErrNoUsableSurfaceFormat
}

// choosePresentMode picks FIFO. It is the only mode the spec requires
// drivers to offer, but a broken surface can still report none.
func choosePresentMode(modes []vk.PresentMode) (vk.PresentMode, error) {
	for _, mode := range modes {
		if mode == vk.PresentModeFifo {
			return mode, nil
		}
	}
	return 0, ErrNoUsablePresentMode
}

// chooseImageCount asks for one image more than the minimum so the CPU
// is not stalled on the presentation engine, capped by the surface
// maximum when there is one.
func chooseImageCount(caps vk.SurfaceCapabilities) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

// chooseExtent returns the surface's current extent when the surface
// defines one. When the surface leaves the size to the swapchain, the
// fallback extent is clamped into the supported range.
func chooseExtent(caps vk.SurfaceCapabilities, fallback vk.Extent2D) vk.Extent2D {
	if caps.CurrentExtent.Width != math.MaxUint32 {
		return caps.CurrentExtent
	}
	return vk.Extent2D{
		Width:  gomath.Clamp(fallback.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: gomath.Clamp(fallback.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// swapchainUsable reports whether a swapchain could be built from the
// surface as described. Device selection uses this to reject devices
// that could never present.
func swapchainUsable(info *SurfaceInfo) bool {
	if _, err := chooseSurfaceFormat(info.Formats); err != nil {
		return false
	}
	if _, err := choosePresentMode(info.PresentModes); err != nil {
		return false
	}
	return true
}

// Swapchain owns the presentable images and their views.
type Swapchain struct {
	Handle            vk.Swapchain
	Format            vk.SurfaceFormat
	PresentMode       vk.PresentMode
	Extent            vk.Extent2D
	Images            []vk.Image
	Views             []vk.ImageView
	MaxFramesInFlight uint8

	device  *Device
	surface *Surface
}

// NewSwapchain builds a swapchain for the surface. The fallback extent
// is used only when the surface does not dictate a size. When replacing
// a swapchain, pass the old one so the driver can reuse its resources;
// the old chain still has to be destroyed by its owner afterwards.
func NewSwapchain(device *Device, surface *Surface, fallbackExtent vk.Extent2D, old *Swapchain) (*Swapchain, error) {
	if device == nil || device.Handle == nil {
		return nil, errors.New("a logical device is required before creating a swapchain")
	}

	info, err := surface.Info(device.Physical.Device)
	if err != nil {
		return nil, err
	}

	format, err := chooseSurfaceFormat(info.Formats)
	if err != nil {
		return nil, err
	}
	presentMode, err := choosePresentMode(info.PresentModes)
	if err != nil {
		return nil, err
	}
	extent := chooseExtent(info.Capabilities, fallbackExtent)
	imageCount := chooseImageCount(info.Capabilities)

	sc := &Swapchain{
		Format:            format,
		PresentMode:       presentMode,
		Extent:            extent,
		MaxFramesInFlight: MaxFramesInFlight,
		device:            device,
		surface:           surface,
	}

	createInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface.Handle,
		MinImageCount:    imageCount,
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:     info.Capabilities.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      presentMode,
		Clipped:          vk.True,
	}
	if old != nil {
		createInfo.OldSwapchain = old.Handle
	}

	graphicsFamily := device.Queues.Graphics.Family
	presentFamily := device.Queues.Present.Family
	if graphicsFamily != presentFamily {
		createInfo.ImageSharingMode = vk.SharingModeConcurrent
		createInfo.QueueFamilyIndexCount = 2
		createInfo.PQueueFamilyIndices = []uint32{graphicsFamily, presentFamily}
	} else {
		createInfo.ImageSharingMode = vk.SharingModeExclusive
	}

	var handle vk.Swapchain
	if res := vk.CreateSwapchain(device.Handle, &createInfo, device.ctx.Allocator, &handle); res != vk.Success {
		return nil, fmt.Errorf("failed to create swapchain: %s: %s", ResultString(res), ResultDoc(res))
	}
	sc.Handle = handle

	var actualCount uint32
	if res := vk.GetSwapchainImages(device.Handle, sc.Handle, &actualCount, nil); res != vk.Success {
		sc.Destroy()
		return nil, fmt.Errorf("failed to get swapchain images: %s", ResultString(res))
	}
	sc.Images = make([]vk.Image, actualCount)
	if res := vk.GetSwapchainImages(device.Handle, sc.Handle, &actualCount, sc.Images); res != vk.Success {
		sc.Destroy()
		return nil, fmt.Errorf("failed to get swapchain images: %s", ResultString(res))
	}

	sc.Views = make([]vk.ImageView, actualCount)
	for i := range sc.Images {
		viewInfo := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    sc.Images[i],
			ViewType: vk.ImageViewType2d,
			Format:   format.Format,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}
		if res := vk.CreateImageView(device.Handle, &viewInfo, device.ctx.Allocator, &sc.Views[i]); res != vk.Success {
			sc.Destroy()
			return nil, fmt.Errorf("failed to create swapchain image view: %s", ResultString(res))
		}
	}

	core.LogInfo("Swapchain created with %d images at %dx%d", actualCount, extent.Width, extent.Height)
	return sc, nil
}

// Recreate builds a replacement swapchain linked to this one and then
// destroys this one. The device is idled first so no in-flight frame
// still references the old images.
func (sc *Swapchain) Recreate(fallbackExtent vk.Extent2D) (*Swapchain, error) {
	sc.device.WaitIdle()
	replacement, err := NewSwapchain(sc.device, sc.surface, fallbackExtent, sc)
	if err != nil {
		return nil, err
	}
	sc.Destroy()
	return replacement, nil
}

// AcquireNextImage hands out the index of the next presentable image.
// An out-of-date or suboptimal surface surfaces as ErrSwapchainBooting
// so the frame loop can recreate and retry.
func (sc *Swapchain) AcquireNextImage(timeoutNs uint64, imageAvailable *Semaphore, fence *Fence) (uint32, error) {
	var imageIndex uint32
	semaphore := vk.NullSemaphore
	if imageAvailable != nil {
		semaphore = imageAvailable.Handle
	}
	fenceHandle := vk.NullFence
	if fence != nil {
		fenceHandle = fence.Handle()
	}
	res := vk.AcquireNextImage(sc.device.Handle, sc.Handle, timeoutNs, semaphore, fenceHandle, &imageIndex)
	switch {
	case res == vk.ErrorOutOfDate || res == vk.Suboptimal:
		return 0, core.ErrSwapchainBooting
	case res != vk.Success:
		fatalResult("vkAcquireNextImageKHR", res)
	}
	return imageIndex, nil
}

// Destroy releases the views and the swapchain. Images belong to the
// swapchain and go with it.
func (sc *Swapchain) Destroy() {
	for _, view := range sc.Views {
		vk.DestroyImageView(sc.device.Handle, view, sc.device.ctx.Allocator)
	}
	sc.Views = nil
	if sc.Handle != vk.NullSwapchain {
		vk.DestroySwapchain(sc.device.Handle, sc.Handle, sc.device.ctx.Allocator)
		sc.Handle = vk.NullSwapchain
	}
}
