package vulkan

import (
	"errors"
	"math"
	"testing"

	vk "github.com/goki/vulkan"
)

func TestChooseSurfaceFormat(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}
	format, err := chooseSurfaceFormat(formats)
	if err != nil {
		t.Fatalf("chooseSurfaceFormat failed: %v", err)
	}
	if format.Format != vk.FormatB8g8r8a8Srgb {
		t.Errorf("chose format %d", format.Format)
	}

	_, err = chooseSurfaceFormat([]vk.SurfaceFormat{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	})
	if !errors.Is(err, ErrNoUsableSurfaceFormat) {
		t.Errorf("got %v, want ErrNoUsableSurfaceFormat", err)
	}
}

func TestChoosePresentMode(t *testing.T) {
	mode, err := choosePresentMode([]vk.PresentMode{vk.PresentModeMailbox, vk.PresentModeFifo})
	if err != nil {
		t.Fatalf("choosePresentMode failed: %v", err)
	}
	if mode != vk.PresentModeFifo {
		t.Errorf("chose mode %d, want FIFO", mode)
	}

	_, err = choosePresentMode([]vk.PresentMode{vk.PresentModeMailbox, vk.PresentModeImmediate})
	if !errors.Is(err, ErrNoUsablePresentMode) {
		t.Errorf("got %v, want ErrNoUsablePresentMode", err)
	}
}

func TestChooseImageCount(t *testing.T) {
	caps := vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 8}
	if count := chooseImageCount(caps); count != 3 {
		t.Errorf("got %d, want min+1", count)
	}

	// Capped by the surface maximum.
	caps = vk.SurfaceCapabilities{MinImageCount: 3, MaxImageCount: 3}
	if count := chooseImageCount(caps); count != 3 {
		t.Errorf("got %d, want 3", count)
	}

	// MaxImageCount zero means unbounded.
	caps = vk.SurfaceCapabilities{MinImageCount: 4, MaxImageCount: 0}
	if count := chooseImageCount(caps); count != 5 {
		t.Errorf("got %d, want 5", count)
	}
}

func TestChooseExtent(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: 640, Height: 480},
		MinImageExtent: vk.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
	}
	extent := chooseExtent(caps, vk.Extent2D{Width: 800, Height: 600})
	if extent.Width != 640 || extent.Height != 480 {
		t.Errorf("surface-defined extent ignored: %+v", extent)
	}

	// Surface leaves the size to the swapchain; the fallback is clamped.
	caps.CurrentExtent = vk.Extent2D{Width: math.MaxUint32, Height: math.MaxUint32}
	caps.MaxImageExtent = vk.Extent2D{Width: 1024, Height: 768}
	extent = chooseExtent(caps, vk.Extent2D{Width: 1920, Height: 64})
	if extent.Width != 1024 || extent.Height != 64 {
		t.Errorf("fallback extent not clamped: %+v", extent)
	}
}

func TestSwapchainUsable(t *testing.T) {
	if !swapchainUsable(usableSurfaceInfo()) {
		t.Error("usable surface reported unusable")
	}
	if swapchainUsable(&SurfaceInfo{PresentModes: []vk.PresentMode{vk.PresentModeFifo}}) {
		t.Error("surface without formats reported usable")
	}
	if swapchainUsable(&SurfaceInfo{Formats: usableSurfaceInfo().Formats}) {
		t.Error("surface without present modes reported usable")
	}
}
