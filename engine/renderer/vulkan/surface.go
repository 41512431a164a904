package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// SurfaceInfo is a snapshot of what a physical device can do with a
// surface: its capabilities, the pixel formats it can present and the
// present modes it supports.
type SurfaceInfo struct {
	Capabilities vk.SurfaceCapabilities
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

// SurfaceQuerier is the part of a surface that device selection needs.
// Selection code takes this interface so tests can rate devices against
// a canned surface.
type SurfaceQuerier interface {
	SupportsFamily(device vk.PhysicalDevice, family uint32) bool
	Info(device vk.PhysicalDevice) (*SurfaceInfo, error)
}

// Surface wraps the presentable surface the platform layer created from
// the window. The window itself stays with the platform layer.
type Surface struct {
	Handle vk.Surface

	ctx *Context
}

func NewSurface(ctx *Context, handle vk.Surface) *Surface {
	return &Surface{Handle: handle, ctx: ctx}
}

// SupportsFamily reports whether the given queue family of the device
// can present to this surface.
func (s *Surface) SupportsFamily(device vk.PhysicalDevice, family uint32) bool {
	var supported vk.Bool32
	if res := vk.GetPhysicalDeviceSurfaceSupport(device, family, s.Handle, &supported); res != vk.Success {
		return false
	}
	return supported == vk.True
}

// Info queries the device's capabilities, formats and present modes for
// this surface.
func (s *Surface) Info(device vk.PhysicalDevice) (*SurfaceInfo, error) {
	info := &SurfaceInfo{}

	if res := vk.GetPhysicalDeviceSurfaceCapabilities(device, s.Handle, &info.Capabilities); res != vk.Success {
		return nil, fmt.Errorf("failed to query surface capabilities: %s", ResultString(res))
	}
	info.Capabilities.Deref()

	var formatCount uint32
	if res := vk.GetPhysicalDeviceSurfaceFormats(device, s.Handle, &formatCount, nil); res != vk.Success {
		return nil, fmt.Errorf("failed to query surface formats: %s", ResultString(res))
	}
	if formatCount > 0 {
		info.Formats = make([]vk.SurfaceFormat, formatCount)
		if res := vk.GetPhysicalDeviceSurfaceFormats(device, s.Handle, &formatCount, info.Formats); res != vk.Success {
			return nil, fmt.Errorf("failed to query surface formats: %s", ResultString(res))
		}
		for i := range info.Formats {
			info.Formats[i].Deref()
		}
	}

	var modeCount uint32
	if res := vk.GetPhysicalDeviceSurfacePresentModes(device, s.Handle, &modeCount, nil); res != vk.Success {
		return nil, fmt.Errorf("failed to query surface present modes: %s", ResultString(res))
	}
	if modeCount > 0 {
		info.PresentModes = make([]vk.PresentMode, modeCount)
		if res := vk.GetPhysicalDeviceSurfacePresentModes(device, s.Handle, &modeCount, info.PresentModes); res != vk.Success {
			return nil, fmt.Errorf("failed to query surface present modes: %s", ResultString(res))
		}
	}

	return info, nil
}

func (s *Surface) Destroy() {
	if s.Handle != vk.NullSurface {
		vk.DestroySurface(s.ctx.Instance, s.Handle, s.ctx.Allocator)
		s.Handle = vk.NullSurface
	}
}
