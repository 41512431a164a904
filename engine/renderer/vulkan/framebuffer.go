package vulkan

import (
	"errors"
	"fmt"

	vk "github.com/goki/vulkan"
)

// Framebuffer binds one swapchain image view to a render pass at a
// fixed extent. It holds its render pass and swapchain so neither can
// be destroyed out from under it. Recreated together with the
// swapchain.
type Framebuffer struct {
	Handle vk.Framebuffer
	Extent vk.Extent2D

	device     *Device
	renderPass *RenderPass
	swapchain  *Swapchain
}

func NewFramebuffer(device *Device, renderPass *RenderPass, swapchain *Swapchain, view vk.ImageView) (*Framebuffer, error) {
	if renderPass == nil {
		return nil, errors.New("a render pass is required before creating a framebuffer")
	}
	if swapchain == nil {
		return nil, errors.New("a swapchain is required before creating a framebuffer")
	}
	createInfo := vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      renderPass.Handle,
		AttachmentCount: 1,
		PAttachments:    []vk.ImageView{view},
		Width:           swapchain.Extent.Width,
		Height:          swapchain.Extent.Height,
		Layers:          1,
	}
	var handle vk.Framebuffer
	if res := vk.CreateFramebuffer(device.Handle, &createInfo, device.ctx.Allocator, &handle); res != vk.Success {
		return nil, fmt.Errorf("failed to create framebuffer: %s: %s", ResultString(res), ResultDoc(res))
	}
	return &Framebuffer{
		Handle:     handle,
		Extent:     swapchain.Extent,
		device:     device,
		renderPass: renderPass,
		swapchain:  swapchain,
	}, nil
}

func (fb *Framebuffer) Destroy() {
	if fb.Handle != vk.NullFramebuffer {
		vk.DestroyFramebuffer(fb.device.Handle, fb.Handle, fb.device.ctx.Allocator)
		fb.Handle = vk.NullFramebuffer
	}
}
