package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// RenderPass describes a single subpass rendering into one swapchain
// color attachment, transitioning it to the presentable layout at the
// end.
type RenderPass struct {
	Handle vk.RenderPass

	device *Device
}

func NewRenderPass(device *Device, format vk.Format) (*RenderPass, error) {
	colorAttachment := vk.AttachmentDescription{
		Format:         format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}

	colorAttachmentReference := vk.AttachmentReference{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    []vk.AttachmentReference{colorAttachmentReference},
	}

	// Hold the color output stage until the acquired image is actually
	// available.
	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
	}

	createInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.AttachmentDescription{colorAttachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}

	var handle vk.RenderPass
	if res := vk.CreateRenderPass(device.Handle, &createInfo, device.ctx.Allocator, &handle); res != vk.Success {
		return nil, fmt.Errorf("failed to create render pass: %s: %s", ResultString(res), ResultDoc(res))
	}
	return &RenderPass{Handle: handle, device: device}, nil
}

func (rp *RenderPass) Destroy() {
	if rp.Handle != vk.NullRenderPass {
		vk.DestroyRenderPass(rp.device.Handle, rp.Handle, rp.device.ctx.Allocator)
		rp.Handle = vk.NullRenderPass
	}
}
