package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
)

func TestNewFramebufferValidatesInputs(t *testing.T) {
	if _, err := NewFramebuffer(&Device{}, nil, &Swapchain{}, vk.NullImageView); err == nil {
		t.Error("nil render pass accepted")
	}
	if _, err := NewFramebuffer(&Device{}, &RenderPass{}, nil, vk.NullImageView); err == nil {
		t.Error("nil swapchain accepted")
	}
}
