package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// Semaphore orders GPU work against other GPU work, such as image
// acquisition against queue submission.
type Semaphore struct {
	Handle vk.Semaphore

	device *Device
}

func NewSemaphore(device *Device) (*Semaphore, error) {
	createInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	var handle vk.Semaphore
	if res := vk.CreateSemaphore(device.Handle, &createInfo, device.ctx.Allocator, &handle); res != vk.Success {
		return nil, fmt.Errorf("failed to create semaphore: %s: %s", ResultString(res), ResultDoc(res))
	}
	return &Semaphore{Handle: handle, device: device}, nil
}

func (s *Semaphore) Destroy() {
	if s.Handle != vk.NullSemaphore {
		vk.DestroySemaphore(s.device.Handle, s.Handle, s.device.ctx.Allocator)
		s.Handle = vk.NullSemaphore
	}
}
