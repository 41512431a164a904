package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// InvalidQueueFamilyError reports a pool created against a queue family
// the selected device does not have.
type InvalidQueueFamilyError struct {
	Family      uint32
	FamilyCount int
}

func (e *InvalidQueueFamilyError) Error() string {
	return fmt.Sprintf("queue family %d does not exist on the selected device, which has %d families", e.Family, e.FamilyCount)
}

// CommandPool allocates command buffers that can only be submitted to
// queues of its family.
type CommandPool struct {
	Handle vk.CommandPool
	Family uint32

	device *Device
}

// NewCommandPool creates a pool for the given queue family. The family
// index is validated against the selected device before the driver sees
// it. Buffers from this pool can be reset individually.
func NewCommandPool(device *Device, family uint32) (*CommandPool, error) {
	familyCount := len(device.Physical.QueueCounts)
	if int(family) >= familyCount {
		return nil, &InvalidQueueFamilyError{Family: family, FamilyCount: familyCount}
	}

	createInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: family,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}
	var handle vk.CommandPool
	if res := vk.CreateCommandPool(device.Handle, &createInfo, device.ctx.Allocator, &handle); res != vk.Success {
		return nil, fmt.Errorf("failed to create command pool: %s: %s", ResultString(res), ResultDoc(res))
	}
	return &CommandPool{Handle: handle, Family: family, device: device}, nil
}

// AllocateCommandBuffer allocates one primary command buffer in the
// Initial state. The buffer keeps the pool alive while it exists.
func (p *CommandPool) AllocateCommandBuffer() (*CommandBuffer, error) {
	allocateInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        p.Handle,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	handles := make([]vk.CommandBuffer, 1)
	if res := vk.AllocateCommandBuffers(p.device.Handle, &allocateInfo, handles); res != vk.Success {
		return nil, fmt.Errorf("failed to allocate command buffer: %s: %s", ResultString(res), ResultDoc(res))
	}
	return &CommandBuffer{
		Handle: handles[0],
		pool:   p,
		device: p.device,
		state:  CommandBufferStateInitial,
	}, nil
}

// Free returns a command buffer to the pool.
func (p *CommandPool) Free(cb *CommandBuffer) {
	if cb.Handle != nil {
		vk.FreeCommandBuffers(p.device.Handle, p.Handle, 1, []vk.CommandBuffer{cb.Handle})
		cb.Handle = nil
		cb.state = CommandBufferStateInvalid
	}
}

// Destroy releases the pool and every buffer still allocated from it.
func (p *CommandPool) Destroy() {
	if p.Handle != vk.NullCommandPool {
		vk.DestroyCommandPool(p.device.Handle, p.Handle, p.device.ctx.Allocator)
		p.Handle = vk.NullCommandPool
	}
}
