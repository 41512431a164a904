package vulkan

import (
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
)

// Queue is one device queue of a known family.
type Queue struct {
	Handle vk.Queue
	Family uint32
}

// Submit hands an executable command buffer to the queue. The wait
// semaphores gate execution at the given stages, the signal semaphores
// fire on completion, and the fence, when given, is reset and then
// signaled when the submission finishes. The buffer moves to Pending.
//
// A submission the driver rejects leaves the device in an unknown state,
// so it aborts instead of returning.
func (q Queue) Submit(cb *CommandBuffer, waitSemaphores []*Semaphore, waitStages []vk.PipelineStageFlags, signalSemaphores []*Semaphore, fence *Fence) error {
	if err := cb.requireState("Submit", CommandBufferStateExecutable); err != nil {
		return err
	}

	fenceHandle := vk.NullFence
	if fence != nil {
		fence.Reset()
		fenceHandle = fence.Handle()
	}

	waits := make([]vk.Semaphore, len(waitSemaphores))
	for i, s := range waitSemaphores {
		waits[i] = s.Handle
	}
	signals := make([]vk.Semaphore, len(signalSemaphores))
	for i, s := range signalSemaphores {
		signals[i] = s.Handle
	}

	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   uint32(len(waits)),
		PWaitSemaphores:      waits,
		PWaitDstStageMask:    waitStages,
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{cb.Handle},
		SignalSemaphoreCount: uint32(len(signals)),
		PSignalSemaphores:    signals,
	}
	if res := vk.QueueSubmit(q.Handle, 1, []vk.SubmitInfo{submitInfo}, fenceHandle); res != vk.Success {
		fatalResult("vkQueueSubmit", res)
	}
	cb.markPending()
	return nil
}

// Present queues the swapchain image for presentation once the wait
// semaphores fire. An out-of-date or suboptimal surface surfaces as
// ErrSwapchainBooting so the frame loop can recreate the swapchain.
func (q Queue) Present(sc *Swapchain, imageIndex uint32, waitSemaphores []*Semaphore) error {
	waits := make([]vk.Semaphore, len(waitSemaphores))
	for i, s := range waitSemaphores {
		waits[i] = s.Handle
	}
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: uint32(len(waits)),
		PWaitSemaphores:    waits,
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{sc.Handle},
		PImageIndices:      []uint32{imageIndex},
	}
	res := vk.QueuePresent(q.Handle, &presentInfo)
	switch {
	case res == vk.ErrorOutOfDate || res == vk.Suboptimal:
		return core.ErrSwapchainBooting
	case res != vk.Success:
		fatalResult("vkQueuePresent", res)
	}
	return nil
}

// WaitIdle blocks until the queue drains.
func (q Queue) WaitIdle() {
	if res := vk.QueueWaitIdle(q.Handle); res != vk.Success {
		fatalResult("vkQueueWaitIdle", res)
	}
}
