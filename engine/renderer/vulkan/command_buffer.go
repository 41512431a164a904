package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// CommandBufferState follows the lifecycle the driver tracks for a
// command buffer. Every recording operation checks the state before the
// driver is called, so misuse surfaces as a typed error instead of
// undefined behavior.
type CommandBufferState int

const (
	// CommandBufferStateInitial is a freshly allocated or reset buffer.
	CommandBufferStateInitial CommandBufferState = iota
	// CommandBufferStateRecording accepts Cmd* calls.
	CommandBufferStateRecording
	// CommandBufferStateExecutable is fully recorded and submittable.
	CommandBufferStateExecutable
	// CommandBufferStatePending is owned by a queue until its
	// submission fence signals.
	CommandBufferStatePending
	// CommandBufferStateInvalid can only be reset or freed.
	CommandBufferStateInvalid
)

func (s CommandBufferState) String() string {
	switch s {
	case CommandBufferStateInitial:
		return "Initial"
	case CommandBufferStateRecording:
		return "Recording"
	case CommandBufferStateExecutable:
		return "Executable"
	case CommandBufferStatePending:
		return "Pending"
	case CommandBufferStateInvalid:
		return "Invalid"
	default:
		return fmt.Sprintf("CommandBufferState(%d)", int(s))
	}
}

// InvalidCommandBufferStateError reports an operation attempted in a
// state that does not allow it.
type InvalidCommandBufferStateError struct {
	Operation string
	State     CommandBufferState
}

func (e *InvalidCommandBufferStateError) Error() string {
	return fmt.Sprintf("%s is not allowed on a command buffer in the %s state", e.Operation, e.State)
}

// CommandBuffer records work for one queue family. Objects referenced
// by recorded commands are retained until the next reset so they cannot
// be destroyed while a submission might still read them.
type CommandBuffer struct {
	Handle vk.CommandBuffer

	pool   *CommandPool
	device *Device
	state  CommandBufferState

	// Referenced by recorded commands.
	renderPass  *RenderPass
	framebuffer *Framebuffer
	pipeline    *GraphicsPipeline
}

func (cb *CommandBuffer) State() CommandBufferState {
	return cb.state
}

func (cb *CommandBuffer) requireState(operation string, allowed ...CommandBufferState) error {
	for _, state := range allowed {
		if cb.state == state {
			return nil
		}
	}
	return &InvalidCommandBufferStateError{Operation: operation, State: cb.state}
}

// Begin moves the buffer into the Recording state. Beginning an
// Executable buffer implicitly resets it first.
func (cb *CommandBuffer) Begin() error {
	if err := cb.requireState("Begin", CommandBufferStateInitial, CommandBufferStateExecutable); err != nil {
		return err
	}
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	if res := vk.BeginCommandBuffer(cb.Handle, &beginInfo); res != vk.Success {
		fatalResult("vkBeginCommandBuffer", res)
	}
	cb.releaseRetained()
	cb.state = CommandBufferStateRecording
	return nil
}

// CmdBeginRenderPass records the start of a render pass over the given
// framebuffer, clearing it to clearColor.
func (cb *CommandBuffer) CmdBeginRenderPass(renderPass *RenderPass, framebuffer *Framebuffer, clearColor [4]float32) error {
	if err := cb.requireState("CmdBeginRenderPass", CommandBufferStateRecording); err != nil {
		return err
	}
	clearValues := make([]vk.ClearValue, 1)
	clearValues[0].SetColor(clearColor[:])
	beginInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  renderPass.Handle,
		Framebuffer: framebuffer.Handle,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: framebuffer.Extent,
		},
		ClearValueCount: 1,
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(cb.Handle, &beginInfo, vk.SubpassContentsInline)
	cb.renderPass = renderPass
	cb.framebuffer = framebuffer
	return nil
}

func (cb *CommandBuffer) CmdBindPipeline(pipeline *GraphicsPipeline) error {
	if err := cb.requireState("CmdBindPipeline", CommandBufferStateRecording); err != nil {
		return err
	}
	vk.CmdBindPipeline(cb.Handle, vk.PipelineBindPointGraphics, pipeline.Handle)
	cb.pipeline = pipeline
	return nil
}

func (cb *CommandBuffer) CmdSetViewport(viewport vk.Viewport) error {
	if err := cb.requireState("CmdSetViewport", CommandBufferStateRecording); err != nil {
		return err
	}
	vk.CmdSetViewport(cb.Handle, 0, 1, []vk.Viewport{viewport})
	return nil
}

func (cb *CommandBuffer) CmdSetScissor(scissor vk.Rect2D) error {
	if err := cb.requireState("CmdSetScissor", CommandBufferStateRecording); err != nil {
		return err
	}
	vk.CmdSetScissor(cb.Handle, 0, 1, []vk.Rect2D{scissor})
	return nil
}

func (cb *CommandBuffer) CmdDraw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	if err := cb.requireState("CmdDraw", CommandBufferStateRecording); err != nil {
		return err
	}
	vk.CmdDraw(cb.Handle, vertexCount, instanceCount, firstVertex, firstInstance)
	return nil
}

func (cb *CommandBuffer) CmdEndRenderPass() error {
	if err := cb.requireState("CmdEndRenderPass", CommandBufferStateRecording); err != nil {
		return err
	}
	vk.CmdEndRenderPass(cb.Handle)
	return nil
}

// End finishes recording and makes the buffer submittable.
func (cb *CommandBuffer) End() error {
	if err := cb.requireState("End", CommandBufferStateRecording); err != nil {
		return err
	}
	if res := vk.EndCommandBuffer(cb.Handle); res != vk.Success {
		fatalResult("vkEndCommandBuffer", res)
	}
	cb.state = CommandBufferStateExecutable
	return nil
}

// markPending is called by the queue on submission. The buffer stays
// Pending until the caller observes the submission fence and resets or
// re-begins it.
func (cb *CommandBuffer) markPending() {
	cb.state = CommandBufferStatePending
}

// Reset returns the buffer to the Initial state and drops the retained
// references. The caller is responsible for having awaited the
// submission fence of a Pending buffer first.
func (cb *CommandBuffer) Reset() error {
	if err := cb.requireState("Reset", CommandBufferStateInitial, CommandBufferStateExecutable, CommandBufferStatePending, CommandBufferStateInvalid); err != nil {
		return err
	}
	if res := vk.ResetCommandBuffer(cb.Handle, 0); res != vk.Success {
		fatalResult("vkResetCommandBuffer", res)
	}
	cb.releaseRetained()
	cb.state = CommandBufferStateInitial
	return nil
}

func (cb *CommandBuffer) releaseRetained() {
	cb.renderPass = nil
	cb.framebuffer = nil
	cb.pipeline = nil
}
