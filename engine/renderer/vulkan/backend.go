package vulkan

import (
	"fmt"
	"math"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/config"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/platform"
)

// Renderer owns the whole Vulkan stack, from instance to per-frame sync
// objects, and runs the frame loop over it.
type Renderer struct {
	platform *platform.Platform
	cfg      *config.Config

	context        *Context
	surface        *Surface
	device         *Device
	swapchain      *Swapchain
	renderPass     *RenderPass
	framebuffers   []*Framebuffer
	vertShader     *ShaderModule
	fragShader     *ShaderModule
	pipelineLayout *PipelineLayout
	pipeline       *GraphicsPipeline
	commandPool    *CommandPool
	commandBuffers []*CommandBuffer

	imageAvailableSemaphores []*Semaphore
	queueCompleteSemaphores  []*Semaphore
	inFlightFences           []*Fence
	// Fence of the frame that last rendered into each swapchain image.
	imagesInFlight []*Fence

	framebufferWidth              uint32
	framebufferHeight             uint32
	cachedFramebufferWidth        uint32
	cachedFramebufferHeight       uint32
	framebufferSizeGeneration     uint64
	framebufferSizeLastGeneration uint64
	recreatingSwapchain           bool

	currentFrame uint32
	imageIndex   uint32
}

func New(p *platform.Platform, cfg *config.Config) *Renderer {
	return &Renderer{
		platform: p,
		cfg:      cfg,
	}
}

// Initialize brings up the instance, selects and creates the device,
// and builds the swapchain, pipeline and per-frame objects.
func (vr *Renderer) Initialize() error {
	vr.framebufferWidth = vr.cfg.Application.Width
	vr.framebufferHeight = vr.cfg.Application.Height

	ctx, err := NewContext(ContextConfig{
		ApplicationName:    vr.cfg.Application.Name,
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		APIVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		RequiredExtensions: vr.platform.GetRequiredExtensionNames(),
		ValidationLayers:   vr.cfg.Renderer.ValidationLayers,
		Debug:              vr.cfg.Renderer.Debug,
	})
	if err != nil {
		return err
	}
	vr.context = ctx

	surfaceHandle, err := vr.platform.CreateVulkanSurface(ctx.Instance)
	if err != nil {
		return err
	}
	vr.surface = NewSurface(ctx, surfaceHandle)

	choice, err := SelectPhysicalDevice(ctx, NewDrawQueuesChooser(vr.surface), DefaultDeviceRequirements())
	if err != nil {
		return err
	}

	vr.device, err = NewDevice(ctx, choice, vr.surface)
	if err != nil {
		return err
	}

	vr.swapchain, err = NewSwapchain(vr.device, vr.surface, vk.Extent2D{Width: vr.framebufferWidth, Height: vr.framebufferHeight}, nil)
	if err != nil {
		return err
	}
	vr.framebufferWidth = vr.swapchain.Extent.Width
	vr.framebufferHeight = vr.swapchain.Extent.Height

	vr.renderPass, err = NewRenderPass(vr.device, vr.swapchain.Format.Format)
	if err != nil {
		return err
	}

	if err := vr.regenerateFramebuffers(); err != nil {
		return err
	}

	if err := vr.createPipeline(); err != nil {
		return err
	}

	vr.commandPool, err = NewCommandPool(vr.device, vr.device.Queues.Graphics.Family)
	if err != nil {
		return err
	}
	vr.commandBuffers = make([]*CommandBuffer, len(vr.swapchain.Images))
	for i := range vr.commandBuffers {
		vr.commandBuffers[i], err = vr.commandPool.AllocateCommandBuffer()
		if err != nil {
			return err
		}
	}

	frames := int(vr.swapchain.MaxFramesInFlight)
	vr.imageAvailableSemaphores = make([]*Semaphore, frames)
	vr.queueCompleteSemaphores = make([]*Semaphore, frames)
	vr.inFlightFences = make([]*Fence, frames)
	for i := 0; i < frames; i++ {
		if vr.imageAvailableSemaphores[i], err = NewSemaphore(vr.device); err != nil {
			return err
		}
		if vr.queueCompleteSemaphores[i], err = NewSemaphore(vr.device); err != nil {
			return err
		}
		if vr.inFlightFences[i], err = NewFence(vr.device); err != nil {
			return err
		}
		vr.inFlightFences[i].SetName(fmt.Sprintf("in-flight-%d", i))
	}
	vr.imagesInFlight = make([]*Fence, len(vr.swapchain.Images))

	core.LogInfo("Vulkan renderer initialized successfully")
	return nil
}

func (vr *Renderer) createPipeline() error {
	vertBinary, err := assets.LoadShaderBinary(vr.cfg.Renderer.ShaderDir, "triangle.vert")
	if err != nil {
		return err
	}
	fragBinary, err := assets.LoadShaderBinary(vr.cfg.Renderer.ShaderDir, "triangle.frag")
	if err != nil {
		return err
	}

	if vr.vertShader, err = NewShaderModule(vr.device, vertBinary); err != nil {
		return err
	}
	if vr.fragShader, err = NewShaderModule(vr.device, fragBinary); err != nil {
		return err
	}

	if vr.pipelineLayout, err = NewPipelineLayout(vr.device); err != nil {
		return err
	}
	vr.pipeline, err = NewGraphicsPipeline(vr.device, vr.pipelineLayout, vr.renderPass, []ShaderStage{
		{Module: vr.vertShader, Stage: vk.ShaderStageVertexBit},
		{Module: vr.fragShader, Stage: vk.ShaderStageFragmentBit},
	})
	return err
}

func (vr *Renderer) regenerateFramebuffers() error {
	for _, fb := range vr.framebuffers {
		fb.Destroy()
	}
	vr.framebuffers = make([]*Framebuffer, len(vr.swapchain.Views))
	for i, view := range vr.swapchain.Views {
		fb, err := NewFramebuffer(vr.device, vr.renderPass, vr.swapchain, view)
		if err != nil {
			return err
		}
		vr.framebuffers[i] = fb
	}
	return nil
}

// Resized records the new framebuffer size. The swapchain is rebuilt
// lazily at the start of the next frame.
func (vr *Renderer) Resized(width, height uint32) {
	vr.cachedFramebufferWidth = width
	vr.cachedFramebufferHeight = height
	vr.framebufferSizeGeneration++
	core.LogDebug("Renderer resized: %dx%d generation %d", width, height, vr.framebufferSizeGeneration)
}

func (vr *Renderer) recreateSwapchain() error {
	if vr.recreatingSwapchain {
		return core.ErrSwapchainBooting
	}
	if vr.cachedFramebufferWidth == 0 || vr.cachedFramebufferHeight == 0 {
		// Minimized. Nothing to present to until the window comes back.
		return core.ErrSwapchainBooting
	}
	vr.recreatingSwapchain = true
	defer func() { vr.recreatingSwapchain = false }()

	vr.framebufferWidth = vr.cachedFramebufferWidth
	vr.framebufferHeight = vr.cachedFramebufferHeight

	replacement, err := vr.swapchain.Recreate(vk.Extent2D{Width: vr.framebufferWidth, Height: vr.framebufferHeight})
	if err != nil {
		return err
	}
	vr.swapchain = replacement
	vr.framebufferWidth = vr.swapchain.Extent.Width
	vr.framebufferHeight = vr.swapchain.Extent.Height
	vr.framebufferSizeLastGeneration = vr.framebufferSizeGeneration

	for i := range vr.imagesInFlight {
		vr.imagesInFlight[i] = nil
	}
	return vr.regenerateFramebuffers()
}

// BeginFrame waits for this frame's previous submission, acquires the
// next swapchain image and starts recording into its command buffer.
// ErrSwapchainBooting means the swapchain was stale and the frame
// should be skipped.
func (vr *Renderer) BeginFrame() error {
	if vr.framebufferSizeGeneration != vr.framebufferSizeLastGeneration {
		vr.device.WaitIdle()
		if err := vr.recreateSwapchain(); err != nil {
			return err
		}
		core.LogInfo("Swapchain recreated, booting frame")
		return core.ErrSwapchainBooting
	}

	vr.inFlightFences[vr.currentFrame].Await()

	imageIndex, err := vr.swapchain.AcquireNextImage(math.MaxUint64, vr.imageAvailableSemaphores[vr.currentFrame], nil)
	if err != nil {
		vr.framebufferSizeGeneration++
		return err
	}
	vr.imageIndex = imageIndex

	// The frame that last rendered into this image may still be
	// executing the image's command buffer. Wait it out before the
	// buffer is reset.
	vr.claimImage(vr.imageIndex)

	cb := vr.commandBuffers[vr.imageIndex]
	if err := cb.Reset(); err != nil {
		return err
	}
	if err := cb.Begin(); err != nil {
		return err
	}

	viewport := vk.Viewport{
		X:        0,
		Y:        0,
		Width:    float32(vr.framebufferWidth),
		Height:   float32(vr.framebufferHeight),
		MinDepth: 0,
		MaxDepth: 1,
	}
	scissor := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: vk.Extent2D{Width: vr.framebufferWidth, Height: vr.framebufferHeight},
	}

	if err := cb.CmdBeginRenderPass(vr.renderPass, vr.framebuffers[vr.imageIndex], [4]float32{0.0, 0.0, 0.2, 1.0}); err != nil {
		return err
	}
	if err := cb.CmdBindPipeline(vr.pipeline); err != nil {
		return err
	}
	if err := cb.CmdSetViewport(viewport); err != nil {
		return err
	}
	return cb.CmdSetScissor(scissor)
}

// claimImage waits for the frame that last submitted work for the
// given swapchain image, then records the current frame's fence as the
// image's owner. Must run before the image's command buffer is touched.
func (vr *Renderer) claimImage(imageIndex uint32) {
	if inFlight := vr.imagesInFlight[imageIndex]; inFlight != nil && inFlight != vr.inFlightFences[vr.currentFrame] {
		inFlight.Await()
	}
	vr.imagesInFlight[imageIndex] = vr.inFlightFences[vr.currentFrame]
}

// Draw records a non-indexed draw into the current frame.
func (vr *Renderer) Draw(vertexCount uint32) error {
	return vr.commandBuffers[vr.imageIndex].CmdDraw(vertexCount, 1, 0, 0)
}

// EndFrame finishes recording, submits to the graphics queue and
// presents the image.
func (vr *Renderer) EndFrame() error {
	cb := vr.commandBuffers[vr.imageIndex]
	if err := cb.CmdEndRenderPass(); err != nil {
		return err
	}
	if err := cb.End(); err != nil {
		return err
	}

	err := vr.device.Queues.Graphics.Submit(
		cb,
		[]*Semaphore{vr.imageAvailableSemaphores[vr.currentFrame]},
		[]vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
		[]*Semaphore{vr.queueCompleteSemaphores[vr.currentFrame]},
		vr.inFlightFences[vr.currentFrame],
	)
	if err != nil {
		return err
	}

	err = vr.device.Queues.Present.Present(vr.swapchain, vr.imageIndex, []*Semaphore{vr.queueCompleteSemaphores[vr.currentFrame]})
	if err == core.ErrSwapchainBooting {
		vr.framebufferSizeGeneration++
		err = nil
	}
	if err != nil {
		return err
	}

	vr.currentFrame = (vr.currentFrame + 1) % uint32(vr.swapchain.MaxFramesInFlight)
	return nil
}

// Shutdown tears everything down in reverse creation order.
func (vr *Renderer) Shutdown() {
	if vr.device != nil {
		vr.device.WaitIdle()
	}
	ShutdownFences()

	for _, fence := range vr.inFlightFences {
		fence.Destroy()
	}
	for _, s := range vr.queueCompleteSemaphores {
		s.Destroy()
	}
	for _, s := range vr.imageAvailableSemaphores {
		s.Destroy()
	}
	vr.inFlightFences = nil
	vr.queueCompleteSemaphores = nil
	vr.imageAvailableSemaphores = nil
	vr.imagesInFlight = nil

	if vr.commandPool != nil {
		for _, cb := range vr.commandBuffers {
			vr.commandPool.Free(cb)
		}
		vr.commandBuffers = nil
		vr.commandPool.Destroy()
	}

	if vr.pipeline != nil {
		vr.pipeline.Destroy()
	}
	if vr.pipelineLayout != nil {
		vr.pipelineLayout.Destroy()
	}
	if vr.fragShader != nil {
		vr.fragShader.Destroy()
	}
	if vr.vertShader != nil {
		vr.vertShader.Destroy()
	}

	for _, fb := range vr.framebuffers {
		fb.Destroy()
	}
	vr.framebuffers = nil

	if vr.renderPass != nil {
		vr.renderPass.Destroy()
	}
	if vr.swapchain != nil {
		vr.swapchain.Destroy()
	}
	if vr.device != nil {
		vr.device.Destroy()
	}
	if vr.surface != nil {
		vr.surface.Destroy()
	}
	if vr.context != nil {
		vr.context.Destroy()
	}
	core.LogInfo("Vulkan renderer shut down")
}
