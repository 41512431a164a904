package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// PipelineLayout is the resource interface of a pipeline. Nothing is
// bound yet, so the layout is empty.
type PipelineLayout struct {
	Handle vk.PipelineLayout

	device *Device
}

func NewPipelineLayout(device *Device) (*PipelineLayout, error) {
	createInfo := vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	}
	var handle vk.PipelineLayout
	if res := vk.CreatePipelineLayout(device.Handle, &createInfo, device.ctx.Allocator, &handle); res != vk.Success {
		return nil, fmt.Errorf("failed to create pipeline layout: %s: %s", ResultString(res), ResultDoc(res))
	}
	return &PipelineLayout{Handle: handle, device: device}, nil
}

func (pl *PipelineLayout) Destroy() {
	if pl.Handle != vk.NullPipelineLayout {
		vk.DestroyPipelineLayout(pl.device.Handle, pl.Handle, pl.device.ctx.Allocator)
		pl.Handle = vk.NullPipelineLayout
	}
}

// ShaderStage pairs a module with the pipeline stage it implements.
type ShaderStage struct {
	Module *ShaderModule
	Stage  vk.ShaderStageFlagBits
}

// GraphicsPipeline draws triangle lists with vertices generated in the
// vertex shader. Viewport and scissor are dynamic so the pipeline
// survives swapchain recreation.
type GraphicsPipeline struct {
	Handle vk.Pipeline

	device *Device
}

func NewGraphicsPipeline(device *Device, layout *PipelineLayout, renderPass *RenderPass, stages []ShaderStage) (*GraphicsPipeline, error) {
	stageCreateInfos := make([]vk.PipelineShaderStageCreateInfo, len(stages))
	for i, stage := range stages {
		stageCreateInfos[i] = stage.Module.StageCreateInfo(stage.Stage)
	}

	dynamicStates := []vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
	}
	dynamicStateCreateInfo := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    dynamicStates,
	}

	vertexInputInfo := vk.PipelineVertexInputStateCreateInfo{
		SType: vk.StructureTypePipelineVertexInputStateCreateInfo,
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
	}

	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	rasterizerCreateInfo := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             vk.PolygonModeFill,
		LineWidth:               1.0,
		CullMode:                vk.CullModeFlags(vk.CullModeBackBit),
		FrontFace:               vk.FrontFaceClockwise,
		DepthBiasEnable:         vk.False,
	}

	multisamplingCreateInfo := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		SampleShadingEnable:  vk.False,
		RasterizationSamples: vk.SampleCount1Bit,
	}

	colorBlendAttachmentState := vk.PipelineColorBlendAttachmentState{
		BlendEnable: vk.False,
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit) | vk.ColorComponentFlags(vk.ColorComponentGBit) |
			vk.ColorComponentFlags(vk.ColorComponentBBit) | vk.ColorComponentFlags(vk.ColorComponentABit),
	}
	colorBlendStateCreateInfo := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{colorBlendAttachmentState},
	}

	pipelineCreateInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stageCreateInfos)),
		PStages:             stageCreateInfos,
		PVertexInputState:   &vertexInputInfo,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterizerCreateInfo,
		PMultisampleState:   &multisamplingCreateInfo,
		PColorBlendState:    &colorBlendStateCreateInfo,
		PDynamicState:       &dynamicStateCreateInfo,
		Layout:              layout.Handle,
		RenderPass:          renderPass.Handle,
		Subpass:             0,
	}

	handles := make([]vk.Pipeline, 1)
	res := vk.CreateGraphicsPipelines(
		device.Handle,
		vk.NullPipelineCache,
		1,
		[]vk.GraphicsPipelineCreateInfo{pipelineCreateInfo},
		device.ctx.Allocator,
		handles,
	)
	if res != vk.Success {
		return nil, fmt.Errorf("failed to create graphics pipeline: %s: %s", ResultString(res), ResultDoc(res))
	}
	return &GraphicsPipeline{Handle: handles[0], device: device}, nil
}

func (gp *GraphicsPipeline) Destroy() {
	if gp.Handle != vk.NullPipeline {
		vk.DestroyPipeline(gp.device.Handle, gp.Handle, gp.device.ctx.Allocator)
		gp.Handle = vk.NullPipeline
	}
}
