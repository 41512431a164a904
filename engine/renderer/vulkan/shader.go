package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/assets"
)

// ShaderModule wraps one compiled SPIR-V module together with its entry
// point name.
type ShaderModule struct {
	Handle     vk.ShaderModule
	EntryPoint string

	device *Device
}

// NewShaderModule uploads validated SPIR-V words to the device.
func NewShaderModule(device *Device, binary *assets.ShaderBinary) (*ShaderModule, error) {
	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(binary.Words) * 4),
		PCode:    binary.Words,
	}
	var handle vk.ShaderModule
	if res := vk.CreateShaderModule(device.Handle, &createInfo, device.ctx.Allocator, &handle); res != vk.Success {
		return nil, fmt.Errorf("failed to create shader module '%s': %s: %s", binary.Name, ResultString(res), ResultDoc(res))
	}
	return &ShaderModule{Handle: handle, EntryPoint: binary.EntryPoint, device: device}, nil
}

// StageCreateInfo builds the pipeline stage description for this module
// at the given stage.
func (sm *ShaderModule) StageCreateInfo(stage vk.ShaderStageFlagBits) vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  stage,
		Module: sm.Handle,
		PName:  VulkanSafeString(sm.EntryPoint),
	}
}

func (sm *ShaderModule) Destroy() {
	if sm.Handle != vk.NullShaderModule {
		vk.DestroyShaderModule(sm.device.Handle, sm.Handle, sm.device.ctx.Allocator)
		sm.Handle = vk.NullShaderModule
	}
}
