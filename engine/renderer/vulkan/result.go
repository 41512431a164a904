package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
)

type resultInfo struct {
	name string
	doc  string
}

var resultInfos = map[vk.Result]resultInfo{
	vk.Success:                   {"VK_SUCCESS", "Command successfully completed"},
	vk.NotReady:                  {"VK_NOT_READY", "A fence or query has not yet completed"},
	vk.Timeout:                   {"VK_TIMEOUT", "A wait operation has not completed in the specified time"},
	vk.EventSet:                  {"VK_EVENT_SET", "An event is signaled"},
	vk.EventReset:                {"VK_EVENT_RESET", "An event is unsignaled"},
	vk.Incomplete:                {"VK_INCOMPLETE", "A return array was too small for the result"},
	vk.Suboptimal:                {"VK_SUBOPTIMAL_KHR", "A swapchain no longer matches the surface properties exactly, but can still be used"},
	vk.ErrorOutOfHostMemory:      {"VK_ERROR_OUT_OF_HOST_MEMORY", "A host memory allocation has failed"},
	vk.ErrorOutOfDeviceMemory:    {"VK_ERROR_OUT_OF_DEVICE_MEMORY", "A device memory allocation has failed"},
	vk.ErrorInitializationFailed: {"VK_ERROR_INITIALIZATION_FAILED", "Initialization of an object could not be completed"},
	vk.ErrorDeviceLost:           {"VK_ERROR_DEVICE_LOST", "The logical or physical device has been lost"},
	vk.ErrorMemoryMapFailed:      {"VK_ERROR_MEMORY_MAP_FAILED", "Mapping of a memory object has failed"},
	vk.ErrorLayerNotPresent:      {"VK_ERROR_LAYER_NOT_PRESENT", "A requested layer is not present or could not be loaded"},
	vk.ErrorExtensionNotPresent:  {"VK_ERROR_EXTENSION_NOT_PRESENT", "A requested extension is not supported"},
	vk.ErrorFeatureNotPresent:    {"VK_ERROR_FEATURE_NOT_PRESENT", "A requested feature is not supported"},
	vk.ErrorIncompatibleDriver:   {"VK_ERROR_INCOMPATIBLE_DRIVER", "The requested version of Vulkan is not supported by the driver"},
	vk.ErrorTooManyObjects:       {"VK_ERROR_TOO_MANY_OBJECTS", "Too many objects of this type have already been created"},
	vk.ErrorFormatNotSupported:   {"VK_ERROR_FORMAT_NOT_SUPPORTED", "A requested format is not supported on this device"},
	vk.ErrorFragmentedPool:       {"VK_ERROR_FRAGMENTED_POOL", "A pool allocation has failed due to fragmentation of the pool's memory"},
	vk.ErrorOutOfPoolMemory:      {"VK_ERROR_OUT_OF_POOL_MEMORY", "A pool memory allocation has failed"},
	vk.ErrorInvalidExternalHandle: {
		"VK_ERROR_INVALID_EXTERNAL_HANDLE",
		"An external handle is not a valid handle of the specified type",
	},
	vk.ErrorSurfaceLost:        {"VK_ERROR_SURFACE_LOST_KHR", "A surface is no longer available"},
	vk.ErrorNativeWindowInUse:  {"VK_ERROR_NATIVE_WINDOW_IN_USE_KHR", "The requested window is already in use"},
	vk.ErrorOutOfDate:          {"VK_ERROR_OUT_OF_DATE_KHR", "A surface has changed so the swapchain is no longer compatible with it"},
	vk.ErrorIncompatibleDisplay: {
		"VK_ERROR_INCOMPATIBLE_DISPLAY_KHR",
		"The display used by a swapchain does not use the same presentable image layout",
	},
	vk.ErrorInvalidShaderNv: {"VK_ERROR_INVALID_SHADER_NV", "One or more shaders failed to compile or link"},
	vk.ErrorFragmentation:   {"VK_ERROR_FRAGMENTATION_EXT", "A descriptor pool creation has failed due to fragmentation"},
}

// ResultString returns the VK_* constant name for a result code.
func ResultString(result vk.Result) string {
	if info, ok := resultInfos[result]; ok {
		return info.name
	}
	return fmt.Sprintf("VK_UNKNOWN(%d)", int32(result))
}

// ResultDoc returns the documented meaning of a result code.
func ResultDoc(result vk.Result) string {
	if info, ok := resultInfos[result]; ok {
		return info.doc
	}
	return "Unknown result code"
}

// ResultIsSuccess reports whether the result is one of the non-error
// codes. Suboptimal and timeout codes count as success here; callers
// that care about them check explicitly.
func ResultIsSuccess(result vk.Result) bool {
	switch result {
	case vk.Success, vk.NotReady, vk.Timeout, vk.EventSet, vk.EventReset, vk.Incomplete, vk.Suboptimal:
		return true
	default:
		return false
	}
}

// fatalResult aborts on an unrecoverable driver failure, logging the
// operation, the code and its documented meaning.
func fatalResult(operation string, result vk.Result) {
	core.LogFatal("%s failed with %s (%d): %s", operation, ResultString(result), int32(result), ResultDoc(result))
}
