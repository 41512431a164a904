package vulkan

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
)

// ContextConfig carries everything needed to stand up an instance.
type ContextConfig struct {
	ApplicationName    string
	ApplicationVersion uint32
	APIVersion         uint32
	// Extensions the windowing system needs on top of VK_KHR_surface.
	RequiredExtensions []string
	ValidationLayers   []string
	Debug              bool
}

// Context owns the Vulkan entry point, the instance and the debug
// messenger. Everything else in this package hangs off of it.
type Context struct {
	Instance  vk.Instance
	Allocator *vk.AllocationCallbacks

	debug          bool
	debugMessenger vk.DebugReportCallback
	extensions     *capabilitySet
	layers         *capabilitySet
}

// NewContext loads the Vulkan entry point, negotiates instance
// extensions and layers against what the driver offers and creates the
// instance. A missing required capability surfaces as a
// *CapabilityUnavailableError.
func NewContext(cfg ContextConfig) (*Context, error) {
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return nil, fmt.Errorf("vulkan loader not found: GetInstanceProcAddress is nil")
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize vulkan: %w", err)
	}

	ctx := &Context{
		Allocator: nil,
		debug:     cfg.Debug,
	}

	availableExtensions, err := enumerateInstanceExtensions()
	if err != nil {
		return nil, err
	}
	ctx.extensions = newCapabilitySet("instance extension", availableExtensions)

	requiredExtensions := []string{"VK_KHR_surface"}
	requiredExtensions = append(requiredExtensions, cfg.RequiredExtensions...)
	if cfg.Debug {
		requiredExtensions = append(requiredExtensions, vk.ExtDebugUtilsExtensionName, vk.ExtDebugReportExtensionName)
	}
	if err := ctx.extensions.Add(requiredExtensions); err != nil {
		return nil, err
	}

	createInfo := vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         cfg.APIVersion,
			ApplicationVersion: cfg.ApplicationVersion,
			PApplicationName:   VulkanSafeString(cfg.ApplicationName),
			PEngineName:        VulkanSafeString(engineName),
		},
	}

	if runtime.GOOS == "darwin" {
		// MoltenVK only enumerates under the portability flag.
		if ctx.extensions.AddIfAvailable("VK_KHR_portability_enumeration") {
			ctx.extensions.AddIfAvailable("VK_KHR_get_physical_device_properties2")
			createInfo.Flags |= 1
		}
	}

	availableLayers, err := enumerateInstanceLayers()
	if err != nil {
		return nil, err
	}
	ctx.layers = newCapabilitySet("layer", availableLayers)

	if cfg.Debug {
		layers := cfg.ValidationLayers
		if len(layers) == 0 {
			layers = []string{"VK_LAYER_KHRONOS_validation"}
		}
		if err := ctx.layers.Add(layers); err != nil {
			return nil, err
		}
		core.LogInfo("Validation layers enabled: %v", layers)
	}

	enabledExtensions := ctx.extensions.EnabledNames()
	enabledLayers := ctx.layers.EnabledNames()
	createInfo.EnabledExtensionCount = uint32(len(enabledExtensions))
	createInfo.PpEnabledExtensionNames = enabledExtensions
	createInfo.EnabledLayerCount = uint32(len(enabledLayers))
	createInfo.PpEnabledLayerNames = enabledLayers

	if res := vk.CreateInstance(&createInfo, ctx.Allocator, &ctx.Instance); res != vk.Success {
		return nil, fmt.Errorf("failed to create instance: %s: %s", ResultString(res), ResultDoc(res))
	}
	if err := vk.InitInstance(ctx.Instance); err != nil {
		return nil, err
	}
	core.LogInfo("Vulkan instance created")

	if cfg.Debug {
		debugCreateInfo := vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit),
			PfnCallback: dbgCallbackFunc,
		}
		var dbg vk.DebugReportCallback
		if res := vk.CreateDebugReportCallback(ctx.Instance, &debugCreateInfo, ctx.Allocator, &dbg); res != vk.Success {
			return nil, fmt.Errorf("failed to create debug messenger: %s", ResultString(res))
		}
		ctx.debugMessenger = dbg
		core.LogDebug("Vulkan debug messenger created")
	}

	return ctx, nil
}

// Destroy tears down the debug messenger and the instance. Everything
// created from this context must be destroyed first.
func (ctx *Context) Destroy() {
	if ctx.debugMessenger != vk.NullDebugReportCallback {
		vk.DestroyDebugReportCallback(ctx.Instance, ctx.debugMessenger, ctx.Allocator)
		ctx.debugMessenger = vk.NullDebugReportCallback
	}
	if ctx.Instance != nil {
		vk.DestroyInstance(ctx.Instance, ctx.Allocator)
		ctx.Instance = nil
	}
}

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("[%s] Code %d: %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("[%s] Code %d: %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		core.LogWarn("PERFORMANCE: [%s] Code %d: %s", pLayerPrefix, messageCode, pMessage)
	default:
		core.LogInfo("[%s] Code %d: %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}
