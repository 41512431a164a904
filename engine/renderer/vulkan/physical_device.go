package vulkan

import (
	"errors"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
)

var ErrNoDeviceFound = errors.New("no physical device found")
var ErrNoSuitableDevice = errors.New("no suitable physical device found")

// DeviceRequirements is what a physical device must offer to be
// considered at all.
type DeviceRequirements struct {
	Extensions []string
	Features   vk.PhysicalDeviceFeatures
}

// DefaultDeviceRequirements asks for a swapchain-capable device with
// anisotropic filtering.
func DefaultDeviceRequirements() *DeviceRequirements {
	return &DeviceRequirements{
		Extensions: []string{vk.KhrSwapchainExtensionName},
		Features: vk.PhysicalDeviceFeatures{
			SamplerAnisotropy: vk.True,
		},
	}
}

// DeviceInfo is everything rating needs to know about a candidate, in
// one snapshot. Rating itself never talks to the driver.
type DeviceInfo struct {
	Device        vk.PhysicalDevice
	Properties    vk.PhysicalDeviceProperties
	Features      vk.PhysicalDeviceFeatures
	Extensions    []string
	QueueFamilies []vk.QueueFamilyProperties
	// Queue count per family, index-aligned with QueueFamilies.
	QueueCounts []uint32
}

func queryDeviceInfo(device vk.PhysicalDevice) (*DeviceInfo, error) {
	info := &DeviceInfo{Device: device}

	vk.GetPhysicalDeviceProperties(device, &info.Properties)
	info.Properties.Deref()
	vk.GetPhysicalDeviceFeatures(device, &info.Features)
	info.Features.Deref()

	extensions, err := enumerateDeviceExtensions(device)
	if err != nil {
		return nil, err
	}
	info.Extensions = extensions

	var familyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &familyCount, nil)
	info.QueueFamilies = make([]vk.QueueFamilyProperties, familyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &familyCount, info.QueueFamilies)
	info.QueueCounts = make([]uint32, familyCount)
	for i := range info.QueueFamilies {
		info.QueueFamilies[i].Deref()
		info.QueueCounts[i] = info.QueueFamilies[i].QueueCount
	}

	return info, nil
}

// rateDevice scores a candidate device. Zero means unusable, higher is
// better. The chooser is mutated by inspection, so callers hand in a
// fresh one per candidate.
func rateDevice(info *DeviceInfo, req *DeviceRequirements, chooser QueueFamilyChooser) int {
	name := vk.ToString(info.Properties.DeviceName[:])

	switch info.Properties.DeviceType {
	case vk.PhysicalDeviceTypeDiscreteGpu, vk.PhysicalDeviceTypeIntegratedGpu:
	default:
		core.LogDebug("Device '%s' rejected: not a discrete or integrated GPU", name)
		return 0
	}

	available := make(map[string]bool, len(info.Extensions))
	for _, ext := range info.Extensions {
		available[ext] = true
	}
	for _, ext := range req.Extensions {
		if !available[ext] {
			core.LogDebug("Device '%s' rejected: missing extension %s", name, ext)
			return 0
		}
	}

	if missing := missingFeature(&req.Features, &info.Features); missing != "" {
		core.LogDebug("Device '%s' rejected: missing feature %s", name, missing)
		return 0
	}

	for family, props := range info.QueueFamilies {
		chooser.Inspect(info.Device, uint32(family), props)
	}
	if !chooser.IsComplete() {
		core.LogDebug("Device '%s' rejected: required queue families not found", name)
		return 0
	}

	return 1
}

// PhysicalDeviceChoice is the outcome of selection: the winning device,
// its snapshot, the requirements it was rated against and the completed
// chooser that logical device creation turns into queues.
type PhysicalDeviceChoice struct {
	Device       vk.PhysicalDevice
	Properties   vk.PhysicalDeviceProperties
	Features     vk.PhysicalDeviceFeatures
	QueueCounts  []uint32
	Requirements *DeviceRequirements
	Chooser      QueueFamilyChooser
}

// SelectPhysicalDevice enumerates the instance's devices, rates each one
// and picks the best. Ties go to the device enumerated first.
func SelectPhysicalDevice(ctx *Context, chooser QueueFamilyChooser, req *DeviceRequirements) (*PhysicalDeviceChoice, error) {
	var deviceCount uint32
	if res := vk.EnumeratePhysicalDevices(ctx.Instance, &deviceCount, nil); res != vk.Success {
		fatalResult("vkEnumeratePhysicalDevices", res)
	}
	if deviceCount == 0 {
		return nil, ErrNoDeviceFound
	}
	devices := make([]vk.PhysicalDevice, deviceCount)
	if res := vk.EnumeratePhysicalDevices(ctx.Instance, &deviceCount, devices); res != vk.Success {
		fatalResult("vkEnumeratePhysicalDevices", res)
	}

	var best *PhysicalDeviceChoice
	bestRating := 0
	for _, device := range devices {
		info, err := queryDeviceInfo(device)
		if err != nil {
			core.LogWarn("skipping device: %s", err)
			continue
		}
		candidate := chooser.Fresh()
		rating := rateDevice(info, req, candidate)
		if rating > bestRating {
			bestRating = rating
			best = &PhysicalDeviceChoice{
				Device:       device,
				Properties:   info.Properties,
				Features:     info.Features,
				QueueCounts:  info.QueueCounts,
				Requirements: req,
				Chooser:      candidate,
			}
		}
	}
	if best == nil {
		return nil, ErrNoSuitableDevice
	}

	logSelectedDevice(best)
	return best, nil
}

func logSelectedDevice(choice *PhysicalDeviceChoice) {
	props := choice.Properties
	core.LogInfo("Selected device: '%s'", vk.ToString(props.DeviceName[:]))
	switch props.DeviceType {
	case vk.PhysicalDeviceTypeDiscreteGpu:
		core.LogInfo("GPU type is Discrete")
	case vk.PhysicalDeviceTypeIntegratedGpu:
		core.LogInfo("GPU type is Integrated")
	default:
		core.LogInfo("GPU type is Unknown")
	}
	core.LogInfo(
		"GPU driver version: %d.%d.%d",
		(props.DriverVersion>>22)&0x3ff,
		(props.DriverVersion>>12)&0x3ff,
		props.DriverVersion&0xfff,
	)
	core.LogInfo(
		"Vulkan API version: %d.%d.%d",
		(props.ApiVersion>>22)&0x3ff,
		(props.ApiVersion>>12)&0x3ff,
		props.ApiVersion&0xfff,
	)
}
