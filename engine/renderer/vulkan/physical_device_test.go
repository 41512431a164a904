package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
)

func suitableDeviceInfo() *DeviceInfo {
	info := &DeviceInfo{
		Extensions:    []string{vk.KhrSwapchainExtensionName},
		QueueFamilies: []vk.QueueFamilyProperties{graphicsFamily()},
		QueueCounts:   []uint32{1},
	}
	info.Properties.DeviceType = vk.PhysicalDeviceTypeDiscreteGpu
	info.Features.SamplerAnisotropy = vk.True
	return info
}

func ratingChooser() QueueFamilyChooser {
	surface := &stubSurface{
		presentFamilies: map[uint32]bool{0: true},
		info:            usableSurfaceInfo(),
	}
	return NewDrawQueuesChooser(surface)
}

func TestRateDeviceSuitable(t *testing.T) {
	rating := rateDevice(suitableDeviceInfo(), DefaultDeviceRequirements(), ratingChooser())
	if rating != 1 {
		t.Errorf("suitable device rated %d, want 1", rating)
	}
}

func TestRateDeviceRejectsCPU(t *testing.T) {
	info := suitableDeviceInfo()
	info.Properties.DeviceType = vk.PhysicalDeviceTypeCpu
	if rating := rateDevice(info, DefaultDeviceRequirements(), ratingChooser()); rating != 0 {
		t.Errorf("cpu device rated %d, want 0", rating)
	}
}

func TestRateDeviceRejectsMissingExtension(t *testing.T) {
	info := suitableDeviceInfo()
	info.Extensions = nil
	if rating := rateDevice(info, DefaultDeviceRequirements(), ratingChooser()); rating != 0 {
		t.Errorf("device without swapchain extension rated %d, want 0", rating)
	}
}

func TestRateDeviceRejectsMissingFeature(t *testing.T) {
	info := suitableDeviceInfo()
	info.Features.SamplerAnisotropy = vk.False
	if rating := rateDevice(info, DefaultDeviceRequirements(), ratingChooser()); rating != 0 {
		t.Errorf("device without required feature rated %d, want 0", rating)
	}
}

func TestRateDeviceRejectsIncompleteQueues(t *testing.T) {
	info := suitableDeviceInfo()
	info.QueueFamilies = []vk.QueueFamilyProperties{transferFamily()}
	if rating := rateDevice(info, DefaultDeviceRequirements(), ratingChooser()); rating != 0 {
		t.Errorf("device without graphics family rated %d, want 0", rating)
	}
}

func TestMissingFeature(t *testing.T) {
	var required, available vk.PhysicalDeviceFeatures
	if missing := missingFeature(&required, &available); missing != "" {
		t.Errorf("no requirements but %q reported missing", missing)
	}

	required.GeometryShader = vk.True
	if missing := missingFeature(&required, &available); missing != "geometryShader" {
		t.Errorf("got %q, want geometryShader", missing)
	}

	available.GeometryShader = vk.True
	if missing := missingFeature(&required, &available); missing != "" {
		t.Errorf("satisfied requirement reported missing: %q", missing)
	}

	// A device offering extra features must not fail the check.
	available.SparseBinding = vk.True
	if missing := missingFeature(&required, &available); missing != "" {
		t.Errorf("extra device feature reported missing: %q", missing)
	}
}
