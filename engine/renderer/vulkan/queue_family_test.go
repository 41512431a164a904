package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
)

// stubSurface is a canned SurfaceQuerier so choosers can be exercised
// without a window or a driver.
type stubSurface struct {
	presentFamilies map[uint32]bool
	info            *SurfaceInfo
	infoErr         error
}

func (s *stubSurface) SupportsFamily(device vk.PhysicalDevice, family uint32) bool {
	return s.presentFamilies[family]
}

func (s *stubSurface) Info(device vk.PhysicalDevice) (*SurfaceInfo, error) {
	if s.infoErr != nil {
		return nil, s.infoErr
	}
	return s.info, nil
}

func usableSurfaceInfo() *SurfaceInfo {
	return &SurfaceInfo{
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo},
	}
}

func graphicsFamily() vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{
		QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit),
		QueueCount: 1,
	}
}

func transferFamily() vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{
		QueueFlags: vk.QueueFlags(vk.QueueTransferBit),
		QueueCount: 1,
	}
}

func TestDrawQueuesChooserSharedFamily(t *testing.T) {
	surface := &stubSurface{
		presentFamilies: map[uint32]bool{0: true},
		info:            usableSurfaceInfo(),
	}
	c := NewDrawQueuesChooser(surface)

	c.Inspect(nil, 0, graphicsFamily())
	if !c.IsComplete() {
		t.Fatal("chooser incomplete after a graphics+present family")
	}

	requests := c.Requirements()
	if len(requests) != 1 {
		t.Fatalf("expected one queue request for a shared family, got %d", len(requests))
	}
	if requests[0].Family != 0 || len(requests[0].Priorities) != 1 || requests[0].Priorities[0] != 0.0 {
		t.Errorf("unexpected request: %+v", requests[0])
	}

	queues := map[uint32][]Queue{0: {{Family: 0}}}
	draw := c.FillQueues(queues)
	if draw.Graphics.Family != 0 || draw.Present.Family != 0 {
		t.Errorf("unexpected queue families: %+v", draw)
	}
}

func TestDrawQueuesChooserSplitFamilies(t *testing.T) {
	surface := &stubSurface{
		presentFamilies: map[uint32]bool{1: true},
		info:            usableSurfaceInfo(),
	}
	c := NewDrawQueuesChooser(surface)

	c.Inspect(nil, 0, graphicsFamily())
	if c.IsComplete() {
		t.Fatal("complete without a present family")
	}
	c.Inspect(nil, 1, transferFamily())
	if !c.IsComplete() {
		t.Fatal("incomplete after graphics and present families")
	}

	requests := c.Requirements()
	if len(requests) != 2 {
		t.Fatalf("expected two queue requests, got %d", len(requests))
	}
	for _, request := range requests {
		if len(request.Priorities) != 1 || request.Priorities[0] != 0.0 {
			t.Errorf("unexpected priorities for family %d: %v", request.Family, request.Priorities)
		}
	}

	queues := map[uint32][]Queue{
		0: {{Family: 0}},
		1: {{Family: 1}},
	}
	draw := c.FillQueues(queues)
	if draw.Graphics.Family != 0 || draw.Present.Family != 1 {
		t.Errorf("unexpected queue families: %+v", draw)
	}
}

func TestDrawQueuesChooserRejectsUnusableSurface(t *testing.T) {
	// The family can present but the surface offers no usable format,
	// so it must not count.
	surface := &stubSurface{
		presentFamilies: map[uint32]bool{0: true},
		info: &SurfaceInfo{
			Formats:      []vk.SurfaceFormat{{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}},
			PresentModes: []vk.PresentMode{vk.PresentModeFifo},
		},
	}
	c := NewDrawQueuesChooser(surface)
	c.Inspect(nil, 0, graphicsFamily())
	if c.IsComplete() {
		t.Error("chooser completed against a surface with no usable format")
	}
}

func TestIncompleteChooserPanics(t *testing.T) {
	surface := &stubSurface{presentFamilies: map[uint32]bool{}}
	c := NewDrawQueuesChooser(surface)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("Requirements on an incomplete chooser did not panic")
			}
		}()
		c.Requirements()
	}()

	func() {
		defer func() {
			if recover() == nil {
				t.Error("FillQueues on an incomplete chooser did not panic")
			}
		}()
		c.FillQueues(map[uint32][]Queue{})
	}()
}

func TestChooserFresh(t *testing.T) {
	surface := &stubSurface{
		presentFamilies: map[uint32]bool{0: true},
		info:            usableSurfaceInfo(),
	}
	c := NewDrawQueuesChooser(surface)
	c.Inspect(nil, 0, graphicsFamily())
	if !c.IsComplete() {
		t.Fatal("chooser should be complete")
	}
	if c.Fresh().IsComplete() {
		t.Error("Fresh returned a chooser carrying old state")
	}
}
