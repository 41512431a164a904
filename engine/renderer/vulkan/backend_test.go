package vulkan

import (
	"sync/atomic"
	"testing"

	vk "github.com/goki/vulkan"
)

// countingFence is signaled from the driver's point of view and counts
// how often an Await consults it.
func countingFence(awaits *atomic.Int32) *Fence {
	return testFence(
		func(vk.Fence) vk.Result {
			awaits.Add(1)
			return vk.Success
		},
		nil,
	)
}

func TestClaimImageWaitsForPreviousFrame(t *testing.T) {
	var awaits atomic.Int32
	previous := countingFence(&awaits)
	current := testFence(func(vk.Fence) vk.Result { return vk.Success }, nil)

	vr := &Renderer{
		inFlightFences: []*Fence{current},
		imagesInFlight: []*Fence{previous},
	}

	vr.claimImage(0)

	if awaits.Load() != 1 {
		t.Errorf("previous frame's fence consulted %d times, want 1", awaits.Load())
	}
	if vr.imagesInFlight[0] != current {
		t.Error("image not claimed by the current frame's fence")
	}
}

func TestClaimImageSkipsOwnAndFreeImages(t *testing.T) {
	var awaits atomic.Int32
	current := countingFence(&awaits)

	vr := &Renderer{
		inFlightFences: []*Fence{current},
		imagesInFlight: []*Fence{nil, current},
	}

	vr.claimImage(0)
	vr.claimImage(1)

	if awaits.Load() != 0 {
		t.Errorf("claiming waited %d times on the frame's own fence", awaits.Load())
	}
	if vr.imagesInFlight[0] != current || vr.imagesInFlight[1] != current {
		t.Error("images not claimed by the current frame's fence")
	}
}
