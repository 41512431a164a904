package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// QueueRequest asks the logical device for len(Priorities) queues from
// one family.
type QueueRequest struct {
	Family     uint32
	Priorities []float32
}

// QueueFamilyChooser decides which queue families a candidate device
// must provide. Device selection feeds it every family of a candidate
// through Inspect, asks IsComplete, and on the selected device turns
// Requirements into queue create infos and FillQueues into the final
// queue set.
//
// Requirements and FillQueues panic when the chooser is incomplete.
// Selection never creates a device from an incomplete chooser, so
// hitting one of those panics means a caller skipped selection.
type QueueFamilyChooser interface {
	Inspect(device vk.PhysicalDevice, family uint32, props vk.QueueFamilyProperties)
	IsComplete() bool
	Requirements() []QueueRequest
	FillQueues(queues map[uint32][]Queue) *DrawQueues
	// Fresh returns an empty chooser of the same kind. Each candidate
	// device is inspected with its own fresh chooser.
	Fresh() QueueFamilyChooser
}

// DrawQueues is the queue set a renderer draws and presents with.
type DrawQueues struct {
	Graphics Queue
	Present  Queue
}

// DrawQueuesChooser picks one graphics-capable family and one family
// that can present to the surface. They may be the same family.
type DrawQueuesChooser struct {
	surface SurfaceQuerier

	graphics int64
	present  int64
}

func NewDrawQueuesChooser(surface SurfaceQuerier) *DrawQueuesChooser {
	return &DrawQueuesChooser{
		surface:  surface,
		graphics: -1,
		present:  -1,
	}
}

func (c *DrawQueuesChooser) Inspect(device vk.PhysicalDevice, family uint32, props vk.QueueFamilyProperties) {
	if c.graphics < 0 && props.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
		c.graphics = int64(family)
	}
	// A family that can present is only useful if the surface also
	// offers a format and present mode we can build a swapchain from.
	if c.present < 0 && c.surface.SupportsFamily(device, family) {
		if info, err := c.surface.Info(device); err == nil && swapchainUsable(info) {
			c.present = int64(family)
		}
	}
}

func (c *DrawQueuesChooser) IsComplete() bool {
	return c.graphics >= 0 && c.present >= 0
}

func (c *DrawQueuesChooser) Requirements() []QueueRequest {
	if !c.IsComplete() {
		panic("queue requirements requested from an incomplete chooser")
	}
	requests := []QueueRequest{{Family: uint32(c.graphics), Priorities: []float32{0.0}}}
	if c.present != c.graphics {
		requests = append(requests, QueueRequest{Family: uint32(c.present), Priorities: []float32{0.0}})
	}
	return requests
}

func (c *DrawQueuesChooser) FillQueues(queues map[uint32][]Queue) *DrawQueues {
	if !c.IsComplete() {
		panic("queues requested from an incomplete chooser")
	}
	graphics, ok := queues[uint32(c.graphics)]
	if !ok || len(graphics) == 0 {
		panic(fmt.Sprintf("no queues created for graphics family %d", c.graphics))
	}
	present, ok := queues[uint32(c.present)]
	if !ok || len(present) == 0 {
		panic(fmt.Sprintf("no queues created for present family %d", c.present))
	}
	return &DrawQueues{
		Graphics: graphics[0],
		Present:  present[0],
	}
}

func (c *DrawQueuesChooser) Fresh() QueueFamilyChooser {
	return NewDrawQueuesChooser(c.surface)
}
