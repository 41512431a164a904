package vulkan

import (
	"errors"
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
)

// Device owns the logical device and the queues created with it. It
// holds the surface its queues present to, so the surface outlives
// every presentation.
type Device struct {
	Handle   vk.Device
	Physical *PhysicalDeviceChoice
	Queues   *DrawQueues

	ctx        *Context
	surface    *Surface
	extensions *capabilitySet
}

// NewDevice creates the logical device for a selected physical device,
// negotiating device extensions and asking for the queue families the
// completed chooser requires.
func NewDevice(ctx *Context, choice *PhysicalDeviceChoice, surface *Surface) (*Device, error) {
	if ctx == nil {
		return nil, errors.New("an instance is required before creating a logical device")
	}
	if choice == nil {
		return nil, errors.New("a physical device must be selected before creating a logical device")
	}
	if surface == nil {
		return nil, errors.New("a surface is required before creating a logical device")
	}

	d := &Device{
		Physical: choice,
		ctx:      ctx,
		surface:  surface,
	}

	availableExtensions, err := enumerateDeviceExtensions(choice.Device)
	if err != nil {
		return nil, err
	}
	d.extensions = newCapabilitySet("device extension", availableExtensions)
	if err := d.extensions.Add(choice.Requirements.Extensions); err != nil {
		return nil, err
	}
	// Implementations that advertise the portability subset require it
	// to be enabled.
	d.extensions.AddIfAvailable("VK_KHR_portability_subset")

	requests := choice.Chooser.Requirements()
	queueCreateInfos := make([]vk.DeviceQueueCreateInfo, 0, len(requests))
	for _, request := range requests {
		queueCreateInfos = append(queueCreateInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: request.Family,
			QueueCount:       uint32(len(request.Priorities)),
			PQueuePriorities: request.Priorities,
		})
	}

	enabledExtensions := d.extensions.EnabledNames()
	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueCreateInfos)),
		PQueueCreateInfos:       queueCreateInfos,
		EnabledExtensionCount:   uint32(len(enabledExtensions)),
		PpEnabledExtensionNames: enabledExtensions,
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{choice.Requirements.Features},
	}

	var handle vk.Device
	if res := vk.CreateDevice(choice.Device, &deviceCreateInfo, ctx.Allocator, &handle); res != vk.Success {
		return nil, fmt.Errorf("failed to create logical device: %s: %s", ResultString(res), ResultDoc(res))
	}
	d.Handle = handle
	core.LogInfo("Logical device created")

	queues := make(map[uint32][]Queue, len(requests))
	for _, request := range requests {
		family := make([]Queue, len(request.Priorities))
		for i := range request.Priorities {
			var queue vk.Queue
			vk.GetDeviceQueue(d.Handle, request.Family, uint32(i), &queue)
			family[i] = Queue{Handle: queue, Family: request.Family}
		}
		queues[request.Family] = family
	}
	d.Queues = choice.Chooser.FillQueues(queues)

	return d, nil
}

// WaitIdle blocks until the device finishes all submitted work.
func (d *Device) WaitIdle() {
	if res := vk.DeviceWaitIdle(d.Handle); res != vk.Success {
		fatalResult("vkDeviceWaitIdle", res)
	}
}

func (d *Device) Destroy() {
	if d.Handle != nil {
		d.WaitIdle()
		vk.DestroyDevice(d.Handle, d.ctx.Allocator)
		d.Handle = nil
		d.Queues = nil
	}
}
