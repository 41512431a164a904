package vulkan

import (
	"fmt"
	"sync"
	"sync/atomic"

	vk "github.com/goki/vulkan"
	"github.com/google/uuid"
	"github.com/spaghettifunk/aurora/engine/core"
)

// FenceState says who currently holds the fence handle.
type FenceState int

const (
	// FenceReady means the handle is held by the fence itself and can
	// be used, reset or destroyed.
	FenceReady FenceState = iota
	// FenceWaiting means a waiter goroutine owns the handle until the
	// fence signals or fences are shut down.
	FenceWaiting
)

func (s FenceState) String() string {
	switch s {
	case FenceReady:
		return "Ready"
	case FenceWaiting:
		return "Waiting"
	default:
		return fmt.Sprintf("FenceState(%d)", int(s))
	}
}

var fenceShutdown atomic.Bool

// ShutdownFences tells every in-flight fence waiter to stop at its next
// poll tick instead of waiting for a signal that may never come. Called
// once during renderer teardown; there is no way back.
func ShutdownFences() {
	core.LogWarn("Shutting down fences!")
	fenceShutdown.Store(true)
}

func fencesShutDown() bool {
	return fenceShutdown.Load()
}

// Fence wraps a Vulkan fence into something that can be awaited without
// blocking other goroutines on the driver. While an Await is in flight
// the handle belongs to the waiter goroutine; touching the fence from
// its owner during that window is a bug and panics.
type Fence struct {
	mu     sync.Mutex
	state  FenceState
	handle vk.Fence
	done   chan vk.Fence

	name  string
	debug bool

	device *Device

	// Driver calls, swappable in tests.
	statusFn func(vk.Fence) vk.Result
	waitFn   func(vk.Fence, uint64) vk.Result
	resetFn  func(vk.Fence) vk.Result
}

// NewFence creates a fence in the signaled state, so the first frame's
// Await returns immediately.
func NewFence(device *Device) (*Fence, error) {
	createInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}
	var handle vk.Fence
	if res := vk.CreateFence(device.Handle, &createInfo, device.ctx.Allocator, &handle); res != vk.Success {
		return nil, fmt.Errorf("failed to create fence: %s: %s", ResultString(res), ResultDoc(res))
	}

	f := &Fence{
		state:  FenceReady,
		handle: handle,
		done:   make(chan vk.Fence, 1),
		name:   uuid.NewString(),
		debug:  device.ctx.debug,
		device: device,
	}
	f.statusFn = func(h vk.Fence) vk.Result {
		return vk.GetFenceStatus(device.Handle, h)
	}
	f.waitFn = func(h vk.Fence, timeoutNs uint64) vk.Result {
		fences := []vk.Fence{h}
		return vk.WaitForFences(device.Handle, 1, fences, vk.True, timeoutNs)
	}
	f.resetFn = func(h vk.Fence) vk.Result {
		fences := []vk.Fence{h}
		return vk.ResetFences(device.Handle, 1, fences)
	}
	return f, nil
}

// SetName attaches a debug name used in shutdown diagnostics.
func (f *Fence) SetName(name string) {
	f.name = name
}

// Handle returns the raw fence for submission.
func (f *Fence) Handle() vk.Fence {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FenceWaiting {
		panic("fence handle requested while a waiter owns it")
	}
	return f.handle
}

// Signaled reports whether the fence has signaled, without waiting.
func (f *Fence) Signaled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FenceWaiting {
		panic("fence queried while a waiter owns it")
	}
	switch res := f.statusFn(f.handle); res {
	case vk.Success:
		return true
	case vk.NotReady:
		return false
	default:
		fatalResult("vkGetFenceStatus", res)
		return false
	}
}

// Reset returns the fence to the unsignaled state. Must not race an
// in-flight Await.
func (f *Fence) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FenceWaiting {
		panic("fence reset while a waiter owns it")
	}
	if res := f.resetFn(f.handle); res != vk.Success {
		fatalResult("vkResetFences", res)
	}
}

// Await blocks until the fence signals. The cheap path asks the driver
// for the status once; only when the fence is not yet signaled does a
// waiter goroutine take the handle and wait in FencePollPeriod slices,
// checking for shutdown between slices. Await returns without the
// signal having happened only after ShutdownFences.
//
// A fence has a single owner. Await, Reset, Handle and Destroy must all
// be called from that owner, never concurrently.
func (f *Fence) Await() {
	f.mu.Lock()
	if f.state == FenceReady {
		switch res := f.statusFn(f.handle); res {
		case vk.Success:
			f.mu.Unlock()
			return
		case vk.NotReady:
			f.startWaiterLocked()
		default:
			fatalResult("vkGetFenceStatus", res)
		}
	}
	f.mu.Unlock()

	f.join()
	if fencesShutDown() {
		f.reportPolledAfterShutdown()
	}
}

// startWaiterLocked hands the handle to a new waiter goroutine. Caller
// holds f.mu and has seen state Ready.
func (f *Fence) startWaiterLocked() {
	f.state = FenceWaiting
	handle := f.handle
	f.handle = vk.NullFence
	go func() {
		timeoutNs := uint64(FencePollPeriod.Nanoseconds())
		for {
			res := f.waitFn(handle, timeoutNs)
			if res == vk.Success || fencesShutDown() {
				break
			}
			if res != vk.Timeout {
				fatalResult("vkWaitForFences", res)
			}
		}
		f.done <- handle
	}()
}

// join takes the handle back from the waiter, blocking until it hands
// it over.
func (f *Fence) join() {
	handle := <-f.done
	f.mu.Lock()
	f.handle = handle
	f.state = FenceReady
	f.mu.Unlock()
}

func (f *Fence) reportPolledAfterShutdown() {
	if f.debug {
		core.LogError("fence '%s' was awaited after fence shutdown", f.name)
	}
}

// Destroy releases the fence. Must not race an in-flight Await.
func (f *Fence) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FenceWaiting {
		panic("fence destroyed while a waiter owns it")
	}
	if f.handle != vk.NullFence {
		vk.DestroyFence(f.device.Handle, f.handle, f.device.ctx.Allocator)
		f.handle = vk.NullFence
	}
}
