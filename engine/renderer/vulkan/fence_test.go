package vulkan

import (
	"sync/atomic"
	"testing"
	"time"

	vk "github.com/goki/vulkan"
)

// testFence builds a fence around injected driver calls so the waiter
// logic can run without a device.
func testFence(status func(vk.Fence) vk.Result, wait func(vk.Fence, uint64) vk.Result) *Fence {
	return &Fence{
		state:    FenceReady,
		handle:   vk.NullFence,
		done:     make(chan vk.Fence, 1),
		name:     "test",
		statusFn: status,
		waitFn:   wait,
		resetFn:  func(vk.Fence) vk.Result { return vk.Success },
	}
}

func TestAwaitSignaledFence(t *testing.T) {
	var waited atomic.Bool
	f := testFence(
		func(vk.Fence) vk.Result { return vk.Success },
		func(vk.Fence, uint64) vk.Result {
			waited.Store(true)
			return vk.Success
		},
	)

	f.Await()

	if waited.Load() {
		t.Error("signaled fence spawned a waiter")
	}
	if f.state != FenceReady {
		t.Errorf("fence in state %s after Await", f.state)
	}
}

func TestAwaitUnsignaledFence(t *testing.T) {
	var waits atomic.Int32
	f := testFence(
		func(vk.Fence) vk.Result { return vk.NotReady },
		func(_ vk.Fence, timeoutNs uint64) vk.Result {
			if timeoutNs != uint64(FencePollPeriod.Nanoseconds()) {
				t.Errorf("unexpected poll timeout %d", timeoutNs)
			}
			// Two poll periods elapse before the fence signals.
			if waits.Add(1) < 3 {
				return vk.Timeout
			}
			return vk.Success
		},
	)

	done := make(chan struct{})
	go func() {
		f.Await()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Await did not return")
	}
	if got := waits.Load(); got != 3 {
		t.Errorf("waiter polled %d times, want 3", got)
	}
	if f.state != FenceReady {
		t.Errorf("fence in state %s after Await", f.state)
	}
}

func TestAwaitReturnsOnShutdown(t *testing.T) {
	defer fenceShutdown.Store(false)

	f := testFence(
		func(vk.Fence) vk.Result { return vk.NotReady },
		func(vk.Fence, uint64) vk.Result {
			// Signal never comes; shutdown is the only way out.
			fenceShutdown.Store(true)
			return vk.Timeout
		},
	)

	done := make(chan struct{})
	go func() {
		f.Await()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Await did not return after shutdown")
	}
}

func TestDebugFenceSurvivesPollAfterShutdown(t *testing.T) {
	defer fenceShutdown.Store(false)

	// In debug mode a wait resolved by shutdown is reported, not fatal.
	f := testFence(
		func(vk.Fence) vk.Result { return vk.NotReady },
		func(vk.Fence, uint64) vk.Result {
			fenceShutdown.Store(true)
			return vk.Timeout
		},
	)
	f.debug = true

	done := make(chan struct{})
	go func() {
		f.Await()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Await did not return after shutdown")
	}
	if f.state != FenceReady {
		t.Errorf("fence in state %s after shutdown", f.state)
	}
}

func TestFenceOwnerOpsPanicWhileWaiting(t *testing.T) {
	ops := map[string]func(*Fence){
		"Reset":    func(f *Fence) { f.Reset() },
		"Handle":   func(f *Fence) { f.Handle() },
		"Signaled": func(f *Fence) { f.Signaled() },
		"Destroy":  func(f *Fence) { f.Destroy() },
	}
	for name, op := range ops {
		f := testFence(nil, nil)
		f.state = FenceWaiting
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s on a waiting fence did not panic", name)
				}
			}()
			op(f)
		}()
	}
}

func TestFenceReset(t *testing.T) {
	var resets atomic.Int32
	f := testFence(
		func(vk.Fence) vk.Result { return vk.Success },
		nil,
	)
	f.resetFn = func(vk.Fence) vk.Result {
		resets.Add(1)
		return vk.Success
	}

	f.Reset()
	if resets.Load() != 1 {
		t.Errorf("reset called %d times, want 1", resets.Load())
	}
}
