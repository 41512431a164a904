package core

import "testing"

func TestEventRegisterAndFire(t *testing.T) {
	EventInitialize()
	t.Cleanup(func() { EventShutdown() })

	type listener struct{ calls int }
	l := &listener{}

	ok := EventRegister(EVENT_CODE_RESIZED, l, func(code SystemEventCode, sender, recv interface{}, data EventContext) bool {
		l.calls++
		if data.U32[0] != 1024 || data.U32[1] != 768 {
			t.Errorf("unexpected payload: %v", data.U32)
		}
		return false
	})
	if !ok {
		t.Fatal("registration rejected")
	}
	if EventRegister(EVENT_CODE_RESIZED, l, nil) {
		t.Error("duplicate registration accepted")
	}

	EventFire(EVENT_CODE_RESIZED, nil, EventContext{U32: [4]uint32{1024, 768}})
	if l.calls != 1 {
		t.Errorf("listener called %d times", l.calls)
	}

	if !EventUnregister(EVENT_CODE_RESIZED, l) {
		t.Error("unregister failed")
	}
	EventFire(EVENT_CODE_RESIZED, nil, EventContext{})
	if l.calls != 1 {
		t.Error("listener called after unregister")
	}
}

func TestEventPropagationStops(t *testing.T) {
	EventInitialize()
	t.Cleanup(func() { EventShutdown() })

	type listener struct{ name string }
	first := &listener{"first"}
	second := &listener{"second"}

	calls := []string{}
	EventRegister(EVENT_CODE_APPLICATION_QUIT, first, func(code SystemEventCode, sender, recv interface{}, data EventContext) bool {
		calls = append(calls, "first")
		return true
	})
	EventRegister(EVENT_CODE_APPLICATION_QUIT, second, func(code SystemEventCode, sender, recv interface{}, data EventContext) bool {
		calls = append(calls, "second")
		return false
	})

	EventFire(EVENT_CODE_APPLICATION_QUIT, nil, EventContext{})
	if len(calls) != 1 || calls[0] != "first" {
		t.Errorf("propagation not stopped: %v", calls)
	}
}
