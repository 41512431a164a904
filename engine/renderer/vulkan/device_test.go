package vulkan

import "testing"

func TestNewDeviceValidatesInputs(t *testing.T) {
	ctx := &Context{}
	choice := &PhysicalDeviceChoice{}
	surface := &Surface{}

	if _, err := NewDevice(nil, choice, surface); err == nil {
		t.Error("nil context accepted")
	}
	if _, err := NewDevice(ctx, nil, surface); err == nil {
		t.Error("nil physical device choice accepted")
	}
	if _, err := NewDevice(ctx, choice, nil); err == nil {
		t.Error("nil surface accepted")
	}
}
