package vulkan

import (
	"errors"
	"testing"
)

func TestNewCommandPoolRejectsUnknownFamily(t *testing.T) {
	// Family validation runs before the driver is involved.
	device := &Device{
		Physical: &PhysicalDeviceChoice{QueueCounts: []uint32{1, 2}},
	}

	_, err := NewCommandPool(device, 2)
	if err == nil {
		t.Fatal("out-of-range family accepted")
	}
	var invalid *InvalidQueueFamilyError
	if !errors.As(err, &invalid) {
		t.Fatalf("wrong error type: %T", err)
	}
	if invalid.Family != 2 || invalid.FamilyCount != 2 {
		t.Errorf("unexpected error fields: %+v", invalid)
	}
	if invalid.Error() == "" {
		t.Error("empty error message")
	}
}
