package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
)

func TestResultString(t *testing.T) {
	if got := ResultString(vk.Success); got != "VK_SUCCESS" {
		t.Errorf("got %s", got)
	}
	if got := ResultString(vk.ErrorDeviceLost); got != "VK_ERROR_DEVICE_LOST" {
		t.Errorf("got %s", got)
	}
	if got := ResultString(vk.Result(-9999)); got != "VK_UNKNOWN(-9999)" {
		t.Errorf("got %s", got)
	}
}

func TestResultDoc(t *testing.T) {
	if got := ResultDoc(vk.ErrorOutOfDate); got == "Unknown result code" {
		t.Error("known code has no documentation")
	}
	if got := ResultDoc(vk.Result(-9999)); got != "Unknown result code" {
		t.Errorf("got %s", got)
	}
}

func TestResultIsSuccess(t *testing.T) {
	for _, res := range []vk.Result{vk.Success, vk.NotReady, vk.Timeout, vk.Suboptimal} {
		if !ResultIsSuccess(res) {
			t.Errorf("%s not treated as success", ResultString(res))
		}
	}
	for _, res := range []vk.Result{vk.ErrorDeviceLost, vk.ErrorOutOfDate, vk.ErrorInitializationFailed} {
		if ResultIsSuccess(res) {
			t.Errorf("%s treated as success", ResultString(res))
		}
	}
}
