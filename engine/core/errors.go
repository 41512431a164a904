package core

import (
	"errors"
)

var (
	// ErrSwapchainBooting is returned from a frame when the swapchain is being
	// recreated and the caller should skip rendering this frame.
	ErrSwapchainBooting = errors.New("swapchain resized or recreated, booting")
	ErrNotInitialized   = errors.New("subsystem is not initialized")
)
