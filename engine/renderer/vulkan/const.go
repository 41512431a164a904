package vulkan

import "time"

// Max number of frames recorded ahead of the GPU.
const MaxFramesInFlight = 2

// How often a fence waiter goroutine wakes up to check for shutdown.
const FencePollPeriod = 100 * time.Millisecond

const engineName = "Aurora Engine"
