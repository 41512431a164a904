package vulkan

import (
	"errors"
	"testing"

	vk "github.com/goki/vulkan"
)

// State checks run before any driver call, so misuse can be tested on a
// buffer that was never allocated.
func testBuffer(state CommandBufferState) *CommandBuffer {
	return &CommandBuffer{state: state}
}

func assertInvalidState(t *testing.T, err error, operation string, state CommandBufferState) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s in state %s did not fail", operation, state)
	}
	var invalid *InvalidCommandBufferStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("wrong error type: %T", err)
	}
	if invalid.Operation != operation || invalid.State != state {
		t.Errorf("unexpected error fields: %+v", invalid)
	}
}

func TestRecordingOpsRequireRecordingState(t *testing.T) {
	cb := testBuffer(CommandBufferStateInitial)

	assertInvalidState(t, cb.CmdDraw(3, 1, 0, 0), "CmdDraw", CommandBufferStateInitial)
	assertInvalidState(t, cb.CmdBeginRenderPass(nil, nil, [4]float32{}), "CmdBeginRenderPass", CommandBufferStateInitial)
	assertInvalidState(t, cb.CmdBindPipeline(nil), "CmdBindPipeline", CommandBufferStateInitial)
	assertInvalidState(t, cb.CmdSetViewport(vk.Viewport{}), "CmdSetViewport", CommandBufferStateInitial)
	assertInvalidState(t, cb.CmdSetScissor(vk.Rect2D{}), "CmdSetScissor", CommandBufferStateInitial)
	assertInvalidState(t, cb.CmdEndRenderPass(), "CmdEndRenderPass", CommandBufferStateInitial)
	assertInvalidState(t, cb.End(), "End", CommandBufferStateInitial)

	if cb.State() != CommandBufferStateInitial {
		t.Errorf("rejected operations changed the state to %s", cb.State())
	}
}

func TestBeginRequiresInitialOrExecutable(t *testing.T) {
	assertInvalidState(t, testBuffer(CommandBufferStateRecording).Begin(), "Begin", CommandBufferStateRecording)
	assertInvalidState(t, testBuffer(CommandBufferStatePending).Begin(), "Begin", CommandBufferStatePending)
	assertInvalidState(t, testBuffer(CommandBufferStateInvalid).Begin(), "Begin", CommandBufferStateInvalid)
}

func TestPendingBufferRejectsRecording(t *testing.T) {
	cb := testBuffer(CommandBufferStatePending)
	assertInvalidState(t, cb.CmdDraw(3, 1, 0, 0), "CmdDraw", CommandBufferStatePending)
	assertInvalidState(t, cb.End(), "End", CommandBufferStatePending)
}

func TestResetRejectedWhileRecording(t *testing.T) {
	assertInvalidState(t, testBuffer(CommandBufferStateRecording).Reset(), "Reset", CommandBufferStateRecording)
}

func TestSubmitRequiresExecutable(t *testing.T) {
	var q Queue
	err := q.Submit(testBuffer(CommandBufferStateRecording), nil, nil, nil, nil)
	assertInvalidState(t, err, "Submit", CommandBufferStateRecording)

	err = q.Submit(testBuffer(CommandBufferStateInitial), nil, nil, nil, nil)
	assertInvalidState(t, err, "Submit", CommandBufferStateInitial)
}

func TestCommandBufferStateString(t *testing.T) {
	states := map[CommandBufferState]string{
		CommandBufferStateInitial:    "Initial",
		CommandBufferStateRecording:  "Recording",
		CommandBufferStateExecutable: "Executable",
		CommandBufferStatePending:    "Pending",
		CommandBufferStateInvalid:    "Invalid",
	}
	for state, want := range states {
		if state.String() != want {
			t.Errorf("got %s, want %s", state.String(), want)
		}
	}
}
