package systems

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewJobSystemValidation(t *testing.T) {
	if _, err := NewJobSystem(0, 4); !errors.Is(err, ErrNoWorkers) {
		t.Errorf("got %v, want ErrNoWorkers", err)
	}
	if _, err := NewJobSystem(2, -1); !errors.Is(err, ErrNegativeChannelSize) {
		t.Errorf("got %v, want ErrNegativeChannelSize", err)
	}
}

func TestJobSystemRunsJobs(t *testing.T) {
	js, err := NewJobSystem(4, 8)
	if err != nil {
		t.Fatal(err)
	}

	var started, completed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		js.Submit(JobTask{
			OnStart: func() error {
				started.Add(1)
				return nil
			},
			OnComplete: func() {
				completed.Add(1)
				wg.Done()
			},
		})
	}
	wg.Wait()
	if err := js.Shutdown(); err != nil {
		t.Fatal(err)
	}

	if started.Load() != 20 || completed.Load() != 20 {
		t.Errorf("started %d, completed %d, want 20 each", started.Load(), completed.Load())
	}
}

func TestJobSystemFailureCallback(t *testing.T) {
	js, err := NewJobSystem(1, 1)
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	failed := make(chan error, 1)
	js.Submit(JobTask{
		ID:        "failing-job",
		OnStart:   func() error { return boom },
		OnFailure: func(err error) { failed <- err },
		OnComplete: func() {
			t.Error("OnComplete called for a failed job")
		},
	})
	if err := js.Shutdown(); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-failed:
		if !errors.Is(err, boom) {
			t.Errorf("got %v, want boom", err)
		}
	default:
		t.Error("OnFailure not called")
	}
}

func TestSubmitAssignsID(t *testing.T) {
	js, err := NewJobSystem(1, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer js.Shutdown()

	id := js.Submit(JobTask{OnStart: func() error { return nil }})
	if id == "" {
		t.Error("no id assigned")
	}
	if got := js.Submit(JobTask{ID: "stable", OnStart: func() error { return nil }}); got != "stable" {
		t.Errorf("explicit id replaced with %s", got)
	}
}
