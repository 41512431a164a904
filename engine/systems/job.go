package systems

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/spaghettifunk/aurora/engine/core"
)

// JobTask is a unit of background work. OnStart runs on a worker goroutine;
// OnComplete/OnFailure run on the same worker after it finishes.
type JobTask struct {
	ID         string
	OnStart    func() error
	OnComplete func()
	OnFailure  func(err error)
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
	}
	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				if err := job.OnStart(); err != nil {
					core.LogError("job %s failed: %s", job.ID, err.Error())
					if job.OnFailure != nil {
						job.OnFailure(err)
					}
					continue
				}
				if job.OnComplete != nil {
					job.OnComplete()
				}
			}
		}()
	}
}

// Shutdown drains the queue and stops all workers.
func (js *JobSystem) Shutdown() error {
	close(js.jobQueue)
	js.wg.Wait()
	return nil
}

// Submit queues the job for execution, blocking when the queue is full.
func (js *JobSystem) Submit(jt JobTask) string {
	if jt.ID == "" {
		jt.ID = uuid.NewString()
	}
	js.jobQueue <- jt
	return jt.ID
}

// SubmitNonBlocking queues the job and returns immediately.
func (js *JobSystem) SubmitNonBlocking(jt JobTask) {
	go js.Submit(jt)
}
