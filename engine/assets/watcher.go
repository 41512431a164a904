package assets

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/systems"
)

// ShaderWatcher watches a directory of compiled shader binaries and fires a
// EVENT_CODE_SHADER_RELOADED event whenever a .spv file is rewritten. The
// reload itself happens on the job system so the fsnotify goroutine is never
// blocked by loading or event delivery.
type ShaderWatcher struct {
	dir      string
	fsnotify *fsnotify.Watcher
	jobs     *systems.JobSystem
	done     chan struct{}
	isClosed bool
}

func NewShaderWatcher(dir string, jobs *systems.JobSystem) (*ShaderWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	sw := &ShaderWatcher{
		dir:      dir,
		fsnotify: fsWatch,
		jobs:     jobs,
		done:     make(chan struct{}),
	}
	if err := fsWatch.Add(dir); err != nil {
		fsWatch.Close()
		return nil, err
	}
	go sw.start()
	return sw, nil
}

func (sw *ShaderWatcher) start() {
	for {
		select {
		case e := <-sw.fsnotify.Events:
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(e.Name, ".spv") {
				continue
			}
			path := e.Name
			sw.jobs.Submit(systems.JobTask{
				OnStart: func() error {
					name := strings.TrimSuffix(filepath.Base(path), ".spv")
					if _, err := LoadShaderBinary(sw.dir, name); err != nil {
						return err
					}
					core.EventFire(core.EVENT_CODE_SHADER_RELOADED, sw, core.EventContext{S: path})
					return nil
				},
			})

		case e := <-sw.fsnotify.Errors:
			core.LogError(e.Error())

		case <-sw.done:
			sw.fsnotify.Close()
			return
		}
	}
}

func (sw *ShaderWatcher) Close() error {
	if sw.isClosed {
		return errors.New("shader watcher already closed")
	}
	sw.isClosed = true
	close(sw.done)
	return nil
}
