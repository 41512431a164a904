/*
Demo application that boots the engine, draws a triangle and reacts to
window resizes and shader reloads.
*/
package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/config"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/platform"
	"github.com/spaghettifunk/aurora/engine/renderer/vulkan"
	"github.com/spaghettifunk/aurora/engine/systems"
)

type app struct {
	renderer *vulkan.Renderer
	quit     bool
}

func (a *app) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		a.quit = true
		return true
	case core.EVENT_CODE_RESIZED:
		a.renderer.Resized(data.U32[0], data.U32[1])
	case core.EVENT_CODE_SHADER_RELOADED:
		core.LogInfo("shader %s changed on disk", data.S)
	}
	return false
}

func main() {
	cfg, err := config.Load("aurora.toml")
	if err != nil {
		core.LogFatal("failed to load config: %s", err)
	}

	core.EventInitialize()
	if err := core.MetricsInitialize(); err != nil {
		core.LogFatal("failed to initialize metrics: %s", err)
	}

	p, err := platform.New()
	if err != nil {
		core.LogFatal("failed to create platform: %s", err)
	}
	if err := p.Startup(cfg.Application.Name, cfg.Application.Width, cfg.Application.Height); err != nil {
		core.LogFatal("failed to start platform: %s", err)
	}
	defer p.Shutdown()

	renderer := vulkan.New(p, cfg)
	if err := renderer.Initialize(); err != nil {
		core.LogFatal("failed to initialize renderer: %s", err)
	}
	defer renderer.Shutdown()

	a := &app{renderer: renderer}
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, a, a.onEvent)
	core.EventRegister(core.EVENT_CODE_RESIZED, a, a.onEvent)
	core.EventRegister(core.EVENT_CODE_SHADER_RELOADED, a, a.onEvent)

	jobs, err := systems.NewJobSystem(2, 16)
	if err != nil {
		core.LogFatal("failed to create job system: %s", err)
	}
	defer jobs.Shutdown()

	watcher, err := assets.NewShaderWatcher(cfg.Renderer.ShaderDir, jobs)
	if err != nil {
		core.LogWarn("shader watcher disabled: %s", err)
	} else {
		defer watcher.Close()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
	}()

	clock := core.NewClock()
	clock.Start()
	lastTime := 0.0

	for !a.quit && !p.ShouldClose() {
		p.PumpMessages()

		clock.Update()
		now := clock.Elapsed()
		delta := now - lastTime
		lastTime = now

		if err := renderer.BeginFrame(); err != nil {
			if errors.Is(err, core.ErrSwapchainBooting) {
				continue
			}
			core.LogError("begin frame failed: %s", err)
			break
		}
		if err := renderer.Draw(3); err != nil {
			core.LogError("draw failed: %s", err)
			break
		}
		if err := renderer.EndFrame(); err != nil {
			core.LogError("end frame failed: %s", err)
			break
		}

		core.MetricsUpdate(delta)
	}

	fps, frameTime := core.MetricsFrame()
	core.LogInfo("exiting: %.0f fps, %.2f ms/frame", fps, frameTime)
}
