package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config treated as error: %v", err)
	}
	if cfg.Application.Width != 800 || cfg.Application.Height != 600 {
		t.Errorf("unexpected default size: %dx%d", cfg.Application.Width, cfg.Application.Height)
	}
	if !cfg.Renderer.Debug {
		t.Error("debug not enabled by default")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aurora.toml")
	content := `
[application]
name = "demo"
width = 1280
height = 720

[renderer]
debug = false
shader_dir = "assets/shaders"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Application.Name != "demo" {
		t.Errorf("name = %s", cfg.Application.Name)
	}
	if cfg.Application.Width != 1280 || cfg.Application.Height != 720 {
		t.Errorf("size = %dx%d", cfg.Application.Width, cfg.Application.Height)
	}
	if cfg.Renderer.Debug {
		t.Error("debug not overridden")
	}
	if cfg.Renderer.ShaderDir != "assets/shaders" {
		t.Errorf("shader_dir = %s", cfg.Renderer.ShaderDir)
	}
	// Untouched keys keep their defaults.
	if !cfg.Renderer.VSync {
		t.Error("vsync default lost")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("[application\nname="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed config accepted")
	}
}
