package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config drives renderer startup. Loaded once at boot from a TOML file and
// optionally watched for changes afterwards (see Watcher).
type Config struct {
	Application ApplicationConfig `toml:"application"`
	Renderer    RendererConfig    `toml:"renderer"`
}

type ApplicationConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Width   uint32 `toml:"width"`
	Height  uint32 `toml:"height"`
}

type RendererConfig struct {
	// Enables validation layers and the debug messenger.
	Debug bool `toml:"debug"`
	// Validation layers requested when Debug is set.
	ValidationLayers []string `toml:"validation_layers"`
	// Directory holding compiled SPIR-V shader binaries.
	ShaderDir string `toml:"shader_dir"`
	VSync     bool   `toml:"vsync"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:    "aurora",
			Version: "0.1.0",
			Width:   800,
			Height:  600,
		},
		Renderer: RendererConfig{
			Debug:            true,
			ValidationLayers: []string{"VK_LAYER_KHRONOS_validation"},
			ShaderDir:        "shaders",
			VSync:            true,
		},
	}
}

// Load reads a TOML config file. A missing file is not an error: the
// defaults are returned so the engine can boot without any on-disk config.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
