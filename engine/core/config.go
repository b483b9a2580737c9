package core

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// SceneConfig holds scene-level tunables loadable from a scene.toml file,
// with sane defaults applied when the file is absent or a field is unset.
type SceneConfig struct {
	// SpectrumTableResolution is R in the R^3 lookup cube (see engine/spectrum).
	SpectrumTableResolution int `toml:"spectrum_table_resolution"`
	// SpectrumTablePath is where the persisted sRGBSpectrumTable.dat lives.
	SpectrumTablePath string `toml:"spectrum_table_path"`
	// AtlasPageSize overrides the atlas page dimension; the default is 4096.
	AtlasPageSize int `toml:"atlas_page_size"`
	// DefaultScatterRate seeds scene.Root.ScatterRate for newly created scenes.
	DefaultScatterRate float32 `toml:"default_scatter_rate"`
}

// DefaultSceneConfig returns the configuration used when no scene.toml is present.
func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		SpectrumTableResolution: 64,
		SpectrumTablePath:       "sRGBSpectrumTable.dat",
		AtlasPageSize:           4096,
		DefaultScatterRate:      0,
	}
}

// LoadSceneConfig reads and unmarshals a scene.toml at path. A missing file
// is not an error: the defaults are returned unchanged. A present-but-
// malformed file is.
func LoadSceneConfig(path string) (*SceneConfig, error) {
	cfg := DefaultSceneConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading scene config %q: %w", path, err)
	}

	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing scene config %q: %w", path, err)
	}
	if cfg.SpectrumTableResolution <= 0 {
		cfg.SpectrumTableResolution = 64
	}
	if cfg.AtlasPageSize <= 0 {
		cfg.AtlasPageSize = 4096
	}
	if cfg.SpectrumTablePath == "" {
		cfg.SpectrumTablePath = "sRGBSpectrumTable.dat"
	}
	return cfg, nil
}
