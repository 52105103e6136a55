// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Render   RenderConfig   `yaml:"render"`
	Study    StudyConfig    `yaml:"study"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// RenderConfig holds the initial compositing parameters. All of these
// can be changed at runtime; the config only seeds them.
type RenderConfig struct {
	Mode         string  `yaml:"mode"`     // volume | mip | surface | raycast
	ColorMap     string  `yaml:"colormap"` // grayscale | hot | cool | bone
	Opacity      float32 `yaml:"opacity"`
	Threshold    float32 `yaml:"threshold"`
	WindowCenter float32 `yaml:"window_center"`
	WindowWidth  float32 `yaml:"window_width"`
}

// StudyConfig points at the slice stack to load on startup.
type StudyConfig struct {
	Manifest string `yaml:"manifest"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
		},
		Render: RenderConfig{
			Mode:         "volume",
			ColorMap:     "grayscale",
			Opacity:      0.5,
			Threshold:    0.1,
			WindowCenter: 0.5,
			WindowWidth:  1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
