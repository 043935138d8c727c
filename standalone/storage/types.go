package storage

// Config represents the harness configuration stored in config.json
type Config struct {
	Version     int               `json:"version"`
	Audio       AudioConfig       `json:"audio"`
	Window      WindowConfig      `json:"window"`
	CoreOptions map[string]string `json:"coreOptions,omitempty"` // core option key -> value
	Controller  map[string]string `json:"controller,omitempty"`  // joypad button name -> pad button name override
	TapeDir     string            `json:"tapeDir,omitempty"`     // last directory a tape was opened from
}

// AudioConfig contains audio-related settings
type AudioConfig struct {
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
}

// WindowConfig contains window size
type WindowConfig struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	Fullscreen bool `json:"fullscreen"`
}

// Minimum window size, twice the Spectrum's bordered picture.
const (
	MinWindowWidth  = 640
	MinWindowHeight = 480
)

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Audio: AudioConfig{
			Volume: 1.0,
			Muted:  false,
		},
		Window: WindowConfig{
			Width:  960,
			Height: 720,
		},
		CoreOptions: map[string]string{},
	}
}
