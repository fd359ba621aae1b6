// Package vkreplay is the application layer of the replayer: it loads the
// configuration, selects the display and the live driver, and runs replay
// sessions over trace files.
package vkreplay

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/LunarG/VulkanTools-sub014/internal/print/human"
	"github.com/LunarG/VulkanTools-sub014/internal/replay"
)

const defaultConfigPath = "~/.vkreplay/config.yaml"

// ConfigPath is the path to the vkreplay configuration.
var ConfigPath human.Path = defaultConfigPath

// LoadConfig opens and reads the configuration file.
func LoadConfig() (*Config, error) {
	r, _, err := OpenConfig()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadConfig(r)
}

// OpenConfig opens the configuration file. When the file does not exist, the
// returned reader yields the default configuration.
func OpenConfig() (io.ReadCloser, string, error) {
	path, err := ConfigPath.Resolve()
	if err != nil {
		return nil, path, err
	}
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, path, err
		}
		b, _ := yaml.Marshal(DefaultConfig())
		return io.NopCloser(bytes.NewReader(b)), path, nil
	}
	return f, path, nil
}

// ReadConfig reads and parses configuration. Unknown fields are rejected.
func ReadConfig(r io.Reader) (*Config, error) {
	c := DefaultConfig()
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(c); err != nil && err != io.EOF {
		return nil, err
	}
	return c, nil
}

// DefaultConfig is the default configuration.
func DefaultConfig() *Config {
	c := new(Config)
	c.Replay.CompatibilityMode = NullableValue(true)
	c.Replay.Display = NullableValue("headless")
	c.Log.Level = NullableValue("info")
	return c
}

// Config is vkreplay configuration.
type Config struct {
	Replay struct {
		CompatibilityMode Nullable[bool]           `json:"compatibilityMode" yaml:"compatibilityMode"`
		ScreenshotFrames  Nullable[FrameSet]       `json:"screenshotFrames"  yaml:"screenshotFrames"`
		Display           Nullable[string]         `json:"display"           yaml:"display"`
		GPU               Nullable[int]            `json:"gpu"               yaml:"gpu"`
		FenceTimeout      Nullable[human.Duration] `json:"fenceTimeout"      yaml:"fenceTimeout"`
	} `json:"replay" yaml:"replay"`
	Log struct {
		Level Nullable[string] `json:"level" yaml:"level"`
	} `json:"log" yaml:"log"`
}

// SessionConfig returns the replay session settings derived from c. The
// display and logger of the returned value are left unset.
func (c *Config) SessionConfig() replay.Config {
	config := replay.Config{
		Compatibility: c.Replay.CompatibilityMode.Or(true),
		GPU:           c.Replay.GPU.Or(-1),
		FenceTimeout:  time.Duration(c.Replay.FenceTimeout.Or(0)),
	}
	if frames, ok := c.Replay.ScreenshotFrames.Value(); ok {
		config.ScreenshotFrames = frames.String()
	}
	return config
}
