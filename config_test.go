package main

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/LunarG/VulkanTools-sub014/internal/assert"
)

var configTests = tests{
	"the text output is the configuration file": func(t *testing.T) {
		stdout, stderr, exitCode := runVkreplay(t, "config")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, testConfig)
		assert.Equal(t, stderr, "")
	},

	"the json output merges the configuration with the defaults": func(t *testing.T) {
		stdout, _, exitCode := runVkreplay(t, "config", "-o", "json")
		assert.Equal(t, exitCode, 0)

		var c struct {
			Replay struct {
				CompatibilityMode *bool   `json:"compatibilityMode"`
				Display           string  `json:"display"`
				GPU               *int    `json:"gpu"`
				ScreenshotFrames  *string `json:"screenshotFrames"`
			} `json:"replay"`
			Log struct {
				Level string `json:"level"`
			} `json:"log"`
		}
		assert.OK(t, json.Unmarshal([]byte(stdout), &c))
		assert.True(t, c.Replay.CompatibilityMode != nil && *c.Replay.CompatibilityMode)
		assert.Equal(t, c.Replay.Display, "headless")
		assert.True(t, c.Replay.GPU == nil)
		assert.True(t, c.Replay.ScreenshotFrames == nil)
		assert.Equal(t, c.Log.Level, "error")
	},

	"a missing configuration file shows the default configuration": func(t *testing.T) {
		t.Setenv(configEnv, t.TempDir()+"/missing.yaml")
		stdout, _, exitCode := runVkreplay(t, "config", "-o", "yaml")
		assert.Equal(t, exitCode, 0)
		assert.Contains(t, stdout, "compatibilityMode: true\n")
		assert.Contains(t, stdout, "level: info\n")
	},

	"an invalid configuration file causes an error": func(t *testing.T) {
		path := os.Getenv(configEnv)
		assert.OK(t, os.WriteFile(path, []byte("replay:\n  speed: 2\n"), 0666))
		_, stderr, exitCode := runVkreplay(t, "config", "-o", "json")
		assert.Equal(t, exitCode, 1)
		assert.HasPrefix(t, stderr, "ERR: vkreplay config: ")
	},

	"passing arguments to the command causes an error": func(t *testing.T) {
		_, stderr, exitCode := runVkreplay(t, "config", "whatever")
		assert.Equal(t, exitCode, 2)
		assert.HasPrefix(t, stderr, "vkreplay config: unexpected arguments")
	},

	"passing an unsupported output format causes an error": func(t *testing.T) {
		_, stderr, exitCode := runVkreplay(t, "config", "-o", "xml")
		assert.Equal(t, exitCode, 2)
		assert.Contains(t, stderr, `unsupported output format: "xml"`)
	},
}
