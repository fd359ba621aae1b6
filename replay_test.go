package main

import (
	"testing"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/LunarG/VulkanTools-sub014/internal/assert"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi/vkfake"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
	"github.com/LunarG/VulkanTools-sub014/internal/vkreplay"
	"github.com/LunarG/VulkanTools-sub014/internal/wsi"
)

// useFakeDriver makes the replay command run on driver, and returns the
// replayer configured by the last run.
func useFakeDriver(t *testing.T, driver *vkfake.Driver) **vkreplay.Replayer {
	last := new(*vkreplay.Replayer)
	prev := replayer
	t.Cleanup(func() { replayer = prev })
	replayer = func(r *vkreplay.Replayer) *vkreplay.Replayer {
		r.NewAPI = func(wsi.Display, *log.Logger) (vkapi.API, error) { return driver, nil }
		r.Setenv = func(string, string) error { return nil }
		*last = r
		return r
	}
	return last
}

type report struct {
	Packets           int    `yaml:"packets"`
	SkippedCalls      int    `yaml:"skippedCalls"`
	CompatibilityMode bool   `yaml:"compatibilityMode"`
	Error             string `yaml:"error"`
}

var replayTests = tests{
	"replay a trace and print the report": func(t *testing.T) {
		useFakeDriver(t, vkfake.New(vkfake.Config{}))
		path := writeTrace(t, &vkcall.QueueWaitIdleCall{Queue: 0x40})

		stdout, stderr, exitCode := runVkreplay(t, "replay", "-o", "yaml", path)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stderr, "")

		var r report
		assert.OK(t, yaml.Unmarshal([]byte(stdout), &r))
		assert.Equal(t, r.Packets, 5)
		assert.Equal(t, r.SkippedCalls, 0)
		assert.True(t, r.CompatibilityMode)
		assert.Equal(t, r.Error, "")
	},

	"options override the configuration": func(t *testing.T) {
		last := useFakeDriver(t, vkfake.New(vkfake.Config{Layers: []string{"VK_LAYER_LUNARG_screenshot"}}))
		path := writeTrace(t, &vkcall.QueueWaitIdleCall{Queue: 0x40})

		stdout, _, exitCode := runVkreplay(t, "replay", "--compat=false", "--end", "1", "--gpu", "0", "--screenshot", "1,3-4", "--fence-timeout", "2s", "-o", "yaml", path)
		assert.Equal(t, exitCode, 0)

		var r report
		assert.OK(t, yaml.Unmarshal([]byte(stdout), &r))
		assert.Equal(t, r.Packets, 2)
		assert.False(t, r.CompatibilityMode)

		config := (*last).Config.SessionConfig()
		assert.Equal(t, config.GPU, 0)
		assert.Equal(t, config.ScreenshotFrames, "1,3-4")
		assert.Equal(t, config.FenceTimeout.String(), "2s")
		assert.Equal(t, (*last).EndIndex, uint64(1))
	},

	"a lost device fails the replay": func(t *testing.T) {
		driver := vkfake.New(vkfake.Config{})
		driver.FailOn["QueueWaitIdle"] = vkapi.ErrorDeviceLost
		useFakeDriver(t, driver)
		path := writeTrace(t, &vkcall.QueueWaitIdleCall{Queue: 0x40})

		stdout, stderr, exitCode := runVkreplay(t, "replay", "-o", "yaml", path)
		assert.Equal(t, exitCode, 1)
		assert.Contains(t, stderr, "ERR: vkreplay replay: ")

		var r report
		assert.OK(t, yaml.Unmarshal([]byte(stdout), &r))
		assert.NotEqual(t, r.Error, "")
	},

	"replay without a trace file": func(t *testing.T) {
		_, stderr, exitCode := runVkreplay(t, "replay")
		assert.Equal(t, exitCode, 2)
		assert.HasPrefix(t, stderr, "Expected exactly one trace file as argument")
	},

	"an invalid frame set is a usage error": func(t *testing.T) {
		_, stderr, exitCode := runVkreplay(t, "replay", "--screenshot", "5-1", "trace.vktrace")
		assert.Equal(t, exitCode, 2)
		assert.Contains(t, stderr, "malformed frame set")
	},

	"an invalid log level is a usage error": func(t *testing.T) {
		useFakeDriver(t, vkfake.New(vkfake.Config{}))
		path := writeTrace(t)
		_, _, exitCode := runVkreplay(t, "replay", "--log-level", "loud", path)
		assert.Equal(t, exitCode, 2)
	},

	"an unknown display causes an error": func(t *testing.T) {
		useFakeDriver(t, vkfake.New(vkfake.Config{}))
		path := writeTrace(t)
		_, stderr, exitCode := runVkreplay(t, "replay", "--display", "wayland", path)
		assert.Equal(t, exitCode, 1)
		assert.Contains(t, stderr, `unknown display "wayland"`)
	},
}
