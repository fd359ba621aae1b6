package main

import (
	"encoding/json"
	"testing"

	"github.com/LunarG/VulkanTools-sub014/format"
	"github.com/LunarG/VulkanTools-sub014/internal/assert"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
)

var describeTests = tests{
	"describe a trace in json": func(t *testing.T) {
		path := writeTrace(t, &vkcall.QueueWaitIdleCall{Queue: 0x40}, &vkcall.QueueWaitIdleCall{Queue: 0x40})

		stdout, stderr, exitCode := runVkreplay(t, "describe", "-o", "json", path)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stderr, "")

		var info format.TraceInfo
		assert.OK(t, json.Unmarshal([]byte(stdout), &info))
		assert.Equal(t, info.Path, path)
		assert.Equal(t, info.Packets, 6)
		assert.Equal(t, info.TracerVersion, "1.3.0")
		assert.Equal(t, info.Calls[0], format.CallCount{Call: "vkQueueWaitIdle", Count: 2})
	},

	"describe a trace in text": func(t *testing.T) {
		path := writeTrace(t)

		stdout, _, exitCode := runVkreplay(t, "describe", path)
		assert.Equal(t, exitCode, 0)
		assert.Contains(t, stdout, "Platform:      linux\n")
		assert.Contains(t, stdout, "CALL                        COUNT")
		assert.Contains(t, stdout, "vkEnumeratePhysicalDevices  1")
	},

	"describe without a trace file": func(t *testing.T) {
		stdout, stderr, exitCode := runVkreplay(t, "describe")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "Expected at least one trace file as argument")
	},

	"describe a file which does not exist": func(t *testing.T) {
		_, stderr, exitCode := runVkreplay(t, "describe", t.TempDir()+"/missing.vktrace")
		assert.Equal(t, exitCode, 1)
		assert.HasPrefix(t, stderr, "ERR: vkreplay describe: ")
	},
}
