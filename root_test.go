package main

import (
	"testing"

	"github.com/LunarG/VulkanTools-sub014/internal/assert"
)

var rootTests = tests{
	"invoking vkreplay without a command prints the introduction message": func(t *testing.T) {
		stdout, stderr, exitCode := runVkreplay(t)
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "vkreplay - Vulkan trace replayer\n")
		assert.Equal(t, stderr, "")
	},

	"show the vkreplay help with the short option": func(t *testing.T) {
		stdout, stderr, exitCode := runVkreplay(t, "-h")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tvkreplay <command> ")
		assert.Equal(t, stderr, "")
	},

	"show the vkreplay help with the long option": func(t *testing.T) {
		stdout, stderr, exitCode := runVkreplay(t, "--help")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tvkreplay <command> ")
		assert.Equal(t, stderr, "")
	},

	"passing an unsupported flag causes a usage error": func(t *testing.T) {
		stdout, stderr, exitCode := runVkreplay(t, "-_")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "vkreplay: flag provided but not defined: -_")
	},
}

var unknownTests = tests{
	"an error is reported when invoking an unknown command": func(t *testing.T) {
		stdout, stderr, exitCode := runVkreplay(t, "whatever")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "vkreplay whatever: unknown command\n")
	},
}

var helpTests = tests{
	"show the usage of a command": func(t *testing.T) {
		stdout, stderr, exitCode := runVkreplay(t, "help", "replay")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tvkreplay replay ")
		assert.Equal(t, stderr, "")
	},

	"calling help without a command shows the list of commands": func(t *testing.T) {
		stdout, _, exitCode := runVkreplay(t, "help")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tvkreplay <command> ")
		assert.Contains(t, stdout, "describe")
	},

	"calling help with an unknown command causes an error": func(t *testing.T) {
		stdout, stderr, exitCode := runVkreplay(t, "help", "whatever")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.Equal(t, stderr, "vkreplay help whatever: unknown command\n")
	},

	"passing an unsupported flag to the command causes an error": func(t *testing.T) {
		_, _, exitCode := runVkreplay(t, "help", "-_")
		assert.Equal(t, exitCode, 2)
	},
}

var versionTests = tests{
	"show the version command help with the short option": func(t *testing.T) {
		stdout, stderr, exitCode := runVkreplay(t, "version", "-h")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tvkreplay version [options]\n")
		assert.Equal(t, stderr, "")
	},

	"the version starts with the prefix vkreplay": func(t *testing.T) {
		stdout, stderr, exitCode := runVkreplay(t, "version")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "vkreplay ")
		assert.NotEqual(t, stdout, "vkreplay \n")
		assert.Contains(t, stdout, "\ntrace formats: 3-4\n")
		assert.Equal(t, stderr, "")
	},

	"passing an unsupported flag to the command causes an error": func(t *testing.T) {
		_, stderr, exitCode := runVkreplay(t, "version", "-_")
		assert.Equal(t, exitCode, 2)
		assert.HasPrefix(t, stderr, "vkreplay version: flag provided but not defined: -_")
	},
}
