package vkreplay_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/LunarG/VulkanTools-sub014/internal/assert"
	"github.com/LunarG/VulkanTools-sub014/internal/vkreplay"
	"github.com/LunarG/VulkanTools-sub014/internal/wsi"
)

func TestNewLogger(t *testing.T) {
	b := new(bytes.Buffer)
	logger, err := vkreplay.NewLogger(b, "warn")
	assert.OK(t, err)

	logger.Info("hidden")
	logger.Warn("return value mismatch", "call", "vkQueueSubmit")

	assert.False(t, strings.Contains(b.String(), "hidden"))
	assert.Contains(t, b.String(), "return value mismatch")
	assert.Contains(t, b.String(), "call=vkQueueSubmit")
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	_, err := vkreplay.NewLogger(new(bytes.Buffer), "loud")
	assert.True(t, err != nil)
}

func TestOpenDisplay(t *testing.T) {
	for _, name := range []string{"", "headless"} {
		d, err := vkreplay.OpenDisplay(name)
		assert.OK(t, err)
		_, ok := d.(*wsi.Headless)
		assert.True(t, ok)
	}

	_, err := vkreplay.OpenDisplay("wayland")
	unknown := assert.ErrorAs[*wsi.UnknownDisplayError](t, err)
	assert.Equal(t, unknown.Name, "wayland")
}
