package jsonprint_test

import (
	"bytes"
	"testing"

	"github.com/LunarG/VulkanTools-sub014/format"
	"github.com/LunarG/VulkanTools-sub014/internal/assert"
	"github.com/LunarG/VulkanTools-sub014/internal/print/jsonprint"
)

func TestWriteNothing(t *testing.T) {
	b := new(bytes.Buffer)
	w := jsonprint.NewWriter[format.CallCount](b)
	assert.OK(t, w.Close())
	assert.Equal(t, b.String(), "")
}

func TestWriteValues(t *testing.T) {
	b := new(bytes.Buffer)
	w := jsonprint.NewWriter[format.CallCount](b)
	_, err := w.Write([]format.CallCount{
		{Call: "vkCreateBuffer", Count: 2},
		{Call: "vkQueueSubmit<&>", Count: 1},
	})
	assert.OK(t, err)
	assert.OK(t, w.Close())
	assert.Equal(t, b.String(), `[
  {
    "call": "vkCreateBuffer",
    "count": 2
  },
  {
    "call": "vkQueueSubmit<&>",
    "count": 1
  }
]
`)
}

func TestWriteOneValue(t *testing.T) {
	b := new(bytes.Buffer)
	w := jsonprint.NewWriter[*format.CallCount](b)
	_, err := w.Write([]*format.CallCount{{Call: "vkQueuePresentKHR", Count: 60}})
	assert.OK(t, err)
	assert.Equal(t, b.String(), "")
	assert.OK(t, w.Close())
	assert.Equal(t, b.String(), `{
  "call": "vkQueuePresentKHR",
  "count": 60
}
`)
}
