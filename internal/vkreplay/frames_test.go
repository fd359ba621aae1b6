package vkreplay_test

import (
	"testing"

	"github.com/LunarG/VulkanTools-sub014/internal/assert"
	"github.com/LunarG/VulkanTools-sub014/internal/vkreplay"
)

func TestParseFrameSet(t *testing.T) {
	tests := []struct {
		in   string
		out  vkreplay.FrameSet
		text string
	}{
		{"", nil, ""},
		{"3", vkreplay.FrameSet{{3, 3}}, "3"},
		{"1,5-10", vkreplay.FrameSet{{1, 1}, {5, 10}}, "1,5-10"},
		{" 2 , 4-4 ", vkreplay.FrameSet{{2, 2}, {4, 4}}, "2,4"},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			set, err := vkreplay.ParseFrameSet(test.in)
			assert.OK(t, err)
			assert.DeepEqual(t, set, test.out)
			assert.Equal(t, set.String(), test.text)
		})
	}
}

func TestParseFrameSetErrors(t *testing.T) {
	for _, in := range []string{"a", "1,,2", "10-1", "1-", "-3"} {
		t.Run(in, func(t *testing.T) {
			_, err := vkreplay.ParseFrameSet(in)
			assert.True(t, err != nil)
		})
	}
}

func TestFrameSetContains(t *testing.T) {
	set, err := vkreplay.ParseFrameSet("1,5-10")
	assert.OK(t, err)
	assert.True(t, set.Contains(1))
	assert.True(t, set.Contains(5))
	assert.True(t, set.Contains(10))
	assert.False(t, set.Contains(0))
	assert.False(t, set.Contains(4))
	assert.False(t, set.Contains(11))
}
