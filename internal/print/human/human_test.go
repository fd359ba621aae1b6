package human_test

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/LunarG/VulkanTools-sub014/internal/assert"
	"github.com/LunarG/VulkanTools-sub014/internal/print/human"
)

func TestPath(t *testing.T) {
	t.Setenv("HOME", "/home/replay")

	tests := []struct {
		in  string
		out string
	}{
		{"", ""},
		{"trace.vktrace", "trace.vktrace"},
		{"/tmp/trace.vktrace", "/tmp/trace.vktrace"},
		{"~/.vkreplay/config.yaml", filepath.Join("/home/replay", ".vkreplay", "config.yaml")},
		{"~user/x", "~user/x"},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			var p human.Path
			assert.OK(t, p.Set(test.in))
			assert.Equal(t, p.String(), test.out)
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in  string
		out human.Duration
	}{
		{"0", 0},
		{"250", human.Duration(250 * time.Millisecond)},
		{"1s", human.Duration(time.Second)},
		{"1m30s", human.Duration(90 * time.Second)},
		{"2d", 2 * human.Day},
		{"1w", human.Week},
		{"0.5d", human.Duration(12 * time.Hour)},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			d, err := human.ParseDuration(test.in)
			assert.OK(t, err)
			assert.Equal(t, d, test.out)
		})
	}

	for _, in := range []string{"", "forever", "1x", "d"} {
		_, err := human.ParseDuration(in)
		assert.True(t, err != nil)
	}
}

func TestDurationString(t *testing.T) {
	assert.Equal(t, human.Duration(0).String(), "0s")
	assert.Equal(t, human.Duration(1500*time.Millisecond).String(), "1.5s")
	assert.Equal(t, (3 * human.Day).String(), "3d")
	assert.Equal(t, (2 * human.Week).String(), "2w")
}

func TestDurationEncoding(t *testing.T) {
	type config struct {
		Timeout human.Duration `json:"timeout" yaml:"timeout"`
	}

	var c config
	assert.OK(t, yaml.Unmarshal([]byte("timeout: 10s\n"), &c))
	assert.Equal(t, c.Timeout, human.Duration(10*time.Second))

	b, err := yaml.Marshal(c)
	assert.OK(t, err)
	assert.Equal(t, string(b), "timeout: 10s\n")

	assert.OK(t, json.Unmarshal([]byte(`{"timeout":100}`), &c))
	assert.Equal(t, c.Timeout, human.Duration(100*time.Millisecond))

	b, err = json.Marshal(c)
	assert.OK(t, err)
	assert.Equal(t, string(b), `{"timeout":"100ms"}`)
}

func TestBytes(t *testing.T) {
	tests := []struct {
		in  human.Bytes
		out string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{human.KiB, "1 KiB"},
		{1536, "1.5 KiB"},
		{human.MiB + human.MiB/3, "1.33 MiB"},
		{4 * human.GiB, "4 GiB"},
		{2 * human.TiB, "2 TiB"},
	}
	for _, test := range tests {
		assert.Equal(t, test.in.String(), test.out)
	}
}

func TestPathResolve(t *testing.T) {
	t.Setenv("HOME", "/home/replay")

	p := human.Path("~/.vkreplay/config.yaml")
	path, err := p.Resolve()
	assert.OK(t, err)
	assert.Equal(t, path, filepath.Join("/home/replay", ".vkreplay", "config.yaml"))
	assert.Equal(t, p.String(), "~/.vkreplay/config.yaml")
}
