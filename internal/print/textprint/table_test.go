package textprint_test

import (
	"strings"
	"testing"
	"time"

	"github.com/LunarG/VulkanTools-sub014/format"
	"github.com/LunarG/VulkanTools-sub014/internal/assert"
	"github.com/LunarG/VulkanTools-sub014/internal/print/textprint"
	"github.com/LunarG/VulkanTools-sub014/internal/stream"
)

var calls = []format.CallCount{
	{Call: "vkQueueSubmit", Count: 120},
	{Call: "vkCreateBuffer", Count: 4},
	{Call: "vkAllocateMemory", Count: 4},
}

func TestTableWriter(t *testing.T) {
	b := new(strings.Builder)
	w := textprint.NewTableWriter[format.CallCount](b)

	_, err := stream.Copy[format.CallCount](w, stream.NewReader(calls...))
	assert.OK(t, err)
	assert.OK(t, w.Close())

	assert.Equal(t, b.String(), `CALL              COUNT  
vkQueueSubmit     120    
vkCreateBuffer    4      
vkAllocateMemory  4      
`)
}

func TestTableWriterOrderBy(t *testing.T) {
	b := new(strings.Builder)
	w := textprint.NewTableWriter[format.CallCount](b,
		textprint.Header[format.CallCount](false),
		textprint.OrderBy(func(c1, c2 format.CallCount) int {
			return strings.Compare(c1.Call, c2.Call)
		}),
	)

	_, err := w.Write(calls)
	assert.OK(t, err)
	assert.OK(t, w.Close())

	assert.Equal(t, b.String(), `vkAllocateMemory  4    
vkCreateBuffer    4    
vkQueueSubmit     120  
`)
}

func TestDetailWriter(t *testing.T) {
	type summary struct {
		Name   string
		Frames int  `text:"FRAMES"`
		Hidden bool `text:"-"`
		Calls  []format.CallCount
	}

	b := new(strings.Builder)
	w := textprint.NewDetailWriter[summary](b)

	_, err := w.Write([]summary{
		{Name: "cube.vktrace", Frames: 3, Calls: calls[:1]},
		{Name: "empty.vktrace"},
	})
	assert.OK(t, err)
	assert.OK(t, w.Close())

	assert.Equal(t, b.String(), `Name:   cube.vktrace
FRAMES: 3

CALL           COUNT  
vkQueueSubmit  120    

Name:   empty.vktrace
FRAMES: 0
`)
}

func TestDetailWriterValues(t *testing.T) {
	type values struct {
		Compat   bool
		Started  time.Time
		Elapsed  time.Duration
		Tracer   string
		GPU      *int
		Families []uint32
		Ratio    float64
	}

	b := new(strings.Builder)
	w := textprint.NewDetailWriter[*values](b)

	_, err := w.Write([]*values{{
		Compat:  true,
		Elapsed: 1500 * time.Millisecond,
		Ratio:   0.25,
	}, {
		Families: []uint32{0, 2},
	}})
	assert.OK(t, err)
	assert.OK(t, w.Close())

	assert.Equal(t, b.String(), `Compat:   yes
Started:  -
Elapsed:  1.5s
Tracer:   -
GPU:      (none)
Families: -
Ratio:    0.25

Compat:   no
Started:  -
Elapsed:  0s
Tracer:   -
GPU:      (none)
Families: 0, 2
Ratio:    0
`)
}
