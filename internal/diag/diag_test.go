package diag_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/LunarG/VulkanTools-sub014/internal/assert"
	"github.com/LunarG/VulkanTools-sub014/internal/diag"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
)

func newSink(t *testing.T) (*diag.Sink, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	logger := log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
	return diag.NewSink(logger), buf
}

func TestCheck(t *testing.T) {
	tests := []struct {
		scenario  string
		recorded  vkapi.Result
		live      vkapi.Result
		tolerated []vkapi.Result
		mismatch  bool
		lost      bool
	}{
		{scenario: "identical", recorded: vkapi.Success, live: vkapi.Success},
		{scenario: "identical error", recorded: vkapi.ErrorOutOfDeviceMemory, live: vkapi.ErrorOutOfDeviceMemory},
		{scenario: "mismatch", recorded: vkapi.Success, live: vkapi.ErrorOutOfHostMemory, mismatch: true},
		{
			scenario:  "tolerated",
			recorded:  vkapi.Success,
			live:      vkapi.Timeout,
			tolerated: []vkapi.Result{vkapi.NotReady, vkapi.Timeout},
		},
		{scenario: "device lost", recorded: vkapi.Success, live: vkapi.ErrorDeviceLost, lost: true},
		{scenario: "device lost recorded", recorded: vkapi.ErrorDeviceLost, live: vkapi.ErrorDeviceLost, lost: true},
		{
			scenario:  "device lost is never tolerated",
			recorded:  vkapi.Success,
			live:      vkapi.ErrorDeviceLost,
			tolerated: []vkapi.Result{vkapi.ErrorDeviceLost},
			lost:      true,
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			sink, _ := newSink(t)
			err := sink.Check(vkcall.QueueSubmit, 12, test.recorded, test.live, test.tolerated...)
			switch {
			case test.lost:
				e := assert.ErrorAs[*diag.DeviceLostError](t, err)
				assert.Equal(t, e.Index, uint64(12))
				assert.Equal(t, e.Call, vkcall.QueueSubmit)
			case test.mismatch:
				e := assert.ErrorAs[*diag.ReturnValueMismatchError](t, err)
				assert.Equal(t, e.Recorded, test.recorded)
				assert.Equal(t, e.Live, test.live)
				assert.Equal(t, sink.Summary().Mismatches, 1)
			default:
				assert.OK(t, err)
				assert.Equal(t, sink.Summary().Mismatches, 0)
			}
		})
	}
}

func TestPopPending(t *testing.T) {
	sink, buf := newSink(t)
	sink.SetReverseLookup(func(o vkapi.Object) (uint64, bool) {
		if o == vkapi.ObjectOf(vkapi.Buffer(0xbeef)) {
			return 0x42, true
		}
		return 0, false
	})
	assert.Equal(t, sink.PopPending(), diag.Success)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink.Callback(vkapi.DebugMessage{
				Flags:       vkapi.DebugReportWarningBit,
				LayerPrefix: "Validation",
				Message:     "concurrent message",
			})
		}()
	}
	wg.Wait()
	sink.Callback(vkapi.DebugMessage{
		Flags:      vkapi.DebugReportErrorBit,
		ObjectType: vkapi.ObjectTypeBuffer,
		Object:     0xbeef,
		Message:    "buffer is not bound",
	})

	assert.Equal(t, sink.PopPending(), diag.ValidationMessagesPending)
	assert.Equal(t, sink.PopPending(), diag.Success)

	summary := sink.Summary()
	assert.Equal(t, summary.ValidationMessages, 11)
	assert.Equal(t, summary.ValidationErrors, 1)

	output := buf.String()
	assert.Equal(t, strings.Count(output, "concurrent message"), 10)
	assert.Contains(t, output, "buffer is not bound")
	assert.Contains(t, output, "buffer:0x42")
}

func TestRateLimit(t *testing.T) {
	sink, buf := newSink(t)
	sink.SetRateLimit(0.001, 2)
	for i := 0; i < 5; i++ {
		sink.Callback(vkapi.DebugMessage{Flags: vkapi.DebugReportWarningBit, Message: "noisy layer"})
	}
	assert.Equal(t, sink.PopPending(), diag.ValidationMessagesPending)

	summary := sink.Summary()
	assert.Equal(t, summary.ValidationMessages, 5)
	assert.Equal(t, summary.Suppressed, 3)
	assert.Equal(t, strings.Count(buf.String(), "noisy layer"), 2)
}

func TestSkippedCallsAndMismatchesAreAlwaysLogged(t *testing.T) {
	sink, buf := newSink(t)
	sink.SetRateLimit(0.001, 1)
	for i := 0; i < 150; i++ {
		sink.Skipped(vkcall.CmdDispatch, uint64(i), &vkcall.UnknownCallError{ID: 999})
	}
	for i := 0; i < 50; i++ {
		err := sink.Check(vkcall.QueueSubmit, uint64(150+i), vkapi.Success, vkapi.ErrorOutOfHostMemory)
		assert.ErrorAs[*diag.ReturnValueMismatchError](t, err)
	}

	summary := sink.Summary()
	assert.Equal(t, summary.SkippedCalls, 150)
	assert.Equal(t, summary.Mismatches, 50)
	assert.Equal(t, summary.Suppressed, 0)

	output := buf.String()
	assert.Equal(t, strings.Count(output, "call skipped"), 150)
	assert.Equal(t, strings.Count(output, "return value mismatch"), 50)
}
