// Package diag collects the diagnostics produced while replaying a trace:
// messages delivered by the debug report callback of the live implementation,
// and divergences between recorded and live return codes.
package diag

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
	"golang.org/x/time/rate"

	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
)

// Outcome is the classification of the diagnostics collected during a call.
type Outcome int

const (
	Success Outcome = iota
	ValidationMessagesPending
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case ValidationMessagesPending:
		return "validation messages pending"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Summary is the set of counters accumulated by a Sink.
type Summary struct {
	ValidationMessages int
	ValidationErrors   int
	Mismatches         int
	SkippedCalls       int
	// Suppressed is the number of debug messages left out of the log by rate
	// limiting. They are still counted in ValidationMessages.
	Suppressed int
}

const (
	defaultLogRate  = 50
	defaultLogBurst = 100
)

// Sink receives the diagnostics of a replay session.
//
// Callback may be called from any goroutine, the other methods must be
// called from the goroutine running the replay.
type Sink struct {
	logger  *log.Logger
	limiter *rate.Limiter
	reverse func(vkapi.Object) (uint64, bool)

	mutex   sync.Mutex
	queue   []vkapi.DebugMessage
	summary Summary
}

// NewSink creates a sink logging to logger.
func NewSink(logger *log.Logger) *Sink {
	return &Sink{
		logger:  logger,
		limiter: rate.NewLimiter(defaultLogRate, defaultLogBurst),
	}
}

// SetRateLimit configures the maximum number of debug messages per second
// that the sink logs, with the given burst size. Skipped calls and return
// value mismatches are always logged.
func (s *Sink) SetRateLimit(perSecond float64, burst int) {
	s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// SetReverseLookup installs the function used to translate the replay object
// handles carried by debug messages to the trace handles.
func (s *Sink) SetReverseLookup(reverse func(vkapi.Object) (uint64, bool)) {
	s.reverse = reverse
}

// Callback queues a debug message. It is intended to be installed as the
// debug report callback of the live implementation.
func (s *Sink) Callback(msg vkapi.DebugMessage) {
	s.mutex.Lock()
	s.queue = append(s.queue, msg)
	s.mutex.Unlock()
}

// PopPending logs and discards the queued debug messages.
func (s *Sink) PopPending() Outcome {
	s.mutex.Lock()
	queue := s.queue
	s.queue = nil
	s.mutex.Unlock()

	if len(queue) == 0 {
		return Success
	}
	for _, msg := range queue {
		s.summary.ValidationMessages++
		if msg.Flags&vkapi.DebugReportErrorBit != 0 {
			s.summary.ValidationErrors++
		}
		s.logMessage(msg)
	}
	return ValidationMessagesPending
}

func (s *Sink) logMessage(msg vkapi.DebugMessage) {
	if !s.allow() {
		return
	}
	keyvals := []any{"layer", msg.LayerPrefix, "code", msg.MessageCode}
	if msg.Object != 0 {
		object := vkapi.Object{Type: msg.ObjectType, Handle: msg.Object}
		if s.reverse != nil {
			if virtual, ok := s.reverse(object); ok {
				object.Handle = virtual
			}
		}
		keyvals = append(keyvals, "object", object)
	}
	switch {
	case msg.Flags&vkapi.DebugReportErrorBit != 0:
		s.logger.Error(msg.Message, keyvals...)
	case msg.Flags&(vkapi.DebugReportWarningBit|vkapi.DebugReportPerformanceWarningBit) != 0:
		s.logger.Warn(msg.Message, keyvals...)
	case msg.Flags&vkapi.DebugReportInformationBit != 0:
		s.logger.Info(msg.Message, keyvals...)
	default:
		s.logger.Debug(msg.Message, keyvals...)
	}
}

// Check compares the return code of a live call with the one recorded in the
// trace. Results listed in tolerated are accepted for the call whatever the
// recorded value was.
//
// The method returns a *DeviceLostError when the live call lost the device,
// a *ReturnValueMismatchError when the results diverge, and nil otherwise.
func (s *Sink) Check(call vkcall.CallID, index uint64, recorded, live vkapi.Result, tolerated ...vkapi.Result) error {
	if live == vkapi.ErrorDeviceLost {
		return &DeviceLostError{Call: call, Index: index}
	}
	if live == recorded || slices.Contains(tolerated, live) {
		return nil
	}
	s.summary.Mismatches++
	err := &ReturnValueMismatchError{Call: call, Index: index, Recorded: recorded, Live: live}
	s.logger.Warn("return value mismatch", "call", call, "index", index, "recorded", recorded, "live", live)
	return err
}

// Skipped records that a call was not replayed.
func (s *Sink) Skipped(call vkcall.CallID, index uint64, reason error) {
	s.summary.SkippedCalls++
	s.logger.Warn("call skipped", "call", call, "index", index, "err", reason)
}

func (s *Sink) allow() bool {
	if s.limiter.AllowN(time.Now(), 1) {
		return true
	}
	s.summary.Suppressed++
	return false
}

// Summary returns the counters accumulated since the sink was created.
func (s *Sink) Summary() Summary {
	return s.summary
}

// DeviceLostError is returned when the live implementation reports the loss
// of the device. Replay cannot continue after this error.
type DeviceLostError struct {
	Call  vkcall.CallID
	Index uint64
}

func (e *DeviceLostError) Error() string {
	return fmt.Sprintf("packet %d: %s: device lost", e.Index, e.Call)
}

// ReturnValueMismatchError reports that a live call returned a different
// result than the one recorded in the trace.
type ReturnValueMismatchError struct {
	Call     vkcall.CallID
	Index    uint64
	Recorded vkapi.Result
	Live     vkapi.Result
}

func (e *ReturnValueMismatchError) Error() string {
	return fmt.Sprintf("packet %d: %s returned %s but the trace recorded %s", e.Index, e.Call, e.Live, e.Recorded)
}
