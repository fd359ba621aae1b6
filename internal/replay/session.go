// Package replay implements the call dispatcher of the replayer: the
// component which re-executes the calls recorded in a trace against a live
// implementation, translating handles and hardware specific values on the
// way.
package replay

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/LunarG/VulkanTools-sub014/internal/compat"
	"github.com/LunarG/VulkanTools-sub014/internal/diag"
	"github.com/LunarG/VulkanTools-sub014/internal/remap"
	"github.com/LunarG/VulkanTools-sub014/internal/tracefile"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
	"github.com/LunarG/VulkanTools-sub014/internal/wsi"
)

// Config is the configuration of a replay session.
type Config struct {
	// Compatibility enables the translation of hardware specific values
	// when the replay device differs from the capture device.
	Compatibility bool
	// FenceTimeout bounds the time spent waiting on fences. Zero means that
	// the recorded timeouts are used.
	FenceTimeout time.Duration
	// ScreenshotFrames is the set of frames to capture with the screenshot
	// layer, for example "1,5-10". The layer is not enabled when empty.
	ScreenshotFrames string
	// GPU selects the live physical device that trace physical devices are
	// mapped to. Negative values map them positionally.
	GPU int
	// EndIndex is the index of the last packet to replay. Zero means that
	// the whole trace is replayed.
	EndIndex uint64
	// Display provides windows and surfaces. Defaults to a headless display.
	Display wsi.Display
	// Logger defaults to the charmbracelet/log default logger.
	Logger *log.Logger
	// Setenv sets environment variables read by layers. Defaults to
	// os.Setenv.
	Setenv func(key, value string) error
}

// Stats is the progress of a replay session.
type Stats struct {
	Packets uint64
	Frames  uint64
	diag.Summary
}

// Session replays a trace against a live implementation.
//
// Session values are not safe for concurrent use.
type Session struct {
	api     vkapi.API
	store   *tracefile.Store
	reader  *tracefile.Reader
	order   binary.ByteOrder
	config  Config
	logger  *log.Logger
	display wsi.Display

	table    *remap.Table
	registry *compat.Registry
	sink     *diag.Sink

	// lookahead is the cursor of the portability scanner, distinct from
	// reader so scanning never moves the replay position.
	lookahead *tracefile.Reader

	packet *tracefile.Packet
	id     vkcall.CallID
	index  uint64

	pending        map[vkapi.DeviceMemory]*pendingAllocation
	mapped         map[vkapi.DeviceMemory]mapping
	commandBuffers map[vkapi.CommandBuffer]vkapi.Device
	acquired       map[vkapi.SwapchainKHR]map[uint32]uint32
	callbacks      map[vkapi.Instance]debugCallback

	packets uint64
	frames  uint64
	quit    bool
}

type mapping struct {
	data   []byte
	offset uint64
}

type debugCallback struct {
	instance vkapi.Instance
	callback vkapi.DebugReportCallbackEXT
}

// NewSession creates a session replaying the trace of store on api.
func NewSession(api vkapi.API, store *tracefile.Store, config Config) *Session {
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.Display == nil {
		config.Display = new(wsi.Headless)
	}
	if config.Setenv == nil {
		config.Setenv = os.Setenv
	}
	s := &Session{
		api:            api,
		store:          store,
		reader:         store.NewReader(),
		order:          store.ByteOrder(),
		config:         config,
		logger:         config.Logger,
		display:        config.Display,
		table:          remap.New(),
		sink:           diag.NewSink(config.Logger),
		lookahead:      store.NewReader(),
		pending:        make(map[vkapi.DeviceMemory]*pendingAllocation),
		mapped:         make(map[vkapi.DeviceMemory]mapping),
		commandBuffers: make(map[vkapi.CommandBuffer]vkapi.Device),
		acquired:       make(map[vkapi.SwapchainKHR]map[uint32]uint32),
		callbacks:      make(map[vkapi.Instance]debugCallback),
	}
	s.registry = compat.NewRegistry(config.Compatibility, s.queryCapabilities)
	s.sink.SetReverseLookup(s.table.Reverse)
	return s
}

// Sink returns the diagnostics sink of the session.
func (s *Session) Sink() *diag.Sink { return s.sink }

// Bindings returns the number of virtual handles currently bound.
func (s *Session) Bindings() int { return s.table.Len() }

// Lookup returns the replay handle bound to a virtual handle.
func (s *Session) Lookup(virtual vkapi.Object) (uint64, error) {
	return s.table.Lookup(virtual)
}

// Stats returns the progress of the session.
func (s *Session) Stats() Stats {
	return Stats{
		Packets: s.packets,
		Frames:  s.frames,
		Summary: s.sink.Summary(),
	}
}

// Run replays the packets of the trace until the end of the stream, the end
// index, or a fatal error.
//
// Calls which cannot be replayed are logged and skipped. The errors
// returned are *tracefile.CorruptTraceError, *diag.DeviceLostError, and the
// error of ctx if it is canceled.
func (s *Session) Run(ctx context.Context) error {
	for !s.quit {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := s.reader.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if s.config.EndIndex != 0 && p.Index > s.config.EndIndex {
			return nil
		}
		s.packets++

		if err := s.Replay(p); err != nil {
			if fatal(err) {
				return err
			}
			s.sink.Skipped(vkcall.CallID(p.ID), p.Index, err)
		}
	}
	s.logger.Info("replay interrupted by the window system", "packets", s.packets, "frames", s.frames)
	return nil
}

// Replay decodes and replays a single packet.
func (s *Session) Replay(p *tracefile.Packet) error {
	call, err := vkcall.Decode(p, s.order)
	if err != nil {
		return err
	}
	return s.Dispatch(p, call)
}

// Dispatch replays call, which was decoded from p. The call is not modified.
func (s *Session) Dispatch(p *tracefile.Packet, call vkcall.Call) error {
	s.packet, s.id, s.index = p, call.ID(), p.Index

	err := s.dispatch(call)
	s.sink.PopPending()
	if err != nil && !fatal(err) {
		err = &SkippedCallError{Call: s.id, Index: s.index, Err: err}
	}
	return err
}

// Close releases the resources held by the session on the live
// implementation and closes the display.
func (s *Session) Close() error {
	for virtual, cb := range s.callbacks {
		s.api.DestroyDebugReportCallbackEXT(cb.instance, cb.callback)
		delete(s.callbacks, virtual)
	}
	return s.display.Close()
}

func fatal(err error) bool {
	var corrupt *tracefile.CorruptTraceError
	var lost *diag.DeviceLostError
	return errors.As(err, &corrupt) || errors.As(err, &lost)
}

// check compares the result of a live call with the recorded one. Only the
// loss of the device is returned as an error, divergences are reported to
// the sink.
func (s *Session) check(recorded, live vkapi.Result, tolerated ...vkapi.Result) error {
	return s.checkCall(s.id, s.index, recorded, live, tolerated...)
}

func (s *Session) checkCall(id vkcall.CallID, index uint64, recorded, live vkapi.Result, tolerated ...vkapi.Result) error {
	err := s.sink.Check(id, index, recorded, live, tolerated...)
	var lost *diag.DeviceLostError
	if errors.As(err, &lost) {
		return err
	}
	return nil
}

// bind records the replay handle created for a virtual handle, owned by
// owner.
func bind[P, H vkapi.Handle](s *Session, owner P, virtual, replay H) error {
	if err := remap.Bind(s.table, virtual, replay); err != nil {
		return err
	}
	remap.Own(s.table, owner, virtual)
	return nil
}

// unbind removes a virtual handle and the objects it owns from the session.
func (s *Session) unbind(virtual vkapi.Object) {
	cascade := s.table.Unbind(virtual)
	for _, obj := range append(cascade, virtual) {
		switch obj.Type {
		case vkapi.ObjectTypeDevice:
			s.registry.RemoveDevice(vkapi.Device(obj.Handle))
		case vkapi.ObjectTypeDeviceMemory:
			delete(s.pending, vkapi.DeviceMemory(obj.Handle))
			delete(s.mapped, vkapi.DeviceMemory(obj.Handle))
		case vkapi.ObjectTypeCommandBuffer:
			delete(s.commandBuffers, vkapi.CommandBuffer(obj.Handle))
		case vkapi.ObjectTypeSwapchainKHR:
			delete(s.acquired, vkapi.SwapchainKHR(obj.Handle))
		}
	}
}

// destroy replays the destruction of an object whose parent is an instance
// or a device. The virtual handle is unbound before the live call.
func destroy[P, H vkapi.Handle](s *Session, parent P, virtual H, fn func(P, H)) error {
	p, err := remap.Lookup(s.table, parent)
	if err != nil {
		return err
	}
	h, err := remap.LookupOptional(s.table, virtual)
	if err != nil {
		return err
	}
	s.unbind(vkapi.ObjectOf(virtual))
	fn(p, h)
	return nil
}

// lookupAllOptional is like remap.LookupAll but maps null handles to
// themselves.
func lookupAllOptional[H vkapi.Handle](t *remap.Table, virtual []H) ([]H, error) {
	if virtual == nil {
		return nil, nil
	}
	replay := make([]H, len(virtual))
	for i, h := range virtual {
		r, err := remap.LookupOptional(t, h)
		if err != nil {
			return nil, err
		}
		replay[i] = r
	}
	return replay, nil
}

// remapChain returns a copy of chain where the handles of the extension
// structures are translated. Chains without handles are returned as-is.
func (s *Session) remapChain(chain vkapi.Chain) (vkapi.Chain, error) {
	var remapped vkapi.Chain
	for i, ext := range chain {
		dedicated, ok := ext.(*vkapi.MemoryDedicatedAllocateInfo)
		if !ok {
			continue
		}
		image, err := remap.LookupOptional(s.table, dedicated.Image)
		if err != nil {
			return nil, err
		}
		buffer, err := remap.LookupOptional(s.table, dedicated.Buffer)
		if err != nil {
			return nil, err
		}
		if remapped == nil {
			remapped = append(vkapi.Chain(nil), chain...)
		}
		remapped[i] = &vkapi.MemoryDedicatedAllocateInfo{Image: image, Buffer: buffer}
	}
	if remapped == nil {
		return chain, nil
	}
	return remapped, nil
}

// queryCapabilities builds the capability snapshot of the live physical
// device that a trace physical device is mapped to.
func (s *Session) queryCapabilities(pd vkapi.PhysicalDevice) (*compat.Snapshot, error) {
	live, err := remap.Lookup(s.table, pd)
	if err != nil {
		return nil, err
	}
	props := s.api.GetPhysicalDeviceProperties(live)
	memory := s.api.GetPhysicalDeviceMemoryProperties(live)
	return &compat.Snapshot{
		Properties:    &props,
		Memory:        &memory,
		QueueFamilies: s.api.GetPhysicalDeviceQueueFamilyProperties(live),
	}, nil
}

// SkippedCallError is returned when a call could not be replayed. Replay can
// continue after this error.
type SkippedCallError struct {
	Call  vkcall.CallID
	Index uint64
	Err   error
}

func (e *SkippedCallError) Error() string {
	return fmt.Sprintf("packet %d: %s skipped: %s", e.Index, e.Call, e.Err)
}

func (e *SkippedCallError) Unwrap() error { return e.Err }

// Result is the result code reported for skipped calls.
func (e *SkippedCallError) Result() vkapi.Result { return vkapi.ErrorValidationFailedEXT }
