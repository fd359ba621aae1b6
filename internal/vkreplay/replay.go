package vkreplay

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unsafe"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/LunarG/VulkanTools-sub014/format"
	"github.com/LunarG/VulkanTools-sub014/internal/replay"
	"github.com/LunarG/VulkanTools-sub014/internal/tracefile"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
	"github.com/LunarG/VulkanTools-sub014/internal/vkdriver"
	"github.com/LunarG/VulkanTools-sub014/internal/wsi"
)

// Replayer runs replay sessions over trace files.
type Replayer struct {
	// Config defaults to DefaultConfig.
	Config *Config
	// Logger defaults to the charmbracelet/log default logger.
	Logger *log.Logger
	// Display overrides the display selected by the configuration.
	Display wsi.Display
	// NewAPI creates the live implementation once the display is
	// initialized. Defaults to NewDriver.
	NewAPI func(wsi.Display, *log.Logger) (vkapi.API, error)
	// EndIndex is the index of the last packet to replay, zero for all.
	EndIndex uint64
	// Setenv is passed to the replay sessions.
	Setenv func(key, value string) error
}

// NewDriver loads the Vulkan library and returns the driver calling into it.
// Displays which link with their own loader, like glfw, provide the entry
// point of the library.
func NewDriver(display wsi.Display, logger *log.Logger) (vkapi.API, error) {
	var getInstanceProcAddr unsafe.Pointer
	if loader, ok := display.(interface{ GetInstanceProcAddress() unsafe.Pointer }); ok {
		getInstanceProcAddr = loader.GetInstanceProcAddress()
	}
	return vkdriver.New(getInstanceProcAddr, logger)
}

// Replay replays the trace file at path.
//
// The returned report is non-nil whenever the replay started, including
// when it ended with an error.
func (r *Replayer) Replay(ctx context.Context, path string) (*format.Report, error) {
	store, err := tracefile.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return r.ReplayStore(ctx, path, store)
}

// ReplayStore replays the trace read from store. The name is only used to
// label the report.
func (r *Replayer) ReplayStore(ctx context.Context, name string, store *tracefile.Store) (*format.Report, error) {
	config := r.Config
	if config == nil {
		config = DefaultConfig()
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	newAPI := r.NewAPI
	if newAPI == nil {
		newAPI = NewDriver
	}

	sessionConfig := config.SessionConfig()
	sessionConfig.Logger = logger
	sessionConfig.EndIndex = r.EndIndex
	sessionConfig.Setenv = r.Setenv

	display := r.Display
	if display == nil {
		d, err := OpenDisplay(config.Replay.Display.Or("headless"))
		if err != nil {
			return nil, err
		}
		display = d
	}
	if err := display.Init(max(sessionConfig.GPU, 0)); err != nil {
		return nil, fmt.Errorf("initializing display: %w", err)
	}
	sessionConfig.Display = display

	api, err := newAPI(display, logger)
	if err != nil {
		return nil, errors.Join(err, display.Close())
	}

	report := &format.Report{
		Session:           uuid.New(),
		Trace:             name,
		StartTime:         time.Now(),
		CompatibilityMode: sessionConfig.Compatibility,
	}
	logger.Info("replay started", "session", report.Session, "trace", name)

	session := replay.NewSession(api, store, sessionConfig)
	runErr := session.Run(ctx)
	closeErr := session.Close()

	stats := session.Stats()
	report.Duration = time.Since(report.StartTime)
	report.Packets = int(stats.Packets)
	report.Frames = int(stats.Frames)
	report.SkippedCalls = stats.SkippedCalls
	report.Mismatches = stats.Mismatches
	report.ValidationMessages = stats.ValidationMessages
	if runErr != nil {
		report.Error = runErr.Error()
		logger.Error("replay failed", "session", report.Session, "err", runErr)
	} else {
		logger.Info("replay finished", "session", report.Session, "packets", report.Packets, "frames", report.Frames)
	}
	if closeErr != nil {
		logger.Warn("closing replay session", "err", closeErr)
	}
	return report, runErr
}
