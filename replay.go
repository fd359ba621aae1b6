package main

import (
	"context"
	"flag"

	"github.com/LunarG/VulkanTools-sub014/format"
	"github.com/LunarG/VulkanTools-sub014/internal/print/human"
	"github.com/LunarG/VulkanTools-sub014/internal/vkreplay"
)

const replayUsage = `
Usage:	vkreplay replay [options] <trace file>

   Replays the Vulkan calls recorded in a trace file and prints a summary of
   the session. Options override the values of the configuration file.

Options:
   -c, --config path        Path to the vkreplay configuration file (overrides VKREPLAYCONFIG)
       --compat             Translate memory types and queue families when the GPU differs (default true)
       --display name       Window system used for swapchains, one of: headless, glfw
       --end index          Index of the last packet to replay
       --fence-timeout dur  Maximum time spent waiting on fences (e.g. 5s)
       --gpu index          Replay every trace GPU on this physical device
   -h, --help               Show this usage information
       --log-level level    Log level, one of: debug, info, warn, error
   -o, --output format      Output format of the summary, one of: text, json, yaml
       --screenshot frames  Frames to capture with the screenshot layer (e.g. 1,5-10)
`

// replayer runs replays for the replay command. Tests substitute the live
// driver through its NewAPI field.
var replayer = func(r *vkreplay.Replayer) *vkreplay.Replayer { return r }

func replay(ctx context.Context, args []string) error {
	var (
		compat       = true
		display      string
		endIndex     uint64
		fenceTimeout human.Duration
		gpu          int
		logLevel     string
		output       = outputFormat("text")
		screenshot   vkreplay.FrameSet
	)

	flagSet := newFlagSet("vkreplay replay", replayUsage)
	boolVar(flagSet, &compat, "compat")
	flagSet.StringVar(&display, "display", "", "")
	flagSet.Uint64Var(&endIndex, "end", 0, "")
	customVar(flagSet, &fenceTimeout, "fence-timeout")
	flagSet.IntVar(&gpu, "gpu", 0, "")
	flagSet.StringVar(&logLevel, "log-level", "", "")
	customVar(flagSet, &output, "o", "output")
	customVar(flagSet, &screenshot, "screenshot")

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("Expected exactly one trace file as argument")
	}

	config, err := vkreplay.LoadConfig()
	if err != nil {
		return err
	}
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "compat":
			config.Replay.CompatibilityMode = vkreplay.NullableValue(compat)
		case "display":
			config.Replay.Display = vkreplay.NullableValue(display)
		case "fence-timeout":
			config.Replay.FenceTimeout = vkreplay.NullableValue(fenceTimeout)
		case "gpu":
			config.Replay.GPU = vkreplay.NullableValue(gpu)
		case "log-level":
			config.Log.Level = vkreplay.NullableValue(logLevel)
		case "screenshot":
			config.Replay.ScreenshotFrames = vkreplay.NullableValue(screenshot)
		}
	})

	logger, err := vkreplay.NewLogger(stderr, config.Log.Level.Or("info"))
	if err != nil {
		return usageError("vkreplay replay: %s", err)
	}

	r := replayer(&vkreplay.Replayer{
		Config:   config,
		Logger:   logger,
		EndIndex: endIndex,
	})
	report, err := r.Replay(ctx, args[0])
	if report == nil {
		return err
	}
	if printErr := printValue[*format.Report](output, report); printErr != nil && err == nil {
		err = printErr
	}
	return err
}
