package main

import (
	"context"

	"github.com/LunarG/VulkanTools-sub014/format"
	"github.com/LunarG/VulkanTools-sub014/internal/stream"
	"github.com/LunarG/VulkanTools-sub014/internal/vkreplay"
)

const describeUsage = `
Usage:	vkreplay describe [options] <trace files...>

   Shows the header of trace files, the GPUs they were captured on, and the
   number of packets recorded for each Vulkan call.

Options:
   -h, --help           Show this usage information
   -o, --output format  Output format, one of: text, json, yaml
`

func describe(ctx context.Context, args []string) error {
	output := outputFormat("text")

	flagSet := newFlagSet("vkreplay describe", describeUsage)
	customVar(flagSet, &output, "o", "output")

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return usageError("Expected at least one trace file as argument")
	}

	w := newWriter[*format.TraceInfo](stdout, output)
	err = describeTraces(ctx, w, args)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	return err
}

func describeTraces(ctx context.Context, w stream.Writer[*format.TraceInfo], paths []string) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		info, err := vkreplay.Describe(path)
		if err != nil {
			return err
		}
		if _, err := w.Write([]*format.TraceInfo{info}); err != nil {
			return err
		}
	}
	return nil
}
