package main

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/LunarG/VulkanTools-sub014/internal/tracefile"
)

const versionUsage = `
Usage:	vkreplay version [options]

   Prints the program version, followed by the range of trace file format
   versions it can replay.

Options:
   -h, --help  Show this usage information
`

func version(ctx context.Context, args []string) error {
	flagSet := newFlagSet("vkreplay version", versionUsage)
	if _, err := parseFlags(flagSet, args); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "vkreplay %s (%s/%s)\n", buildVersion(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(stdout, "trace formats: %d-%d\n", tracefile.MinVersion, tracefile.CurrentVersion)
	return nil
}

// buildVersion is the module version recorded by the go command, or "devel"
// for local builds.
func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "devel"
}
