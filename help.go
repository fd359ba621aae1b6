package main

import (
	"context"
	"fmt"
	"strings"
)

const helpUsage = `
Usage:	vkreplay <command> [options]

Replay Commands:
   replay    Replay the Vulkan calls recorded in a trace file
   describe  Show the header and call statistics of a trace file

Other Commands:
   config    Show or edit the vkreplay configuration
   help      Show usage information about vkreplay commands
   version   Show the vkreplay version information

Global Options:
   -c, --config path  Path to the vkreplay configuration file (overrides VKREPLAYCONFIG)
   -h, --help         Show usage information

For a description of each command, run 'vkreplay help <command>'.`

func help(ctx context.Context, args []string) error {
	flagSet := newFlagSet("vkreplay help", helpUsage)
	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}

	var cmd string
	if len(args) > 0 {
		cmd = args[0]
	}

	var msg string
	switch cmd {
	case "config":
		msg = configUsage
	case "describe":
		msg = describeUsage
	case "help", "":
		msg = helpUsage
	case "replay":
		msg = replayUsage
	case "version":
		msg = versionUsage
	default:
		return usageError("vkreplay help %s: unknown command", cmd)
	}

	fmt.Fprintln(stdout, strings.TrimSpace(msg))
	return nil
}

const unknownCommand = `vkreplay %s: unknown command
For a list of commands available, run 'vkreplay help'.`

func unknown(ctx context.Context, cmd string) error {
	return usageError(unknownCommand, cmd)
}
