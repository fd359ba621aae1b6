package main

// Notes on program structure
// --------------------------
//
// vkreplay uses subcommands to invoke specific functionalities of the program.
// Each subcommand is implemented by a function named after the command, in a
// file of the same name (e.g. the "help" command is implemented by the help
// function in help.go).
//
// The usage message for each command is declared by a constant starting with
// the command name and followed by the suffix "Usage". For example, the usage
// message for the "help" command is declared by the constant helpUsage.
//
// The usage message contains a "Usage:	vkreplay <command>" section presenting
// the structure of the command. Note the tabulation separating "Usage:" and
// "vkreplay".
//
// Commands write to the package level stdout and stderr writers so they can be
// exercised in-process by tests.

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/LunarG/VulkanTools-sub014/internal/print/human"
	"github.com/LunarG/VulkanTools-sub014/internal/print/jsonprint"
	"github.com/LunarG/VulkanTools-sub014/internal/print/textprint"
	"github.com/LunarG/VulkanTools-sub014/internal/print/yamlprint"
	"github.com/LunarG/VulkanTools-sub014/internal/stream"
	"github.com/LunarG/VulkanTools-sub014/internal/vkreplay"
)

const rootUsage = `vkreplay - Vulkan trace replayer

   vkreplay re-executes the Vulkan calls recorded in a trace file against the
   driver of the machine it runs on, translating object handles as well as
   memory types and queue families when the GPU differs from the one the trace
   was captured on.

Example:

   $ vkreplay describe cube.vktrace
   ...

   $ vkreplay replay --display glfw cube.vktrace
   ...

For a list of commands available, run 'vkreplay help'.`

// configEnv is the environment variable overriding the default location of
// the configuration file.
const configEnv = "VKREPLAYCONFIG"

// root is the vkreplay entrypoint.
func root(ctx context.Context, args ...string) int {
	var (
		// Secret options, we don't document them since they are only used for
		// development. Since they are not part of the public interface we may
		// remove or change the syntax at any time.
		cpuProfile human.Path
		memProfile human.Path
	)

	if path := os.Getenv(configEnv); path != "" {
		vkreplay.ConfigPath = human.Path(path)
	}

	flagSet := newFlagSet("vkreplay", helpUsage)
	customVar(flagSet, &cpuProfile, "cpuprofile")
	customVar(flagSet, &memProfile, "memprofile")

	if err := flagSet.Parse(args); err != nil {
		return exit("", usageError("vkreplay: %s", err))
	}
	if helpRequested(flagSet) {
		return 0
	}
	if args = flagSet.Args(); len(args) == 0 {
		fmt.Fprintln(stdout, rootUsage)
		return 0
	}

	if cpuProfile != "" {
		f, err := os.Create(string(cpuProfile))
		if err != nil {
			fmt.Fprintf(stderr, "WARN: could not create CPU profile: %s\n", err)
		} else {
			defer f.Close()
			_ = pprof.StartCPUProfile(f)
			defer pprof.StopCPUProfile()
		}
	}

	if memProfile != "" {
		defer func() {
			f, err := os.Create(string(memProfile))
			if err != nil {
				fmt.Fprintf(stderr, "WARN: could not create memory profile: %s\n", err)
				return
			}
			defer f.Close()
			runtime.GC()
			_ = pprof.WriteHeapProfile(f)
		}()
	}

	cmd, args := args[0], args[1:]

	var err error
	switch cmd {
	case "config":
		err = config(ctx, args)
	case "describe":
		err = describe(ctx, args)
	case "help":
		err = help(ctx, args)
	case "replay":
		err = replay(ctx, args)
	case "version":
		err = version(ctx, args)
	default:
		err = unknown(ctx, cmd)
	}
	return exit(cmd, err)
}

func exit(cmd string, err error) int {
	var code exitCode
	var msg usage
	switch {
	case err == nil:
		return 0
	case errors.As(err, &code):
		return int(code)
	case errors.As(err, &msg):
		fmt.Fprintf(stderr, "%s\n", msg)
		return 2
	default:
		fmt.Fprintf(stderr, "ERR: vkreplay %s: %s\n", cmd, err)
		return 1
	}
}

// exitCode is an error type returned from command functions to indicate the
// exit code that should be returned by the program.
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit: %d", e)
}

// usage is an error type returned from command functions to indicate a usage
// error.
//
// Usage errors cause the program to exit with status code 2.
type usage string

func usageError(msg string, args ...any) error {
	return usage(fmt.Sprintf(msg, args...))
}

func (e usage) Error() string {
	return string(e)
}

func setEnum[T ~string](enum *T, typ string, value string, options ...string) error {
	for _, option := range options {
		if option == value {
			*enum = T(option)
			return nil
		}
	}
	return fmt.Errorf("unsupported %s: %q (not one of %s)", typ, value, strings.Join(options, ", "))
}

type outputFormat string

func (o outputFormat) String() string {
	return string(o)
}

func (o *outputFormat) Set(value string) error {
	return setEnum(o, "output format", value, "text", "json", "yaml")
}

// newWriter returns a writer printing values in the given output format.
func newWriter[T any](w io.Writer, output outputFormat) stream.WriteCloser[T] {
	switch output {
	case "json":
		return jsonprint.NewWriter[T](w)
	case "yaml":
		return yamlprint.NewWriter[T](w)
	default:
		return textprint.NewDetailWriter[T](w)
	}
}

func printValue[T any](output outputFormat, value T) error {
	w := newWriter[T](stdout, output)
	_, err := w.Write([]T{value})
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	return err
}

// newFlagSet creates a flag set for a command. The usage message is printed
// when -h or --help is passed.
func newFlagSet(cmd, usage string) *flag.FlagSet {
	flagSet := flag.NewFlagSet(cmd, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.Usage = func() {}
	customVar(flagSet, &helpFlag{usage: strings.TrimSpace(usage)}, "h", "help")
	customVar(flagSet, &vkreplay.ConfigPath, "c", "config")
	return flagSet
}

// helpFlag is the value of the -h and --help options.
type helpFlag struct {
	usage     string
	requested bool
}

func (h *helpFlag) String() string { return strconv.FormatBool(h.requested) }

func (h *helpFlag) Set(value string) (err error) {
	h.requested, err = strconv.ParseBool(value)
	return err
}

func (h *helpFlag) IsBoolFlag() bool { return true }

// helpRequested prints the usage message of the command and returns true if
// -h or --help was passed.
func helpRequested(f *flag.FlagSet) bool {
	h, ok := f.Lookup("h").Value.(*helpFlag)
	if ok && h.requested {
		fmt.Fprintln(stdout, h.usage)
	}
	return ok && h.requested
}

// parseFlags is a greedy parser which consumes all options known to f and
// returns the remaining arguments. It returns exitCode(0) after printing the
// usage message when help was requested.
func parseFlags(f *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := f.Parse(args); err != nil {
			return nil, usageError("%s: %s", f.Name(), err)
		}
		if helpRequested(f) {
			return nil, exitCode(0)
		}
		if args = f.Args(); len(args) == 0 {
			return positional, nil
		}
		i := slices.IndexFunc(args, func(s string) bool {
			return strings.HasPrefix(s, "-")
		})
		if i < 0 {
			i = len(args)
		} else if args[i] == "-" {
			i++
		}
		if i == 0 {
			// the flag set stopped at "--"
			return append(positional, args...), nil
		}
		positional = append(positional, args[:i]...)
		args = args[i:]
	}
}

func boolVar(f *flag.FlagSet, dst *bool, name string, alias ...string) {
	f.BoolVar(dst, name, *dst, "")
	for _, name := range alias {
		f.BoolVar(dst, name, *dst, "")
	}
}

func customVar(f *flag.FlagSet, dst flag.Value, name string, alias ...string) {
	f.Var(dst, name, "")
	for _, name := range alias {
		f.Var(dst, name, "")
	}
}
