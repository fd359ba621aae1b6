package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/LunarG/VulkanTools-sub014/internal/vkreplay"
)

const configUsage = `
Usage:	vkreplay config [options]

   Shows the configuration, or the default configuration when the file does
   not exist.

Options:
   -c, --config path    Path to the vkreplay configuration file (overrides VKREPLAYCONFIG)
       --edit           Open $EDITOR to edit the configuration
   -h, --help           Show usage information
   -o, --output format  Output format, one of: text, json, yaml
`

func config(ctx context.Context, args []string) error {
	var (
		edit   bool
		output = outputFormat("text")
	)

	flagSet := newFlagSet("vkreplay config", configUsage)
	boolVar(flagSet, &edit, "edit")
	customVar(flagSet, &output, "o", "output")

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return usageError("vkreplay config: unexpected arguments: %q", args)
	}

	if edit {
		if err := editConfig(); err != nil {
			return err
		}
	}

	if output == "text" {
		// the text form is the file itself, comments included
		r, _, err := vkreplay.OpenConfig()
		if err != nil {
			return err
		}
		defer r.Close()
		_, err = io.Copy(stdout, r)
		return err
	}

	c, err := vkreplay.LoadConfig()
	if err != nil {
		return err
	}
	return printValue(output, c)
}

func editConfig() error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return errors.New(`$EDITOR is not set`)
	}
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	r, path, err := vkreplay.OpenConfig()
	if err != nil {
		return err
	}
	defer r.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return err
		}
	}

	tmp, err := createTempFile(path, r)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	p, err := os.StartProcess(shell, []string{shell, "-c", editor + " " + tmp}, &os.ProcAttr{
		Files: []*os.File{
			0: os.Stdin,
			1: os.Stdout,
			2: os.Stderr,
		},
	})
	if err != nil {
		return err
	}
	if _, err := p.Wait(); err != nil {
		return err
	}

	f, err := os.Open(tmp)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := vkreplay.ReadConfig(f); err != nil {
		return fmt.Errorf("not applying configuration updates because the file has a syntax error: %w", err)
	}
	return os.Rename(tmp, path)
}

func createTempFile(path string, r io.Reader) (string, error) {
	dir, file := filepath.Split(path)
	w, err := os.CreateTemp(dir, "."+file+".*")
	if err != nil {
		return "", err
	}
	defer w.Close()
	_, err = io.Copy(w, r)
	return w.Name(), err
}
