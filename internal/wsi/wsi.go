// Package wsi defines the window-system collaborator of the replayer: the
// component providing windows and presentation surfaces for the swapchains
// recorded in traces.
package wsi

import "fmt"

// Display is implemented by window-system backends.
type Display interface {
	// Init prepares the display to present images rendered by the given
	// physical device.
	Init(gpu int) error
	// CreateWindow opens a window of the given size. Creating a window
	// when one is already open resizes it.
	CreateWindow(width, height uint32) error
	ResizeWindow(width, height uint32)
	// CreateSurface creates a presentation surface for the window on the
	// given driver instance and returns its native handle.
	CreateSurface(nativeInstance any) (uintptr, error)
	// ProcessEvents pumps the window-system event queue and reports whether
	// the user requested to quit.
	ProcessEvents() (quit bool)
	Close() error
}

// Headless is a display without windows. It creates null surfaces, which
// only drivers that do not present to a window system accept.
type Headless struct {
	width, height uint32
}

func (d *Headless) Init(gpu int) error { return nil }

func (d *Headless) CreateWindow(width, height uint32) error {
	d.width, d.height = width, height
	return nil
}

func (d *Headless) ResizeWindow(width, height uint32) {
	d.width, d.height = width, height
}

func (d *Headless) CreateSurface(any) (uintptr, error) { return 0, nil }

func (d *Headless) ProcessEvents() bool { return false }

func (d *Headless) Close() error { return nil }

// Size returns the size of the last window created or resized.
func (d *Headless) Size() (width, height uint32) { return d.width, d.height }

// Names lists the names of the available displays.
var Names = []string{"headless", "glfw"}

// UnknownDisplayError is returned when selecting a display which does not
// exist.
type UnknownDisplayError struct {
	Name string
}

func (e *UnknownDisplayError) Error() string {
	return fmt.Sprintf("unknown display %q (available: %q)", e.Name, Names)
}
