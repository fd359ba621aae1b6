// Package glfwdisplay implements a wsi.Display on top of glfw windows.
package glfwdisplay

import (
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// glfw event handling must run on the main OS thread
	runtime.LockOSThread()
}

const title = "vkreplay"

// Display is a display presenting to a single glfw window.
type Display struct {
	window *glfw.Window
	init   bool
}

func New() *Display { return new(Display) }

func (d *Display) Init(gpu int) error {
	if d.init {
		return nil
	}
	if err := glfw.Init(); err != nil {
		return err
	}
	d.init = true
	return nil
}

// GetInstanceProcAddress returns the loader entry point of the Vulkan
// library that glfw was linked with.
func (d *Display) GetInstanceProcAddress() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

// RequiredInstanceExtensions returns the instance extensions needed to create
// surfaces for glfw windows.
func (d *Display) RequiredInstanceExtensions() []string {
	if d.window == nil {
		return nil
	}
	return d.window.GetRequiredInstanceExtensions()
}

func (d *Display) CreateWindow(width, height uint32) error {
	if d.window != nil {
		d.ResizeWindow(width, height)
		return nil
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	window, err := glfw.CreateWindow(int(width), int(height), title, nil, nil)
	if err != nil {
		return err
	}
	d.window = window
	return nil
}

func (d *Display) ResizeWindow(width, height uint32) {
	if d.window != nil {
		d.window.SetSize(int(width), int(height))
	}
}

func (d *Display) CreateSurface(nativeInstance any) (uintptr, error) {
	if d.window == nil {
		if err := d.CreateWindow(640, 480); err != nil {
			return 0, err
		}
	}
	return d.window.CreateWindowSurface(nativeInstance, nil)
}

func (d *Display) ProcessEvents() bool {
	if d.window == nil {
		return false
	}
	glfw.PollEvents()
	return d.window.ShouldClose()
}

func (d *Display) Close() error {
	if d.window != nil {
		d.window.Destroy()
		d.window = nil
	}
	if d.init {
		glfw.Terminate()
		d.init = false
	}
	return nil
}
