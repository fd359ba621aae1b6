package vkreplay

import (
	"github.com/LunarG/VulkanTools-sub014/internal/wsi"
	"github.com/LunarG/VulkanTools-sub014/internal/wsi/glfwdisplay"
)

// OpenDisplay returns the display registered under name. The empty name
// selects the headless display.
func OpenDisplay(name string) (wsi.Display, error) {
	switch name {
	case "", "headless":
		return new(wsi.Headless), nil
	case "glfw":
		return glfwdisplay.New(), nil
	default:
		return nil, &wsi.UnknownDisplayError{Name: name}
	}
}
