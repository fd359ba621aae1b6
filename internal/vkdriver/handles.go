package vkdriver

import (
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

// Replay handles are the native handle values widened to 64 bits. Both
// dispatchable and non-dispatchable handles are pointers on the platforms the
// driver supports, so the conversion is lossless.

func ptr[H vkapi.Handle](h H) unsafe.Pointer { return unsafe.Pointer(uintptr(h)) }

func addr(p unsafe.Pointer) uint64 { return uint64(uintptr(p)) }

func convertAll[From, To any](in []From, fn func(From) To) []To {
	if len(in) == 0 {
		return nil
	}
	out := make([]To, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

func nativeSemaphore(h vkapi.Semaphore) vk.Semaphore {
	return vk.Semaphore(ptr(h))
}

func nativeCommandBuffer(h vkapi.CommandBuffer) vk.CommandBuffer {
	return vk.CommandBuffer(ptr(h))
}

func nativeFence(h vkapi.Fence) vk.Fence {
	return vk.Fence(ptr(h))
}

func nativeSetLayout(h vkapi.DescriptorSetLayout) vk.DescriptorSetLayout {
	return vk.DescriptorSetLayout(ptr(h))
}

func nativeDescriptorSet(h vkapi.DescriptorSet) vk.DescriptorSet {
	return vk.DescriptorSet(ptr(h))
}

func nativeSwapchain(h vkapi.SwapchainKHR) vk.Swapchain {
	return vk.Swapchain(ptr(h))
}

func nativeStrings(list []string) []string {
	return convertAll(list, safeString)
}

// safeString returns s terminated by a NUL byte, as the bindings expect for
// strings passed to the driver.
func safeString(s string) string {
	if len(s) == 0 || s[len(s)-1] != 0 {
		return s + "\x00"
	}
	return s
}

func bool32(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}

// debugObjectType converts a VkDebugReportObjectTypeEXT to an object type.
// The values agree for core objects.
func debugObjectType(t vk.DebugReportObjectType) vkapi.ObjectType {
	switch t {
	case 26:
		return vkapi.ObjectTypeSurfaceKHR
	case 27:
		return vkapi.ObjectTypeSwapchainKHR
	case 28:
		return vkapi.ObjectTypeDebugReportCallbackEXT
	}
	if t > 25 {
		return vkapi.ObjectTypeUnknown
	}
	return vkapi.ObjectType(t)
}

func extent3D(e vkapi.Extent3D) vk.Extent3D {
	return vk.Extent3D{Width: e.Width, Height: e.Height, Depth: e.Depth}
}

func subresourceRange(r vkapi.ImageSubresourceRange) vk.ImageSubresourceRange {
	return vk.ImageSubresourceRange{
		AspectMask:     vk.ImageAspectFlags(r.AspectMask),
		BaseMipLevel:   r.BaseMipLevel,
		LevelCount:     r.LevelCount,
		BaseArrayLayer: r.BaseArrayLayer,
		LayerCount:     r.LayerCount,
	}
}
