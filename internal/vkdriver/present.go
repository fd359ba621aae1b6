package vkdriver

import (
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

func (d *Driver) CreateSurface(instance vkapi.Instance, window vkapi.Window) (vkapi.SurfaceKHR, vkapi.Result) {
	surface, err := window.CreateSurface(vk.Instance(ptr(instance)))
	if err != nil {
		d.logger.Error("creating window surface", "err", err)
		return 0, vkapi.ErrorInitializationFailed
	}
	if surface == 0 {
		return 0, vkapi.ErrorInitializationFailed
	}
	return vkapi.SurfaceKHR(addr(unsafe.Pointer(vk.SurfaceFromPointer(surface)))), vkapi.Success
}

func (d *Driver) DestroySurfaceKHR(instance vkapi.Instance, surface vkapi.SurfaceKHR) {
	vk.DestroySurface(vk.Instance(ptr(instance)), vk.Surface(ptr(surface)), nil)
}

func (d *Driver) GetPhysicalDeviceSurfaceSupportKHR(physicalDevice vkapi.PhysicalDevice, queueFamilyIndex uint32, surface vkapi.SurfaceKHR) (bool, vkapi.Result) {
	var supported vk.Bool32
	r := vk.GetPhysicalDeviceSurfaceSupport(vk.PhysicalDevice(ptr(physicalDevice)), queueFamilyIndex, vk.Surface(ptr(surface)), &supported)
	return supported == vk.True, vkapi.Result(r)
}

func (d *Driver) CreateSwapchainKHR(device vkapi.Device, info *vkapi.SwapchainCreateInfoKHR) (vkapi.SwapchainKHR, vkapi.Result) {
	d.dropChain("vkCreateSwapchainKHR", info.Next)
	createInfo := vk.SwapchainCreateInfo{
		SType:           vk.StructureTypeSwapchainCreateInfo,
		Flags:           vk.SwapchainCreateFlags(info.Flags),
		Surface:         vk.Surface(ptr(info.Surface)),
		MinImageCount:   info.MinImageCount,
		ImageFormat:     vk.Format(info.ImageFormat),
		ImageColorSpace: vk.ColorSpace(info.ImageColorSpace),
		ImageExtent: vk.Extent2D{
			Width:  info.ImageExtent.Width,
			Height: info.ImageExtent.Height,
		},
		ImageArrayLayers:      info.ImageArrayLayers,
		ImageUsage:            vk.ImageUsageFlags(info.ImageUsage),
		ImageSharingMode:      vk.SharingMode(info.ImageSharingMode),
		QueueFamilyIndexCount: uint32(len(info.QueueFamilyIndices)),
		PQueueFamilyIndices:   info.QueueFamilyIndices,
		PreTransform:          vk.SurfaceTransformFlagBits(info.PreTransform),
		CompositeAlpha:        vk.CompositeAlphaFlagBits(info.CompositeAlpha),
		PresentMode:           vk.PresentMode(info.PresentMode),
		Clipped:               bool32(info.Clipped),
		OldSwapchain:          nativeSwapchain(info.OldSwapchain),
	}
	var swapchain vk.Swapchain
	if r := vk.CreateSwapchain(vk.Device(ptr(device)), &createInfo, nil, &swapchain); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	return vkapi.SwapchainKHR(addr(unsafe.Pointer(swapchain))), vkapi.Success
}

func (d *Driver) DestroySwapchainKHR(device vkapi.Device, swapchain vkapi.SwapchainKHR) {
	vk.DestroySwapchain(vk.Device(ptr(device)), nativeSwapchain(swapchain), nil)
}

func (d *Driver) GetSwapchainImagesKHR(device vkapi.Device, swapchain vkapi.SwapchainKHR) ([]vkapi.Image, vkapi.Result) {
	var count uint32
	if r := vk.GetSwapchainImages(vk.Device(ptr(device)), nativeSwapchain(swapchain), &count, nil); r != vk.Success {
		return nil, vkapi.Result(r)
	}
	images := make([]vk.Image, count)
	r := vk.GetSwapchainImages(vk.Device(ptr(device)), nativeSwapchain(swapchain), &count, images)
	if r != vk.Success && r != vk.Incomplete {
		return nil, vkapi.Result(r)
	}
	return convertAll(images[:count], func(i vk.Image) vkapi.Image {
		return vkapi.Image(addr(unsafe.Pointer(i)))
	}), vkapi.Result(r)
}

func (d *Driver) AcquireNextImageKHR(device vkapi.Device, swapchain vkapi.SwapchainKHR, timeout uint64, semaphore vkapi.Semaphore, fence vkapi.Fence) (uint32, vkapi.Result) {
	var index uint32
	r := vk.AcquireNextImage(vk.Device(ptr(device)), nativeSwapchain(swapchain), timeout, nativeSemaphore(semaphore), nativeFence(fence), &index)
	return index, vkapi.Result(r)
}

func (d *Driver) QueuePresentKHR(queue vkapi.Queue, info *vkapi.PresentInfoKHR) vkapi.Result {
	d.dropChain("vkQueuePresentKHR", info.Next)
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: uint32(len(info.WaitSemaphores)),
		PWaitSemaphores:    convertAll(info.WaitSemaphores, nativeSemaphore),
		SwapchainCount:     uint32(len(info.Swapchains)),
		PSwapchains:        convertAll(info.Swapchains, nativeSwapchain),
		PImageIndices:      info.ImageIndices,
	}
	return vkapi.Result(vk.QueuePresent(vk.Queue(ptr(queue)), &presentInfo))
}
