package replay

import (
	"github.com/LunarG/VulkanTools-sub014/internal/remap"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
)

func (s *Session) createSurface(call *vkcall.CreateSurfaceKHRCall) error {
	instance, err := remap.Lookup(s.table, call.Instance)
	if err != nil {
		return err
	}
	if err := s.display.CreateWindow(call.Width, call.Height); err != nil {
		return err
	}
	surface, r := s.api.CreateSurface(instance, s.display)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	return bind(s, call.Instance, call.Surface, surface)
}

func (s *Session) getPhysicalDeviceSurfaceSupport(call *vkcall.GetPhysicalDeviceSurfaceSupportKHRCall) error {
	pd, err := remap.Lookup(s.table, call.PhysicalDevice)
	if err != nil {
		return err
	}
	surface, err := remap.Lookup(s.table, call.Surface)
	if err != nil {
		return err
	}
	tr, err := s.registry.Translator(call.PhysicalDevice)
	if err != nil {
		return err
	}
	family, err := tr.QueueFamilyIndex(call.QueueFamilyIndex)
	if err != nil {
		return err
	}
	supported, r := s.api.GetPhysicalDeviceSurfaceSupportKHR(pd, family, surface)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	if r == vkapi.Success && supported != call.Supported {
		s.logger.Warn("surface support differs from the trace",
			"queueFamily", family,
			"recorded", call.Supported,
			"live", supported)
	}
	return nil
}

func (s *Session) createSwapchain(call *vkcall.CreateSwapchainKHRCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	info := call.CreateInfo
	if info.Surface, err = remap.Lookup(s.table, info.Surface); err != nil {
		return err
	}
	if info.OldSwapchain, err = remap.LookupOptional(s.table, info.OldSwapchain); err != nil {
		return err
	}
	if info.ImageSharingMode == vkapi.SharingModeConcurrent {
		if info.QueueFamilyIndices, err = s.translateQueueFamilies(call.Device, info.QueueFamilyIndices); err != nil {
			return err
		}
	}
	s.display.ResizeWindow(info.ImageExtent.Width, info.ImageExtent.Height)

	swapchain, r := s.api.CreateSwapchainKHR(device, &info)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	return bind(s, call.Device, call.Swapchain, swapchain)
}

func (s *Session) getSwapchainImages(call *vkcall.GetSwapchainImagesKHRCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	swapchain, err := remap.Lookup(s.table, call.Swapchain)
	if err != nil {
		return err
	}
	if call.Images == nil {
		// count query, the images are retrieved by a later call
		return nil
	}
	images, r := s.api.GetSwapchainImagesKHR(device, swapchain)
	if err := s.check(call.Result, r, vkapi.Success, vkapi.Incomplete); err != nil {
		return err
	}
	if len(images) < len(call.Images) {
		s.logger.Warn("swapchain has fewer images than in the trace", "recorded", len(call.Images), "live", len(images))
	}
	for i, virtual := range call.Images {
		if i == len(images) {
			break
		}
		if s.table.State(vkapi.ObjectOf(virtual)) != remap.Unmapped {
			continue
		}
		if err := bind(s, call.Swapchain, virtual, images[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) acquireNextImage(call *vkcall.AcquireNextImageKHRCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	swapchain, err := remap.Lookup(s.table, call.Swapchain)
	if err != nil {
		return err
	}
	semaphore, err := remap.LookupOptional(s.table, call.Semaphore)
	if err != nil {
		return err
	}
	fence, err := remap.LookupOptional(s.table, call.Fence)
	if err != nil {
		return err
	}
	timeout := s.waitTimeout(call.Timeout, call.Result)
	index, r := s.api.AcquireNextImageKHR(device, swapchain, timeout, semaphore, fence)
	if err := s.check(call.Result, r, vkapi.Success, vkapi.Timeout, vkapi.NotReady, vkapi.SuboptimalKHR); err != nil {
		return err
	}
	if r == vkapi.Success || r == vkapi.SuboptimalKHR {
		acquired := s.acquired[call.Swapchain]
		if acquired == nil {
			acquired = make(map[uint32]uint32)
			s.acquired[call.Swapchain] = acquired
		}
		acquired[call.ImageIndex] = index
	}
	return nil
}

func (s *Session) queuePresent(call *vkcall.QueuePresentKHRCall) error {
	queue, err := remap.Lookup(s.table, call.Queue)
	if err != nil {
		return err
	}
	info := call.PresentInfo
	if info.WaitSemaphores, err = remap.LookupAll(s.table, info.WaitSemaphores); err != nil {
		return err
	}
	if info.Swapchains, err = remap.LookupAll(s.table, info.Swapchains); err != nil {
		return err
	}
	if info.ImageIndices != nil {
		info.ImageIndices = make([]uint32, len(call.PresentInfo.ImageIndices))
		for i, index := range call.PresentInfo.ImageIndices {
			if i < len(call.PresentInfo.Swapchains) {
				if live, ok := s.acquired[call.PresentInfo.Swapchains[i]][index]; ok {
					index = live
				}
			}
			info.ImageIndices[i] = index
		}
	}

	r := s.api.QueuePresentKHR(queue, &info)
	if err := s.check(call.Result, r, vkapi.Success, vkapi.SuboptimalKHR, vkapi.ErrorOutOfDateKHR); err != nil {
		return err
	}
	s.frames++
	if s.display.ProcessEvents() {
		s.quit = true
	}
	return nil
}
