package replay

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/LunarG/VulkanTools-sub014/internal/compat"
	"github.com/LunarG/VulkanTools-sub014/internal/remap"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
)

const (
	ScreenshotLayer        = "VK_LAYER_LUNARG_screenshot"
	ScreenshotFramesEnv    = "VK_SCREENSHOT_FRAMES"
	DebugReportExtension   = "VK_EXT_debug_report"
	sessionDebugReportMask = vkapi.DebugReportErrorBit | vkapi.DebugReportWarningBit | vkapi.DebugReportPerformanceWarningBit
)

func (s *Session) createInstance(call *vkcall.CreateInstanceCall) error {
	info := call.CreateInfo
	if frames := s.config.ScreenshotFrames; frames != "" {
		if !slices.Contains(info.EnabledLayers, ScreenshotLayer) {
			info.EnabledLayers = append(slices.Clone(info.EnabledLayers), ScreenshotLayer)
		}
		if err := s.config.Setenv(ScreenshotFramesEnv, frames); err != nil {
			return fmt.Errorf("enabling screenshots: %w", err)
		}
	}

	instance, r := s.api.CreateInstance(&info)
	if err := s.check(call.Result, r, vkapi.ErrorLayerNotPresent, vkapi.ErrorExtensionNotPresent); err != nil {
		return err
	}
	if r != vkapi.Success {
		return nil
	}
	if err := remap.Bind(s.table, call.Instance, instance); err != nil {
		return err
	}
	if slices.Contains(info.EnabledExtensions, DebugReportExtension) {
		s.installDebugCallback(call.Instance, instance)
	}
	return nil
}

// installDebugCallback routes the debug messages of a live instance to the
// diagnostics sink.
func (s *Session) installDebugCallback(virtual, instance vkapi.Instance) (vkapi.DebugReportCallbackEXT, bool) {
	if cb, ok := s.callbacks[virtual]; ok {
		return cb.callback, true
	}
	info := &vkapi.DebugReportCallbackCreateInfoEXT{Flags: sessionDebugReportMask}
	callback, r := s.api.CreateDebugReportCallbackEXT(instance, info, s.sink.Callback)
	if r != vkapi.Success {
		s.logger.Warn("debug report callback unavailable", "instance", vkapi.ObjectOf(virtual), "result", r)
		return 0, false
	}
	s.callbacks[virtual] = debugCallback{instance: instance, callback: callback}
	return callback, true
}

func (s *Session) destroyInstance(call *vkcall.DestroyInstanceCall) error {
	instance, err := remap.LookupOptional(s.table, call.Instance)
	if err != nil {
		return err
	}
	if cb, ok := s.callbacks[call.Instance]; ok {
		s.api.DestroyDebugReportCallbackEXT(cb.instance, cb.callback)
		delete(s.callbacks, call.Instance)
	}
	s.unbind(vkapi.ObjectOf(call.Instance))
	s.api.DestroyInstance(instance)
	return nil
}

func (s *Session) enumeratePhysicalDevices(call *vkcall.EnumeratePhysicalDevicesCall) error {
	instance, err := remap.Lookup(s.table, call.Instance)
	if err != nil {
		return err
	}
	devices, r := s.api.EnumeratePhysicalDevices(instance)
	if err := s.check(call.Result, r, vkapi.Success, vkapi.Incomplete); err != nil {
		return err
	}
	if r.Failed() {
		return nil
	}
	for i, pd := range call.PhysicalDevices {
		if pd == 0 || s.table.State(vkapi.ObjectOf(pd)) != remap.Unmapped {
			continue
		}
		live, ok := s.selectPhysicalDevice(devices, i)
		if !ok {
			s.logger.Warn("no live physical device to replay on", "physicalDevice", vkapi.ObjectOf(pd), "available", len(devices))
			continue
		}
		if err := bind(s, call.Instance, pd, live); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) selectPhysicalDevice(devices []vkapi.PhysicalDevice, i int) (vkapi.PhysicalDevice, bool) {
	if gpu := s.config.GPU; gpu >= 0 {
		i = gpu
	}
	if i >= len(devices) {
		return 0, false
	}
	return devices[i], true
}

func (s *Session) getPhysicalDeviceProperties(call *vkcall.GetPhysicalDevicePropertiesCall) error {
	s.registry.RecordProperties(call.PhysicalDevice, call.Properties)
	pd, err := remap.Lookup(s.table, call.PhysicalDevice)
	if err != nil {
		return err
	}
	props := s.api.GetPhysicalDeviceProperties(pd)
	if props.DeviceID != call.Properties.DeviceID || props.VendorID != call.Properties.VendorID {
		s.logger.Debug("replaying on a different device",
			"trace", call.Properties.DeviceName,
			"replay", props.DeviceName)
	}
	return nil
}

func (s *Session) getPhysicalDeviceMemoryProperties(call *vkcall.GetPhysicalDeviceMemoryPropertiesCall) error {
	s.registry.RecordMemoryProperties(call.PhysicalDevice, call.MemoryProperties)
	pd, err := remap.Lookup(s.table, call.PhysicalDevice)
	if err != nil {
		return err
	}
	s.api.GetPhysicalDeviceMemoryProperties(pd)
	return nil
}

func (s *Session) getPhysicalDeviceQueueFamilyProperties(call *vkcall.GetPhysicalDeviceQueueFamilyPropertiesCall) error {
	if call.Properties != nil {
		s.registry.RecordQueueFamilies(call.PhysicalDevice, call.Properties)
	}
	pd, err := remap.Lookup(s.table, call.PhysicalDevice)
	if err != nil {
		return err
	}
	s.api.GetPhysicalDeviceQueueFamilyProperties(pd)
	return nil
}

func (s *Session) createDevice(call *vkcall.CreateDeviceCall) error {
	pd, err := remap.Lookup(s.table, call.PhysicalDevice)
	if err != nil {
		return err
	}
	tr, err := s.registry.Translator(call.PhysicalDevice)
	if err != nil {
		return err
	}
	info := call.CreateInfo
	if !tr.Identity() {
		if info.QueueCreateInfos, err = translateQueueCreateInfos(tr, info.QueueCreateInfos); err != nil {
			return err
		}
	}

	device, r := s.api.CreateDevice(pd, &info)
	if err := s.check(call.Result, r, vkapi.ErrorExtensionNotPresent, vkapi.ErrorFeatureNotPresent); err != nil {
		return err
	}
	if r != vkapi.Success {
		return nil
	}
	if err := bind(s, call.PhysicalDevice, call.Device, device); err != nil {
		return err
	}
	s.registry.AddDevice(call.Device, call.PhysicalDevice)
	return nil
}

// translateQueueCreateInfos translates the queue family indices of the
// queues requested at device creation. Families which translate to the same
// replay family are merged, keeping the larger number of queues.
func translateQueueCreateInfos(tr *compat.Translator, infos []vkapi.DeviceQueueCreateInfo) ([]vkapi.DeviceQueueCreateInfo, error) {
	translated := make([]vkapi.DeviceQueueCreateInfo, 0, len(infos))
	for _, info := range infos {
		family, err := tr.QueueFamilyIndex(info.QueueFamilyIndex)
		if err != nil {
			return nil, err
		}
		i := slices.IndexFunc(translated, func(q vkapi.DeviceQueueCreateInfo) bool {
			return q.QueueFamilyIndex == family
		})
		switch {
		case i < 0:
			info.QueueFamilyIndex = family
			translated = append(translated, info)
		case len(info.QueuePriorities) > len(translated[i].QueuePriorities):
			translated[i].QueuePriorities = info.QueuePriorities
		}
	}
	return translated, nil
}

func (s *Session) destroyDevice(call *vkcall.DestroyDeviceCall) error {
	device, err := remap.LookupOptional(s.table, call.Device)
	if err != nil {
		return err
	}
	s.unbind(vkapi.ObjectOf(call.Device))
	s.api.DestroyDevice(device)
	return nil
}

func (s *Session) getDeviceQueue(call *vkcall.GetDeviceQueueCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	tr, err := s.registry.DeviceTranslator(call.Device)
	if err != nil {
		return err
	}
	family, err := tr.QueueFamilyIndex(call.QueueFamilyIndex)
	if err != nil {
		return err
	}
	queue := s.api.GetDeviceQueue(device, family, call.QueueIndex)
	if s.table.State(vkapi.ObjectOf(call.Queue)) != remap.Unmapped {
		// applications retrieve the same queue several times
		return nil
	}
	return bind(s, call.Device, call.Queue, queue)
}

func (s *Session) deviceWaitIdle(call *vkcall.DeviceWaitIdleCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	return s.check(call.Result, s.api.DeviceWaitIdle(device))
}

func (s *Session) queueWaitIdle(call *vkcall.QueueWaitIdleCall) error {
	queue, err := remap.Lookup(s.table, call.Queue)
	if err != nil {
		return err
	}
	return s.check(call.Result, s.api.QueueWaitIdle(queue))
}

func (s *Session) queueSubmit(call *vkcall.QueueSubmitCall) error {
	queue, err := remap.Lookup(s.table, call.Queue)
	if err != nil {
		return err
	}
	fence, err := remap.LookupOptional(s.table, call.Fence)
	if err != nil {
		return err
	}
	submits := make([]vkapi.SubmitInfo, len(call.Submits))
	for i, submit := range call.Submits {
		if submit.WaitSemaphores, err = remap.LookupAll(s.table, submit.WaitSemaphores); err != nil {
			return err
		}
		if submit.CommandBuffers, err = remap.LookupAll(s.table, submit.CommandBuffers); err != nil {
			return err
		}
		if submit.SignalSemaphores, err = remap.LookupAll(s.table, submit.SignalSemaphores); err != nil {
			return err
		}
		submits[i] = submit
	}
	return s.check(call.Result, s.api.QueueSubmit(queue, submits, fence))
}

func (s *Session) createDebugReportCallback(call *vkcall.CreateDebugReportCallbackEXTCall) error {
	instance, err := remap.Lookup(s.table, call.Instance)
	if err != nil {
		return err
	}
	// Messages are routed to the sink instead of the application callback,
	// which does not exist in the replaying process.
	callback, ok := s.installDebugCallback(call.Instance, instance)
	if !ok {
		return nil
	}
	return bind(s, call.Instance, call.Callback, callback)
}

func (s *Session) destroyDebugReportCallback(call *vkcall.DestroyDebugReportCallbackEXTCall) error {
	if _, err := remap.LookupOptional(s.table, call.Callback); err != nil {
		return err
	}
	s.unbind(vkapi.ObjectOf(call.Callback))
	return nil
}
