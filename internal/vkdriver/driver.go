// Package vkdriver implements vkapi.API on top of the system Vulkan loader.
//
// Extension structures of pNext chains are not forwarded to the loader: the
// bindings copy structures to C memory field by field and cannot carry
// arbitrary chains. Calls with chains are replayed with the base structure
// only, and the driver logs the dropped structure types once per call name.
package vkdriver

import (
	"fmt"
	"unsafe"

	"github.com/charmbracelet/log"
	vk "github.com/goki/vulkan"

	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

// Driver is the live implementation of the replayer. Driver values are not
// safe for concurrent use, but debug callbacks may fire from any goroutine.
type Driver struct {
	logger *log.Logger

	// allocations records the size of device memory objects, needed to map
	// VK_WHOLE_SIZE ranges.
	allocations map[vkapi.DeviceMemory]uint64
	dropped     map[string]bool
}

// New loads the Vulkan entry points. When getInstanceProcAddr is nil the
// system loader library is opened.
func New(getInstanceProcAddr unsafe.Pointer, logger *log.Logger) (*Driver, error) {
	if logger == nil {
		logger = log.Default()
	}
	if getInstanceProcAddr != nil {
		vk.SetGetInstanceProcAddr(getInstanceProcAddr)
	} else if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, fmt.Errorf("loading vulkan library: %w", err)
	}
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("initializing vulkan: %w", err)
	}
	return &Driver{
		logger:      logger,
		allocations: make(map[vkapi.DeviceMemory]uint64),
		dropped:     make(map[string]bool),
	}, nil
}

var _ vkapi.API = (*Driver)(nil)

func (d *Driver) dropChain(call string, chain vkapi.Chain) {
	if len(chain) == 0 || d.dropped[call] {
		return
	}
	d.dropped[call] = true
	types := make([]vkapi.StructureType, len(chain))
	for i, ext := range chain {
		types[i] = ext.StructureType()
	}
	d.logger.Warn("extension structures are not forwarded", "call", call, "types", types)
}

func (d *Driver) CreateInstance(info *vkapi.InstanceCreateInfo) (vkapi.Instance, vkapi.Result) {
	d.dropChain("vkCreateInstance", info.Next)
	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		Flags:                   vk.InstanceCreateFlags(info.Flags),
		EnabledLayerCount:       uint32(len(info.EnabledLayers)),
		PpEnabledLayerNames:     nativeStrings(info.EnabledLayers),
		EnabledExtensionCount:   uint32(len(info.EnabledExtensions)),
		PpEnabledExtensionNames: nativeStrings(info.EnabledExtensions),
	}
	if app := info.ApplicationInfo; app != nil {
		createInfo.PApplicationInfo = &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			PApplicationName:   safeString(app.ApplicationName),
			ApplicationVersion: app.ApplicationVersion,
			PEngineName:        safeString(app.EngineName),
			EngineVersion:      app.EngineVersion,
			ApiVersion:         app.APIVersion,
		}
	}
	var instance vk.Instance
	if r := vk.CreateInstance(&createInfo, nil, &instance); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	if err := vk.InitInstance(instance); err != nil {
		d.logger.Error("loading instance entry points", "err", err)
		vk.DestroyInstance(instance, nil)
		return 0, vkapi.ErrorInitializationFailed
	}
	return vkapi.Instance(addr(unsafe.Pointer(instance))), vkapi.Success
}

func (d *Driver) DestroyInstance(instance vkapi.Instance) {
	vk.DestroyInstance(vk.Instance(ptr(instance)), nil)
}

func (d *Driver) EnumeratePhysicalDevices(instance vkapi.Instance) ([]vkapi.PhysicalDevice, vkapi.Result) {
	var count uint32
	if r := vk.EnumeratePhysicalDevices(vk.Instance(ptr(instance)), &count, nil); r != vk.Success {
		return nil, vkapi.Result(r)
	}
	devices := make([]vk.PhysicalDevice, count)
	r := vk.EnumeratePhysicalDevices(vk.Instance(ptr(instance)), &count, devices)
	if r != vk.Success && r != vk.Incomplete {
		return nil, vkapi.Result(r)
	}
	return convertAll(devices[:count], func(pd vk.PhysicalDevice) vkapi.PhysicalDevice {
		return vkapi.PhysicalDevice(addr(unsafe.Pointer(pd)))
	}), vkapi.Result(r)
}

func (d *Driver) GetPhysicalDeviceProperties(physicalDevice vkapi.PhysicalDevice) vkapi.PhysicalDeviceProperties {
	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(vk.PhysicalDevice(ptr(physicalDevice)), &props)
	props.Deref()
	return vkapi.PhysicalDeviceProperties{
		APIVersion:    props.ApiVersion,
		DriverVersion: props.DriverVersion,
		VendorID:      props.VendorID,
		DeviceID:      props.DeviceID,
		DeviceType:    uint32(props.DeviceType),
		DeviceName:    vk.ToString(props.DeviceName[:]),
	}
}

func (d *Driver) GetPhysicalDeviceMemoryProperties(physicalDevice vkapi.PhysicalDevice) vkapi.PhysicalDeviceMemoryProperties {
	var props vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(vk.PhysicalDevice(ptr(physicalDevice)), &props)
	props.Deref()

	memory := vkapi.PhysicalDeviceMemoryProperties{
		MemoryTypes: make([]vkapi.MemoryType, props.MemoryTypeCount),
		MemoryHeaps: make([]vkapi.MemoryHeap, props.MemoryHeapCount),
	}
	for i := range memory.MemoryTypes {
		props.MemoryTypes[i].Deref()
		memory.MemoryTypes[i] = vkapi.MemoryType{
			PropertyFlags: vkapi.MemoryPropertyFlags(props.MemoryTypes[i].PropertyFlags),
			HeapIndex:     props.MemoryTypes[i].HeapIndex,
		}
	}
	for i := range memory.MemoryHeaps {
		props.MemoryHeaps[i].Deref()
		memory.MemoryHeaps[i] = vkapi.MemoryHeap{
			Size:  uint64(props.MemoryHeaps[i].Size),
			Flags: uint32(props.MemoryHeaps[i].Flags),
		}
	}
	return memory
}

func (d *Driver) GetPhysicalDeviceQueueFamilyProperties(physicalDevice vkapi.PhysicalDevice) []vkapi.QueueFamilyProperties {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(vk.PhysicalDevice(ptr(physicalDevice)), &count, nil)
	families := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(vk.PhysicalDevice(ptr(physicalDevice)), &count, families)

	return convertAll(families[:count], func(f vk.QueueFamilyProperties) vkapi.QueueFamilyProperties {
		f.Deref()
		f.MinImageTransferGranularity.Deref()
		return vkapi.QueueFamilyProperties{
			QueueFlags:         vkapi.QueueFlags(f.QueueFlags),
			QueueCount:         f.QueueCount,
			TimestampValidBits: f.TimestampValidBits,
			MinImageTransferGranularity: vkapi.Extent3D{
				Width:  f.MinImageTransferGranularity.Width,
				Height: f.MinImageTransferGranularity.Height,
				Depth:  f.MinImageTransferGranularity.Depth,
			},
		}
	})
}

func (d *Driver) CreateDevice(physicalDevice vkapi.PhysicalDevice, info *vkapi.DeviceCreateInfo) (vkapi.Device, vkapi.Result) {
	d.dropChain("vkCreateDevice", info.Next)
	queues := convertAll(info.QueueCreateInfos, func(q vkapi.DeviceQueueCreateInfo) vk.DeviceQueueCreateInfo {
		return vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			Flags:            vk.DeviceQueueCreateFlags(q.Flags),
			QueueFamilyIndex: q.QueueFamilyIndex,
			QueueCount:       uint32(len(q.QueuePriorities)),
			PQueuePriorities: q.QueuePriorities,
		}
	})
	createInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		Flags:                   vk.DeviceCreateFlags(info.Flags),
		QueueCreateInfoCount:    uint32(len(queues)),
		PQueueCreateInfos:       queues,
		EnabledLayerCount:       uint32(len(info.EnabledLayers)),
		PpEnabledLayerNames:     nativeStrings(info.EnabledLayers),
		EnabledExtensionCount:   uint32(len(info.EnabledExtensions)),
		PpEnabledExtensionNames: nativeStrings(info.EnabledExtensions),
	}
	var device vk.Device
	if r := vk.CreateDevice(vk.PhysicalDevice(ptr(physicalDevice)), &createInfo, nil, &device); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	return vkapi.Device(addr(unsafe.Pointer(device))), vkapi.Success
}

func (d *Driver) DestroyDevice(device vkapi.Device) {
	vk.DestroyDevice(vk.Device(ptr(device)), nil)
}

func (d *Driver) GetDeviceQueue(device vkapi.Device, queueFamilyIndex, queueIndex uint32) vkapi.Queue {
	var queue vk.Queue
	vk.GetDeviceQueue(vk.Device(ptr(device)), queueFamilyIndex, queueIndex, &queue)
	return vkapi.Queue(addr(unsafe.Pointer(queue)))
}

func (d *Driver) DeviceWaitIdle(device vkapi.Device) vkapi.Result {
	return vkapi.Result(vk.DeviceWaitIdle(vk.Device(ptr(device))))
}

func (d *Driver) QueueWaitIdle(queue vkapi.Queue) vkapi.Result {
	return vkapi.Result(vk.QueueWaitIdle(vk.Queue(ptr(queue))))
}

func (d *Driver) QueueSubmit(queue vkapi.Queue, submits []vkapi.SubmitInfo, fence vkapi.Fence) vkapi.Result {
	infos := convertAll(submits, func(s vkapi.SubmitInfo) vk.SubmitInfo {
		d.dropChain("vkQueueSubmit", s.Next)
		return vk.SubmitInfo{
			SType:                vk.StructureTypeSubmitInfo,
			WaitSemaphoreCount:   uint32(len(s.WaitSemaphores)),
			PWaitSemaphores:      convertAll(s.WaitSemaphores, nativeSemaphore),
			PWaitDstStageMask:    convertAll(s.WaitDstStageMask, func(m uint32) vk.PipelineStageFlags { return vk.PipelineStageFlags(m) }),
			CommandBufferCount:   uint32(len(s.CommandBuffers)),
			PCommandBuffers:      convertAll(s.CommandBuffers, nativeCommandBuffer),
			SignalSemaphoreCount: uint32(len(s.SignalSemaphores)),
			PSignalSemaphores:    convertAll(s.SignalSemaphores, nativeSemaphore),
		}
	})
	return vkapi.Result(vk.QueueSubmit(vk.Queue(ptr(queue)), uint32(len(infos)), infos, nativeFence(fence)))
}

func (d *Driver) AllocateMemory(device vkapi.Device, info *vkapi.MemoryAllocateInfo) (vkapi.DeviceMemory, vkapi.Result) {
	d.dropChain("vkAllocateMemory", info.Next)
	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  vk.DeviceSize(info.AllocationSize),
		MemoryTypeIndex: info.MemoryTypeIndex,
	}
	var memory vk.DeviceMemory
	if r := vk.AllocateMemory(vk.Device(ptr(device)), &allocateInfo, nil, &memory); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	h := vkapi.DeviceMemory(addr(unsafe.Pointer(memory)))
	d.allocations[h] = info.AllocationSize
	return h, vkapi.Success
}

func (d *Driver) FreeMemory(device vkapi.Device, memory vkapi.DeviceMemory) {
	delete(d.allocations, memory)
	vk.FreeMemory(vk.Device(ptr(device)), vk.DeviceMemory(ptr(memory)), nil)
}

func (d *Driver) MapMemory(device vkapi.Device, memory vkapi.DeviceMemory, offset, size uint64, flags uint32) ([]byte, vkapi.Result) {
	if size == vkapi.WholeSize {
		total, ok := d.allocations[memory]
		if !ok || offset > total {
			return nil, vkapi.ErrorMemoryMapFailed
		}
		size = total - offset
	}
	var data unsafe.Pointer
	r := vk.MapMemory(vk.Device(ptr(device)), vk.DeviceMemory(ptr(memory)), vk.DeviceSize(offset), vk.DeviceSize(size), vk.MemoryMapFlags(flags), &data)
	if r != vk.Success {
		return nil, vkapi.Result(r)
	}
	return unsafe.Slice((*byte)(data), size), vkapi.Success
}

func (d *Driver) UnmapMemory(device vkapi.Device, memory vkapi.DeviceMemory) {
	vk.UnmapMemory(vk.Device(ptr(device)), vk.DeviceMemory(ptr(memory)))
}

func (d *Driver) CreateDebugReportCallbackEXT(instance vkapi.Instance, info *vkapi.DebugReportCallbackCreateInfoEXT, callback func(vkapi.DebugMessage)) (vkapi.DebugReportCallbackEXT, vkapi.Result) {
	d.dropChain("vkCreateDebugReportCallbackEXT", info.Next)
	createInfo := vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(info.Flags),
		PfnCallback: func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object, location uint64, messageCode int32, layerPrefix, message string, userData unsafe.Pointer) vk.Bool32 {
			callback(vkapi.DebugMessage{
				Flags:       vkapi.DebugReportFlags(flags),
				ObjectType:  debugObjectType(objectType),
				Object:      object,
				Location:    location,
				MessageCode: messageCode,
				LayerPrefix: layerPrefix,
				Message:     message,
			})
			return vk.False
		},
	}
	var cb vk.DebugReportCallback
	if r := vk.CreateDebugReportCallback(vk.Instance(ptr(instance)), &createInfo, nil, &cb); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	return vkapi.DebugReportCallbackEXT(addr(unsafe.Pointer(cb))), vkapi.Success
}

func (d *Driver) DestroyDebugReportCallbackEXT(instance vkapi.Instance, callback vkapi.DebugReportCallbackEXT) {
	vk.DestroyDebugReportCallback(vk.Instance(ptr(instance)), vk.DebugReportCallback(ptr(callback)), nil)
}
