// Package vkfake implements vkapi.API in memory. The driver tracks the
// objects it creates, validates their use and reports violations through the
// installed debug report callbacks, which makes it suitable to test the
// replay engine without a GPU.
package vkfake

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

// PhysicalDevice describes a physical device exposed by the driver.
type PhysicalDevice struct {
	Properties    vkapi.PhysicalDeviceProperties
	Memory        vkapi.PhysicalDeviceMemoryProperties
	QueueFamilies []vkapi.QueueFamilyProperties
	// Alignment is the alignment of memory requirements of buffers and
	// images. Defaults to 256.
	Alignment uint64
	// Overhead is added to the size of memory requirements.
	Overhead uint64
	// MemoryTypeBits is the mask of memory types that resources can be bound
	// to. Defaults to all memory types of the device.
	MemoryTypeBits uint32
}

// Config is the configuration of a Driver.
type Config struct {
	PhysicalDevices []PhysicalDevice
	// Layers and Extensions list the instance layers and extensions which can
	// be enabled.
	Layers     []string
	Extensions []string
	// SwapchainImages is the number of images of swapchains. Defaults to 3.
	SwapchainImages int
}

// DefaultPhysicalDevice returns a device with one graphics+compute+transfer
// queue family, a device local memory type and a host visible memory type.
func DefaultPhysicalDevice() PhysicalDevice {
	return PhysicalDevice{
		Properties: vkapi.PhysicalDeviceProperties{
			APIVersion: 1<<22 | 3<<12,
			VendorID:   0x1af4,
			DeviceID:   0x1,
			DeviceType: 4,
			DeviceName: "vkfake",
		},
		Memory: vkapi.PhysicalDeviceMemoryProperties{
			MemoryTypes: []vkapi.MemoryType{
				{PropertyFlags: vkapi.MemoryPropertyDeviceLocalBit, HeapIndex: 0},
				{PropertyFlags: vkapi.MemoryPropertyHostVisibleBit | vkapi.MemoryPropertyHostCoherentBit, HeapIndex: 1},
			},
			MemoryHeaps: []vkapi.MemoryHeap{
				{Size: 1 << 32, Flags: 1},
				{Size: 1 << 30},
			},
		},
		QueueFamilies: []vkapi.QueueFamilyProperties{{
			QueueFlags: vkapi.QueueGraphicsBit | vkapi.QueueComputeBit | vkapi.QueueTransferBit,
			QueueCount: 4,
		}},
	}
}

const firstHandle = 0x7f000000

type memoryObject struct {
	device    vkapi.Device
	typeIndex uint32
	data      []byte
	mapped    bool
}

type resource struct {
	device       vkapi.Device
	requirements vkapi.MemoryRequirements
	memory       vkapi.DeviceMemory
	offset       uint64
}

type swapchain struct {
	images []vkapi.Image
	next   uint32
}

// Driver is an in-memory implementation of vkapi.API.
//
// Driver values are not safe for concurrent use.
type Driver struct {
	// FailOn maps API method names to results returned instead of executing
	// the method.
	FailOn map[string]vkapi.Result
	// Calls is the list of API methods called on the driver, in order.
	Calls []string
	// Instances records the create info of instances, keyed by handle.
	Instances map[vkapi.Instance]*vkapi.InstanceCreateInfo
	// WaitTimeouts records the timeouts passed to WaitForFences.
	WaitTimeouts []uint64

	config      Config
	handle      uint64
	live        map[vkapi.Object]struct{}
	physical    map[vkapi.PhysicalDevice]*PhysicalDevice
	enumerated  map[vkapi.Instance][]vkapi.PhysicalDevice
	devices     map[vkapi.Device]*PhysicalDevice
	queues      map[[3]uint64]vkapi.Queue
	memory      map[vkapi.DeviceMemory]*memoryObject
	buffers     map[vkapi.Buffer]*resource
	images      map[vkapi.Image]*resource
	fences      map[vkapi.Fence]bool
	pools       map[vkapi.Object][]uint64
	swapchains  map[vkapi.SwapchainKHR]*swapchain
	callbacks   map[vkapi.DebugReportCallbackEXT]func(vkapi.DebugMessage)
	callbackIDs []vkapi.DebugReportCallbackEXT
}

// New creates a driver exposing the physical devices of config. A driver
// configured without devices exposes DefaultPhysicalDevice.
func New(config Config) *Driver {
	if len(config.PhysicalDevices) == 0 {
		config.PhysicalDevices = []PhysicalDevice{DefaultPhysicalDevice()}
	}
	if config.SwapchainImages == 0 {
		config.SwapchainImages = 3
	}
	for i := range config.PhysicalDevices {
		pd := &config.PhysicalDevices[i]
		if pd.Alignment == 0 {
			pd.Alignment = 256
		}
		if pd.MemoryTypeBits == 0 {
			pd.MemoryTypeBits = uint32(1)<<len(pd.Memory.MemoryTypes) - 1
		}
	}
	return &Driver{
		FailOn:     make(map[string]vkapi.Result),
		Instances:  make(map[vkapi.Instance]*vkapi.InstanceCreateInfo),
		config:     config,
		handle:     firstHandle,
		live:       make(map[vkapi.Object]struct{}),
		physical:   make(map[vkapi.PhysicalDevice]*PhysicalDevice),
		enumerated: make(map[vkapi.Instance][]vkapi.PhysicalDevice),
		devices:    make(map[vkapi.Device]*PhysicalDevice),
		queues:     make(map[[3]uint64]vkapi.Queue),
		memory:     make(map[vkapi.DeviceMemory]*memoryObject),
		buffers:    make(map[vkapi.Buffer]*resource),
		images:     make(map[vkapi.Image]*resource),
		fences:     make(map[vkapi.Fence]bool),
		pools:      make(map[vkapi.Object][]uint64),
		swapchains: make(map[vkapi.SwapchainKHR]*swapchain),
		callbacks:  make(map[vkapi.DebugReportCallbackEXT]func(vkapi.DebugMessage)),
	}
}

// Live returns the number of live objects of the given type.
func (d *Driver) Live(t vkapi.ObjectType) int {
	n := 0
	for obj := range d.live {
		if obj.Type == t {
			n++
		}
	}
	return n
}

// Exists reports whether the object is live.
func (d *Driver) Exists(obj vkapi.Object) bool {
	_, ok := d.live[obj]
	return ok
}

// MemoryAllocation returns the size and type index of a memory object.
func (d *Driver) MemoryAllocation(memory vkapi.DeviceMemory) (size uint64, typeIndex uint32, ok bool) {
	m := d.memory[memory]
	if m == nil {
		return 0, 0, false
	}
	return uint64(len(m.data)), m.typeIndex, true
}

// MemoryContent returns the content of a memory object.
func (d *Driver) MemoryContent(memory vkapi.DeviceMemory) []byte {
	if m := d.memory[memory]; m != nil {
		return m.data
	}
	return nil
}

// BufferBinding returns the memory object and offset that a buffer is bound
// to.
func (d *Driver) BufferBinding(buffer vkapi.Buffer) (vkapi.DeviceMemory, uint64) {
	if b := d.buffers[buffer]; b != nil {
		return b.memory, b.offset
	}
	return 0, 0
}

// Message emits a debug message to the installed callbacks, as if it had
// been produced by a validation layer.
func (d *Driver) Message(flags vkapi.DebugReportFlags, obj vkapi.Object, msg string) {
	for _, id := range d.callbackIDs {
		d.callbacks[id](vkapi.DebugMessage{
			Flags:       flags,
			ObjectType:  obj.Type,
			Object:      obj.Handle,
			LayerPrefix: "vkfake",
			Message:     msg,
		})
	}
}

func (d *Driver) call(method string) (vkapi.Result, bool) {
	d.Calls = append(d.Calls, method)
	r, ok := d.FailOn[method]
	return r, ok
}

func (d *Driver) invalid(obj vkapi.Object, format string, args ...any) vkapi.Result {
	d.Message(vkapi.DebugReportErrorBit, obj, fmt.Sprintf(format, args...))
	return vkapi.ErrorValidationFailedEXT
}

func (d *Driver) create(t vkapi.ObjectType) uint64 {
	d.handle += 0x10
	d.live[vkapi.Object{Type: t, Handle: d.handle}] = struct{}{}
	return d.handle
}

func (d *Driver) destroy(obj vkapi.Object) bool {
	if obj.Handle == 0 {
		return true
	}
	if _, ok := d.live[obj]; !ok {
		d.invalid(obj, "destroying unknown object %s", obj)
		return false
	}
	delete(d.live, obj)
	return true
}

// check validates that every object is live or null, emitting a debug
// message for the first one which is not.
func (d *Driver) check(objects ...vkapi.Object) bool {
	for _, obj := range objects {
		if obj.Handle == 0 {
			continue
		}
		if _, ok := d.live[obj]; !ok {
			d.invalid(obj, "use of unknown object %s", obj)
			return false
		}
	}
	return true
}

func objects[H vkapi.Handle](handles []H) []vkapi.Object {
	objs := make([]vkapi.Object, len(handles))
	for i, h := range handles {
		objs[i] = vkapi.ObjectOf(h)
	}
	return objs
}

func alignUp(size, alignment uint64) uint64 {
	return (size + alignment - 1) / alignment * alignment
}

func (d *Driver) CreateInstance(info *vkapi.InstanceCreateInfo) (vkapi.Instance, vkapi.Result) {
	if r, ok := d.call("CreateInstance"); ok {
		return 0, r
	}
	for _, layer := range info.EnabledLayers {
		if !slices.Contains(d.config.Layers, layer) {
			return 0, vkapi.ErrorLayerNotPresent
		}
	}
	for _, ext := range info.EnabledExtensions {
		if !slices.Contains(d.config.Extensions, ext) {
			return 0, vkapi.ErrorExtensionNotPresent
		}
	}
	instance := vkapi.Instance(d.create(vkapi.ObjectTypeInstance))
	d.Instances[instance] = info
	return instance, vkapi.Success
}

func (d *Driver) DestroyInstance(instance vkapi.Instance) {
	d.call("DestroyInstance")
	if d.destroy(vkapi.ObjectOf(instance)) {
		for _, pd := range d.enumerated[instance] {
			delete(d.live, vkapi.ObjectOf(pd))
			delete(d.physical, pd)
		}
		delete(d.enumerated, instance)
	}
}

func (d *Driver) EnumeratePhysicalDevices(instance vkapi.Instance) ([]vkapi.PhysicalDevice, vkapi.Result) {
	if r, ok := d.call("EnumeratePhysicalDevices"); ok {
		return nil, r
	}
	if !d.check(vkapi.ObjectOf(instance)) {
		return nil, vkapi.ErrorValidationFailedEXT
	}
	if devices, ok := d.enumerated[instance]; ok {
		return slices.Clone(devices), vkapi.Success
	}
	devices := make([]vkapi.PhysicalDevice, len(d.config.PhysicalDevices))
	for i := range devices {
		devices[i] = vkapi.PhysicalDevice(d.create(vkapi.ObjectTypePhysicalDevice))
		d.physical[devices[i]] = &d.config.PhysicalDevices[i]
	}
	d.enumerated[instance] = devices
	return slices.Clone(devices), vkapi.Success
}

func (d *Driver) physicalDevice(pd vkapi.PhysicalDevice) *PhysicalDevice {
	p := d.physical[pd]
	if p == nil {
		d.invalid(vkapi.ObjectOf(pd), "use of unknown physical device")
		return &PhysicalDevice{}
	}
	return p
}

func (d *Driver) GetPhysicalDeviceProperties(pd vkapi.PhysicalDevice) vkapi.PhysicalDeviceProperties {
	d.call("GetPhysicalDeviceProperties")
	return d.physicalDevice(pd).Properties
}

func (d *Driver) GetPhysicalDeviceMemoryProperties(pd vkapi.PhysicalDevice) vkapi.PhysicalDeviceMemoryProperties {
	d.call("GetPhysicalDeviceMemoryProperties")
	m := d.physicalDevice(pd).Memory
	return vkapi.PhysicalDeviceMemoryProperties{
		MemoryTypes: slices.Clone(m.MemoryTypes),
		MemoryHeaps: slices.Clone(m.MemoryHeaps),
	}
}

func (d *Driver) GetPhysicalDeviceQueueFamilyProperties(pd vkapi.PhysicalDevice) []vkapi.QueueFamilyProperties {
	d.call("GetPhysicalDeviceQueueFamilyProperties")
	return slices.Clone(d.physicalDevice(pd).QueueFamilies)
}

func (d *Driver) CreateDevice(pd vkapi.PhysicalDevice, info *vkapi.DeviceCreateInfo) (vkapi.Device, vkapi.Result) {
	if r, ok := d.call("CreateDevice"); ok {
		return 0, r
	}
	p := d.physical[pd]
	if p == nil {
		return 0, d.invalid(vkapi.ObjectOf(pd), "use of unknown physical device")
	}
	for _, q := range info.QueueCreateInfos {
		if int(q.QueueFamilyIndex) >= len(p.QueueFamilies) {
			return 0, d.invalid(vkapi.ObjectOf(pd), "queue family index %d is out of range", q.QueueFamilyIndex)
		}
	}
	device := vkapi.Device(d.create(vkapi.ObjectTypeDevice))
	d.devices[device] = p
	return device, vkapi.Success
}

func (d *Driver) DestroyDevice(device vkapi.Device) {
	d.call("DestroyDevice")
	if d.destroy(vkapi.ObjectOf(device)) {
		delete(d.devices, device)
		for key, queue := range d.queues {
			if key[0] == uint64(device) {
				delete(d.live, vkapi.ObjectOf(queue))
				delete(d.queues, key)
			}
		}
	}
}

func (d *Driver) GetDeviceQueue(device vkapi.Device, family, index uint32) vkapi.Queue {
	d.call("GetDeviceQueue")
	p := d.devices[device]
	if p == nil {
		d.invalid(vkapi.ObjectOf(device), "use of unknown device")
		return 0
	}
	if int(family) >= len(p.QueueFamilies) {
		d.invalid(vkapi.ObjectOf(device), "queue family index %d is out of range", family)
		return 0
	}
	key := [3]uint64{uint64(device), uint64(family), uint64(index)}
	queue, ok := d.queues[key]
	if !ok {
		queue = vkapi.Queue(d.create(vkapi.ObjectTypeQueue))
		d.queues[key] = queue
	}
	return queue
}

func (d *Driver) DeviceWaitIdle(device vkapi.Device) vkapi.Result {
	if r, ok := d.call("DeviceWaitIdle"); ok {
		return r
	}
	if !d.check(vkapi.ObjectOf(device)) {
		return vkapi.ErrorValidationFailedEXT
	}
	return vkapi.Success
}

func (d *Driver) QueueWaitIdle(queue vkapi.Queue) vkapi.Result {
	if r, ok := d.call("QueueWaitIdle"); ok {
		return r
	}
	if !d.check(vkapi.ObjectOf(queue)) {
		return vkapi.ErrorValidationFailedEXT
	}
	return vkapi.Success
}

func (d *Driver) QueueSubmit(queue vkapi.Queue, submits []vkapi.SubmitInfo, fence vkapi.Fence) vkapi.Result {
	if r, ok := d.call("QueueSubmit"); ok {
		return r
	}
	if !d.check(vkapi.ObjectOf(queue), vkapi.ObjectOf(fence)) {
		return vkapi.ErrorValidationFailedEXT
	}
	for _, s := range submits {
		if !d.check(objects(s.CommandBuffers)...) ||
			!d.check(objects(s.WaitSemaphores)...) ||
			!d.check(objects(s.SignalSemaphores)...) {
			return vkapi.ErrorValidationFailedEXT
		}
	}
	if fence != 0 {
		d.fences[fence] = true
	}
	return vkapi.Success
}

func (d *Driver) AllocateMemory(device vkapi.Device, info *vkapi.MemoryAllocateInfo) (vkapi.DeviceMemory, vkapi.Result) {
	if r, ok := d.call("AllocateMemory"); ok {
		return 0, r
	}
	p := d.devices[device]
	if p == nil {
		return 0, d.invalid(vkapi.ObjectOf(device), "use of unknown device")
	}
	if int(info.MemoryTypeIndex) >= len(p.Memory.MemoryTypes) {
		return 0, d.invalid(vkapi.ObjectOf(device), "memory type index %d is out of range", info.MemoryTypeIndex)
	}
	if info.AllocationSize == 0 {
		return 0, d.invalid(vkapi.ObjectOf(device), "allocation size is zero")
	}
	if dedicated, ok := vkapi.Find[*vkapi.MemoryDedicatedAllocateInfo](info.Next); ok {
		if !d.check(vkapi.ObjectOf(dedicated.Buffer), vkapi.ObjectOf(dedicated.Image)) {
			return 0, vkapi.ErrorValidationFailedEXT
		}
	}
	memory := vkapi.DeviceMemory(d.create(vkapi.ObjectTypeDeviceMemory))
	d.memory[memory] = &memoryObject{
		device:    device,
		typeIndex: info.MemoryTypeIndex,
		data:      make([]byte, info.AllocationSize),
	}
	return memory, vkapi.Success
}

func (d *Driver) FreeMemory(device vkapi.Device, memory vkapi.DeviceMemory) {
	d.call("FreeMemory")
	if d.destroy(vkapi.ObjectOf(memory)) {
		delete(d.memory, memory)
	}
}

func (d *Driver) MapMemory(device vkapi.Device, memory vkapi.DeviceMemory, offset, size uint64, flags uint32) ([]byte, vkapi.Result) {
	if r, ok := d.call("MapMemory"); ok {
		return nil, r
	}
	m := d.memory[memory]
	if m == nil {
		return nil, d.invalid(vkapi.ObjectOf(memory), "mapping unknown memory object")
	}
	p := d.devices[m.device]
	if p == nil {
		return nil, d.invalid(vkapi.ObjectOf(m.device), "use of unknown device")
	}
	if props := p.Memory.MemoryTypes[m.typeIndex].PropertyFlags; !props.Has(vkapi.MemoryPropertyHostVisibleBit) {
		return nil, vkapi.ErrorMemoryMapFailed
	}
	if m.mapped {
		return nil, d.invalid(vkapi.ObjectOf(memory), "memory object is already mapped")
	}
	n := uint64(len(m.data))
	if size == vkapi.WholeSize && offset <= n {
		size = n - offset
	}
	if offset > n || size > n-offset {
		return nil, d.invalid(vkapi.ObjectOf(memory), "mapped range [%d:+%d] exceeds the allocation size %d", offset, size, n)
	}
	m.mapped = true
	return m.data[offset : offset+size : offset+size], vkapi.Success
}

func (d *Driver) UnmapMemory(device vkapi.Device, memory vkapi.DeviceMemory) {
	d.call("UnmapMemory")
	m := d.memory[memory]
	if m == nil || !m.mapped {
		d.invalid(vkapi.ObjectOf(memory), "unmapping memory object which is not mapped")
		return
	}
	m.mapped = false
}

func (d *Driver) requirements(device vkapi.Device, size uint64) (vkapi.MemoryRequirements, bool) {
	p := d.devices[device]
	if p == nil {
		d.invalid(vkapi.ObjectOf(device), "use of unknown device")
		return vkapi.MemoryRequirements{}, false
	}
	return vkapi.MemoryRequirements{
		Size:           alignUp(size, p.Alignment) + p.Overhead,
		Alignment:      p.Alignment,
		MemoryTypeBits: p.MemoryTypeBits,
	}, true
}

func (d *Driver) CreateBuffer(device vkapi.Device, info *vkapi.BufferCreateInfo) (vkapi.Buffer, vkapi.Result) {
	if r, ok := d.call("CreateBuffer"); ok {
		return 0, r
	}
	if info.Size == 0 {
		return 0, d.invalid(vkapi.ObjectOf(device), "buffer size is zero")
	}
	reqs, ok := d.requirements(device, info.Size)
	if !ok {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	if !d.validQueueFamilies(device, info.SharingMode, info.QueueFamilyIndices) {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	buffer := vkapi.Buffer(d.create(vkapi.ObjectTypeBuffer))
	d.buffers[buffer] = &resource{device: device, requirements: reqs}
	return buffer, vkapi.Success
}

func (d *Driver) validQueueFamilies(device vkapi.Device, sharingMode uint32, indices []uint32) bool {
	if sharingMode != vkapi.SharingModeConcurrent {
		return true
	}
	p := d.devices[device]
	for _, index := range indices {
		if int(index) >= len(p.QueueFamilies) {
			d.invalid(vkapi.ObjectOf(device), "queue family index %d is out of range", index)
			return false
		}
	}
	return true
}

func (d *Driver) DestroyBuffer(device vkapi.Device, buffer vkapi.Buffer) {
	d.call("DestroyBuffer")
	if d.destroy(vkapi.ObjectOf(buffer)) {
		delete(d.buffers, buffer)
	}
}

func (d *Driver) GetBufferMemoryRequirements(device vkapi.Device, buffer vkapi.Buffer) vkapi.MemoryRequirements {
	d.call("GetBufferMemoryRequirements")
	b := d.buffers[buffer]
	if b == nil {
		d.invalid(vkapi.ObjectOf(buffer), "use of unknown buffer")
		return vkapi.MemoryRequirements{}
	}
	return b.requirements
}

func (d *Driver) bind(obj vkapi.Object, r *resource, memory vkapi.DeviceMemory, offset uint64) vkapi.Result {
	if r == nil {
		return d.invalid(obj, "binding unknown resource %s", obj)
	}
	if r.memory != 0 {
		return d.invalid(obj, "%s is already bound to memory", obj)
	}
	m := d.memory[memory]
	if m == nil {
		return d.invalid(vkapi.ObjectOf(memory), "binding %s to unknown memory object", obj)
	}
	switch {
	case r.requirements.MemoryTypeBits&(1<<m.typeIndex) == 0:
		return d.invalid(obj, "memory type %d is not allowed by %s requirements (%#b)", m.typeIndex, obj, r.requirements.MemoryTypeBits)
	case offset%r.requirements.Alignment != 0:
		return d.invalid(obj, "memory offset %d is not aligned to %d", offset, r.requirements.Alignment)
	case offset+r.requirements.Size > uint64(len(m.data)):
		return d.invalid(obj, "memory object of size %d is too small to bind %d bytes at offset %d", len(m.data), r.requirements.Size, offset)
	}
	r.memory, r.offset = memory, offset
	return vkapi.Success
}

func (d *Driver) BindBufferMemory(device vkapi.Device, buffer vkapi.Buffer, memory vkapi.DeviceMemory, offset uint64) vkapi.Result {
	if r, ok := d.call("BindBufferMemory"); ok {
		return r
	}
	return d.bind(vkapi.ObjectOf(buffer), d.buffers[buffer], memory, offset)
}

func (d *Driver) BindBufferMemory2(device vkapi.Device, infos []vkapi.BindBufferMemoryInfo) vkapi.Result {
	if r, ok := d.call("BindBufferMemory2"); ok {
		return r
	}
	for _, info := range infos {
		if r := d.bind(vkapi.ObjectOf(info.Buffer), d.buffers[info.Buffer], info.Memory, info.MemoryOffset); r != vkapi.Success {
			return r
		}
	}
	return vkapi.Success
}

func (d *Driver) CreateImage(device vkapi.Device, info *vkapi.ImageCreateInfo) (vkapi.Image, vkapi.Result) {
	if r, ok := d.call("CreateImage"); ok {
		return 0, r
	}
	e := info.Extent
	texels := uint64(e.Width) * uint64(e.Height) * uint64(max(e.Depth, 1)) * uint64(max(info.ArrayLayers, 1))
	if texels == 0 {
		return 0, d.invalid(vkapi.ObjectOf(device), "image extent is empty")
	}
	reqs, ok := d.requirements(device, texels*4)
	if !ok {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	if !d.validQueueFamilies(device, info.SharingMode, info.QueueFamilyIndices) {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	image := vkapi.Image(d.create(vkapi.ObjectTypeImage))
	d.images[image] = &resource{device: device, requirements: reqs}
	return image, vkapi.Success
}

func (d *Driver) DestroyImage(device vkapi.Device, image vkapi.Image) {
	d.call("DestroyImage")
	if d.destroy(vkapi.ObjectOf(image)) {
		delete(d.images, image)
	}
}

func (d *Driver) GetImageMemoryRequirements(device vkapi.Device, image vkapi.Image) vkapi.MemoryRequirements {
	d.call("GetImageMemoryRequirements")
	i := d.images[image]
	if i == nil {
		d.invalid(vkapi.ObjectOf(image), "use of unknown image")
		return vkapi.MemoryRequirements{}
	}
	return i.requirements
}

func (d *Driver) BindImageMemory(device vkapi.Device, image vkapi.Image, memory vkapi.DeviceMemory, offset uint64) vkapi.Result {
	if r, ok := d.call("BindImageMemory"); ok {
		return r
	}
	return d.bind(vkapi.ObjectOf(image), d.images[image], memory, offset)
}

func (d *Driver) BindImageMemory2(device vkapi.Device, infos []vkapi.BindImageMemoryInfo) vkapi.Result {
	if r, ok := d.call("BindImageMemory2"); ok {
		return r
	}
	for _, info := range infos {
		if r := d.bind(vkapi.ObjectOf(info.Image), d.images[info.Image], info.Memory, info.MemoryOffset); r != vkapi.Success {
			return r
		}
	}
	return vkapi.Success
}

func (d *Driver) CreateImageView(device vkapi.Device, info *vkapi.ImageViewCreateInfo) (vkapi.ImageView, vkapi.Result) {
	if r, ok := d.call("CreateImageView"); ok {
		return 0, r
	}
	if !d.check(vkapi.ObjectOf(device), vkapi.ObjectOf(info.Image)) {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	return vkapi.ImageView(d.create(vkapi.ObjectTypeImageView)), vkapi.Success
}

func (d *Driver) DestroyImageView(device vkapi.Device, view vkapi.ImageView) {
	d.call("DestroyImageView")
	d.destroy(vkapi.ObjectOf(view))
}
