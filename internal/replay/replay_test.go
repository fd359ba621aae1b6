package replay_test

import (
	"bytes"
	"context"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"

	"github.com/LunarG/VulkanTools-sub014/internal/assert"
	"github.com/LunarG/VulkanTools-sub014/internal/diag"
	"github.com/LunarG/VulkanTools-sub014/internal/remap"
	"github.com/LunarG/VulkanTools-sub014/internal/replay"
	"github.com/LunarG/VulkanTools-sub014/internal/tracefile"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi/vkfake"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
	"github.com/LunarG/VulkanTools-sub014/internal/wsi"
)

const (
	traceInstance       vkapi.Instance       = 0x10
	tracePhysicalDevice vkapi.PhysicalDevice = 0x20
	traceDevice         vkapi.Device         = 0x30
	traceQueue          vkapi.Queue          = 0x40
)

const spirvMagic = 0x07230203

// prelude returns the calls creating an instance with debug reports, a
// device and its first queue. The physical device queries are recorded
// between the enumeration and the creation of the device.
func prelude(queries ...vkcall.Call) []vkcall.Call {
	calls := []vkcall.Call{
		&vkcall.CreateInstanceCall{
			CreateInfo: vkapi.InstanceCreateInfo{
				ApplicationInfo:   &vkapi.ApplicationInfo{ApplicationName: "cube"},
				EnabledExtensions: []string{replay.DebugReportExtension},
			},
			Instance: traceInstance,
		},
		&vkcall.EnumeratePhysicalDevicesCall{
			Instance:        traceInstance,
			Count:           1,
			PhysicalDevices: []vkapi.PhysicalDevice{tracePhysicalDevice},
		},
	}
	calls = append(calls, queries...)
	return append(calls,
		&vkcall.CreateDeviceCall{
			PhysicalDevice: tracePhysicalDevice,
			CreateInfo: vkapi.DeviceCreateInfo{
				QueueCreateInfos: []vkapi.DeviceQueueCreateInfo{{QueueFamilyIndex: 0, QueuePriorities: []float32{1}}},
			},
			Device: traceDevice,
		},
		&vkcall.GetDeviceQueueCall{Device: traceDevice, Queue: traceQueue},
	)
}

// captureMemory is the memory layout of the device traces were captured on:
// device local, host coherent, and host cached memory types.
var captureMemory = vkapi.PhysicalDeviceMemoryProperties{
	MemoryTypes: []vkapi.MemoryType{
		{PropertyFlags: vkapi.MemoryPropertyDeviceLocalBit, HeapIndex: 0},
		{PropertyFlags: vkapi.MemoryPropertyHostVisibleBit | vkapi.MemoryPropertyHostCoherentBit, HeapIndex: 1},
		{PropertyFlags: vkapi.MemoryPropertyHostVisibleBit | vkapi.MemoryPropertyHostCoherentBit | vkapi.MemoryPropertyHostCachedBit, HeapIndex: 1},
	},
	MemoryHeaps: []vkapi.MemoryHeap{
		{Size: 1 << 32, Flags: 1},
		{Size: 1 << 28},
	},
}

// replayDevice is a device with a single host coherent memory type, and
// memory requirements larger than on the capture device.
func replayDevice() vkfake.PhysicalDevice {
	pd := vkfake.DefaultPhysicalDevice()
	pd.Memory = vkapi.PhysicalDeviceMemoryProperties{
		MemoryTypes: []vkapi.MemoryType{
			{PropertyFlags: vkapi.MemoryPropertyHostVisibleBit | vkapi.MemoryPropertyHostCoherentBit, HeapIndex: 0},
		},
		MemoryHeaps: []vkapi.MemoryHeap{{Size: 1 << 30}},
	}
	pd.Alignment = 256
	pd.Overhead = 512
	return pd
}

func newDriver(config vkfake.Config) *vkfake.Driver {
	config.Extensions = append(config.Extensions, replay.DebugReportExtension)
	return vkfake.New(config)
}

func newTrace(t *testing.T, calls ...vkcall.Call) *tracefile.Store {
	t.Helper()
	b := new(bytes.Buffer)
	w := vkcall.NewTraceWriter(tracefile.NewWriter(b, tracefile.Header{TracerVersion: "1.0.0", Platform: "linux"}))
	for _, call := range calls {
		_, err := w.WriteCall(call)
		assert.OK(t, err)
	}
	assert.OK(t, w.Close())
	return openTrace(t, b)
}

// newUnindexedTrace is like newTrace but leaves the calls matched by
// unindexed out of the portability table, like tracers which did not flag
// every packet.
func newUnindexedTrace(t *testing.T, unindexed func(vkcall.Call) bool, calls ...vkcall.Call) *tracefile.Store {
	t.Helper()
	b := new(bytes.Buffer)
	w := tracefile.NewWriter(b, tracefile.Header{TracerVersion: "1.0.0", Platform: "linux"})
	for _, call := range calls {
		payload, err := vkcall.Encode(call, w.ByteOrder())
		assert.OK(t, err)
		w.WritePacket(uint32(call.ID()), payload, vkcall.Portable(call.ID()) && !unindexed(call))
	}
	assert.OK(t, w.Close())
	return openTrace(t, b)
}

func openTrace(t *testing.T, b *bytes.Buffer) *tracefile.Store {
	t.Helper()
	store, err := tracefile.NewStore(bytes.NewReader(b.Bytes()), int64(b.Len()))
	assert.OK(t, err)
	return store
}

func newSession(t *testing.T, driver *vkfake.Driver, store *tracefile.Store, config replay.Config) (*replay.Session, *bytes.Buffer) {
	t.Helper()
	logs := new(bytes.Buffer)
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(logs, log.Options{Level: log.DebugLevel})
	}
	if config.Setenv == nil {
		config.Setenv = func(string, string) error { return nil }
	}
	s := replay.NewSession(driver, store, config)
	t.Cleanup(func() { s.Close() })
	return s, logs
}

func lookup[H vkapi.Handle](t *testing.T, s *replay.Session, virtual H) H {
	t.Helper()
	h, err := s.Lookup(vkapi.ObjectOf(virtual))
	assert.OK(t, err)
	return H(h)
}

func count(calls []string, name string) (n int) {
	for _, call := range calls {
		if call == name {
			n++
		}
	}
	return n
}

func TestReplayBufferUpload(t *testing.T) {
	calls := append(prelude(),
		&vkcall.CreateBufferCall{Device: traceDevice, CreateInfo: vkapi.BufferCreateInfo{Size: 1024, Usage: 1}, Buffer: 0x100},
		&vkcall.GetBufferMemoryRequirementsCall{Device: traceDevice, Buffer: 0x100, Requirements: vkapi.MemoryRequirements{Size: 1024, Alignment: 256, MemoryTypeBits: 3}},
		&vkcall.AllocateMemoryCall{Device: traceDevice, AllocateInfo: vkapi.MemoryAllocateInfo{AllocationSize: 1024, MemoryTypeIndex: 1}, Memory: 0x200},
		&vkcall.BindBufferMemoryCall{Device: traceDevice, Buffer: 0x100, Memory: 0x200},
		&vkcall.MapMemoryCall{Device: traceDevice, Memory: 0x200, Size: vkapi.WholeSize},
		&vkcall.UnmapMemoryCall{Device: traceDevice, Memory: 0x200, Offset: 16, Data: []byte("hello")},
		&vkcall.CreateCommandPoolCall{Device: traceDevice, CommandPool: 0x300},
		&vkcall.AllocateCommandBuffersCall{
			Device:         traceDevice,
			AllocateInfo:   vkapi.CommandBufferAllocateInfo{CommandPool: 0x300, CommandBufferCount: 2},
			CommandBuffers: []vkapi.CommandBuffer{0x310, 0x311},
		},
		&vkcall.BeginCommandBufferCall{CommandBuffer: 0x310},
		&vkcall.CmdCopyBufferCall{CommandBuffer: 0x310, SrcBuffer: 0x100, DstBuffer: 0x100, Regions: []vkapi.BufferCopy{{DstOffset: 512, Size: 16}}},
		&vkcall.EndCommandBufferCall{CommandBuffer: 0x310},
		&vkcall.CreateFenceCall{Device: traceDevice, Fence: 0x400},
		&vkcall.QueueSubmitCall{Queue: traceQueue, Submits: []vkapi.SubmitInfo{{CommandBuffers: []vkapi.CommandBuffer{0x310}}}, Fence: 0x400},
		&vkcall.WaitForFencesCall{Device: traceDevice, Fences: []vkapi.Fence{0x400}, WaitAll: true, Timeout: math.MaxUint64},
	)

	driver := newDriver(vkfake.Config{})
	s, _ := newSession(t, driver, newTrace(t, calls...), replay.Config{})
	assert.OK(t, s.Run(context.Background()))

	stats := s.Stats()
	assert.Equal(t, stats.Packets, uint64(len(calls)))
	assert.Equal(t, stats.SkippedCalls, 0)
	assert.Equal(t, stats.Mismatches, 0)
	assert.Equal(t, stats.ValidationMessages, 0)

	memory := lookup(t, s, vkapi.DeviceMemory(0x200))
	buffer := lookup(t, s, vkapi.Buffer(0x100))
	bound, offset := driver.BufferBinding(buffer)
	assert.Equal(t, bound, memory)
	assert.Equal(t, offset, uint64(0))
	assert.Equal(t, string(driver.MemoryContent(memory)[16:21]), "hello")
	assert.Equal(t, driver.WaitTimeouts[0], uint64(math.MaxUint64))
}

func TestReplayReleasesBindings(t *testing.T) {
	calls := append(prelude(),
		&vkcall.CreateBufferCall{Device: traceDevice, CreateInfo: vkapi.BufferCreateInfo{Size: 256}, Buffer: 0x100},
		&vkcall.AllocateMemoryCall{Device: traceDevice, AllocateInfo: vkapi.MemoryAllocateInfo{AllocationSize: 4096}, Memory: 0x200},
		&vkcall.BindBufferMemoryCall{Device: traceDevice, Buffer: 0x100, Memory: 0x200},
		&vkcall.CreateImageCall{
			Device:     traceDevice,
			CreateInfo: vkapi.ImageCreateInfo{Extent: vkapi.Extent3D{Width: 4, Height: 4, Depth: 1}, MipLevels: 1, ArrayLayers: 1},
			Image:      0x110,
		},
		&vkcall.BindImageMemoryCall{Device: traceDevice, Image: 0x110, Memory: 0x200, MemoryOffset: 1024},
		&vkcall.CreateImageViewCall{Device: traceDevice, CreateInfo: vkapi.ImageViewCreateInfo{Image: 0x110}, View: 0x120},
		&vkcall.CreateFenceCall{Device: traceDevice, CreateInfo: vkapi.FenceCreateInfo{Flags: 1}, Fence: 0x400},
		&vkcall.GetFenceStatusCall{Device: traceDevice, Fence: 0x400},
		&vkcall.ResetFencesCall{Device: traceDevice, Fences: []vkapi.Fence{0x400}},
		&vkcall.GetFenceStatusCall{Device: traceDevice, Fence: 0x400, Result: vkapi.NotReady},
		&vkcall.CreateSemaphoreCall{Device: traceDevice, Semaphore: 0x410},
		&vkcall.CreateCommandPoolCall{Device: traceDevice, CommandPool: 0x300},
		&vkcall.AllocateCommandBuffersCall{
			Device:         traceDevice,
			AllocateInfo:   vkapi.CommandBufferAllocateInfo{CommandPool: 0x300, CommandBufferCount: 1},
			CommandBuffers: []vkapi.CommandBuffer{0x310},
		},
		&vkcall.CreateDescriptorSetLayoutCall{
			Device:     traceDevice,
			CreateInfo: vkapi.DescriptorSetLayoutCreateInfo{Bindings: []vkapi.DescriptorSetLayoutBinding{{DescriptorType: 7, DescriptorCount: 1}}},
			SetLayout:  0x500,
		},
		&vkcall.CreateDescriptorPoolCall{
			Device:         traceDevice,
			CreateInfo:     vkapi.DescriptorPoolCreateInfo{MaxSets: 1, PoolSizes: []vkapi.DescriptorPoolSize{{Type: 7, DescriptorCount: 1}}},
			DescriptorPool: 0x510,
		},
		&vkcall.AllocateDescriptorSetsCall{
			Device:         traceDevice,
			AllocateInfo:   vkapi.DescriptorSetAllocateInfo{DescriptorPool: 0x510, SetLayouts: []vkapi.DescriptorSetLayout{0x500}},
			DescriptorSets: []vkapi.DescriptorSet{0x520},
		},
		&vkcall.UpdateDescriptorSetsCall{
			Device: traceDevice,
			Writes: []vkapi.WriteDescriptorSet{{
				DstSet:         0x520,
				DescriptorType: 7,
				BufferInfo:     []vkapi.DescriptorBufferInfo{{Buffer: 0x100, Range: vkapi.WholeSize}},
			}},
		},
		&vkcall.CreatePipelineLayoutCall{
			Device:         traceDevice,
			CreateInfo:     vkapi.PipelineLayoutCreateInfo{SetLayouts: []vkapi.DescriptorSetLayout{0x500}},
			PipelineLayout: 0x530,
		},
		&vkcall.CreateShaderModuleCall{
			Device:       traceDevice,
			CreateInfo:   vkapi.ShaderModuleCreateInfo{Code: []uint32{spirvMagic, 0x00010000}},
			ShaderModule: 0x540,
		},
		&vkcall.CreateComputePipelinesCall{
			Device: traceDevice,
			CreateInfos: []vkapi.ComputePipelineCreateInfo{{
				Stage:  vkapi.PipelineShaderStageCreateInfo{Stage: 0x20, Module: 0x540, Name: "main"},
				Layout: 0x530,
			}},
			Pipelines: []vkapi.Pipeline{0x550},
		},
		&vkcall.BeginCommandBufferCall{CommandBuffer: 0x310},
		&vkcall.CmdBindPipelineCall{CommandBuffer: 0x310, PipelineBindPoint: 1, Pipeline: 0x550},
		&vkcall.CmdBindDescriptorSetsCall{CommandBuffer: 0x310, PipelineBindPoint: 1, Layout: 0x530, DescriptorSets: []vkapi.DescriptorSet{0x520}},
		&vkcall.CmdDispatchCall{CommandBuffer: 0x310, GroupCountX: 8, GroupCountY: 1, GroupCountZ: 1},
		&vkcall.EndCommandBufferCall{CommandBuffer: 0x310},
		&vkcall.QueueSubmitCall{
			Queue:   traceQueue,
			Submits: []vkapi.SubmitInfo{{CommandBuffers: []vkapi.CommandBuffer{0x310}, SignalSemaphores: []vkapi.Semaphore{0x410}}},
		},
		&vkcall.QueueWaitIdleCall{Queue: traceQueue},

		&vkcall.DestroyPipelineCall{Device: traceDevice, Pipeline: 0x550},
		&vkcall.DestroyShaderModuleCall{Device: traceDevice, ShaderModule: 0x540},
		&vkcall.DestroyPipelineLayoutCall{Device: traceDevice, PipelineLayout: 0x530},
		&vkcall.FreeDescriptorSetsCall{Device: traceDevice, DescriptorPool: 0x510, DescriptorSets: []vkapi.DescriptorSet{0x520}},
		&vkcall.DestroyDescriptorPoolCall{Device: traceDevice, DescriptorPool: 0x510},
		&vkcall.DestroyDescriptorSetLayoutCall{Device: traceDevice, SetLayout: 0x500},
		&vkcall.FreeCommandBuffersCall{Device: traceDevice, CommandPool: 0x300, CommandBuffers: []vkapi.CommandBuffer{0x310}},
		&vkcall.DestroyCommandPoolCall{Device: traceDevice, CommandPool: 0x300},
		&vkcall.DestroySemaphoreCall{Device: traceDevice, Semaphore: 0x410},
		&vkcall.DestroyFenceCall{Device: traceDevice, Fence: 0x400},
		&vkcall.DestroyImageViewCall{Device: traceDevice, View: 0x120},
		&vkcall.DestroyImageCall{Device: traceDevice, Image: 0x110},
		&vkcall.DestroyBufferCall{Device: traceDevice, Buffer: 0x100},
		&vkcall.FreeMemoryCall{Device: traceDevice, Memory: 0x200},
		&vkcall.DestroyDeviceCall{Device: traceDevice},
		&vkcall.DestroyInstanceCall{Instance: traceInstance},
	)

	driver := newDriver(vkfake.Config{})
	s, _ := newSession(t, driver, newTrace(t, calls...), replay.Config{})
	assert.OK(t, s.Run(context.Background()))

	stats := s.Stats()
	assert.Equal(t, stats.SkippedCalls, 0)
	assert.Equal(t, stats.Mismatches, 0)
	assert.Equal(t, stats.ValidationMessages, 0)
	assert.Equal(t, s.Bindings(), 0)

	for _, objectType := range []vkapi.ObjectType{
		vkapi.ObjectTypeInstance,
		vkapi.ObjectTypeDevice,
		vkapi.ObjectTypeDeviceMemory,
		vkapi.ObjectTypeBuffer,
		vkapi.ObjectTypeImage,
		vkapi.ObjectTypeImageView,
		vkapi.ObjectTypeFence,
		vkapi.ObjectTypeSemaphore,
		vkapi.ObjectTypeCommandPool,
		vkapi.ObjectTypeCommandBuffer,
		vkapi.ObjectTypeDescriptorSetLayout,
		vkapi.ObjectTypeDescriptorPool,
		vkapi.ObjectTypeDescriptorSet,
		vkapi.ObjectTypePipelineLayout,
		vkapi.ObjectTypeShaderModule,
		vkapi.ObjectTypePipeline,
		vkapi.ObjectTypeDebugReportCallbackEXT,
	} {
		t.Run(objectType.String(), func(t *testing.T) {
			assert.Equal(t, driver.Live(objectType), 0)
		})
	}
}

func TestDispatchDoesNotModifyCalls(t *testing.T) {
	pd := vkfake.DefaultPhysicalDevice()
	pd.QueueFamilies = []vkapi.QueueFamilyProperties{
		{QueueFlags: vkapi.QueueTransferBit, QueueCount: 1},
		{QueueFlags: vkapi.QueueGraphicsBit | vkapi.QueueComputeBit | vkapi.QueueTransferBit, QueueCount: 4},
	}
	captureFamilies := []vkapi.QueueFamilyProperties{
		{QueueFlags: vkapi.QueueGraphicsBit | vkapi.QueueComputeBit | vkapi.QueueTransferBit, QueueCount: 16},
	}

	store := newTrace(t, append(prelude(
		&vkcall.GetPhysicalDeviceQueueFamilyPropertiesCall{PhysicalDevice: tracePhysicalDevice, Count: 1, Properties: captureFamilies},
	),
		&vkcall.CreateCommandPoolCall{Device: traceDevice, CreateInfo: vkapi.CommandPoolCreateInfo{QueueFamilyIndex: 0}, CommandPool: 0x300},
		&vkcall.AllocateCommandBuffersCall{
			Device:         traceDevice,
			AllocateInfo:   vkapi.CommandBufferAllocateInfo{CommandPool: 0x300, CommandBufferCount: 1},
			CommandBuffers: []vkapi.CommandBuffer{0x310},
		},
		&vkcall.CreateBufferCall{
			Device: traceDevice,
			CreateInfo: vkapi.BufferCreateInfo{
				Size:               64,
				SharingMode:        vkapi.SharingModeConcurrent,
				QueueFamilyIndices: []uint32{0},
			},
			Buffer: 0x100,
		},
		&vkcall.BeginCommandBufferCall{CommandBuffer: 0x310},
		&vkcall.CmdPipelineBarrierCall{
			CommandBuffer: 0x310,
			SrcStageMask:  1,
			DstStageMask:  1,
			BufferMemoryBarriers: []vkapi.BufferMemoryBarrier{{
				SrcQueueFamilyIndex: 0,
				DstQueueFamilyIndex: vkapi.QueueFamilyIgnored,
				Buffer:              0x100,
				Size:                vkapi.WholeSize,
			}},
		},
		&vkcall.EndCommandBufferCall{CommandBuffer: 0x310},
		&vkcall.QueueSubmitCall{Queue: traceQueue, Submits: []vkapi.SubmitInfo{{CommandBuffers: []vkapi.CommandBuffer{0x310}}}},
	)...)

	driver := newDriver(vkfake.Config{PhysicalDevices: []vkfake.PhysicalDevice{pd}})
	s, _ := newSession(t, driver, store, replay.Config{Compatibility: true})

	r := store.NewReader()
	for {
		p, err := r.Next()
		if err == io.EOF {
			break
		}
		assert.OK(t, err)
		call, err := vkcall.Decode(p, store.ByteOrder())
		assert.OK(t, err)
		want, err := vkcall.Decode(p, store.ByteOrder())
		assert.OK(t, err)

		assert.OK(t, s.Dispatch(p, call))
		assert.DeepEqual(t, call, want)
	}

	stats := s.Stats()
	assert.Equal(t, stats.Mismatches, 0)
	assert.Equal(t, stats.ValidationMessages, 0)
}

func TestPortableAllocation(t *testing.T) {
	createBuffer := &vkcall.CreateBufferCall{Device: traceDevice, CreateInfo: vkapi.BufferCreateInfo{Size: 1000}, Buffer: 0x100}
	allocate := &vkcall.AllocateMemoryCall{Device: traceDevice, AllocateInfo: vkapi.MemoryAllocateInfo{AllocationSize: 1024, MemoryTypeIndex: 2}, Memory: 0x200}
	bind := &vkcall.BindBufferMemoryCall{Device: traceDevice, Buffer: 0x100, Memory: 0x200}

	tests := []struct {
		scenario string
		calls    []vkcall.Call
		creates  int
	}{
		{
			scenario: "buffer created before the allocation",
			calls:    []vkcall.Call{createBuffer, allocate, bind},
			creates:  1,
		},
		{
			scenario: "buffer created after the allocation",
			calls:    []vkcall.Call{allocate, createBuffer, bind},
			creates:  2,
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			calls := append(prelude(
				&vkcall.GetPhysicalDeviceMemoryPropertiesCall{PhysicalDevice: tracePhysicalDevice, MemoryProperties: captureMemory},
			), test.calls...)

			driver := newDriver(vkfake.Config{PhysicalDevices: []vkfake.PhysicalDevice{replayDevice()}})
			s, _ := newSession(t, driver, newTrace(t, calls...), replay.Config{Compatibility: true})
			assert.OK(t, s.Run(context.Background()))

			stats := s.Stats()
			assert.Equal(t, stats.SkippedCalls, 0)
			assert.Equal(t, stats.Mismatches, 0)
			assert.Equal(t, stats.ValidationMessages, 0)

			memory := lookup(t, s, vkapi.DeviceMemory(0x200))
			size, typeIndex, ok := driver.MemoryAllocation(memory)
			assert.True(t, ok)
			assert.Equal(t, size, uint64(1536))
			assert.Equal(t, typeIndex, uint32(0))

			bound, _ := driver.BufferBinding(lookup(t, s, vkapi.Buffer(0x100)))
			assert.Equal(t, bound, memory)
			assert.Equal(t, count(driver.Calls, "CreateBuffer"), test.creates)
			assert.Equal(t, driver.Live(vkapi.ObjectTypeBuffer), 1)
		})
	}
}

func TestFreedAllocationIsReplayedVerbatim(t *testing.T) {
	calls := append(prelude(
		&vkcall.GetPhysicalDeviceMemoryPropertiesCall{PhysicalDevice: tracePhysicalDevice, MemoryProperties: captureMemory},
	),
		&vkcall.AllocateMemoryCall{Device: traceDevice, AllocateInfo: vkapi.MemoryAllocateInfo{AllocationSize: 1000}, Memory: 0x200},
		&vkcall.FreeMemoryCall{Device: traceDevice, Memory: 0x200},
	)
	allocateIndex := uint64(len(calls) - 2)

	driver := newDriver(vkfake.Config{PhysicalDevices: []vkfake.PhysicalDevice{replayDevice()}})
	s, _ := newSession(t, driver, newTrace(t, calls...), replay.Config{Compatibility: true, EndIndex: allocateIndex})
	assert.OK(t, s.Run(context.Background()))
	assert.Equal(t, s.Stats().Packets, allocateIndex+1)

	size, typeIndex, ok := driver.MemoryAllocation(lookup(t, s, vkapi.DeviceMemory(0x200)))
	assert.True(t, ok)
	assert.Equal(t, size, uint64(1000))
	assert.Equal(t, typeIndex, uint32(0))
}

func TestPendingAllocation(t *testing.T) {
	calls := append(prelude(
		&vkcall.GetPhysicalDeviceMemoryPropertiesCall{PhysicalDevice: tracePhysicalDevice, MemoryProperties: captureMemory},
	),
		&vkcall.AllocateMemoryCall{Device: traceDevice, AllocateInfo: vkapi.MemoryAllocateInfo{AllocationSize: 1024, MemoryTypeIndex: 2}, Memory: 0x200},
		&vkcall.CreateBufferCall{Device: traceDevice, CreateInfo: vkapi.BufferCreateInfo{Size: 1000}, Buffer: 0x100},
		&vkcall.BindBufferMemoryCall{Device: traceDevice, Buffer: 0x100, Memory: 0x200},
	)
	store := newUnindexedTrace(t, func(call vkcall.Call) bool {
		return call.ID() == vkcall.BindBufferMemory
	}, calls...)

	driver := newDriver(vkfake.Config{PhysicalDevices: []vkfake.PhysicalDevice{replayDevice()}})
	s, _ := newSession(t, driver, store, replay.Config{Compatibility: true})
	assert.OK(t, s.Run(context.Background()))

	stats := s.Stats()
	assert.Equal(t, stats.SkippedCalls, 0)
	assert.Equal(t, stats.Mismatches, 0)
	assert.Equal(t, stats.ValidationMessages, 0)

	// the allocation is performed when the bind is replayed
	assert.Less(t, slices.Index(driver.Calls, "CreateBuffer"), slices.Index(driver.Calls, "AllocateMemory"))
	assert.Equal(t, count(driver.Calls, "CreateBuffer"), 1)

	memory := lookup(t, s, vkapi.DeviceMemory(0x200))
	size, typeIndex, ok := driver.MemoryAllocation(memory)
	assert.True(t, ok)
	assert.Equal(t, size, uint64(1536))
	assert.Equal(t, typeIndex, uint32(0))

	bound, _ := driver.BufferBinding(lookup(t, s, vkapi.Buffer(0x100)))
	assert.Equal(t, bound, memory)
}

func TestPendingAllocationNeverBound(t *testing.T) {
	calls := append(prelude(
		&vkcall.GetPhysicalDeviceMemoryPropertiesCall{PhysicalDevice: tracePhysicalDevice, MemoryProperties: captureMemory},
	),
		&vkcall.AllocateMemoryCall{Device: traceDevice, AllocateInfo: vkapi.MemoryAllocateInfo{AllocationSize: 1024, MemoryTypeIndex: 2}, Memory: 0x200},
		&vkcall.MapMemoryCall{Device: traceDevice, Memory: 0x200, Size: vkapi.WholeSize},
		&vkcall.FreeMemoryCall{Device: traceDevice, Memory: 0x200},
	)
	store := newUnindexedTrace(t, func(call vkcall.Call) bool {
		return call.ID() == vkcall.FreeMemory
	}, calls...)

	driver := newDriver(vkfake.Config{PhysicalDevices: []vkfake.PhysicalDevice{replayDevice()}})
	s, _ := newSession(t, driver, store, replay.Config{Compatibility: true})

	r := store.NewReader()
	var errs []error
	for {
		p, err := r.Next()
		if err == io.EOF {
			break
		}
		assert.OK(t, err)
		if err := s.Replay(p); err != nil {
			errs = append(errs, err)
		}
	}

	assert.Equal(t, len(errs), 1)
	skipped := assert.ErrorAs[*replay.SkippedCallError](t, errs[0])
	assert.Equal(t, skipped.Call, vkcall.MapMemory)
	pending := assert.ErrorAs[*remap.PendingAllocationError](t, errs[0])
	assert.Equal(t, pending.Object, vkapi.ObjectOf(vkapi.DeviceMemory(0x200)))

	assert.False(t, slices.Contains(driver.Calls, "AllocateMemory"))
	assert.False(t, slices.Contains(driver.Calls, "MapMemory"))
	assert.False(t, slices.Contains(driver.Calls, "FreeMemory"))

	_, err := s.Lookup(vkapi.ObjectOf(vkapi.DeviceMemory(0x200)))
	assert.ErrorAs[*remap.UnmappedHandleError](t, err)
}

func TestSkippedCall(t *testing.T) {
	store := newTrace(t, append(prelude(),
		&vkcall.QueueSubmitCall{Queue: traceQueue, Submits: []vkapi.SubmitInfo{{CommandBuffers: []vkapi.CommandBuffer{0x999}}}},
		&vkcall.QueueWaitIdleCall{Queue: traceQueue},
	)...)

	t.Run("replay", func(t *testing.T) {
		driver := newDriver(vkfake.Config{})
		s, _ := newSession(t, driver, store, replay.Config{})

		r := store.NewReader()
		var errs []error
		for {
			p, err := r.Next()
			if err == io.EOF {
				break
			}
			assert.OK(t, err)
			if err := s.Replay(p); err != nil {
				errs = append(errs, err)
			}
		}

		assert.Equal(t, len(errs), 1)
		skipped := assert.ErrorAs[*replay.SkippedCallError](t, errs[0])
		assert.Equal(t, skipped.Call, vkcall.QueueSubmit)
		assert.Equal(t, skipped.Result(), vkapi.ErrorValidationFailedEXT)
		unmapped := assert.ErrorAs[*remap.UnmappedHandleError](t, errs[0])
		assert.Equal(t, unmapped.Object, vkapi.ObjectOf(vkapi.CommandBuffer(0x999)))

		assert.False(t, slices.Contains(driver.Calls, "QueueSubmit"))
		assert.Equal(t, driver.Calls[len(driver.Calls)-1], "QueueWaitIdle")
	})

	t.Run("run", func(t *testing.T) {
		driver := newDriver(vkfake.Config{})
		s, logs := newSession(t, driver, store, replay.Config{})
		assert.OK(t, s.Run(context.Background()))
		assert.Equal(t, s.Stats().SkippedCalls, 1)
		assert.Equal(t, driver.Calls[len(driver.Calls)-1], "QueueWaitIdle")
		assert.Contains(t, logs.String(), "call skipped")
	})
}

func TestDeviceLostHaltsReplay(t *testing.T) {
	store := newTrace(t, append(prelude(),
		&vkcall.QueueWaitIdleCall{Queue: traceQueue},
		&vkcall.DeviceWaitIdleCall{Device: traceDevice},
	)...)

	driver := newDriver(vkfake.Config{})
	driver.FailOn["QueueWaitIdle"] = vkapi.ErrorDeviceLost
	s, _ := newSession(t, driver, store, replay.Config{})

	err := s.Run(context.Background())
	lost := assert.ErrorAs[*diag.DeviceLostError](t, err)
	assert.Equal(t, lost.Call, vkcall.QueueWaitIdle)
	assert.False(t, slices.Contains(driver.Calls, "DeviceWaitIdle"))
}

func TestScreenshotLayer(t *testing.T) {
	store := newTrace(t, prelude()...)

	t.Run("available", func(t *testing.T) {
		env := make(map[string]string)
		driver := newDriver(vkfake.Config{Layers: []string{replay.ScreenshotLayer}})
		s, _ := newSession(t, driver, store, replay.Config{
			ScreenshotFrames: "1,5-10",
			Setenv: func(key, value string) error {
				env[key] = value
				return nil
			},
		})
		assert.OK(t, s.Run(context.Background()))

		assert.Equal(t, env[replay.ScreenshotFramesEnv], "1,5-10")
		instance := lookup(t, s, traceInstance)
		assert.True(t, slices.Contains(driver.Instances[instance].EnabledLayers, replay.ScreenshotLayer))
		assert.Equal(t, s.Stats().SkippedCalls, 0)
	})

	t.Run("missing", func(t *testing.T) {
		driver := newDriver(vkfake.Config{})
		s, _ := newSession(t, driver, store, replay.Config{ScreenshotFrames: "1"})
		assert.OK(t, s.Run(context.Background()))

		stats := s.Stats()
		assert.Equal(t, stats.Mismatches, 0)
		// every call following the instance creation depends on it
		assert.Equal(t, stats.SkippedCalls, 3)
	})
}

func TestFenceTimeout(t *testing.T) {
	store := newTrace(t, append(prelude(),
		&vkcall.CreateFenceCall{Device: traceDevice, Fence: 0x400},
		&vkcall.WaitForFencesCall{Device: traceDevice, Fences: []vkapi.Fence{0x400}, WaitAll: true, Timeout: 5e9},
		&vkcall.WaitForFencesCall{Device: traceDevice, Fences: []vkapi.Fence{0x400}, WaitAll: true, Timeout: 7e9, Result: vkapi.Timeout},
	)...)

	driver := newDriver(vkfake.Config{})
	s, _ := newSession(t, driver, store, replay.Config{FenceTimeout: time.Millisecond})
	assert.OK(t, s.Run(context.Background()))

	assert.EqualAll(t, driver.WaitTimeouts, []uint64{1e6, 7e9})
	assert.Equal(t, s.Stats().Mismatches, 0)
}

type quitDisplay struct {
	wsi.Headless
	events int
}

func (d *quitDisplay) ProcessEvents() bool {
	d.events++
	return true
}

func TestPresent(t *testing.T) {
	store := newTrace(t, append(prelude(),
		&vkcall.CreateSurfaceKHRCall{Instance: traceInstance, Width: 640, Height: 480, Surface: 0x600},
		&vkcall.GetPhysicalDeviceSurfaceSupportKHRCall{PhysicalDevice: tracePhysicalDevice, Surface: 0x600, Supported: true},
		&vkcall.CreateSwapchainKHRCall{
			Device: traceDevice,
			CreateInfo: vkapi.SwapchainCreateInfoKHR{
				Surface:          0x600,
				MinImageCount:    3,
				ImageExtent:      vkapi.Extent2D{Width: 800, Height: 600},
				ImageArrayLayers: 1,
			},
			Swapchain: 0x610,
		},
		&vkcall.GetSwapchainImagesKHRCall{Device: traceDevice, Swapchain: 0x610, Count: 3},
		&vkcall.GetSwapchainImagesKHRCall{Device: traceDevice, Swapchain: 0x610, Count: 3, Images: []vkapi.Image{0x620, 0x621, 0x622}},
		&vkcall.AcquireNextImageKHRCall{Device: traceDevice, Swapchain: 0x610, Timeout: math.MaxUint64, ImageIndex: 2},
		&vkcall.QueuePresentKHRCall{
			Queue: traceQueue,
			PresentInfo: vkapi.PresentInfoKHR{
				Swapchains:   []vkapi.SwapchainKHR{0x610},
				ImageIndices: []uint32{2},
			},
		},
		&vkcall.DeviceWaitIdleCall{Device: traceDevice},
	)...)

	// with a single swapchain image, presenting the recorded index would be
	// rejected by the driver
	driver := newDriver(vkfake.Config{SwapchainImages: 1})
	display := new(quitDisplay)
	s, logs := newSession(t, driver, store, replay.Config{Display: display})
	assert.OK(t, s.Run(context.Background()))

	stats := s.Stats()
	assert.Equal(t, stats.Frames, uint64(1))
	assert.Equal(t, stats.Mismatches, 0)
	assert.Equal(t, stats.ValidationMessages, 0)
	assert.Equal(t, stats.SkippedCalls, 0)
	assert.Equal(t, display.events, 1)
	assert.False(t, slices.Contains(driver.Calls, "DeviceWaitIdle"))
	assert.Contains(t, logs.String(), "swapchain has fewer images than in the trace")

	width, height := display.Size()
	assert.Equal(t, width, uint32(800))
	assert.Equal(t, height, uint32(600))
}

func TestValidationMessagesUseTraceHandles(t *testing.T) {
	store := newTrace(t, append(prelude(),
		&vkcall.CreateBufferCall{Device: traceDevice, CreateInfo: vkapi.BufferCreateInfo{Size: 256}, Buffer: 0x100},
		&vkcall.AllocateMemoryCall{Device: traceDevice, AllocateInfo: vkapi.MemoryAllocateInfo{AllocationSize: 2048}, Memory: 0x200},
		// misaligned on the replay device
		&vkcall.BindBufferMemoryCall{Device: traceDevice, Buffer: 0x100, Memory: 0x200, MemoryOffset: 100},
	)...)

	driver := newDriver(vkfake.Config{})
	s, logs := newSession(t, driver, store, replay.Config{})
	assert.OK(t, s.Run(context.Background()))

	stats := s.Stats()
	assert.Equal(t, stats.ValidationMessages, 1)
	assert.Equal(t, stats.ValidationErrors, 1)
	assert.Equal(t, stats.Mismatches, 1)
	assert.Contains(t, logs.String(), "memory offset 100 is not aligned to 256")
	assert.Contains(t, logs.String(), vkapi.ObjectOf(vkapi.Buffer(0x100)).String())
}

func TestRunStops(t *testing.T) {
	b := new(bytes.Buffer)
	w := tracefile.NewWriter(b, tracefile.Header{Platform: "linux"})
	for _, call := range prelude() {
		payload, err := vkcall.Encode(call, w.ByteOrder())
		assert.OK(t, err)
		w.WritePacket(uint32(call.ID()), payload, false)
	}
	w.WritePacket(0xffff, nil, false)
	for i := 0; i < 3; i++ {
		payload, err := vkcall.Encode(&vkcall.DeviceWaitIdleCall{Device: traceDevice}, w.ByteOrder())
		assert.OK(t, err)
		w.WritePacket(uint32(vkcall.DeviceWaitIdle), payload, false)
	}
	assert.OK(t, w.Close())
	store := openTrace(t, b)
	packets := uint64(len(prelude()) + 4)

	t.Run("unknown calls are skipped", func(t *testing.T) {
		driver := newDriver(vkfake.Config{})
		s, _ := newSession(t, driver, store, replay.Config{})
		assert.OK(t, s.Run(context.Background()))

		stats := s.Stats()
		assert.Equal(t, stats.Packets, packets)
		assert.Equal(t, stats.SkippedCalls, 1)
		assert.Equal(t, count(driver.Calls, "DeviceWaitIdle"), 3)
	})

	t.Run("end index", func(t *testing.T) {
		driver := newDriver(vkfake.Config{})
		s, _ := newSession(t, driver, store, replay.Config{EndIndex: packets - 2})
		assert.OK(t, s.Run(context.Background()))
		assert.Equal(t, s.Stats().Packets, packets-1)
		assert.Equal(t, count(driver.Calls, "DeviceWaitIdle"), 2)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		driver := newDriver(vkfake.Config{})
		s, _ := newSession(t, driver, store, replay.Config{})
		assert.Error(t, s.Run(ctx), context.Canceled)
		assert.Equal(t, s.Stats().Packets, uint64(0))
		assert.Equal(t, len(driver.Calls), 0)
	})
}
