package vkcall

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/LunarG/VulkanTools-sub014/internal/assert"
	"github.com/LunarG/VulkanTools-sub014/internal/tracefile"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

var sampleCalls = []Call{
	&CreateInstanceCall{
		CreateInfo: vkapi.InstanceCreateInfo{
			ApplicationInfo: &vkapi.ApplicationInfo{
				ApplicationName: "cube",
				EngineName:      "none",
				APIVersion:      1<<22 | 3<<12,
			},
			EnabledLayers:     []string{"VK_LAYER_KHRONOS_validation"},
			EnabledExtensions: []string{"VK_KHR_surface", "VK_EXT_debug_report"},
		},
		Instance: 0x1000,
		Result:   vkapi.Success,
	},
	&CreateDeviceCall{
		PhysicalDevice: 0x2000,
		CreateInfo: vkapi.DeviceCreateInfo{
			QueueCreateInfos: []vkapi.DeviceQueueCreateInfo{
				{QueueFamilyIndex: 0, QueuePriorities: []float32{1, 0.5}},
				{QueueFamilyIndex: 2, QueuePriorities: []float32{0.25}},
			},
			EnabledExtensions: []string{"VK_KHR_swapchain"},
		},
		Device: 0x3000,
	},
	&AllocateMemoryCall{
		Device: 0x3000,
		AllocateInfo: vkapi.MemoryAllocateInfo{
			Next: vkapi.Chain{
				&vkapi.MemoryDedicatedAllocateInfo{Buffer: 0x4000},
				&vkapi.RawExtension{Type: 1000072002, Data: []byte{1, 2, 3, 4, 5}},
				&vkapi.MemoryAllocateFlagsInfo{Flags: 1, DeviceMask: 3},
			},
			AllocationSize:  65536,
			MemoryTypeIndex: 7,
		},
		Memory: 0x5000,
	},
	&QueueSubmitCall{
		Queue: 0x6000,
		Submits: []vkapi.SubmitInfo{
			{
				WaitSemaphores:   []vkapi.Semaphore{0x7000},
				WaitDstStageMask: []uint32{0x400},
				CommandBuffers:   []vkapi.CommandBuffer{0x8000, 0x8001},
			},
			{},
		},
		Fence:  0x9000,
		Result: vkapi.ErrorDeviceLost,
	},
	&UnmapMemoryCall{
		Device: 0x3000,
		Memory: 0x5000,
		Offset: 128,
		Data:   []byte("mapped memory content"),
	},
	&UpdateDescriptorSetsCall{
		Device: 0x3000,
		Writes: []vkapi.WriteDescriptorSet{{
			DstSet:     0xa000,
			DstBinding: 1,
			BufferInfo: []vkapi.DescriptorBufferInfo{{Buffer: 0x4000, Range: vkapi.WholeSize}},
		}},
	},
	&CreateComputePipelinesCall{
		Device: 0x3000,
		CreateInfos: []vkapi.ComputePipelineCreateInfo{{
			Stage:             vkapi.PipelineShaderStageCreateInfo{Stage: 0x20, Module: 0xb000, Name: "main"},
			Layout:            0xc000,
			BasePipelineIndex: -1,
		}},
		Pipelines: []vkapi.Pipeline{0xd000},
	},
	&QueuePresentKHRCall{
		Queue: 0x6000,
		PresentInfo: vkapi.PresentInfoKHR{
			Swapchains:   []vkapi.SwapchainKHR{0xe000},
			ImageIndices: []uint32{2},
		},
		Result: vkapi.SuboptimalKHR,
	},
	&DestroyInstanceCall{Instance: 0x1000},
}

func TestRoundTrip(t *testing.T) {
	for _, endianness := range []tracefile.Endianness{tracefile.LittleEndian, tracefile.BigEndian} {
		t.Run(tracefile.ByteOrder(endianness).String(), func(t *testing.T) {
			buf := new(bytes.Buffer)
			w := NewTraceWriter(tracefile.NewWriter(buf, tracefile.Header{Endianness: endianness}))
			for _, call := range sampleCalls {
				_, err := w.WriteCall(call)
				assert.OK(t, err)
			}
			assert.OK(t, w.Close())

			s, err := tracefile.NewStore(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
			assert.OK(t, err)
			defer s.Close()

			r := s.NewReader()
			for _, want := range sampleCalls {
				p, err := r.Next()
				assert.OK(t, err)
				got, err := Decode(p, s.ByteOrder())
				assert.OK(t, err)
				assert.Equal(t, got.ID(), want.ID())
				assert.DeepEqual(t, got, want)
			}
			_, err = r.Next()
			assert.Equal(t, err, io.EOF)

			portable := 0
			for _, call := range sampleCalls {
				if Portable(call.ID()) {
					portable++
				}
			}
			assert.Equal(t, len(s.Header().PortabilityTable), portable)
		})
	}
}

func TestDecodeDoesNotRetainPayload(t *testing.T) {
	call := &UnmapMemoryCall{Memory: 1, Data: []byte("hello")}
	payload, err := Encode(call, binary.LittleEndian)
	assert.OK(t, err)

	p := &tracefile.Packet{ID: uint32(UnmapMemory), Payload: payload}
	got, err := Decode(p, binary.LittleEndian)
	assert.OK(t, err)
	for i := range payload {
		payload[i] = 0
	}
	assert.Equal(t, string(got.(*UnmapMemoryCall).Data), "hello")
}

func TestDecodeUnknownCall(t *testing.T) {
	for _, id := range []uint32{uint32(Invalid), 0xffff} {
		_, err := Decode(&tracefile.Packet{ID: id, Index: 42}, binary.LittleEndian)
		e := assert.ErrorAs[*UnknownCallError](t, err)
		assert.Equal(t, e.Index, uint64(42))
		assert.False(t, Supported(CallID(id)))
	}
	assert.True(t, Supported(QueuePresentKHR))
}

func TestDecodeCorruptPayload(t *testing.T) {
	order := binary.LittleEndian
	payload, err := Encode(sampleCalls[0], order)
	assert.OK(t, err)

	tests := []struct {
		scenario string
		payload  func() []byte
	}{
		{
			scenario: "truncated payload",
			payload:  func() []byte { return payload[:20] },
		},
		{
			scenario: "pointer out of bounds",
			payload: func() []byte {
				b := append([]byte(nil), payload...)
				// CreateInstanceCall: chain pointer, flags, application info pointer
				order.PutUint64(b[12:], uint64(len(b)+64))
				return b
			},
		},
		{
			scenario: "element count exceeds payload",
			payload: func() []byte {
				b := append([]byte(nil), payload...)
				// enabled layers count follows the application info pointer
				order.PutUint32(b[20:], 1<<30)
				return b
			},
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			p := &tracefile.Packet{ID: uint32(CreateInstance), Offset: 99, Payload: test.payload()}
			_, err := Decode(p, order)
			e := assert.ErrorAs[*tracefile.CorruptTraceError](t, err)
			assert.Equal(t, e.Offset, int64(99))
		})
	}
}

func TestDecodeCyclicChain(t *testing.T) {
	order := binary.LittleEndian
	// device, chain pointer, allocation size, memory type index, memory, result
	b := make([]byte, 8+8+8+4+8+4)
	node := uint64(len(b))
	order.PutUint64(b[8:], node)
	// sType, body size, next
	b = order.AppendUint32(b, 1000072002)
	b = order.AppendUint32(b, 0)
	b = order.AppendUint64(b, node)

	p := &tracefile.Packet{ID: uint32(AllocateMemory), Payload: b}
	_, err := Decode(p, order)
	assert.ErrorAs[*tracefile.CorruptTraceError](t, err)
	assert.Error(t, err, errChainTooLong)
}

func TestCallIDString(t *testing.T) {
	assert.Equal(t, CreateInstance.String(), "vkCreateInstance")
	assert.Equal(t, DestroyDebugReportCallbackEXT.String(), "vkDestroyDebugReportCallbackEXT")
	assert.Equal(t, CallID(1000).String(), "CallID(1000)")
	assert.Equal(t, New(DestroyDebugReportCallbackEXT).ID(), DestroyDebugReportCallbackEXT)
}
