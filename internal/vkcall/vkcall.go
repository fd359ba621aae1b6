// Package vkcall contains the representation of recorded API calls and the
// codec translating them from and to packet payloads.
package vkcall

import (
	"encoding/binary"
	"fmt"

	"github.com/LunarG/VulkanTools-sub014/internal/tracefile"
)

// UnknownCallError is returned by Decode when a packet carries a call id
// that the replayer does not support.
type UnknownCallError struct {
	ID    CallID
	Index uint64
}

func (e *UnknownCallError) Error() string {
	return fmt.Sprintf("packet %d: unsupported call %s", e.Index, e.ID)
}

var callFactories = [...]func() Call{
	CreateInstance:                         func() Call { return new(CreateInstanceCall) },
	DestroyInstance:                        func() Call { return new(DestroyInstanceCall) },
	EnumeratePhysicalDevices:               func() Call { return new(EnumeratePhysicalDevicesCall) },
	GetPhysicalDeviceProperties:            func() Call { return new(GetPhysicalDevicePropertiesCall) },
	GetPhysicalDeviceMemoryProperties:      func() Call { return new(GetPhysicalDeviceMemoryPropertiesCall) },
	GetPhysicalDeviceQueueFamilyProperties: func() Call { return new(GetPhysicalDeviceQueueFamilyPropertiesCall) },
	CreateDevice:                           func() Call { return new(CreateDeviceCall) },
	DestroyDevice:                          func() Call { return new(DestroyDeviceCall) },
	GetDeviceQueue:                         func() Call { return new(GetDeviceQueueCall) },
	DeviceWaitIdle:                         func() Call { return new(DeviceWaitIdleCall) },
	QueueWaitIdle:                          func() Call { return new(QueueWaitIdleCall) },
	QueueSubmit:                            func() Call { return new(QueueSubmitCall) },
	AllocateMemory:                         func() Call { return new(AllocateMemoryCall) },
	FreeMemory:                             func() Call { return new(FreeMemoryCall) },
	MapMemory:                              func() Call { return new(MapMemoryCall) },
	UnmapMemory:                            func() Call { return new(UnmapMemoryCall) },
	CreateBuffer:                           func() Call { return new(CreateBufferCall) },
	DestroyBuffer:                          func() Call { return new(DestroyBufferCall) },
	GetBufferMemoryRequirements:            func() Call { return new(GetBufferMemoryRequirementsCall) },
	BindBufferMemory:                       func() Call { return new(BindBufferMemoryCall) },
	CreateImage:                            func() Call { return new(CreateImageCall) },
	DestroyImage:                           func() Call { return new(DestroyImageCall) },
	GetImageMemoryRequirements:             func() Call { return new(GetImageMemoryRequirementsCall) },
	BindImageMemory:                        func() Call { return new(BindImageMemoryCall) },
	BindBufferMemory2:                      func() Call { return new(BindBufferMemory2Call) },
	BindImageMemory2:                       func() Call { return new(BindImageMemory2Call) },
	CreateImageView:                        func() Call { return new(CreateImageViewCall) },
	DestroyImageView:                       func() Call { return new(DestroyImageViewCall) },
	CreateFence:                            func() Call { return new(CreateFenceCall) },
	DestroyFence:                           func() Call { return new(DestroyFenceCall) },
	ResetFences:                            func() Call { return new(ResetFencesCall) },
	WaitForFences:                          func() Call { return new(WaitForFencesCall) },
	GetFenceStatus:                         func() Call { return new(GetFenceStatusCall) },
	CreateSemaphore:                        func() Call { return new(CreateSemaphoreCall) },
	DestroySemaphore:                       func() Call { return new(DestroySemaphoreCall) },
	CreateCommandPool:                      func() Call { return new(CreateCommandPoolCall) },
	DestroyCommandPool:                     func() Call { return new(DestroyCommandPoolCall) },
	AllocateCommandBuffers:                 func() Call { return new(AllocateCommandBuffersCall) },
	FreeCommandBuffers:                     func() Call { return new(FreeCommandBuffersCall) },
	BeginCommandBuffer:                     func() Call { return new(BeginCommandBufferCall) },
	EndCommandBuffer:                       func() Call { return new(EndCommandBufferCall) },
	CmdCopyBuffer:                          func() Call { return new(CmdCopyBufferCall) },
	CmdPipelineBarrier:                     func() Call { return new(CmdPipelineBarrierCall) },
	CmdBindPipeline:                        func() Call { return new(CmdBindPipelineCall) },
	CmdBindDescriptorSets:                  func() Call { return new(CmdBindDescriptorSetsCall) },
	CmdDispatch:                            func() Call { return new(CmdDispatchCall) },
	CreateDescriptorSetLayout:              func() Call { return new(CreateDescriptorSetLayoutCall) },
	DestroyDescriptorSetLayout:             func() Call { return new(DestroyDescriptorSetLayoutCall) },
	CreateDescriptorPool:                   func() Call { return new(CreateDescriptorPoolCall) },
	DestroyDescriptorPool:                  func() Call { return new(DestroyDescriptorPoolCall) },
	AllocateDescriptorSets:                 func() Call { return new(AllocateDescriptorSetsCall) },
	FreeDescriptorSets:                     func() Call { return new(FreeDescriptorSetsCall) },
	UpdateDescriptorSets:                   func() Call { return new(UpdateDescriptorSetsCall) },
	CreatePipelineLayout:                   func() Call { return new(CreatePipelineLayoutCall) },
	DestroyPipelineLayout:                  func() Call { return new(DestroyPipelineLayoutCall) },
	CreateShaderModule:                     func() Call { return new(CreateShaderModuleCall) },
	DestroyShaderModule:                    func() Call { return new(DestroyShaderModuleCall) },
	CreateComputePipelines:                 func() Call { return new(CreateComputePipelinesCall) },
	DestroyPipeline:                        func() Call { return new(DestroyPipelineCall) },
	CreateSurfaceKHR:                       func() Call { return new(CreateSurfaceKHRCall) },
	DestroySurfaceKHR:                      func() Call { return new(DestroySurfaceKHRCall) },
	GetPhysicalDeviceSurfaceSupportKHR:     func() Call { return new(GetPhysicalDeviceSurfaceSupportKHRCall) },
	CreateSwapchainKHR:                     func() Call { return new(CreateSwapchainKHRCall) },
	DestroySwapchainKHR:                    func() Call { return new(DestroySwapchainKHRCall) },
	GetSwapchainImagesKHR:                  func() Call { return new(GetSwapchainImagesKHRCall) },
	AcquireNextImageKHR:                    func() Call { return new(AcquireNextImageKHRCall) },
	QueuePresentKHR:                        func() Call { return new(QueuePresentKHRCall) },
	CreateDebugReportCallbackEXT:           func() Call { return new(CreateDebugReportCallbackEXTCall) },
	DestroyDebugReportCallbackEXT:          func() Call { return new(DestroyDebugReportCallbackEXTCall) },
}

// New returns a zero value call for the given id, or nil if the id is not
// supported.
func New(id CallID) Call {
	if int(id) >= len(callFactories) || callFactories[id] == nil {
		return nil
	}
	return callFactories[id]()
}

// Supported reports whether packets with the given id can be decoded.
func Supported(id CallID) bool {
	return int(id) < len(callFactories) && callFactories[id] != nil
}

// Decode decodes the call recorded in p. The returned call does not retain
// references to the packet payload.
//
// Malformed payloads produce a *tracefile.CorruptTraceError, and packets with
// unsupported call ids produce a *UnknownCallError.
func Decode(p *tracefile.Packet, order binary.ByteOrder) (Call, error) {
	id := CallID(p.ID)
	call := New(id)
	if call == nil {
		return nil, &UnknownCallError{ID: id, Index: p.Index}
	}
	d := &decoder{packet: p, order: order, state: new(decodeState)}
	call.code(d)
	if d.state.err != nil {
		return nil, d.state.err
	}
	return call, nil
}

// Encode serializes call to a packet payload.
func Encode(call Call, order binary.ByteOrder) ([]byte, error) {
	e := &encoder{order: order}
	call.code(e)
	if e.err != nil {
		return nil, fmt.Errorf("encoding %s: %w", call.ID(), e.err)
	}
	b, _ := e.finish()
	return b, nil
}

// Portable reports whether packets carrying the call are indexed in the
// portability table of traces. These are the calls that the replayer needs
// to look ahead at when translating memory allocations.
func Portable(id CallID) bool {
	switch id {
	case AllocateMemory, FreeMemory,
		CreateBuffer, CreateImage,
		BindBufferMemory, BindImageMemory,
		BindBufferMemory2, BindImageMemory2:
		return true
	default:
		return false
	}
}

// TraceWriter writes calls to a trace file.
type TraceWriter struct {
	w *tracefile.Writer
}

func NewTraceWriter(w *tracefile.Writer) *TraceWriter {
	return &TraceWriter{w: w}
}

// WriteCall appends call to the trace and returns the global index of the
// packet that it was written to.
func (t *TraceWriter) WriteCall(call Call) (uint64, error) {
	payload, err := Encode(call, t.w.ByteOrder())
	if err != nil {
		return 0, err
	}
	id := call.ID()
	return t.w.WritePacket(uint32(id), payload, Portable(id)), nil
}

// Close flushes the trace to its output.
func (t *TraceWriter) Close() error {
	return t.w.Close()
}
