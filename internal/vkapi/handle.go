// Package vkapi declares the subset of the Vulkan API that the replay engine
// drives: object handles, result codes, structures and the API interface
// implemented by live drivers.
//
// Handles are carried as 64 bit integers. Values recorded in a trace (virtual
// handles) and values produced by the live implementation (replay handles)
// share the same Go types; only the remap table knows which is which.
package vkapi

import "strconv"

// ObjectType identifies the category of an object handle. Values match
// VkObjectType.
type ObjectType uint32

const (
	ObjectTypeUnknown                ObjectType = 0
	ObjectTypeInstance               ObjectType = 1
	ObjectTypePhysicalDevice         ObjectType = 2
	ObjectTypeDevice                 ObjectType = 3
	ObjectTypeQueue                  ObjectType = 4
	ObjectTypeSemaphore              ObjectType = 5
	ObjectTypeCommandBuffer          ObjectType = 6
	ObjectTypeFence                  ObjectType = 7
	ObjectTypeDeviceMemory           ObjectType = 8
	ObjectTypeBuffer                 ObjectType = 9
	ObjectTypeImage                  ObjectType = 10
	ObjectTypeImageView              ObjectType = 14
	ObjectTypeShaderModule           ObjectType = 15
	ObjectTypePipelineLayout         ObjectType = 17
	ObjectTypePipeline               ObjectType = 19
	ObjectTypeDescriptorSetLayout    ObjectType = 20
	ObjectTypeDescriptorPool         ObjectType = 22
	ObjectTypeDescriptorSet          ObjectType = 23
	ObjectTypeCommandPool            ObjectType = 25
	ObjectTypeSurfaceKHR             ObjectType = 1000000000
	ObjectTypeSwapchainKHR           ObjectType = 1000001000
	ObjectTypeDebugReportCallbackEXT ObjectType = 1000011000
)

var objectTypeNames = map[ObjectType]string{
	ObjectTypeUnknown:                "unknown",
	ObjectTypeInstance:               "instance",
	ObjectTypePhysicalDevice:         "physical device",
	ObjectTypeDevice:                 "device",
	ObjectTypeQueue:                  "queue",
	ObjectTypeSemaphore:              "semaphore",
	ObjectTypeCommandBuffer:          "command buffer",
	ObjectTypeFence:                  "fence",
	ObjectTypeDeviceMemory:           "device memory",
	ObjectTypeBuffer:                 "buffer",
	ObjectTypeImage:                  "image",
	ObjectTypeImageView:              "image view",
	ObjectTypeShaderModule:           "shader module",
	ObjectTypePipelineLayout:         "pipeline layout",
	ObjectTypePipeline:               "pipeline",
	ObjectTypeDescriptorSetLayout:    "descriptor set layout",
	ObjectTypeDescriptorPool:         "descriptor pool",
	ObjectTypeDescriptorSet:          "descriptor set",
	ObjectTypeCommandPool:            "command pool",
	ObjectTypeSurfaceKHR:             "surface",
	ObjectTypeSwapchainKHR:           "swapchain",
	ObjectTypeDebugReportCallbackEXT: "debug report callback",
}

func (t ObjectType) String() string {
	if s, ok := objectTypeNames[t]; ok {
		return s
	}
	return "ObjectType(" + strconv.FormatUint(uint64(t), 10) + ")"
}

// Handle is the constraint satisfied by every object handle type.
type Handle interface {
	~uint64
	ObjectType() ObjectType
}

type (
	Instance               uint64
	PhysicalDevice         uint64
	Device                 uint64
	Queue                  uint64
	Semaphore              uint64
	CommandBuffer          uint64
	Fence                  uint64
	DeviceMemory           uint64
	Buffer                 uint64
	Image                  uint64
	ImageView              uint64
	ShaderModule           uint64
	PipelineLayout         uint64
	Pipeline               uint64
	DescriptorSetLayout    uint64
	DescriptorPool         uint64
	DescriptorSet          uint64
	CommandPool            uint64
	SurfaceKHR             uint64
	SwapchainKHR           uint64
	DebugReportCallbackEXT uint64
)

func (Instance) ObjectType() ObjectType               { return ObjectTypeInstance }
func (PhysicalDevice) ObjectType() ObjectType         { return ObjectTypePhysicalDevice }
func (Device) ObjectType() ObjectType                 { return ObjectTypeDevice }
func (Queue) ObjectType() ObjectType                  { return ObjectTypeQueue }
func (Semaphore) ObjectType() ObjectType              { return ObjectTypeSemaphore }
func (CommandBuffer) ObjectType() ObjectType          { return ObjectTypeCommandBuffer }
func (Fence) ObjectType() ObjectType                  { return ObjectTypeFence }
func (DeviceMemory) ObjectType() ObjectType           { return ObjectTypeDeviceMemory }
func (Buffer) ObjectType() ObjectType                 { return ObjectTypeBuffer }
func (Image) ObjectType() ObjectType                  { return ObjectTypeImage }
func (ImageView) ObjectType() ObjectType              { return ObjectTypeImageView }
func (ShaderModule) ObjectType() ObjectType           { return ObjectTypeShaderModule }
func (PipelineLayout) ObjectType() ObjectType         { return ObjectTypePipelineLayout }
func (Pipeline) ObjectType() ObjectType               { return ObjectTypePipeline }
func (DescriptorSetLayout) ObjectType() ObjectType    { return ObjectTypeDescriptorSetLayout }
func (DescriptorPool) ObjectType() ObjectType         { return ObjectTypeDescriptorPool }
func (DescriptorSet) ObjectType() ObjectType          { return ObjectTypeDescriptorSet }
func (CommandPool) ObjectType() ObjectType            { return ObjectTypeCommandPool }
func (SurfaceKHR) ObjectType() ObjectType             { return ObjectTypeSurfaceKHR }
func (SwapchainKHR) ObjectType() ObjectType           { return ObjectTypeSwapchainKHR }
func (DebugReportCallbackEXT) ObjectType() ObjectType { return ObjectTypeDebugReportCallbackEXT }

// Object is a handle erased to its category and value, usable as a map key.
type Object struct {
	Type   ObjectType
	Handle uint64
}

// ObjectOf returns the Object representation of h.
func ObjectOf[H Handle](h H) Object {
	return Object{Type: h.ObjectType(), Handle: uint64(h)}
}

func (o Object) String() string {
	return o.Type.String() + ":0x" + strconv.FormatUint(o.Handle, 16)
}
