package vkcall

import "github.com/LunarG/VulkanTools-sub014/internal/vkapi"

// Call is a decoded API call. Handle fields hold the virtual handles
// recorded in the trace, output fields hold the values observed at capture
// time.
type Call interface {
	ID() CallID
	code(c coder)
}

type CreateInstanceCall struct {
	CreateInfo vkapi.InstanceCreateInfo
	Instance   vkapi.Instance
	Result     vkapi.Result
}

func (*CreateInstanceCall) ID() CallID { return CreateInstance }
func (call *CreateInstanceCall) code(c coder) {
	instanceCreateInfo(c, &call.CreateInfo)
	handle(c, &call.Instance)
	result(c, &call.Result)
}

type DestroyInstanceCall struct {
	Instance vkapi.Instance
}

func (*DestroyInstanceCall) ID() CallID { return DestroyInstance }
func (call *DestroyInstanceCall) code(c coder) {
	handle(c, &call.Instance)
}

// EnumeratePhysicalDevicesCall has a nil PhysicalDevices slice when the
// application only queried the device count.
type EnumeratePhysicalDevicesCall struct {
	Instance        vkapi.Instance
	Count           uint32
	PhysicalDevices []vkapi.PhysicalDevice
	Result          vkapi.Result
}

func (*EnumeratePhysicalDevicesCall) ID() CallID { return EnumeratePhysicalDevices }
func (call *EnumeratePhysicalDevicesCall) code(c coder) {
	handle(c, &call.Instance)
	c.u32(&call.Count)
	handles(c, &call.PhysicalDevices)
	result(c, &call.Result)
}

type GetPhysicalDevicePropertiesCall struct {
	PhysicalDevice vkapi.PhysicalDevice
	Properties     vkapi.PhysicalDeviceProperties
}

func (*GetPhysicalDevicePropertiesCall) ID() CallID { return GetPhysicalDeviceProperties }
func (call *GetPhysicalDevicePropertiesCall) code(c coder) {
	handle(c, &call.PhysicalDevice)
	physicalDeviceProperties(c, &call.Properties)
}

type GetPhysicalDeviceMemoryPropertiesCall struct {
	PhysicalDevice   vkapi.PhysicalDevice
	MemoryProperties vkapi.PhysicalDeviceMemoryProperties
}

func (*GetPhysicalDeviceMemoryPropertiesCall) ID() CallID {
	return GetPhysicalDeviceMemoryProperties
}
func (call *GetPhysicalDeviceMemoryPropertiesCall) code(c coder) {
	handle(c, &call.PhysicalDevice)
	memoryProperties(c, &call.MemoryProperties)
}

// GetPhysicalDeviceQueueFamilyPropertiesCall has a nil Properties slice when
// the application only queried the family count.
type GetPhysicalDeviceQueueFamilyPropertiesCall struct {
	PhysicalDevice vkapi.PhysicalDevice
	Count          uint32
	Properties     []vkapi.QueueFamilyProperties
}

func (*GetPhysicalDeviceQueueFamilyPropertiesCall) ID() CallID {
	return GetPhysicalDeviceQueueFamilyProperties
}
func (call *GetPhysicalDeviceQueueFamilyPropertiesCall) code(c coder) {
	handle(c, &call.PhysicalDevice)
	c.u32(&call.Count)
	array(c, &call.Properties, queueFamilyProperties)
}

type CreateDeviceCall struct {
	PhysicalDevice vkapi.PhysicalDevice
	CreateInfo     vkapi.DeviceCreateInfo
	Device         vkapi.Device
	Result         vkapi.Result
}

func (*CreateDeviceCall) ID() CallID { return CreateDevice }
func (call *CreateDeviceCall) code(c coder) {
	handle(c, &call.PhysicalDevice)
	deviceCreateInfo(c, &call.CreateInfo)
	handle(c, &call.Device)
	result(c, &call.Result)
}

type DestroyDeviceCall struct {
	Device vkapi.Device
}

func (*DestroyDeviceCall) ID() CallID { return DestroyDevice }
func (call *DestroyDeviceCall) code(c coder) {
	handle(c, &call.Device)
}

type GetDeviceQueueCall struct {
	Device           vkapi.Device
	QueueFamilyIndex uint32
	QueueIndex       uint32
	Queue            vkapi.Queue
}

func (*GetDeviceQueueCall) ID() CallID { return GetDeviceQueue }
func (call *GetDeviceQueueCall) code(c coder) {
	handle(c, &call.Device)
	c.u32(&call.QueueFamilyIndex)
	c.u32(&call.QueueIndex)
	handle(c, &call.Queue)
}

type DeviceWaitIdleCall struct {
	Device vkapi.Device
	Result vkapi.Result
}

func (*DeviceWaitIdleCall) ID() CallID { return DeviceWaitIdle }
func (call *DeviceWaitIdleCall) code(c coder) {
	handle(c, &call.Device)
	result(c, &call.Result)
}

type QueueWaitIdleCall struct {
	Queue  vkapi.Queue
	Result vkapi.Result
}

func (*QueueWaitIdleCall) ID() CallID { return QueueWaitIdle }
func (call *QueueWaitIdleCall) code(c coder) {
	handle(c, &call.Queue)
	result(c, &call.Result)
}

type QueueSubmitCall struct {
	Queue   vkapi.Queue
	Submits []vkapi.SubmitInfo
	Fence   vkapi.Fence
	Result  vkapi.Result
}

func (*QueueSubmitCall) ID() CallID { return QueueSubmit }
func (call *QueueSubmitCall) code(c coder) {
	handle(c, &call.Queue)
	array(c, &call.Submits, submitInfo)
	handle(c, &call.Fence)
	result(c, &call.Result)
}

type AllocateMemoryCall struct {
	Device       vkapi.Device
	AllocateInfo vkapi.MemoryAllocateInfo
	Memory       vkapi.DeviceMemory
	Result       vkapi.Result
}

func (*AllocateMemoryCall) ID() CallID { return AllocateMemory }
func (call *AllocateMemoryCall) code(c coder) {
	handle(c, &call.Device)
	memoryAllocateInfo(c, &call.AllocateInfo)
	handle(c, &call.Memory)
	result(c, &call.Result)
}

type FreeMemoryCall struct {
	Device vkapi.Device
	Memory vkapi.DeviceMemory
}

func (*FreeMemoryCall) ID() CallID { return FreeMemory }
func (call *FreeMemoryCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Memory)
}

type MapMemoryCall struct {
	Device vkapi.Device
	Memory vkapi.DeviceMemory
	Offset uint64
	Size   uint64
	Flags  uint32
	Result vkapi.Result
}

func (*MapMemoryCall) ID() CallID { return MapMemory }
func (call *MapMemoryCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Memory)
	c.u64(&call.Offset)
	c.u64(&call.Size)
	c.u32(&call.Flags)
	result(c, &call.Result)
}

// UnmapMemoryCall carries the bytes that the application wrote to the mapped
// range, starting at Offset relative to the beginning of the memory object.
type UnmapMemoryCall struct {
	Device vkapi.Device
	Memory vkapi.DeviceMemory
	Offset uint64
	Data   []byte
}

func (*UnmapMemoryCall) ID() CallID { return UnmapMemory }
func (call *UnmapMemoryCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Memory)
	c.u64(&call.Offset)
	byteArray(c, &call.Data)
}

type CreateBufferCall struct {
	Device     vkapi.Device
	CreateInfo vkapi.BufferCreateInfo
	Buffer     vkapi.Buffer
	Result     vkapi.Result
}

func (*CreateBufferCall) ID() CallID { return CreateBuffer }
func (call *CreateBufferCall) code(c coder) {
	handle(c, &call.Device)
	bufferCreateInfo(c, &call.CreateInfo)
	handle(c, &call.Buffer)
	result(c, &call.Result)
}

type DestroyBufferCall struct {
	Device vkapi.Device
	Buffer vkapi.Buffer
}

func (*DestroyBufferCall) ID() CallID { return DestroyBuffer }
func (call *DestroyBufferCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Buffer)
}

type GetBufferMemoryRequirementsCall struct {
	Device       vkapi.Device
	Buffer       vkapi.Buffer
	Requirements vkapi.MemoryRequirements
}

func (*GetBufferMemoryRequirementsCall) ID() CallID { return GetBufferMemoryRequirements }
func (call *GetBufferMemoryRequirementsCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Buffer)
	memoryRequirements(c, &call.Requirements)
}

type BindBufferMemoryCall struct {
	Device       vkapi.Device
	Buffer       vkapi.Buffer
	Memory       vkapi.DeviceMemory
	MemoryOffset uint64
	Result       vkapi.Result
}

func (*BindBufferMemoryCall) ID() CallID { return BindBufferMemory }
func (call *BindBufferMemoryCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Buffer)
	handle(c, &call.Memory)
	c.u64(&call.MemoryOffset)
	result(c, &call.Result)
}

type CreateImageCall struct {
	Device     vkapi.Device
	CreateInfo vkapi.ImageCreateInfo
	Image      vkapi.Image
	Result     vkapi.Result
}

func (*CreateImageCall) ID() CallID { return CreateImage }
func (call *CreateImageCall) code(c coder) {
	handle(c, &call.Device)
	imageCreateInfo(c, &call.CreateInfo)
	handle(c, &call.Image)
	result(c, &call.Result)
}

type DestroyImageCall struct {
	Device vkapi.Device
	Image  vkapi.Image
}

func (*DestroyImageCall) ID() CallID { return DestroyImage }
func (call *DestroyImageCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Image)
}

type GetImageMemoryRequirementsCall struct {
	Device       vkapi.Device
	Image        vkapi.Image
	Requirements vkapi.MemoryRequirements
}

func (*GetImageMemoryRequirementsCall) ID() CallID { return GetImageMemoryRequirements }
func (call *GetImageMemoryRequirementsCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Image)
	memoryRequirements(c, &call.Requirements)
}

type BindImageMemoryCall struct {
	Device       vkapi.Device
	Image        vkapi.Image
	Memory       vkapi.DeviceMemory
	MemoryOffset uint64
	Result       vkapi.Result
}

func (*BindImageMemoryCall) ID() CallID { return BindImageMemory }
func (call *BindImageMemoryCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Image)
	handle(c, &call.Memory)
	c.u64(&call.MemoryOffset)
	result(c, &call.Result)
}

type BindBufferMemory2Call struct {
	Device    vkapi.Device
	BindInfos []vkapi.BindBufferMemoryInfo
	Result    vkapi.Result
}

func (*BindBufferMemory2Call) ID() CallID { return BindBufferMemory2 }
func (call *BindBufferMemory2Call) code(c coder) {
	handle(c, &call.Device)
	array(c, &call.BindInfos, bindBufferMemoryInfo)
	result(c, &call.Result)
}

type BindImageMemory2Call struct {
	Device    vkapi.Device
	BindInfos []vkapi.BindImageMemoryInfo
	Result    vkapi.Result
}

func (*BindImageMemory2Call) ID() CallID { return BindImageMemory2 }
func (call *BindImageMemory2Call) code(c coder) {
	handle(c, &call.Device)
	array(c, &call.BindInfos, bindImageMemoryInfo)
	result(c, &call.Result)
}

type CreateImageViewCall struct {
	Device     vkapi.Device
	CreateInfo vkapi.ImageViewCreateInfo
	View       vkapi.ImageView
	Result     vkapi.Result
}

func (*CreateImageViewCall) ID() CallID { return CreateImageView }
func (call *CreateImageViewCall) code(c coder) {
	handle(c, &call.Device)
	imageViewCreateInfo(c, &call.CreateInfo)
	handle(c, &call.View)
	result(c, &call.Result)
}

type DestroyImageViewCall struct {
	Device vkapi.Device
	View   vkapi.ImageView
}

func (*DestroyImageViewCall) ID() CallID { return DestroyImageView }
func (call *DestroyImageViewCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.View)
}

type CreateFenceCall struct {
	Device     vkapi.Device
	CreateInfo vkapi.FenceCreateInfo
	Fence      vkapi.Fence
	Result     vkapi.Result
}

func (*CreateFenceCall) ID() CallID { return CreateFence }
func (call *CreateFenceCall) code(c coder) {
	handle(c, &call.Device)
	fenceCreateInfo(c, &call.CreateInfo)
	handle(c, &call.Fence)
	result(c, &call.Result)
}

type DestroyFenceCall struct {
	Device vkapi.Device
	Fence  vkapi.Fence
}

func (*DestroyFenceCall) ID() CallID { return DestroyFence }
func (call *DestroyFenceCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Fence)
}

type ResetFencesCall struct {
	Device vkapi.Device
	Fences []vkapi.Fence
	Result vkapi.Result
}

func (*ResetFencesCall) ID() CallID { return ResetFences }
func (call *ResetFencesCall) code(c coder) {
	handle(c, &call.Device)
	handles(c, &call.Fences)
	result(c, &call.Result)
}

type WaitForFencesCall struct {
	Device  vkapi.Device
	Fences  []vkapi.Fence
	WaitAll bool
	Timeout uint64
	Result  vkapi.Result
}

func (*WaitForFencesCall) ID() CallID { return WaitForFences }
func (call *WaitForFencesCall) code(c coder) {
	handle(c, &call.Device)
	handles(c, &call.Fences)
	boolean(c, &call.WaitAll)
	c.u64(&call.Timeout)
	result(c, &call.Result)
}

type GetFenceStatusCall struct {
	Device vkapi.Device
	Fence  vkapi.Fence
	Result vkapi.Result
}

func (*GetFenceStatusCall) ID() CallID { return GetFenceStatus }
func (call *GetFenceStatusCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Fence)
	result(c, &call.Result)
}

type CreateSemaphoreCall struct {
	Device     vkapi.Device
	CreateInfo vkapi.SemaphoreCreateInfo
	Semaphore  vkapi.Semaphore
	Result     vkapi.Result
}

func (*CreateSemaphoreCall) ID() CallID { return CreateSemaphore }
func (call *CreateSemaphoreCall) code(c coder) {
	handle(c, &call.Device)
	semaphoreCreateInfo(c, &call.CreateInfo)
	handle(c, &call.Semaphore)
	result(c, &call.Result)
}

type DestroySemaphoreCall struct {
	Device    vkapi.Device
	Semaphore vkapi.Semaphore
}

func (*DestroySemaphoreCall) ID() CallID { return DestroySemaphore }
func (call *DestroySemaphoreCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Semaphore)
}

type CreateCommandPoolCall struct {
	Device      vkapi.Device
	CreateInfo  vkapi.CommandPoolCreateInfo
	CommandPool vkapi.CommandPool
	Result      vkapi.Result
}

func (*CreateCommandPoolCall) ID() CallID { return CreateCommandPool }
func (call *CreateCommandPoolCall) code(c coder) {
	handle(c, &call.Device)
	commandPoolCreateInfo(c, &call.CreateInfo)
	handle(c, &call.CommandPool)
	result(c, &call.Result)
}

type DestroyCommandPoolCall struct {
	Device      vkapi.Device
	CommandPool vkapi.CommandPool
}

func (*DestroyCommandPoolCall) ID() CallID { return DestroyCommandPool }
func (call *DestroyCommandPoolCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.CommandPool)
}

type AllocateCommandBuffersCall struct {
	Device         vkapi.Device
	AllocateInfo   vkapi.CommandBufferAllocateInfo
	CommandBuffers []vkapi.CommandBuffer
	Result         vkapi.Result
}

func (*AllocateCommandBuffersCall) ID() CallID { return AllocateCommandBuffers }
func (call *AllocateCommandBuffersCall) code(c coder) {
	handle(c, &call.Device)
	commandBufferAllocateInfo(c, &call.AllocateInfo)
	handles(c, &call.CommandBuffers)
	result(c, &call.Result)
}

type FreeCommandBuffersCall struct {
	Device         vkapi.Device
	CommandPool    vkapi.CommandPool
	CommandBuffers []vkapi.CommandBuffer
}

func (*FreeCommandBuffersCall) ID() CallID { return FreeCommandBuffers }
func (call *FreeCommandBuffersCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.CommandPool)
	handles(c, &call.CommandBuffers)
}

type BeginCommandBufferCall struct {
	CommandBuffer vkapi.CommandBuffer
	BeginInfo     vkapi.CommandBufferBeginInfo
	Result        vkapi.Result
}

func (*BeginCommandBufferCall) ID() CallID { return BeginCommandBuffer }
func (call *BeginCommandBufferCall) code(c coder) {
	handle(c, &call.CommandBuffer)
	commandBufferBeginInfo(c, &call.BeginInfo)
	result(c, &call.Result)
}

type EndCommandBufferCall struct {
	CommandBuffer vkapi.CommandBuffer
	Result        vkapi.Result
}

func (*EndCommandBufferCall) ID() CallID { return EndCommandBuffer }
func (call *EndCommandBufferCall) code(c coder) {
	handle(c, &call.CommandBuffer)
	result(c, &call.Result)
}

type CmdCopyBufferCall struct {
	CommandBuffer vkapi.CommandBuffer
	SrcBuffer     vkapi.Buffer
	DstBuffer     vkapi.Buffer
	Regions       []vkapi.BufferCopy
}

func (*CmdCopyBufferCall) ID() CallID { return CmdCopyBuffer }
func (call *CmdCopyBufferCall) code(c coder) {
	handle(c, &call.CommandBuffer)
	handle(c, &call.SrcBuffer)
	handle(c, &call.DstBuffer)
	array(c, &call.Regions, bufferCopy)
}

type CmdPipelineBarrierCall struct {
	CommandBuffer        vkapi.CommandBuffer
	SrcStageMask         uint32
	DstStageMask         uint32
	DependencyFlags      uint32
	MemoryBarriers       []vkapi.MemoryBarrier
	BufferMemoryBarriers []vkapi.BufferMemoryBarrier
	ImageMemoryBarriers  []vkapi.ImageMemoryBarrier
}

func (*CmdPipelineBarrierCall) ID() CallID { return CmdPipelineBarrier }
func (call *CmdPipelineBarrierCall) code(c coder) {
	handle(c, &call.CommandBuffer)
	c.u32(&call.SrcStageMask)
	c.u32(&call.DstStageMask)
	c.u32(&call.DependencyFlags)
	array(c, &call.MemoryBarriers, memoryBarrier)
	array(c, &call.BufferMemoryBarriers, bufferMemoryBarrier)
	array(c, &call.ImageMemoryBarriers, imageMemoryBarrier)
}

type CmdBindPipelineCall struct {
	CommandBuffer     vkapi.CommandBuffer
	PipelineBindPoint uint32
	Pipeline          vkapi.Pipeline
}

func (*CmdBindPipelineCall) ID() CallID { return CmdBindPipeline }
func (call *CmdBindPipelineCall) code(c coder) {
	handle(c, &call.CommandBuffer)
	c.u32(&call.PipelineBindPoint)
	handle(c, &call.Pipeline)
}

type CmdBindDescriptorSetsCall struct {
	CommandBuffer     vkapi.CommandBuffer
	PipelineBindPoint uint32
	Layout            vkapi.PipelineLayout
	FirstSet          uint32
	DescriptorSets    []vkapi.DescriptorSet
	DynamicOffsets    []uint32
}

func (*CmdBindDescriptorSetsCall) ID() CallID { return CmdBindDescriptorSets }
func (call *CmdBindDescriptorSetsCall) code(c coder) {
	handle(c, &call.CommandBuffer)
	c.u32(&call.PipelineBindPoint)
	handle(c, &call.Layout)
	c.u32(&call.FirstSet)
	handles(c, &call.DescriptorSets)
	u32s(c, &call.DynamicOffsets)
}

type CmdDispatchCall struct {
	CommandBuffer vkapi.CommandBuffer
	GroupCountX   uint32
	GroupCountY   uint32
	GroupCountZ   uint32
}

func (*CmdDispatchCall) ID() CallID { return CmdDispatch }
func (call *CmdDispatchCall) code(c coder) {
	handle(c, &call.CommandBuffer)
	c.u32(&call.GroupCountX)
	c.u32(&call.GroupCountY)
	c.u32(&call.GroupCountZ)
}

type CreateDescriptorSetLayoutCall struct {
	Device     vkapi.Device
	CreateInfo vkapi.DescriptorSetLayoutCreateInfo
	SetLayout  vkapi.DescriptorSetLayout
	Result     vkapi.Result
}

func (*CreateDescriptorSetLayoutCall) ID() CallID { return CreateDescriptorSetLayout }
func (call *CreateDescriptorSetLayoutCall) code(c coder) {
	handle(c, &call.Device)
	descriptorSetLayoutCreateInfo(c, &call.CreateInfo)
	handle(c, &call.SetLayout)
	result(c, &call.Result)
}

type DestroyDescriptorSetLayoutCall struct {
	Device    vkapi.Device
	SetLayout vkapi.DescriptorSetLayout
}

func (*DestroyDescriptorSetLayoutCall) ID() CallID { return DestroyDescriptorSetLayout }
func (call *DestroyDescriptorSetLayoutCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.SetLayout)
}

type CreateDescriptorPoolCall struct {
	Device         vkapi.Device
	CreateInfo     vkapi.DescriptorPoolCreateInfo
	DescriptorPool vkapi.DescriptorPool
	Result         vkapi.Result
}

func (*CreateDescriptorPoolCall) ID() CallID { return CreateDescriptorPool }
func (call *CreateDescriptorPoolCall) code(c coder) {
	handle(c, &call.Device)
	descriptorPoolCreateInfo(c, &call.CreateInfo)
	handle(c, &call.DescriptorPool)
	result(c, &call.Result)
}

type DestroyDescriptorPoolCall struct {
	Device         vkapi.Device
	DescriptorPool vkapi.DescriptorPool
}

func (*DestroyDescriptorPoolCall) ID() CallID { return DestroyDescriptorPool }
func (call *DestroyDescriptorPoolCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.DescriptorPool)
}

type AllocateDescriptorSetsCall struct {
	Device         vkapi.Device
	AllocateInfo   vkapi.DescriptorSetAllocateInfo
	DescriptorSets []vkapi.DescriptorSet
	Result         vkapi.Result
}

func (*AllocateDescriptorSetsCall) ID() CallID { return AllocateDescriptorSets }
func (call *AllocateDescriptorSetsCall) code(c coder) {
	handle(c, &call.Device)
	descriptorSetAllocateInfo(c, &call.AllocateInfo)
	handles(c, &call.DescriptorSets)
	result(c, &call.Result)
}

type FreeDescriptorSetsCall struct {
	Device         vkapi.Device
	DescriptorPool vkapi.DescriptorPool
	DescriptorSets []vkapi.DescriptorSet
	Result         vkapi.Result
}

func (*FreeDescriptorSetsCall) ID() CallID { return FreeDescriptorSets }
func (call *FreeDescriptorSetsCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.DescriptorPool)
	handles(c, &call.DescriptorSets)
	result(c, &call.Result)
}

type UpdateDescriptorSetsCall struct {
	Device vkapi.Device
	Writes []vkapi.WriteDescriptorSet
	Copies []vkapi.CopyDescriptorSet
}

func (*UpdateDescriptorSetsCall) ID() CallID { return UpdateDescriptorSets }
func (call *UpdateDescriptorSetsCall) code(c coder) {
	handle(c, &call.Device)
	array(c, &call.Writes, writeDescriptorSet)
	array(c, &call.Copies, copyDescriptorSet)
}

type CreatePipelineLayoutCall struct {
	Device         vkapi.Device
	CreateInfo     vkapi.PipelineLayoutCreateInfo
	PipelineLayout vkapi.PipelineLayout
	Result         vkapi.Result
}

func (*CreatePipelineLayoutCall) ID() CallID { return CreatePipelineLayout }
func (call *CreatePipelineLayoutCall) code(c coder) {
	handle(c, &call.Device)
	pipelineLayoutCreateInfo(c, &call.CreateInfo)
	handle(c, &call.PipelineLayout)
	result(c, &call.Result)
}

type DestroyPipelineLayoutCall struct {
	Device         vkapi.Device
	PipelineLayout vkapi.PipelineLayout
}

func (*DestroyPipelineLayoutCall) ID() CallID { return DestroyPipelineLayout }
func (call *DestroyPipelineLayoutCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.PipelineLayout)
}

type CreateShaderModuleCall struct {
	Device       vkapi.Device
	CreateInfo   vkapi.ShaderModuleCreateInfo
	ShaderModule vkapi.ShaderModule
	Result       vkapi.Result
}

func (*CreateShaderModuleCall) ID() CallID { return CreateShaderModule }
func (call *CreateShaderModuleCall) code(c coder) {
	handle(c, &call.Device)
	shaderModuleCreateInfo(c, &call.CreateInfo)
	handle(c, &call.ShaderModule)
	result(c, &call.Result)
}

type DestroyShaderModuleCall struct {
	Device       vkapi.Device
	ShaderModule vkapi.ShaderModule
}

func (*DestroyShaderModuleCall) ID() CallID { return DestroyShaderModule }
func (call *DestroyShaderModuleCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.ShaderModule)
}

type CreateComputePipelinesCall struct {
	Device      vkapi.Device
	CreateInfos []vkapi.ComputePipelineCreateInfo
	Pipelines   []vkapi.Pipeline
	Result      vkapi.Result
}

func (*CreateComputePipelinesCall) ID() CallID { return CreateComputePipelines }
func (call *CreateComputePipelinesCall) code(c coder) {
	handle(c, &call.Device)
	array(c, &call.CreateInfos, computePipelineCreateInfo)
	handles(c, &call.Pipelines)
	result(c, &call.Result)
}

type DestroyPipelineCall struct {
	Device   vkapi.Device
	Pipeline vkapi.Pipeline
}

func (*DestroyPipelineCall) ID() CallID { return DestroyPipeline }
func (call *DestroyPipelineCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Pipeline)
}

// CreateSurfaceKHRCall is recorded for every platform specific surface
// creation entry point. Width and Height are the dimensions of the window the
// surface was created for.
type CreateSurfaceKHRCall struct {
	Instance vkapi.Instance
	Width    uint32
	Height   uint32
	Surface  vkapi.SurfaceKHR
	Result   vkapi.Result
}

func (*CreateSurfaceKHRCall) ID() CallID { return CreateSurfaceKHR }
func (call *CreateSurfaceKHRCall) code(c coder) {
	handle(c, &call.Instance)
	c.u32(&call.Width)
	c.u32(&call.Height)
	handle(c, &call.Surface)
	result(c, &call.Result)
}

type DestroySurfaceKHRCall struct {
	Instance vkapi.Instance
	Surface  vkapi.SurfaceKHR
}

func (*DestroySurfaceKHRCall) ID() CallID { return DestroySurfaceKHR }
func (call *DestroySurfaceKHRCall) code(c coder) {
	handle(c, &call.Instance)
	handle(c, &call.Surface)
}

type GetPhysicalDeviceSurfaceSupportKHRCall struct {
	PhysicalDevice   vkapi.PhysicalDevice
	QueueFamilyIndex uint32
	Surface          vkapi.SurfaceKHR
	Supported        bool
	Result           vkapi.Result
}

func (*GetPhysicalDeviceSurfaceSupportKHRCall) ID() CallID {
	return GetPhysicalDeviceSurfaceSupportKHR
}
func (call *GetPhysicalDeviceSurfaceSupportKHRCall) code(c coder) {
	handle(c, &call.PhysicalDevice)
	c.u32(&call.QueueFamilyIndex)
	handle(c, &call.Surface)
	boolean(c, &call.Supported)
	result(c, &call.Result)
}

type CreateSwapchainKHRCall struct {
	Device     vkapi.Device
	CreateInfo vkapi.SwapchainCreateInfoKHR
	Swapchain  vkapi.SwapchainKHR
	Result     vkapi.Result
}

func (*CreateSwapchainKHRCall) ID() CallID { return CreateSwapchainKHR }
func (call *CreateSwapchainKHRCall) code(c coder) {
	handle(c, &call.Device)
	swapchainCreateInfo(c, &call.CreateInfo)
	handle(c, &call.Swapchain)
	result(c, &call.Result)
}

type DestroySwapchainKHRCall struct {
	Device    vkapi.Device
	Swapchain vkapi.SwapchainKHR
}

func (*DestroySwapchainKHRCall) ID() CallID { return DestroySwapchainKHR }
func (call *DestroySwapchainKHRCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Swapchain)
}

// GetSwapchainImagesKHRCall has a nil Images slice when the application only
// queried the image count.
type GetSwapchainImagesKHRCall struct {
	Device    vkapi.Device
	Swapchain vkapi.SwapchainKHR
	Count     uint32
	Images    []vkapi.Image
	Result    vkapi.Result
}

func (*GetSwapchainImagesKHRCall) ID() CallID { return GetSwapchainImagesKHR }
func (call *GetSwapchainImagesKHRCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Swapchain)
	c.u32(&call.Count)
	handles(c, &call.Images)
	result(c, &call.Result)
}

type AcquireNextImageKHRCall struct {
	Device     vkapi.Device
	Swapchain  vkapi.SwapchainKHR
	Timeout    uint64
	Semaphore  vkapi.Semaphore
	Fence      vkapi.Fence
	ImageIndex uint32
	Result     vkapi.Result
}

func (*AcquireNextImageKHRCall) ID() CallID { return AcquireNextImageKHR }
func (call *AcquireNextImageKHRCall) code(c coder) {
	handle(c, &call.Device)
	handle(c, &call.Swapchain)
	c.u64(&call.Timeout)
	handle(c, &call.Semaphore)
	handle(c, &call.Fence)
	c.u32(&call.ImageIndex)
	result(c, &call.Result)
}

type QueuePresentKHRCall struct {
	Queue       vkapi.Queue
	PresentInfo vkapi.PresentInfoKHR
	Result      vkapi.Result
}

func (*QueuePresentKHRCall) ID() CallID { return QueuePresentKHR }
func (call *QueuePresentKHRCall) code(c coder) {
	handle(c, &call.Queue)
	presentInfo(c, &call.PresentInfo)
	result(c, &call.Result)
}

type CreateDebugReportCallbackEXTCall struct {
	Instance   vkapi.Instance
	CreateInfo vkapi.DebugReportCallbackCreateInfoEXT
	Callback   vkapi.DebugReportCallbackEXT
	Result     vkapi.Result
}

func (*CreateDebugReportCallbackEXTCall) ID() CallID { return CreateDebugReportCallbackEXT }
func (call *CreateDebugReportCallbackEXTCall) code(c coder) {
	handle(c, &call.Instance)
	debugReportCallbackCreateInfo(c, &call.CreateInfo)
	handle(c, &call.Callback)
	result(c, &call.Result)
}

type DestroyDebugReportCallbackEXTCall struct {
	Instance vkapi.Instance
	Callback vkapi.DebugReportCallbackEXT
}

func (*DestroyDebugReportCallbackEXTCall) ID() CallID { return DestroyDebugReportCallbackEXT }
func (call *DestroyDebugReportCallbackEXTCall) code(c coder) {
	handle(c, &call.Instance)
	handle(c, &call.Callback)
}
