package vkapi

// Window is implemented by window-system backends able to create a
// presentation surface for a live instance.
//
// The argument is the driver specific native instance; the returned value is
// the native surface handle.
type Window interface {
	CreateSurface(nativeInstance any) (uintptr, error)
}

// API is the live graphics API boundary. Every method takes replay handles
// exclusively.
//
// Methods returning slices of handles allocate the slice; callers own it.
type API interface {
	CreateInstance(info *InstanceCreateInfo) (Instance, Result)
	DestroyInstance(instance Instance)
	EnumeratePhysicalDevices(instance Instance) ([]PhysicalDevice, Result)
	GetPhysicalDeviceProperties(physicalDevice PhysicalDevice) PhysicalDeviceProperties
	GetPhysicalDeviceMemoryProperties(physicalDevice PhysicalDevice) PhysicalDeviceMemoryProperties
	GetPhysicalDeviceQueueFamilyProperties(physicalDevice PhysicalDevice) []QueueFamilyProperties

	CreateDevice(physicalDevice PhysicalDevice, info *DeviceCreateInfo) (Device, Result)
	DestroyDevice(device Device)
	GetDeviceQueue(device Device, queueFamilyIndex, queueIndex uint32) Queue
	DeviceWaitIdle(device Device) Result
	QueueWaitIdle(queue Queue) Result
	QueueSubmit(queue Queue, submits []SubmitInfo, fence Fence) Result

	AllocateMemory(device Device, info *MemoryAllocateInfo) (DeviceMemory, Result)
	FreeMemory(device Device, memory DeviceMemory)
	// MapMemory returns a view of the mapped range, valid until UnmapMemory.
	MapMemory(device Device, memory DeviceMemory, offset, size uint64, flags uint32) ([]byte, Result)
	UnmapMemory(device Device, memory DeviceMemory)

	CreateBuffer(device Device, info *BufferCreateInfo) (Buffer, Result)
	DestroyBuffer(device Device, buffer Buffer)
	GetBufferMemoryRequirements(device Device, buffer Buffer) MemoryRequirements
	BindBufferMemory(device Device, buffer Buffer, memory DeviceMemory, offset uint64) Result
	BindBufferMemory2(device Device, infos []BindBufferMemoryInfo) Result
	CreateImage(device Device, info *ImageCreateInfo) (Image, Result)
	DestroyImage(device Device, image Image)
	GetImageMemoryRequirements(device Device, image Image) MemoryRequirements
	BindImageMemory(device Device, image Image, memory DeviceMemory, offset uint64) Result
	BindImageMemory2(device Device, infos []BindImageMemoryInfo) Result
	CreateImageView(device Device, info *ImageViewCreateInfo) (ImageView, Result)
	DestroyImageView(device Device, view ImageView)

	CreateFence(device Device, info *FenceCreateInfo) (Fence, Result)
	DestroyFence(device Device, fence Fence)
	ResetFences(device Device, fences []Fence) Result
	WaitForFences(device Device, fences []Fence, waitAll bool, timeout uint64) Result
	GetFenceStatus(device Device, fence Fence) Result
	CreateSemaphore(device Device, info *SemaphoreCreateInfo) (Semaphore, Result)
	DestroySemaphore(device Device, semaphore Semaphore)

	CreateCommandPool(device Device, info *CommandPoolCreateInfo) (CommandPool, Result)
	DestroyCommandPool(device Device, pool CommandPool)
	AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo) ([]CommandBuffer, Result)
	FreeCommandBuffers(device Device, pool CommandPool, buffers []CommandBuffer)
	BeginCommandBuffer(buffer CommandBuffer, info *CommandBufferBeginInfo) Result
	EndCommandBuffer(buffer CommandBuffer) Result
	CmdCopyBuffer(buffer CommandBuffer, src, dst Buffer, regions []BufferCopy)
	CmdPipelineBarrier(buffer CommandBuffer, srcStageMask, dstStageMask, dependencyFlags uint32, memoryBarriers []MemoryBarrier, bufferBarriers []BufferMemoryBarrier, imageBarriers []ImageMemoryBarrier)
	CmdBindPipeline(buffer CommandBuffer, bindPoint uint32, pipeline Pipeline)
	CmdBindDescriptorSets(buffer CommandBuffer, bindPoint uint32, layout PipelineLayout, firstSet uint32, sets []DescriptorSet, dynamicOffsets []uint32)
	CmdDispatch(buffer CommandBuffer, x, y, z uint32)

	CreateDescriptorSetLayout(device Device, info *DescriptorSetLayoutCreateInfo) (DescriptorSetLayout, Result)
	DestroyDescriptorSetLayout(device Device, layout DescriptorSetLayout)
	CreateDescriptorPool(device Device, info *DescriptorPoolCreateInfo) (DescriptorPool, Result)
	DestroyDescriptorPool(device Device, pool DescriptorPool)
	AllocateDescriptorSets(device Device, info *DescriptorSetAllocateInfo) ([]DescriptorSet, Result)
	FreeDescriptorSets(device Device, pool DescriptorPool, sets []DescriptorSet) Result
	UpdateDescriptorSets(device Device, writes []WriteDescriptorSet, copies []CopyDescriptorSet)
	CreatePipelineLayout(device Device, info *PipelineLayoutCreateInfo) (PipelineLayout, Result)
	DestroyPipelineLayout(device Device, layout PipelineLayout)
	CreateShaderModule(device Device, info *ShaderModuleCreateInfo) (ShaderModule, Result)
	DestroyShaderModule(device Device, module ShaderModule)
	CreateComputePipelines(device Device, infos []ComputePipelineCreateInfo) ([]Pipeline, Result)
	DestroyPipeline(device Device, pipeline Pipeline)

	CreateSurface(instance Instance, window Window) (SurfaceKHR, Result)
	DestroySurfaceKHR(instance Instance, surface SurfaceKHR)
	GetPhysicalDeviceSurfaceSupportKHR(physicalDevice PhysicalDevice, queueFamilyIndex uint32, surface SurfaceKHR) (bool, Result)
	CreateSwapchainKHR(device Device, info *SwapchainCreateInfoKHR) (SwapchainKHR, Result)
	DestroySwapchainKHR(device Device, swapchain SwapchainKHR)
	GetSwapchainImagesKHR(device Device, swapchain SwapchainKHR) ([]Image, Result)
	AcquireNextImageKHR(device Device, swapchain SwapchainKHR, timeout uint64, semaphore Semaphore, fence Fence) (uint32, Result)
	QueuePresentKHR(queue Queue, info *PresentInfoKHR) Result

	// CreateDebugReportCallbackEXT installs callback as the receiver of debug
	// messages. The callback may be invoked from any goroutine.
	CreateDebugReportCallbackEXT(instance Instance, info *DebugReportCallbackCreateInfoEXT, callback func(DebugMessage)) (DebugReportCallbackEXT, Result)
	DestroyDebugReportCallbackEXT(instance Instance, callback DebugReportCallbackEXT)
}
