package vkcall

import "fmt"

// CallID identifies the API call recorded in a packet. The values are part
// of the trace format and must not be reordered.
type CallID uint32

const (
	Invalid CallID = iota
	CreateInstance
	DestroyInstance
	EnumeratePhysicalDevices
	GetPhysicalDeviceProperties
	GetPhysicalDeviceMemoryProperties
	GetPhysicalDeviceQueueFamilyProperties
	CreateDevice
	DestroyDevice
	GetDeviceQueue
	DeviceWaitIdle
	QueueWaitIdle
	QueueSubmit
	AllocateMemory
	FreeMemory
	MapMemory
	UnmapMemory
	CreateBuffer
	DestroyBuffer
	GetBufferMemoryRequirements
	BindBufferMemory
	CreateImage
	DestroyImage
	GetImageMemoryRequirements
	BindImageMemory
	BindBufferMemory2
	BindImageMemory2
	CreateImageView
	DestroyImageView
	CreateFence
	DestroyFence
	ResetFences
	WaitForFences
	GetFenceStatus
	CreateSemaphore
	DestroySemaphore
	CreateCommandPool
	DestroyCommandPool
	AllocateCommandBuffers
	FreeCommandBuffers
	BeginCommandBuffer
	EndCommandBuffer
	CmdCopyBuffer
	CmdPipelineBarrier
	CmdBindPipeline
	CmdBindDescriptorSets
	CmdDispatch
	CreateDescriptorSetLayout
	DestroyDescriptorSetLayout
	CreateDescriptorPool
	DestroyDescriptorPool
	AllocateDescriptorSets
	FreeDescriptorSets
	UpdateDescriptorSets
	CreatePipelineLayout
	DestroyPipelineLayout
	CreateShaderModule
	DestroyShaderModule
	CreateComputePipelines
	DestroyPipeline
	CreateSurfaceKHR
	DestroySurfaceKHR
	GetPhysicalDeviceSurfaceSupportKHR
	CreateSwapchainKHR
	DestroySwapchainKHR
	GetSwapchainImagesKHR
	AcquireNextImageKHR
	QueuePresentKHR
	CreateDebugReportCallbackEXT
	DestroyDebugReportCallbackEXT
)

func (id CallID) String() string {
	if int(id) >= len(callIDStrings) {
		return fmt.Sprintf("CallID(%d)", uint32(id))
	}
	return callIDStrings[id]
}

var callIDStrings = [...]string{
	"Invalid",
	"vkCreateInstance",
	"vkDestroyInstance",
	"vkEnumeratePhysicalDevices",
	"vkGetPhysicalDeviceProperties",
	"vkGetPhysicalDeviceMemoryProperties",
	"vkGetPhysicalDeviceQueueFamilyProperties",
	"vkCreateDevice",
	"vkDestroyDevice",
	"vkGetDeviceQueue",
	"vkDeviceWaitIdle",
	"vkQueueWaitIdle",
	"vkQueueSubmit",
	"vkAllocateMemory",
	"vkFreeMemory",
	"vkMapMemory",
	"vkUnmapMemory",
	"vkCreateBuffer",
	"vkDestroyBuffer",
	"vkGetBufferMemoryRequirements",
	"vkBindBufferMemory",
	"vkCreateImage",
	"vkDestroyImage",
	"vkGetImageMemoryRequirements",
	"vkBindImageMemory",
	"vkBindBufferMemory2",
	"vkBindImageMemory2",
	"vkCreateImageView",
	"vkDestroyImageView",
	"vkCreateFence",
	"vkDestroyFence",
	"vkResetFences",
	"vkWaitForFences",
	"vkGetFenceStatus",
	"vkCreateSemaphore",
	"vkDestroySemaphore",
	"vkCreateCommandPool",
	"vkDestroyCommandPool",
	"vkAllocateCommandBuffers",
	"vkFreeCommandBuffers",
	"vkBeginCommandBuffer",
	"vkEndCommandBuffer",
	"vkCmdCopyBuffer",
	"vkCmdPipelineBarrier",
	"vkCmdBindPipeline",
	"vkCmdBindDescriptorSets",
	"vkCmdDispatch",
	"vkCreateDescriptorSetLayout",
	"vkDestroyDescriptorSetLayout",
	"vkCreateDescriptorPool",
	"vkDestroyDescriptorPool",
	"vkAllocateDescriptorSets",
	"vkFreeDescriptorSets",
	"vkUpdateDescriptorSets",
	"vkCreatePipelineLayout",
	"vkDestroyPipelineLayout",
	"vkCreateShaderModule",
	"vkDestroyShaderModule",
	"vkCreateComputePipelines",
	"vkDestroyPipeline",
	"vkCreateSurfaceKHR",
	"vkDestroySurfaceKHR",
	"vkGetPhysicalDeviceSurfaceSupportKHR",
	"vkCreateSwapchainKHR",
	"vkDestroySwapchainKHR",
	"vkGetSwapchainImagesKHR",
	"vkAcquireNextImageKHR",
	"vkQueuePresentKHR",
	"vkCreateDebugReportCallbackEXT",
	"vkDestroyDebugReportCallbackEXT",
}
