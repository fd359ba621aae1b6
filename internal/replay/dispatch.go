package replay

import (
	"fmt"

	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
)

func (s *Session) dispatch(call vkcall.Call) error {
	switch c := call.(type) {
	case *vkcall.CreateInstanceCall:
		return s.createInstance(c)
	case *vkcall.DestroyInstanceCall:
		return s.destroyInstance(c)
	case *vkcall.EnumeratePhysicalDevicesCall:
		return s.enumeratePhysicalDevices(c)
	case *vkcall.GetPhysicalDevicePropertiesCall:
		return s.getPhysicalDeviceProperties(c)
	case *vkcall.GetPhysicalDeviceMemoryPropertiesCall:
		return s.getPhysicalDeviceMemoryProperties(c)
	case *vkcall.GetPhysicalDeviceQueueFamilyPropertiesCall:
		return s.getPhysicalDeviceQueueFamilyProperties(c)
	case *vkcall.CreateDeviceCall:
		return s.createDevice(c)
	case *vkcall.DestroyDeviceCall:
		return s.destroyDevice(c)
	case *vkcall.GetDeviceQueueCall:
		return s.getDeviceQueue(c)
	case *vkcall.DeviceWaitIdleCall:
		return s.deviceWaitIdle(c)
	case *vkcall.QueueWaitIdleCall:
		return s.queueWaitIdle(c)
	case *vkcall.QueueSubmitCall:
		return s.queueSubmit(c)

	case *vkcall.AllocateMemoryCall:
		return s.allocateMemory(c)
	case *vkcall.FreeMemoryCall:
		return s.freeMemory(c)
	case *vkcall.MapMemoryCall:
		return s.mapMemory(c)
	case *vkcall.UnmapMemoryCall:
		return s.unmapMemory(c)
	case *vkcall.CreateBufferCall:
		return s.createBuffer(c)
	case *vkcall.DestroyBufferCall:
		return destroy(s, c.Device, c.Buffer, s.api.DestroyBuffer)
	case *vkcall.GetBufferMemoryRequirementsCall:
		return s.getBufferMemoryRequirements(c)
	case *vkcall.BindBufferMemoryCall:
		return s.bindBufferMemory(c)
	case *vkcall.CreateImageCall:
		return s.createImage(c)
	case *vkcall.DestroyImageCall:
		return destroy(s, c.Device, c.Image, s.api.DestroyImage)
	case *vkcall.GetImageMemoryRequirementsCall:
		return s.getImageMemoryRequirements(c)
	case *vkcall.BindImageMemoryCall:
		return s.bindImageMemory(c)
	case *vkcall.BindBufferMemory2Call:
		return s.bindBufferMemory2(c)
	case *vkcall.BindImageMemory2Call:
		return s.bindImageMemory2(c)
	case *vkcall.CreateImageViewCall:
		return s.createImageView(c)
	case *vkcall.DestroyImageViewCall:
		return destroy(s, c.Device, c.View, s.api.DestroyImageView)

	case *vkcall.CreateFenceCall:
		return s.createFence(c)
	case *vkcall.DestroyFenceCall:
		return destroy(s, c.Device, c.Fence, s.api.DestroyFence)
	case *vkcall.ResetFencesCall:
		return s.resetFences(c)
	case *vkcall.WaitForFencesCall:
		return s.waitForFences(c)
	case *vkcall.GetFenceStatusCall:
		return s.getFenceStatus(c)
	case *vkcall.CreateSemaphoreCall:
		return s.createSemaphore(c)
	case *vkcall.DestroySemaphoreCall:
		return destroy(s, c.Device, c.Semaphore, s.api.DestroySemaphore)

	case *vkcall.CreateCommandPoolCall:
		return s.createCommandPool(c)
	case *vkcall.DestroyCommandPoolCall:
		return destroy(s, c.Device, c.CommandPool, s.api.DestroyCommandPool)
	case *vkcall.AllocateCommandBuffersCall:
		return s.allocateCommandBuffers(c)
	case *vkcall.FreeCommandBuffersCall:
		return s.freeCommandBuffers(c)
	case *vkcall.BeginCommandBufferCall:
		return s.beginCommandBuffer(c)
	case *vkcall.EndCommandBufferCall:
		return s.endCommandBuffer(c)
	case *vkcall.CmdCopyBufferCall:
		return s.cmdCopyBuffer(c)
	case *vkcall.CmdPipelineBarrierCall:
		return s.cmdPipelineBarrier(c)
	case *vkcall.CmdBindPipelineCall:
		return s.cmdBindPipeline(c)
	case *vkcall.CmdBindDescriptorSetsCall:
		return s.cmdBindDescriptorSets(c)
	case *vkcall.CmdDispatchCall:
		return s.cmdDispatch(c)

	case *vkcall.CreateDescriptorSetLayoutCall:
		return s.createDescriptorSetLayout(c)
	case *vkcall.DestroyDescriptorSetLayoutCall:
		return destroy(s, c.Device, c.SetLayout, s.api.DestroyDescriptorSetLayout)
	case *vkcall.CreateDescriptorPoolCall:
		return s.createDescriptorPool(c)
	case *vkcall.DestroyDescriptorPoolCall:
		return destroy(s, c.Device, c.DescriptorPool, s.api.DestroyDescriptorPool)
	case *vkcall.AllocateDescriptorSetsCall:
		return s.allocateDescriptorSets(c)
	case *vkcall.FreeDescriptorSetsCall:
		return s.freeDescriptorSets(c)
	case *vkcall.UpdateDescriptorSetsCall:
		return s.updateDescriptorSets(c)
	case *vkcall.CreatePipelineLayoutCall:
		return s.createPipelineLayout(c)
	case *vkcall.DestroyPipelineLayoutCall:
		return destroy(s, c.Device, c.PipelineLayout, s.api.DestroyPipelineLayout)
	case *vkcall.CreateShaderModuleCall:
		return s.createShaderModule(c)
	case *vkcall.DestroyShaderModuleCall:
		return destroy(s, c.Device, c.ShaderModule, s.api.DestroyShaderModule)
	case *vkcall.CreateComputePipelinesCall:
		return s.createComputePipelines(c)
	case *vkcall.DestroyPipelineCall:
		return destroy(s, c.Device, c.Pipeline, s.api.DestroyPipeline)

	case *vkcall.CreateSurfaceKHRCall:
		return s.createSurface(c)
	case *vkcall.DestroySurfaceKHRCall:
		return destroy(s, c.Instance, c.Surface, s.api.DestroySurfaceKHR)
	case *vkcall.GetPhysicalDeviceSurfaceSupportKHRCall:
		return s.getPhysicalDeviceSurfaceSupport(c)
	case *vkcall.CreateSwapchainKHRCall:
		return s.createSwapchain(c)
	case *vkcall.DestroySwapchainKHRCall:
		return destroy(s, c.Device, c.Swapchain, s.api.DestroySwapchainKHR)
	case *vkcall.GetSwapchainImagesKHRCall:
		return s.getSwapchainImages(c)
	case *vkcall.AcquireNextImageKHRCall:
		return s.acquireNextImage(c)
	case *vkcall.QueuePresentKHRCall:
		return s.queuePresent(c)
	case *vkcall.CreateDebugReportCallbackEXTCall:
		return s.createDebugReportCallback(c)
	case *vkcall.DestroyDebugReportCallbackEXTCall:
		return s.destroyDebugReportCallback(c)

	default:
		return fmt.Errorf("no handler for %s", call.ID())
	}
}
