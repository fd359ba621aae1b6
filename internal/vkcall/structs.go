package vkcall

import "github.com/LunarG/VulkanTools-sub014/internal/vkapi"

func extent2D(c coder, v *vkapi.Extent2D) {
	c.u32(&v.Width)
	c.u32(&v.Height)
}

func extent3D(c coder, v *vkapi.Extent3D) {
	c.u32(&v.Width)
	c.u32(&v.Height)
	c.u32(&v.Depth)
}

func physicalDeviceProperties(c coder, v *vkapi.PhysicalDeviceProperties) {
	c.u32(&v.APIVersion)
	c.u32(&v.DriverVersion)
	c.u32(&v.VendorID)
	c.u32(&v.DeviceID)
	c.u32(&v.DeviceType)
	str(c, &v.DeviceName)
}

func memoryProperties(c coder, v *vkapi.PhysicalDeviceMemoryProperties) {
	array(c, &v.MemoryTypes, func(c coder, t *vkapi.MemoryType) {
		enum(c, &t.PropertyFlags)
		c.u32(&t.HeapIndex)
	})
	array(c, &v.MemoryHeaps, func(c coder, h *vkapi.MemoryHeap) {
		c.u64(&h.Size)
		c.u32(&h.Flags)
	})
}

func queueFamilyProperties(c coder, v *vkapi.QueueFamilyProperties) {
	enum(c, &v.QueueFlags)
	c.u32(&v.QueueCount)
	c.u32(&v.TimestampValidBits)
	extent3D(c, &v.MinImageTransferGranularity)
}

func memoryRequirements(c coder, v *vkapi.MemoryRequirements) {
	c.u64(&v.Size)
	c.u64(&v.Alignment)
	c.u32(&v.MemoryTypeBits)
}

func applicationInfo(c coder, v *vkapi.ApplicationInfo) {
	str(c, &v.ApplicationName)
	c.u32(&v.ApplicationVersion)
	str(c, &v.EngineName)
	c.u32(&v.EngineVersion)
	c.u32(&v.APIVersion)
}

func instanceCreateInfo(c coder, v *vkapi.InstanceCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	optional(c, &v.ApplicationInfo, applicationInfo)
	strs(c, &v.EnabledLayers)
	strs(c, &v.EnabledExtensions)
}

func deviceQueueCreateInfo(c coder, v *vkapi.DeviceQueueCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	c.u32(&v.QueueFamilyIndex)
	array(c, &v.QueuePriorities, f32)
}

func deviceCreateInfo(c coder, v *vkapi.DeviceCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	array(c, &v.QueueCreateInfos, deviceQueueCreateInfo)
	strs(c, &v.EnabledLayers)
	strs(c, &v.EnabledExtensions)
}

func memoryAllocateInfo(c coder, v *vkapi.MemoryAllocateInfo) {
	chain(c, &v.Next)
	c.u64(&v.AllocationSize)
	c.u32(&v.MemoryTypeIndex)
}

func bufferCreateInfo(c coder, v *vkapi.BufferCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	c.u64(&v.Size)
	c.u32(&v.Usage)
	c.u32(&v.SharingMode)
	u32s(c, &v.QueueFamilyIndices)
}

func imageCreateInfo(c coder, v *vkapi.ImageCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	c.u32(&v.ImageType)
	c.u32(&v.Format)
	extent3D(c, &v.Extent)
	c.u32(&v.MipLevels)
	c.u32(&v.ArrayLayers)
	c.u32(&v.Samples)
	c.u32(&v.Tiling)
	c.u32(&v.Usage)
	c.u32(&v.SharingMode)
	u32s(c, &v.QueueFamilyIndices)
	c.u32(&v.InitialLayout)
}

func bindBufferMemoryInfo(c coder, v *vkapi.BindBufferMemoryInfo) {
	chain(c, &v.Next)
	handle(c, &v.Buffer)
	handle(c, &v.Memory)
	c.u64(&v.MemoryOffset)
}

func bindImageMemoryInfo(c coder, v *vkapi.BindImageMemoryInfo) {
	chain(c, &v.Next)
	handle(c, &v.Image)
	handle(c, &v.Memory)
	c.u64(&v.MemoryOffset)
}

func subresourceRange(c coder, v *vkapi.ImageSubresourceRange) {
	c.u32(&v.AspectMask)
	c.u32(&v.BaseMipLevel)
	c.u32(&v.LevelCount)
	c.u32(&v.BaseArrayLayer)
	c.u32(&v.LayerCount)
}

func imageViewCreateInfo(c coder, v *vkapi.ImageViewCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	handle(c, &v.Image)
	c.u32(&v.ViewType)
	c.u32(&v.Format)
	c.u32(&v.Components.R)
	c.u32(&v.Components.G)
	c.u32(&v.Components.B)
	c.u32(&v.Components.A)
	subresourceRange(c, &v.SubresourceRange)
}

func fenceCreateInfo(c coder, v *vkapi.FenceCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
}

func semaphoreCreateInfo(c coder, v *vkapi.SemaphoreCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
}

func commandPoolCreateInfo(c coder, v *vkapi.CommandPoolCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	c.u32(&v.QueueFamilyIndex)
}

func commandBufferAllocateInfo(c coder, v *vkapi.CommandBufferAllocateInfo) {
	chain(c, &v.Next)
	handle(c, &v.CommandPool)
	c.u32(&v.Level)
	c.u32(&v.CommandBufferCount)
}

func commandBufferBeginInfo(c coder, v *vkapi.CommandBufferBeginInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
}

func bufferCopy(c coder, v *vkapi.BufferCopy) {
	c.u64(&v.SrcOffset)
	c.u64(&v.DstOffset)
	c.u64(&v.Size)
}

func memoryBarrier(c coder, v *vkapi.MemoryBarrier) {
	chain(c, &v.Next)
	c.u32(&v.SrcAccessMask)
	c.u32(&v.DstAccessMask)
}

func bufferMemoryBarrier(c coder, v *vkapi.BufferMemoryBarrier) {
	chain(c, &v.Next)
	c.u32(&v.SrcAccessMask)
	c.u32(&v.DstAccessMask)
	c.u32(&v.SrcQueueFamilyIndex)
	c.u32(&v.DstQueueFamilyIndex)
	handle(c, &v.Buffer)
	c.u64(&v.Offset)
	c.u64(&v.Size)
}

func imageMemoryBarrier(c coder, v *vkapi.ImageMemoryBarrier) {
	chain(c, &v.Next)
	c.u32(&v.SrcAccessMask)
	c.u32(&v.DstAccessMask)
	c.u32(&v.OldLayout)
	c.u32(&v.NewLayout)
	c.u32(&v.SrcQueueFamilyIndex)
	c.u32(&v.DstQueueFamilyIndex)
	handle(c, &v.Image)
	subresourceRange(c, &v.SubresourceRange)
}

func descriptorSetLayoutCreateInfo(c coder, v *vkapi.DescriptorSetLayoutCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	array(c, &v.Bindings, func(c coder, b *vkapi.DescriptorSetLayoutBinding) {
		c.u32(&b.Binding)
		c.u32(&b.DescriptorType)
		c.u32(&b.DescriptorCount)
		c.u32(&b.StageFlags)
	})
}

func descriptorPoolCreateInfo(c coder, v *vkapi.DescriptorPoolCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	c.u32(&v.MaxSets)
	array(c, &v.PoolSizes, func(c coder, s *vkapi.DescriptorPoolSize) {
		c.u32(&s.Type)
		c.u32(&s.DescriptorCount)
	})
}

func descriptorSetAllocateInfo(c coder, v *vkapi.DescriptorSetAllocateInfo) {
	chain(c, &v.Next)
	handle(c, &v.DescriptorPool)
	handles(c, &v.SetLayouts)
}

func writeDescriptorSet(c coder, v *vkapi.WriteDescriptorSet) {
	chain(c, &v.Next)
	handle(c, &v.DstSet)
	c.u32(&v.DstBinding)
	c.u32(&v.DstArrayElement)
	c.u32(&v.DescriptorType)
	array(c, &v.ImageInfo, func(c coder, i *vkapi.DescriptorImageInfo) {
		handle(c, &i.ImageView)
		c.u32(&i.ImageLayout)
	})
	array(c, &v.BufferInfo, func(c coder, b *vkapi.DescriptorBufferInfo) {
		handle(c, &b.Buffer)
		c.u64(&b.Offset)
		c.u64(&b.Range)
	})
}

func copyDescriptorSet(c coder, v *vkapi.CopyDescriptorSet) {
	chain(c, &v.Next)
	handle(c, &v.SrcSet)
	c.u32(&v.SrcBinding)
	c.u32(&v.SrcArrayElement)
	handle(c, &v.DstSet)
	c.u32(&v.DstBinding)
	c.u32(&v.DstArrayElement)
	c.u32(&v.DescriptorCount)
}

func pipelineLayoutCreateInfo(c coder, v *vkapi.PipelineLayoutCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	handles(c, &v.SetLayouts)
	array(c, &v.PushConstantRanges, func(c coder, r *vkapi.PushConstantRange) {
		c.u32(&r.StageFlags)
		c.u32(&r.Offset)
		c.u32(&r.Size)
	})
}

func shaderModuleCreateInfo(c coder, v *vkapi.ShaderModuleCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	u32s(c, &v.Code)
}

func shaderStageCreateInfo(c coder, v *vkapi.PipelineShaderStageCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	c.u32(&v.Stage)
	handle(c, &v.Module)
	str(c, &v.Name)
}

func computePipelineCreateInfo(c coder, v *vkapi.ComputePipelineCreateInfo) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	shaderStageCreateInfo(c, &v.Stage)
	handle(c, &v.Layout)
	handle(c, &v.BasePipelineHandle)
	i32(c, &v.BasePipelineIndex)
}

func submitInfo(c coder, v *vkapi.SubmitInfo) {
	chain(c, &v.Next)
	handles(c, &v.WaitSemaphores)
	u32s(c, &v.WaitDstStageMask)
	handles(c, &v.CommandBuffers)
	handles(c, &v.SignalSemaphores)
}

func swapchainCreateInfo(c coder, v *vkapi.SwapchainCreateInfoKHR) {
	chain(c, &v.Next)
	c.u32(&v.Flags)
	handle(c, &v.Surface)
	c.u32(&v.MinImageCount)
	c.u32(&v.ImageFormat)
	c.u32(&v.ImageColorSpace)
	extent2D(c, &v.ImageExtent)
	c.u32(&v.ImageArrayLayers)
	c.u32(&v.ImageUsage)
	c.u32(&v.ImageSharingMode)
	u32s(c, &v.QueueFamilyIndices)
	c.u32(&v.PreTransform)
	c.u32(&v.CompositeAlpha)
	c.u32(&v.PresentMode)
	boolean(c, &v.Clipped)
	handle(c, &v.OldSwapchain)
}

func presentInfo(c coder, v *vkapi.PresentInfoKHR) {
	chain(c, &v.Next)
	handles(c, &v.WaitSemaphores)
	handles(c, &v.Swapchains)
	u32s(c, &v.ImageIndices)
}

func debugReportCallbackCreateInfo(c coder, v *vkapi.DebugReportCallbackCreateInfoEXT) {
	chain(c, &v.Next)
	enum(c, &v.Flags)
}
