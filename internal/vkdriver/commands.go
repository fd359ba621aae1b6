package vkdriver

import (
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

func (d *Driver) CreateCommandPool(device vkapi.Device, info *vkapi.CommandPoolCreateInfo) (vkapi.CommandPool, vkapi.Result) {
	d.dropChain("vkCreateCommandPool", info.Next)
	createInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(info.Flags),
		QueueFamilyIndex: info.QueueFamilyIndex,
	}
	var pool vk.CommandPool
	if r := vk.CreateCommandPool(vk.Device(ptr(device)), &createInfo, nil, &pool); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	return vkapi.CommandPool(addr(unsafe.Pointer(pool))), vkapi.Success
}

func (d *Driver) DestroyCommandPool(device vkapi.Device, pool vkapi.CommandPool) {
	vk.DestroyCommandPool(vk.Device(ptr(device)), vk.CommandPool(ptr(pool)), nil)
}

func (d *Driver) AllocateCommandBuffers(device vkapi.Device, info *vkapi.CommandBufferAllocateInfo) ([]vkapi.CommandBuffer, vkapi.Result) {
	d.dropChain("vkAllocateCommandBuffers", info.Next)
	allocateInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        vk.CommandPool(ptr(info.CommandPool)),
		Level:              vk.CommandBufferLevel(info.Level),
		CommandBufferCount: info.CommandBufferCount,
	}
	buffers := make([]vk.CommandBuffer, info.CommandBufferCount)
	if r := vk.AllocateCommandBuffers(vk.Device(ptr(device)), &allocateInfo, buffers); r != vk.Success {
		return nil, vkapi.Result(r)
	}
	return convertAll(buffers, func(cb vk.CommandBuffer) vkapi.CommandBuffer {
		return vkapi.CommandBuffer(addr(unsafe.Pointer(cb)))
	}), vkapi.Success
}

func (d *Driver) FreeCommandBuffers(device vkapi.Device, pool vkapi.CommandPool, buffers []vkapi.CommandBuffer) {
	if len(buffers) == 0 {
		return
	}
	vk.FreeCommandBuffers(vk.Device(ptr(device)), vk.CommandPool(ptr(pool)), uint32(len(buffers)), convertAll(buffers, nativeCommandBuffer))
}

func (d *Driver) BeginCommandBuffer(buffer vkapi.CommandBuffer, info *vkapi.CommandBufferBeginInfo) vkapi.Result {
	d.dropChain("vkBeginCommandBuffer", info.Next)
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(info.Flags),
	}
	return vkapi.Result(vk.BeginCommandBuffer(nativeCommandBuffer(buffer), &beginInfo))
}

func (d *Driver) EndCommandBuffer(buffer vkapi.CommandBuffer) vkapi.Result {
	return vkapi.Result(vk.EndCommandBuffer(nativeCommandBuffer(buffer)))
}

func (d *Driver) CmdCopyBuffer(buffer vkapi.CommandBuffer, src, dst vkapi.Buffer, regions []vkapi.BufferCopy) {
	copies := convertAll(regions, func(r vkapi.BufferCopy) vk.BufferCopy {
		return vk.BufferCopy{
			SrcOffset: vk.DeviceSize(r.SrcOffset),
			DstOffset: vk.DeviceSize(r.DstOffset),
			Size:      vk.DeviceSize(r.Size),
		}
	})
	vk.CmdCopyBuffer(nativeCommandBuffer(buffer), vk.Buffer(ptr(src)), vk.Buffer(ptr(dst)), uint32(len(copies)), copies)
}

func (d *Driver) CmdPipelineBarrier(buffer vkapi.CommandBuffer, srcStageMask, dstStageMask, dependencyFlags uint32, memoryBarriers []vkapi.MemoryBarrier, bufferBarriers []vkapi.BufferMemoryBarrier, imageBarriers []vkapi.ImageMemoryBarrier) {
	memory := convertAll(memoryBarriers, func(b vkapi.MemoryBarrier) vk.MemoryBarrier {
		return vk.MemoryBarrier{
			SType:         vk.StructureTypeMemoryBarrier,
			SrcAccessMask: vk.AccessFlags(b.SrcAccessMask),
			DstAccessMask: vk.AccessFlags(b.DstAccessMask),
		}
	})
	buffers := convertAll(bufferBarriers, func(b vkapi.BufferMemoryBarrier) vk.BufferMemoryBarrier {
		return vk.BufferMemoryBarrier{
			SType:               vk.StructureTypeBufferMemoryBarrier,
			SrcAccessMask:       vk.AccessFlags(b.SrcAccessMask),
			DstAccessMask:       vk.AccessFlags(b.DstAccessMask),
			SrcQueueFamilyIndex: b.SrcQueueFamilyIndex,
			DstQueueFamilyIndex: b.DstQueueFamilyIndex,
			Buffer:              vk.Buffer(ptr(b.Buffer)),
			Offset:              vk.DeviceSize(b.Offset),
			Size:                vk.DeviceSize(b.Size),
		}
	})
	images := convertAll(imageBarriers, func(b vkapi.ImageMemoryBarrier) vk.ImageMemoryBarrier {
		return vk.ImageMemoryBarrier{
			SType:               vk.StructureTypeImageMemoryBarrier,
			SrcAccessMask:       vk.AccessFlags(b.SrcAccessMask),
			DstAccessMask:       vk.AccessFlags(b.DstAccessMask),
			OldLayout:           vk.ImageLayout(b.OldLayout),
			NewLayout:           vk.ImageLayout(b.NewLayout),
			SrcQueueFamilyIndex: b.SrcQueueFamilyIndex,
			DstQueueFamilyIndex: b.DstQueueFamilyIndex,
			Image:               vk.Image(ptr(b.Image)),
			SubresourceRange:    subresourceRange(b.SubresourceRange),
		}
	})
	vk.CmdPipelineBarrier(nativeCommandBuffer(buffer),
		vk.PipelineStageFlags(srcStageMask), vk.PipelineStageFlags(dstStageMask), vk.DependencyFlags(dependencyFlags),
		uint32(len(memory)), memory,
		uint32(len(buffers)), buffers,
		uint32(len(images)), images)
}

func (d *Driver) CmdBindPipeline(buffer vkapi.CommandBuffer, bindPoint uint32, pipeline vkapi.Pipeline) {
	vk.CmdBindPipeline(nativeCommandBuffer(buffer), vk.PipelineBindPoint(bindPoint), vk.Pipeline(ptr(pipeline)))
}

func (d *Driver) CmdBindDescriptorSets(buffer vkapi.CommandBuffer, bindPoint uint32, layout vkapi.PipelineLayout, firstSet uint32, sets []vkapi.DescriptorSet, dynamicOffsets []uint32) {
	vk.CmdBindDescriptorSets(nativeCommandBuffer(buffer), vk.PipelineBindPoint(bindPoint), vk.PipelineLayout(ptr(layout)),
		firstSet, uint32(len(sets)), convertAll(sets, nativeDescriptorSet),
		uint32(len(dynamicOffsets)), dynamicOffsets)
}

func (d *Driver) CmdDispatch(buffer vkapi.CommandBuffer, x, y, z uint32) {
	vk.CmdDispatch(nativeCommandBuffer(buffer), x, y, z)
}
