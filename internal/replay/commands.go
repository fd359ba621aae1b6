package replay

import (
	"github.com/LunarG/VulkanTools-sub014/internal/compat"
	"github.com/LunarG/VulkanTools-sub014/internal/remap"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
)

func (s *Session) createCommandPool(call *vkcall.CreateCommandPoolCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	tr, err := s.registry.DeviceTranslator(call.Device)
	if err != nil {
		return err
	}
	info := call.CreateInfo
	if info.QueueFamilyIndex, err = tr.QueueFamilyIndex(info.QueueFamilyIndex); err != nil {
		return err
	}
	pool, r := s.api.CreateCommandPool(device, &info)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	return bind(s, call.Device, call.CommandPool, pool)
}

func (s *Session) allocateCommandBuffers(call *vkcall.AllocateCommandBuffersCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	info := call.AllocateInfo
	if info.CommandPool, err = remap.Lookup(s.table, info.CommandPool); err != nil {
		return err
	}
	buffers, r := s.api.AllocateCommandBuffers(device, &info)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	for i, virtual := range call.CommandBuffers {
		if i == len(buffers) {
			break
		}
		if err := bind(s, call.AllocateInfo.CommandPool, virtual, buffers[i]); err != nil {
			return err
		}
		s.commandBuffers[virtual] = call.Device
	}
	return nil
}

func (s *Session) freeCommandBuffers(call *vkcall.FreeCommandBuffersCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	pool, err := remap.Lookup(s.table, call.CommandPool)
	if err != nil {
		return err
	}
	buffers, err := lookupAllOptional(s.table, call.CommandBuffers)
	if err != nil {
		return err
	}
	for _, virtual := range call.CommandBuffers {
		s.unbind(vkapi.ObjectOf(virtual))
	}
	s.api.FreeCommandBuffers(device, pool, buffers)
	return nil
}

func (s *Session) beginCommandBuffer(call *vkcall.BeginCommandBufferCall) error {
	buffer, err := remap.Lookup(s.table, call.CommandBuffer)
	if err != nil {
		return err
	}
	info := call.BeginInfo
	return s.check(call.Result, s.api.BeginCommandBuffer(buffer, &info))
}

func (s *Session) endCommandBuffer(call *vkcall.EndCommandBufferCall) error {
	buffer, err := remap.Lookup(s.table, call.CommandBuffer)
	if err != nil {
		return err
	}
	return s.check(call.Result, s.api.EndCommandBuffer(buffer))
}

func (s *Session) cmdCopyBuffer(call *vkcall.CmdCopyBufferCall) error {
	buffer, err := remap.Lookup(s.table, call.CommandBuffer)
	if err != nil {
		return err
	}
	src, err := remap.Lookup(s.table, call.SrcBuffer)
	if err != nil {
		return err
	}
	dst, err := remap.Lookup(s.table, call.DstBuffer)
	if err != nil {
		return err
	}
	s.api.CmdCopyBuffer(buffer, src, dst, call.Regions)
	return nil
}

func (s *Session) cmdPipelineBarrier(call *vkcall.CmdPipelineBarrierCall) error {
	buffer, err := remap.Lookup(s.table, call.CommandBuffer)
	if err != nil {
		return err
	}
	tr, err := s.registry.DeviceTranslator(s.commandBuffers[call.CommandBuffer])
	if err != nil {
		return err
	}

	bufferBarriers := make([]vkapi.BufferMemoryBarrier, len(call.BufferMemoryBarriers))
	for i, b := range call.BufferMemoryBarriers {
		if b.Buffer, err = remap.Lookup(s.table, b.Buffer); err != nil {
			return err
		}
		if b.SrcQueueFamilyIndex, b.DstQueueFamilyIndex, err = translateOwnershipTransfer(tr, b.SrcQueueFamilyIndex, b.DstQueueFamilyIndex); err != nil {
			return err
		}
		bufferBarriers[i] = b
	}

	imageBarriers := make([]vkapi.ImageMemoryBarrier, len(call.ImageMemoryBarriers))
	for i, b := range call.ImageMemoryBarriers {
		if b.Image, err = remap.Lookup(s.table, b.Image); err != nil {
			return err
		}
		if b.SrcQueueFamilyIndex, b.DstQueueFamilyIndex, err = translateOwnershipTransfer(tr, b.SrcQueueFamilyIndex, b.DstQueueFamilyIndex); err != nil {
			return err
		}
		imageBarriers[i] = b
	}

	s.api.CmdPipelineBarrier(buffer, call.SrcStageMask, call.DstStageMask, call.DependencyFlags,
		call.MemoryBarriers, bufferBarriers, imageBarriers)
	return nil
}

func translateOwnershipTransfer(tr *compat.Translator, src, dst uint32) (uint32, uint32, error) {
	src, err := tr.QueueFamilyIndex(src)
	if err != nil {
		return 0, 0, err
	}
	dst, err = tr.QueueFamilyIndex(dst)
	if err != nil {
		return 0, 0, err
	}
	return src, dst, nil
}

func (s *Session) cmdBindPipeline(call *vkcall.CmdBindPipelineCall) error {
	buffer, err := remap.Lookup(s.table, call.CommandBuffer)
	if err != nil {
		return err
	}
	pipeline, err := remap.Lookup(s.table, call.Pipeline)
	if err != nil {
		return err
	}
	s.api.CmdBindPipeline(buffer, call.PipelineBindPoint, pipeline)
	return nil
}

func (s *Session) cmdBindDescriptorSets(call *vkcall.CmdBindDescriptorSetsCall) error {
	buffer, err := remap.Lookup(s.table, call.CommandBuffer)
	if err != nil {
		return err
	}
	layout, err := remap.Lookup(s.table, call.Layout)
	if err != nil {
		return err
	}
	sets, err := remap.LookupAll(s.table, call.DescriptorSets)
	if err != nil {
		return err
	}
	s.api.CmdBindDescriptorSets(buffer, call.PipelineBindPoint, layout, call.FirstSet, sets, call.DynamicOffsets)
	return nil
}

func (s *Session) cmdDispatch(call *vkcall.CmdDispatchCall) error {
	buffer, err := remap.Lookup(s.table, call.CommandBuffer)
	if err != nil {
		return err
	}
	s.api.CmdDispatch(buffer, call.GroupCountX, call.GroupCountY, call.GroupCountZ)
	return nil
}
