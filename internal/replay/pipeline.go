package replay

import (
	"github.com/LunarG/VulkanTools-sub014/internal/remap"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
)

func (s *Session) createDescriptorSetLayout(call *vkcall.CreateDescriptorSetLayoutCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	info := call.CreateInfo
	layout, r := s.api.CreateDescriptorSetLayout(device, &info)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	return bind(s, call.Device, call.SetLayout, layout)
}

func (s *Session) createDescriptorPool(call *vkcall.CreateDescriptorPoolCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	info := call.CreateInfo
	pool, r := s.api.CreateDescriptorPool(device, &info)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	return bind(s, call.Device, call.DescriptorPool, pool)
}

func (s *Session) allocateDescriptorSets(call *vkcall.AllocateDescriptorSetsCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	info := call.AllocateInfo
	if info.DescriptorPool, err = remap.Lookup(s.table, info.DescriptorPool); err != nil {
		return err
	}
	if info.SetLayouts, err = remap.LookupAll(s.table, info.SetLayouts); err != nil {
		return err
	}
	sets, r := s.api.AllocateDescriptorSets(device, &info)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	for i, virtual := range call.DescriptorSets {
		if i == len(sets) {
			break
		}
		if err := bind(s, call.AllocateInfo.DescriptorPool, virtual, sets[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) freeDescriptorSets(call *vkcall.FreeDescriptorSetsCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	pool, err := remap.Lookup(s.table, call.DescriptorPool)
	if err != nil {
		return err
	}
	sets, err := lookupAllOptional(s.table, call.DescriptorSets)
	if err != nil {
		return err
	}
	for _, virtual := range call.DescriptorSets {
		s.unbind(vkapi.ObjectOf(virtual))
	}
	return s.check(call.Result, s.api.FreeDescriptorSets(device, pool, sets))
}

func (s *Session) updateDescriptorSets(call *vkcall.UpdateDescriptorSetsCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}

	writes := make([]vkapi.WriteDescriptorSet, len(call.Writes))
	for i, w := range call.Writes {
		if w.DstSet, err = remap.Lookup(s.table, w.DstSet); err != nil {
			return err
		}
		if w.ImageInfo != nil {
			images := make([]vkapi.DescriptorImageInfo, len(w.ImageInfo))
			for j, info := range w.ImageInfo {
				if info.ImageView, err = remap.LookupOptional(s.table, info.ImageView); err != nil {
					return err
				}
				images[j] = info
			}
			w.ImageInfo = images
		}
		if w.BufferInfo != nil {
			buffers := make([]vkapi.DescriptorBufferInfo, len(w.BufferInfo))
			for j, info := range w.BufferInfo {
				if info.Buffer, err = remap.LookupOptional(s.table, info.Buffer); err != nil {
					return err
				}
				buffers[j] = info
			}
			w.BufferInfo = buffers
		}
		writes[i] = w
	}

	copies := make([]vkapi.CopyDescriptorSet, len(call.Copies))
	for i, c := range call.Copies {
		if c.SrcSet, err = remap.Lookup(s.table, c.SrcSet); err != nil {
			return err
		}
		if c.DstSet, err = remap.Lookup(s.table, c.DstSet); err != nil {
			return err
		}
		copies[i] = c
	}

	s.api.UpdateDescriptorSets(device, writes, copies)
	return nil
}

func (s *Session) createPipelineLayout(call *vkcall.CreatePipelineLayoutCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	info := call.CreateInfo
	if info.SetLayouts, err = remap.LookupAll(s.table, info.SetLayouts); err != nil {
		return err
	}
	layout, r := s.api.CreatePipelineLayout(device, &info)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	return bind(s, call.Device, call.PipelineLayout, layout)
}

func (s *Session) createShaderModule(call *vkcall.CreateShaderModuleCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	info := call.CreateInfo
	module, r := s.api.CreateShaderModule(device, &info)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	return bind(s, call.Device, call.ShaderModule, module)
}

func (s *Session) createComputePipelines(call *vkcall.CreateComputePipelinesCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	infos := make([]vkapi.ComputePipelineCreateInfo, len(call.CreateInfos))
	for i, info := range call.CreateInfos {
		if info.Stage.Module, err = remap.Lookup(s.table, info.Stage.Module); err != nil {
			return err
		}
		if info.Layout, err = remap.Lookup(s.table, info.Layout); err != nil {
			return err
		}
		if info.BasePipelineHandle, err = remap.LookupOptional(s.table, info.BasePipelineHandle); err != nil {
			return err
		}
		infos[i] = info
	}
	pipelines, r := s.api.CreateComputePipelines(device, infos)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	for i, virtual := range call.Pipelines {
		if i == len(pipelines) {
			break
		}
		if err := bind(s, call.Device, virtual, pipelines[i]); err != nil {
			return err
		}
	}
	return nil
}
