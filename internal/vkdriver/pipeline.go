package vkdriver

import (
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

func (d *Driver) CreateDescriptorSetLayout(device vkapi.Device, info *vkapi.DescriptorSetLayoutCreateInfo) (vkapi.DescriptorSetLayout, vkapi.Result) {
	d.dropChain("vkCreateDescriptorSetLayout", info.Next)
	bindings := convertAll(info.Bindings, func(b vkapi.DescriptorSetLayoutBinding) vk.DescriptorSetLayoutBinding {
		return vk.DescriptorSetLayoutBinding{
			Binding:         b.Binding,
			DescriptorType:  vk.DescriptorType(b.DescriptorType),
			DescriptorCount: b.DescriptorCount,
			StageFlags:      vk.ShaderStageFlags(b.StageFlags),
		}
	})
	createInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		Flags:        vk.DescriptorSetLayoutCreateFlags(info.Flags),
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}
	var layout vk.DescriptorSetLayout
	if r := vk.CreateDescriptorSetLayout(vk.Device(ptr(device)), &createInfo, nil, &layout); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	return vkapi.DescriptorSetLayout(addr(unsafe.Pointer(layout))), vkapi.Success
}

func (d *Driver) DestroyDescriptorSetLayout(device vkapi.Device, layout vkapi.DescriptorSetLayout) {
	vk.DestroyDescriptorSetLayout(vk.Device(ptr(device)), nativeSetLayout(layout), nil)
}

func (d *Driver) CreateDescriptorPool(device vkapi.Device, info *vkapi.DescriptorPoolCreateInfo) (vkapi.DescriptorPool, vkapi.Result) {
	d.dropChain("vkCreateDescriptorPool", info.Next)
	sizes := convertAll(info.PoolSizes, func(s vkapi.DescriptorPoolSize) vk.DescriptorPoolSize {
		return vk.DescriptorPoolSize{
			Type:            vk.DescriptorType(s.Type),
			DescriptorCount: s.DescriptorCount,
		}
	})
	createInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:         vk.DescriptorPoolCreateFlags(info.Flags),
		MaxSets:       info.MaxSets,
		PoolSizeCount: uint32(len(sizes)),
		PPoolSizes:    sizes,
	}
	var pool vk.DescriptorPool
	if r := vk.CreateDescriptorPool(vk.Device(ptr(device)), &createInfo, nil, &pool); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	return vkapi.DescriptorPool(addr(unsafe.Pointer(pool))), vkapi.Success
}

func (d *Driver) DestroyDescriptorPool(device vkapi.Device, pool vkapi.DescriptorPool) {
	vk.DestroyDescriptorPool(vk.Device(ptr(device)), vk.DescriptorPool(ptr(pool)), nil)
}

func (d *Driver) AllocateDescriptorSets(device vkapi.Device, info *vkapi.DescriptorSetAllocateInfo) ([]vkapi.DescriptorSet, vkapi.Result) {
	d.dropChain("vkAllocateDescriptorSets", info.Next)
	if len(info.SetLayouts) == 0 {
		return nil, vkapi.Success
	}
	allocateInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     vk.DescriptorPool(ptr(info.DescriptorPool)),
		DescriptorSetCount: uint32(len(info.SetLayouts)),
		PSetLayouts:        convertAll(info.SetLayouts, nativeSetLayout),
	}
	sets := make([]vk.DescriptorSet, len(info.SetLayouts))
	if r := vk.AllocateDescriptorSets(vk.Device(ptr(device)), &allocateInfo, &sets[0]); r != vk.Success {
		return nil, vkapi.Result(r)
	}
	return convertAll(sets, func(s vk.DescriptorSet) vkapi.DescriptorSet {
		return vkapi.DescriptorSet(addr(unsafe.Pointer(s)))
	}), vkapi.Success
}

func (d *Driver) FreeDescriptorSets(device vkapi.Device, pool vkapi.DescriptorPool, sets []vkapi.DescriptorSet) vkapi.Result {
	if len(sets) == 0 {
		return vkapi.Success
	}
	native := convertAll(sets, nativeDescriptorSet)
	return vkapi.Result(vk.FreeDescriptorSets(vk.Device(ptr(device)), vk.DescriptorPool(ptr(pool)), uint32(len(native)), &native[0]))
}

func (d *Driver) UpdateDescriptorSets(device vkapi.Device, writes []vkapi.WriteDescriptorSet, copies []vkapi.CopyDescriptorSet) {
	nativeWrites := convertAll(writes, func(w vkapi.WriteDescriptorSet) vk.WriteDescriptorSet {
		d.dropChain("vkUpdateDescriptorSets", w.Next)
		images := convertAll(w.ImageInfo, func(i vkapi.DescriptorImageInfo) vk.DescriptorImageInfo {
			return vk.DescriptorImageInfo{
				ImageView:   vk.ImageView(ptr(i.ImageView)),
				ImageLayout: vk.ImageLayout(i.ImageLayout),
			}
		})
		buffers := convertAll(w.BufferInfo, func(b vkapi.DescriptorBufferInfo) vk.DescriptorBufferInfo {
			return vk.DescriptorBufferInfo{
				Buffer: vk.Buffer(ptr(b.Buffer)),
				Offset: vk.DeviceSize(b.Offset),
				Range:  vk.DeviceSize(b.Range),
			}
		})
		return vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          nativeDescriptorSet(w.DstSet),
			DstBinding:      w.DstBinding,
			DstArrayElement: w.DstArrayElement,
			DescriptorCount: uint32(len(images) + len(buffers)),
			DescriptorType:  vk.DescriptorType(w.DescriptorType),
			PImageInfo:      images,
			PBufferInfo:     buffers,
		}
	})
	nativeCopies := convertAll(copies, func(c vkapi.CopyDescriptorSet) vk.CopyDescriptorSet {
		return vk.CopyDescriptorSet{
			SType:           vk.StructureTypeCopyDescriptorSet,
			SrcSet:          nativeDescriptorSet(c.SrcSet),
			SrcBinding:      c.SrcBinding,
			SrcArrayElement: c.SrcArrayElement,
			DstSet:          nativeDescriptorSet(c.DstSet),
			DstBinding:      c.DstBinding,
			DstArrayElement: c.DstArrayElement,
			DescriptorCount: c.DescriptorCount,
		}
	})
	vk.UpdateDescriptorSets(vk.Device(ptr(device)), uint32(len(nativeWrites)), nativeWrites, uint32(len(nativeCopies)), nativeCopies)
}

func (d *Driver) CreatePipelineLayout(device vkapi.Device, info *vkapi.PipelineLayoutCreateInfo) (vkapi.PipelineLayout, vkapi.Result) {
	d.dropChain("vkCreatePipelineLayout", info.Next)
	ranges := convertAll(info.PushConstantRanges, func(r vkapi.PushConstantRange) vk.PushConstantRange {
		return vk.PushConstantRange{
			StageFlags: vk.ShaderStageFlags(r.StageFlags),
			Offset:     r.Offset,
			Size:       r.Size,
		}
	})
	createInfo := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		Flags:                  vk.PipelineLayoutCreateFlags(info.Flags),
		SetLayoutCount:         uint32(len(info.SetLayouts)),
		PSetLayouts:            convertAll(info.SetLayouts, nativeSetLayout),
		PushConstantRangeCount: uint32(len(ranges)),
		PPushConstantRanges:    ranges,
	}
	var layout vk.PipelineLayout
	if r := vk.CreatePipelineLayout(vk.Device(ptr(device)), &createInfo, nil, &layout); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	return vkapi.PipelineLayout(addr(unsafe.Pointer(layout))), vkapi.Success
}

func (d *Driver) DestroyPipelineLayout(device vkapi.Device, layout vkapi.PipelineLayout) {
	vk.DestroyPipelineLayout(vk.Device(ptr(device)), vk.PipelineLayout(ptr(layout)), nil)
}

func (d *Driver) CreateShaderModule(device vkapi.Device, info *vkapi.ShaderModuleCreateInfo) (vkapi.ShaderModule, vkapi.Result) {
	d.dropChain("vkCreateShaderModule", info.Next)
	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		Flags:    vk.ShaderModuleCreateFlags(info.Flags),
		CodeSize: uint64(len(info.Code) * 4),
		PCode:    info.Code,
	}
	var module vk.ShaderModule
	if r := vk.CreateShaderModule(vk.Device(ptr(device)), &createInfo, nil, &module); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	return vkapi.ShaderModule(addr(unsafe.Pointer(module))), vkapi.Success
}

func (d *Driver) DestroyShaderModule(device vkapi.Device, module vkapi.ShaderModule) {
	vk.DestroyShaderModule(vk.Device(ptr(device)), vk.ShaderModule(ptr(module)), nil)
}

func (d *Driver) CreateComputePipelines(device vkapi.Device, infos []vkapi.ComputePipelineCreateInfo) ([]vkapi.Pipeline, vkapi.Result) {
	createInfos := convertAll(infos, func(info vkapi.ComputePipelineCreateInfo) vk.ComputePipelineCreateInfo {
		d.dropChain("vkCreateComputePipelines", info.Next)
		return vk.ComputePipelineCreateInfo{
			SType: vk.StructureTypeComputePipelineCreateInfo,
			Flags: vk.PipelineCreateFlags(info.Flags),
			Stage: vk.PipelineShaderStageCreateInfo{
				SType:  vk.StructureTypePipelineShaderStageCreateInfo,
				Flags:  vk.PipelineShaderStageCreateFlags(info.Stage.Flags),
				Stage:  vk.ShaderStageFlagBits(info.Stage.Stage),
				Module: vk.ShaderModule(ptr(info.Stage.Module)),
				PName:  safeString(info.Stage.Name),
			},
			Layout:             vk.PipelineLayout(ptr(info.Layout)),
			BasePipelineHandle: vk.Pipeline(ptr(info.BasePipelineHandle)),
			BasePipelineIndex:  info.BasePipelineIndex,
		}
	})
	pipelines := make([]vk.Pipeline, len(createInfos))
	r := vk.CreateComputePipelines(vk.Device(ptr(device)), vk.PipelineCache(vk.NullHandle), uint32(len(createInfos)), createInfos, nil, pipelines)
	if r != vk.Success {
		return nil, vkapi.Result(r)
	}
	return convertAll(pipelines, func(p vk.Pipeline) vkapi.Pipeline {
		return vkapi.Pipeline(addr(unsafe.Pointer(p)))
	}), vkapi.Success
}

func (d *Driver) DestroyPipeline(device vkapi.Device, pipeline vkapi.Pipeline) {
	vk.DestroyPipeline(vk.Device(ptr(device)), vk.Pipeline(ptr(pipeline)), nil)
}
