package replay

import (
	"fmt"

	"github.com/LunarG/VulkanTools-sub014/internal/compat"
	"github.com/LunarG/VulkanTools-sub014/internal/remap"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
)

// pendingAllocation is a memory allocation deferred until the first bind of
// the memory object, when the requirements of the resource are known.
type pendingAllocation struct {
	index      uint64
	call       *vkcall.AllocateMemoryCall
	translator *compat.Translator
}

func (s *Session) allocateMemory(call *vkcall.AllocateMemoryCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	tr, err := s.registry.DeviceTranslator(call.Device)
	if err != nil {
		return err
	}
	info := call.AllocateInfo
	if info.Next, err = s.remapChain(info.Next); err != nil {
		return err
	}

	if !tr.Identity() {
		plan, err := s.planAllocation(call, tr)
		if err != nil {
			return err
		}
		switch {
		case plan.freed:
		case !plan.found:
			if err := s.table.BindPending(vkapi.ObjectOf(call.Memory)); err != nil {
				return err
			}
			remap.Own(s.table, call.Device, call.Memory)
			s.pending[call.Memory] = &pendingAllocation{index: s.index, call: call, translator: tr}
			s.logger.Debug("memory allocation deferred to the first bind", "memory", vkapi.ObjectOf(call.Memory), "index", s.index)
			return nil
		default:
			info.AllocationSize, info.MemoryTypeIndex = plan.size, plan.typeIndex
		}
	}

	memory, r := s.api.AllocateMemory(device, &info)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	return bind(s, call.Device, call.Memory, memory)
}

// resolvePending performs a deferred allocation, sized to hold a resource
// with the given requirements at offset.
func (s *Session) resolvePending(virtual vkapi.DeviceMemory, reqs vkapi.MemoryRequirements, offset uint64) error {
	p := s.pending[virtual]
	if p == nil {
		return &remap.PendingAllocationError{Object: vkapi.ObjectOf(virtual)}
	}
	device, err := remap.Lookup(s.table, p.call.Device)
	if err != nil {
		return err
	}
	info := p.call.AllocateInfo
	if info.Next, err = s.remapChain(info.Next); err != nil {
		return err
	}
	info.AllocationSize = allocationSize(info.AllocationSize, offset, reqs)
	if info.MemoryTypeIndex, err = p.translator.MemoryTypeIndex(info.MemoryTypeIndex, reqs.MemoryTypeBits); err != nil {
		return err
	}

	memory, r := s.api.AllocateMemory(device, &info)
	if err := s.checkCall(vkcall.AllocateMemory, p.index, p.call.Result, r); err != nil {
		return err
	}
	if r != vkapi.Success {
		return fmt.Errorf("deferred allocation of %s failed: %s", vkapi.ObjectOf(virtual), r)
	}
	delete(s.pending, virtual)
	return s.table.Resolve(vkapi.ObjectOf(virtual), uint64(memory))
}

func (s *Session) freeMemory(call *vkcall.FreeMemoryCall) error {
	if _, ok := s.pending[call.Memory]; ok {
		s.unbind(vkapi.ObjectOf(call.Memory))
		return nil
	}
	return destroy(s, call.Device, call.Memory, s.api.FreeMemory)
}

func (s *Session) mapMemory(call *vkcall.MapMemoryCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	memory, err := remap.Lookup(s.table, call.Memory)
	if err != nil {
		return err
	}
	data, r := s.api.MapMemory(device, memory, call.Offset, call.Size, call.Flags)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	if r == vkapi.Success {
		s.mapped[call.Memory] = mapping{data: data, offset: call.Offset}
	}
	return nil
}

func (s *Session) unmapMemory(call *vkcall.UnmapMemoryCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	memory, err := remap.Lookup(s.table, call.Memory)
	if err != nil {
		return err
	}
	m, ok := s.mapped[call.Memory]
	if !ok {
		return fmt.Errorf("%s is not mapped", vkapi.ObjectOf(call.Memory))
	}
	delete(s.mapped, call.Memory)

	var copyErr error
	if len(call.Data) > 0 {
		switch offset := call.Offset - m.offset; {
		case call.Offset < m.offset || offset > uint64(len(m.data)) || uint64(len(call.Data)) > uint64(len(m.data))-offset:
			copyErr = fmt.Errorf("%d bytes at offset %d are outside of the range mapped at offset %d with size %d",
				len(call.Data), call.Offset, m.offset, len(m.data))
		default:
			copy(m.data[offset:], call.Data)
		}
	}
	s.api.UnmapMemory(device, memory)
	return copyErr
}

func (s *Session) bufferCreateInfo(device vkapi.Device, info vkapi.BufferCreateInfo) (*vkapi.BufferCreateInfo, error) {
	var err error
	if info.Next, err = s.remapChain(info.Next); err != nil {
		return nil, err
	}
	if info.SharingMode == vkapi.SharingModeConcurrent {
		if info.QueueFamilyIndices, err = s.translateQueueFamilies(device, info.QueueFamilyIndices); err != nil {
			return nil, err
		}
	}
	return &info, nil
}

func (s *Session) imageCreateInfo(device vkapi.Device, info vkapi.ImageCreateInfo) (*vkapi.ImageCreateInfo, error) {
	var err error
	if info.Next, err = s.remapChain(info.Next); err != nil {
		return nil, err
	}
	if info.SharingMode == vkapi.SharingModeConcurrent {
		if info.QueueFamilyIndices, err = s.translateQueueFamilies(device, info.QueueFamilyIndices); err != nil {
			return nil, err
		}
	}
	return &info, nil
}

func (s *Session) translateQueueFamilies(device vkapi.Device, indices []uint32) ([]uint32, error) {
	tr, err := s.registry.DeviceTranslator(device)
	if err != nil {
		return nil, err
	}
	return tr.QueueFamilyIndices(indices)
}

func (s *Session) createBuffer(call *vkcall.CreateBufferCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	info, err := s.bufferCreateInfo(call.Device, call.CreateInfo)
	if err != nil {
		return err
	}
	buffer, r := s.api.CreateBuffer(device, info)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	return bind(s, call.Device, call.Buffer, buffer)
}

func (s *Session) createImage(call *vkcall.CreateImageCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	info, err := s.imageCreateInfo(call.Device, call.CreateInfo)
	if err != nil {
		return err
	}
	image, r := s.api.CreateImage(device, info)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	return bind(s, call.Device, call.Image, image)
}

func (s *Session) getBufferMemoryRequirements(call *vkcall.GetBufferMemoryRequirementsCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	buffer, err := remap.Lookup(s.table, call.Buffer)
	if err != nil {
		return err
	}
	s.api.GetBufferMemoryRequirements(device, buffer)
	return nil
}

func (s *Session) getImageMemoryRequirements(call *vkcall.GetImageMemoryRequirementsCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	image, err := remap.Lookup(s.table, call.Image)
	if err != nil {
		return err
	}
	s.api.GetImageMemoryRequirements(device, image)
	return nil
}

// requirements returns the memory requirements of a live buffer or image.
func (s *Session) requirements(device vkapi.Device, resource vkapi.Object) vkapi.MemoryRequirements {
	if resource.Type == vkapi.ObjectTypeImage {
		return s.api.GetImageMemoryRequirements(device, vkapi.Image(resource.Handle))
	}
	return s.api.GetBufferMemoryRequirements(device, vkapi.Buffer(resource.Handle))
}

// binding is the replay side of a resource memory binding.
type binding struct {
	device   vkapi.Device
	resource uint64
	memory   vkapi.DeviceMemory
	offset   uint64
}

// bindMemory translates the binding of a resource to a memory object,
// performing the allocation of the memory object if it was deferred.
//
// When the replay device differs from the capture device, the offset is
// aligned to the replay requirements of the resource.
func (s *Session) bindMemory(device vkapi.Device, resource vkapi.Object, memory vkapi.DeviceMemory, offset uint64) (binding, error) {
	var b binding
	var err error
	if b.device, err = remap.Lookup(s.table, device); err != nil {
		return b, err
	}
	if b.resource, err = s.table.Lookup(resource); err != nil {
		return b, err
	}
	tr, err := s.registry.DeviceTranslator(device)
	if err != nil {
		return b, err
	}
	pending := s.table.State(vkapi.ObjectOf(memory)) == remap.Pending

	b.offset = offset
	if pending || !tr.Identity() {
		reqs := s.requirements(b.device, vkapi.Object{Type: resource.Type, Handle: b.resource})
		if pending {
			if err := s.resolvePending(memory, reqs, offset); err != nil {
				return b, err
			}
		}
		if !tr.Identity() {
			b.offset = alignUp(offset, reqs.Alignment)
		}
	}
	if b.memory, err = remap.Lookup(s.table, memory); err != nil {
		return b, err
	}
	return b, nil
}

func (s *Session) bindBufferMemory(call *vkcall.BindBufferMemoryCall) error {
	b, err := s.bindMemory(call.Device, vkapi.ObjectOf(call.Buffer), call.Memory, call.MemoryOffset)
	if err != nil {
		return err
	}
	r := s.api.BindBufferMemory(b.device, vkapi.Buffer(b.resource), b.memory, b.offset)
	return s.check(call.Result, r)
}

func (s *Session) bindImageMemory(call *vkcall.BindImageMemoryCall) error {
	b, err := s.bindMemory(call.Device, vkapi.ObjectOf(call.Image), call.Memory, call.MemoryOffset)
	if err != nil {
		return err
	}
	r := s.api.BindImageMemory(b.device, vkapi.Image(b.resource), b.memory, b.offset)
	return s.check(call.Result, r)
}

func (s *Session) bindBufferMemory2(call *vkcall.BindBufferMemory2Call) error {
	var device vkapi.Device
	infos := make([]vkapi.BindBufferMemoryInfo, len(call.BindInfos))
	for i, info := range call.BindInfos {
		b, err := s.bindMemory(call.Device, vkapi.ObjectOf(info.Buffer), info.Memory, info.MemoryOffset)
		if err != nil {
			return err
		}
		if info.Next, err = s.remapChain(info.Next); err != nil {
			return err
		}
		device = b.device
		info.Buffer, info.Memory, info.MemoryOffset = vkapi.Buffer(b.resource), b.memory, b.offset
		infos[i] = info
	}
	if device == 0 {
		var err error
		if device, err = remap.Lookup(s.table, call.Device); err != nil {
			return err
		}
	}
	return s.check(call.Result, s.api.BindBufferMemory2(device, infos))
}

func (s *Session) bindImageMemory2(call *vkcall.BindImageMemory2Call) error {
	var device vkapi.Device
	infos := make([]vkapi.BindImageMemoryInfo, len(call.BindInfos))
	for i, info := range call.BindInfos {
		b, err := s.bindMemory(call.Device, vkapi.ObjectOf(info.Image), info.Memory, info.MemoryOffset)
		if err != nil {
			return err
		}
		if info.Next, err = s.remapChain(info.Next); err != nil {
			return err
		}
		device = b.device
		info.Image, info.Memory, info.MemoryOffset = vkapi.Image(b.resource), b.memory, b.offset
		infos[i] = info
	}
	if device == 0 {
		var err error
		if device, err = remap.Lookup(s.table, call.Device); err != nil {
			return err
		}
	}
	return s.check(call.Result, s.api.BindImageMemory2(device, infos))
}

func (s *Session) createImageView(call *vkcall.CreateImageViewCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	info := call.CreateInfo
	if info.Image, err = remap.Lookup(s.table, info.Image); err != nil {
		return err
	}
	view, r := s.api.CreateImageView(device, &info)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	return bind(s, call.Device, call.View, view)
}

func alignUp(size, alignment uint64) uint64 {
	if alignment <= 1 {
		return size
	}
	return (size + alignment - 1) / alignment * alignment
}

// allocationSize returns the size of a memory allocation which fits both the
// size recorded in the trace and a resource bound at offset with the replay
// requirements.
func allocationSize(traceSize, offset uint64, reqs vkapi.MemoryRequirements) uint64 {
	return max(alignUp(traceSize, reqs.Alignment), alignUp(offset, reqs.Alignment)+reqs.Size)
}
