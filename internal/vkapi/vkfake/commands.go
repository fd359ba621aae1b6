package vkfake

import (
	"golang.org/x/exp/slices"

	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

func (d *Driver) CreateFence(device vkapi.Device, info *vkapi.FenceCreateInfo) (vkapi.Fence, vkapi.Result) {
	if r, ok := d.call("CreateFence"); ok {
		return 0, r
	}
	if !d.check(vkapi.ObjectOf(device)) {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	fence := vkapi.Fence(d.create(vkapi.ObjectTypeFence))
	// VK_FENCE_CREATE_SIGNALED_BIT
	d.fences[fence] = info.Flags&1 != 0
	return fence, vkapi.Success
}

func (d *Driver) DestroyFence(device vkapi.Device, fence vkapi.Fence) {
	d.call("DestroyFence")
	if d.destroy(vkapi.ObjectOf(fence)) {
		delete(d.fences, fence)
	}
}

func (d *Driver) ResetFences(device vkapi.Device, fences []vkapi.Fence) vkapi.Result {
	if r, ok := d.call("ResetFences"); ok {
		return r
	}
	if !d.check(objects(fences)...) {
		return vkapi.ErrorValidationFailedEXT
	}
	for _, f := range fences {
		d.fences[f] = false
	}
	return vkapi.Success
}

func (d *Driver) WaitForFences(device vkapi.Device, fences []vkapi.Fence, waitAll bool, timeout uint64) vkapi.Result {
	d.WaitTimeouts = append(d.WaitTimeouts, timeout)
	if r, ok := d.call("WaitForFences"); ok {
		return r
	}
	if !d.check(objects(fences)...) {
		return vkapi.ErrorValidationFailedEXT
	}
	signaled := 0
	for _, f := range fences {
		if d.fences[f] {
			signaled++
		}
	}
	if signaled == len(fences) || (!waitAll && signaled > 0) {
		return vkapi.Success
	}
	return vkapi.Timeout
}

func (d *Driver) GetFenceStatus(device vkapi.Device, fence vkapi.Fence) vkapi.Result {
	if r, ok := d.call("GetFenceStatus"); ok {
		return r
	}
	if !d.check(vkapi.ObjectOf(fence)) {
		return vkapi.ErrorValidationFailedEXT
	}
	if d.fences[fence] {
		return vkapi.Success
	}
	return vkapi.NotReady
}

func (d *Driver) CreateSemaphore(device vkapi.Device, info *vkapi.SemaphoreCreateInfo) (vkapi.Semaphore, vkapi.Result) {
	if r, ok := d.call("CreateSemaphore"); ok {
		return 0, r
	}
	if !d.check(vkapi.ObjectOf(device)) {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	return vkapi.Semaphore(d.create(vkapi.ObjectTypeSemaphore)), vkapi.Success
}

func (d *Driver) DestroySemaphore(device vkapi.Device, semaphore vkapi.Semaphore) {
	d.call("DestroySemaphore")
	d.destroy(vkapi.ObjectOf(semaphore))
}

func (d *Driver) CreateCommandPool(device vkapi.Device, info *vkapi.CommandPoolCreateInfo) (vkapi.CommandPool, vkapi.Result) {
	if r, ok := d.call("CreateCommandPool"); ok {
		return 0, r
	}
	p := d.devices[device]
	if p == nil {
		return 0, d.invalid(vkapi.ObjectOf(device), "use of unknown device")
	}
	if int(info.QueueFamilyIndex) >= len(p.QueueFamilies) {
		return 0, d.invalid(vkapi.ObjectOf(device), "queue family index %d is out of range", info.QueueFamilyIndex)
	}
	return vkapi.CommandPool(d.create(vkapi.ObjectTypeCommandPool)), vkapi.Success
}

func (d *Driver) destroyPool(pool vkapi.Object, children vkapi.ObjectType) {
	if d.destroy(pool) {
		for _, h := range d.pools[pool] {
			delete(d.live, vkapi.Object{Type: children, Handle: h})
		}
		delete(d.pools, pool)
	}
}

func (d *Driver) freeFromPool(pool vkapi.Object, children []vkapi.Object) bool {
	if !d.check(pool) || !d.check(children...) {
		return false
	}
	for _, child := range children {
		if child.Handle == 0 {
			continue
		}
		delete(d.live, child)
		d.pools[pool] = slices.DeleteFunc(d.pools[pool], func(h uint64) bool { return h == child.Handle })
	}
	return true
}

func (d *Driver) DestroyCommandPool(device vkapi.Device, pool vkapi.CommandPool) {
	d.call("DestroyCommandPool")
	d.destroyPool(vkapi.ObjectOf(pool), vkapi.ObjectTypeCommandBuffer)
}

func (d *Driver) AllocateCommandBuffers(device vkapi.Device, info *vkapi.CommandBufferAllocateInfo) ([]vkapi.CommandBuffer, vkapi.Result) {
	if r, ok := d.call("AllocateCommandBuffers"); ok {
		return nil, r
	}
	pool := vkapi.ObjectOf(info.CommandPool)
	if !d.check(vkapi.ObjectOf(device), pool) {
		return nil, vkapi.ErrorValidationFailedEXT
	}
	buffers := make([]vkapi.CommandBuffer, info.CommandBufferCount)
	for i := range buffers {
		h := d.create(vkapi.ObjectTypeCommandBuffer)
		buffers[i] = vkapi.CommandBuffer(h)
		d.pools[pool] = append(d.pools[pool], h)
	}
	return buffers, vkapi.Success
}

func (d *Driver) FreeCommandBuffers(device vkapi.Device, pool vkapi.CommandPool, buffers []vkapi.CommandBuffer) {
	d.call("FreeCommandBuffers")
	d.freeFromPool(vkapi.ObjectOf(pool), objects(buffers))
}

func (d *Driver) BeginCommandBuffer(buffer vkapi.CommandBuffer, info *vkapi.CommandBufferBeginInfo) vkapi.Result {
	if r, ok := d.call("BeginCommandBuffer"); ok {
		return r
	}
	if !d.check(vkapi.ObjectOf(buffer)) {
		return vkapi.ErrorValidationFailedEXT
	}
	return vkapi.Success
}

func (d *Driver) EndCommandBuffer(buffer vkapi.CommandBuffer) vkapi.Result {
	if r, ok := d.call("EndCommandBuffer"); ok {
		return r
	}
	if !d.check(vkapi.ObjectOf(buffer)) {
		return vkapi.ErrorValidationFailedEXT
	}
	return vkapi.Success
}

func (d *Driver) CmdCopyBuffer(buffer vkapi.CommandBuffer, src, dst vkapi.Buffer, regions []vkapi.BufferCopy) {
	d.call("CmdCopyBuffer")
	d.check(vkapi.ObjectOf(buffer), vkapi.ObjectOf(src), vkapi.ObjectOf(dst))
}

func (d *Driver) CmdPipelineBarrier(buffer vkapi.CommandBuffer, srcStageMask, dstStageMask, dependencyFlags uint32, memoryBarriers []vkapi.MemoryBarrier, bufferBarriers []vkapi.BufferMemoryBarrier, imageBarriers []vkapi.ImageMemoryBarrier) {
	d.call("CmdPipelineBarrier")
	if !d.check(vkapi.ObjectOf(buffer)) {
		return
	}
	for _, b := range bufferBarriers {
		d.check(vkapi.ObjectOf(b.Buffer))
	}
	for _, b := range imageBarriers {
		d.check(vkapi.ObjectOf(b.Image))
	}
}

func (d *Driver) CmdBindPipeline(buffer vkapi.CommandBuffer, bindPoint uint32, pipeline vkapi.Pipeline) {
	d.call("CmdBindPipeline")
	d.check(vkapi.ObjectOf(buffer), vkapi.ObjectOf(pipeline))
}

func (d *Driver) CmdBindDescriptorSets(buffer vkapi.CommandBuffer, bindPoint uint32, layout vkapi.PipelineLayout, firstSet uint32, sets []vkapi.DescriptorSet, dynamicOffsets []uint32) {
	d.call("CmdBindDescriptorSets")
	if d.check(vkapi.ObjectOf(buffer), vkapi.ObjectOf(layout)) {
		d.check(objects(sets)...)
	}
}

func (d *Driver) CmdDispatch(buffer vkapi.CommandBuffer, x, y, z uint32) {
	d.call("CmdDispatch")
	d.check(vkapi.ObjectOf(buffer))
}

func (d *Driver) CreateDescriptorSetLayout(device vkapi.Device, info *vkapi.DescriptorSetLayoutCreateInfo) (vkapi.DescriptorSetLayout, vkapi.Result) {
	if r, ok := d.call("CreateDescriptorSetLayout"); ok {
		return 0, r
	}
	if !d.check(vkapi.ObjectOf(device)) {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	return vkapi.DescriptorSetLayout(d.create(vkapi.ObjectTypeDescriptorSetLayout)), vkapi.Success
}

func (d *Driver) DestroyDescriptorSetLayout(device vkapi.Device, layout vkapi.DescriptorSetLayout) {
	d.call("DestroyDescriptorSetLayout")
	d.destroy(vkapi.ObjectOf(layout))
}

func (d *Driver) CreateDescriptorPool(device vkapi.Device, info *vkapi.DescriptorPoolCreateInfo) (vkapi.DescriptorPool, vkapi.Result) {
	if r, ok := d.call("CreateDescriptorPool"); ok {
		return 0, r
	}
	if !d.check(vkapi.ObjectOf(device)) {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	return vkapi.DescriptorPool(d.create(vkapi.ObjectTypeDescriptorPool)), vkapi.Success
}

func (d *Driver) DestroyDescriptorPool(device vkapi.Device, pool vkapi.DescriptorPool) {
	d.call("DestroyDescriptorPool")
	d.destroyPool(vkapi.ObjectOf(pool), vkapi.ObjectTypeDescriptorSet)
}

func (d *Driver) AllocateDescriptorSets(device vkapi.Device, info *vkapi.DescriptorSetAllocateInfo) ([]vkapi.DescriptorSet, vkapi.Result) {
	if r, ok := d.call("AllocateDescriptorSets"); ok {
		return nil, r
	}
	pool := vkapi.ObjectOf(info.DescriptorPool)
	if !d.check(vkapi.ObjectOf(device), pool) || !d.check(objects(info.SetLayouts)...) {
		return nil, vkapi.ErrorValidationFailedEXT
	}
	sets := make([]vkapi.DescriptorSet, len(info.SetLayouts))
	for i := range sets {
		h := d.create(vkapi.ObjectTypeDescriptorSet)
		sets[i] = vkapi.DescriptorSet(h)
		d.pools[pool] = append(d.pools[pool], h)
	}
	return sets, vkapi.Success
}

func (d *Driver) FreeDescriptorSets(device vkapi.Device, pool vkapi.DescriptorPool, sets []vkapi.DescriptorSet) vkapi.Result {
	if r, ok := d.call("FreeDescriptorSets"); ok {
		return r
	}
	if !d.freeFromPool(vkapi.ObjectOf(pool), objects(sets)) {
		return vkapi.ErrorValidationFailedEXT
	}
	return vkapi.Success
}

func (d *Driver) UpdateDescriptorSets(device vkapi.Device, writes []vkapi.WriteDescriptorSet, copies []vkapi.CopyDescriptorSet) {
	d.call("UpdateDescriptorSets")
	for _, w := range writes {
		d.check(vkapi.ObjectOf(w.DstSet))
		for _, info := range w.BufferInfo {
			d.check(vkapi.ObjectOf(info.Buffer))
		}
		for _, info := range w.ImageInfo {
			d.check(vkapi.ObjectOf(info.ImageView))
		}
	}
	for _, c := range copies {
		d.check(vkapi.ObjectOf(c.SrcSet), vkapi.ObjectOf(c.DstSet))
	}
}

func (d *Driver) CreatePipelineLayout(device vkapi.Device, info *vkapi.PipelineLayoutCreateInfo) (vkapi.PipelineLayout, vkapi.Result) {
	if r, ok := d.call("CreatePipelineLayout"); ok {
		return 0, r
	}
	if !d.check(vkapi.ObjectOf(device)) || !d.check(objects(info.SetLayouts)...) {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	return vkapi.PipelineLayout(d.create(vkapi.ObjectTypePipelineLayout)), vkapi.Success
}

func (d *Driver) DestroyPipelineLayout(device vkapi.Device, layout vkapi.PipelineLayout) {
	d.call("DestroyPipelineLayout")
	d.destroy(vkapi.ObjectOf(layout))
}

func (d *Driver) CreateShaderModule(device vkapi.Device, info *vkapi.ShaderModuleCreateInfo) (vkapi.ShaderModule, vkapi.Result) {
	if r, ok := d.call("CreateShaderModule"); ok {
		return 0, r
	}
	if len(info.Code) == 0 || info.Code[0] != 0x07230203 {
		return 0, d.invalid(vkapi.ObjectOf(device), "shader code is not a SPIR-V module")
	}
	return vkapi.ShaderModule(d.create(vkapi.ObjectTypeShaderModule)), vkapi.Success
}

func (d *Driver) DestroyShaderModule(device vkapi.Device, module vkapi.ShaderModule) {
	d.call("DestroyShaderModule")
	d.destroy(vkapi.ObjectOf(module))
}

func (d *Driver) CreateComputePipelines(device vkapi.Device, infos []vkapi.ComputePipelineCreateInfo) ([]vkapi.Pipeline, vkapi.Result) {
	if r, ok := d.call("CreateComputePipelines"); ok {
		return nil, r
	}
	for _, info := range infos {
		if !d.check(vkapi.ObjectOf(info.Stage.Module), vkapi.ObjectOf(info.Layout), vkapi.ObjectOf(info.BasePipelineHandle)) {
			return nil, vkapi.ErrorValidationFailedEXT
		}
	}
	pipelines := make([]vkapi.Pipeline, len(infos))
	for i := range pipelines {
		pipelines[i] = vkapi.Pipeline(d.create(vkapi.ObjectTypePipeline))
	}
	return pipelines, vkapi.Success
}

func (d *Driver) DestroyPipeline(device vkapi.Device, pipeline vkapi.Pipeline) {
	d.call("DestroyPipeline")
	d.destroy(vkapi.ObjectOf(pipeline))
}

func (d *Driver) CreateSurface(instance vkapi.Instance, window vkapi.Window) (vkapi.SurfaceKHR, vkapi.Result) {
	if r, ok := d.call("CreateSurface"); ok {
		return 0, r
	}
	if !d.check(vkapi.ObjectOf(instance)) {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	if window != nil {
		if _, err := window.CreateSurface(nil); err != nil {
			return 0, vkapi.ErrorInitializationFailed
		}
	}
	return vkapi.SurfaceKHR(d.create(vkapi.ObjectTypeSurfaceKHR)), vkapi.Success
}

func (d *Driver) DestroySurfaceKHR(instance vkapi.Instance, surface vkapi.SurfaceKHR) {
	d.call("DestroySurfaceKHR")
	d.destroy(vkapi.ObjectOf(surface))
}

func (d *Driver) GetPhysicalDeviceSurfaceSupportKHR(pd vkapi.PhysicalDevice, family uint32, surface vkapi.SurfaceKHR) (bool, vkapi.Result) {
	if r, ok := d.call("GetPhysicalDeviceSurfaceSupportKHR"); ok {
		return false, r
	}
	if !d.check(vkapi.ObjectOf(pd), vkapi.ObjectOf(surface)) {
		return false, vkapi.ErrorValidationFailedEXT
	}
	p := d.physical[pd]
	return int(family) < len(p.QueueFamilies) && p.QueueFamilies[family].QueueFlags.Has(vkapi.QueueGraphicsBit), vkapi.Success
}

func (d *Driver) CreateSwapchainKHR(device vkapi.Device, info *vkapi.SwapchainCreateInfoKHR) (vkapi.SwapchainKHR, vkapi.Result) {
	if r, ok := d.call("CreateSwapchainKHR"); ok {
		return 0, r
	}
	if !d.check(vkapi.ObjectOf(device), vkapi.ObjectOf(info.Surface), vkapi.ObjectOf(info.OldSwapchain)) {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	sc := vkapi.SwapchainKHR(d.create(vkapi.ObjectTypeSwapchainKHR))
	images := make([]vkapi.Image, d.config.SwapchainImages)
	for i := range images {
		images[i] = vkapi.Image(d.create(vkapi.ObjectTypeImage))
	}
	d.swapchains[sc] = &swapchain{images: images}
	return sc, vkapi.Success
}

func (d *Driver) DestroySwapchainKHR(device vkapi.Device, sc vkapi.SwapchainKHR) {
	d.call("DestroySwapchainKHR")
	if d.destroy(vkapi.ObjectOf(sc)) {
		for _, image := range d.swapchains[sc].images {
			delete(d.live, vkapi.ObjectOf(image))
		}
		delete(d.swapchains, sc)
	}
}

func (d *Driver) GetSwapchainImagesKHR(device vkapi.Device, sc vkapi.SwapchainKHR) ([]vkapi.Image, vkapi.Result) {
	if r, ok := d.call("GetSwapchainImagesKHR"); ok {
		return nil, r
	}
	s := d.swapchains[sc]
	if s == nil {
		return nil, d.invalid(vkapi.ObjectOf(sc), "use of unknown swapchain")
	}
	return slices.Clone(s.images), vkapi.Success
}

func (d *Driver) AcquireNextImageKHR(device vkapi.Device, sc vkapi.SwapchainKHR, timeout uint64, semaphore vkapi.Semaphore, fence vkapi.Fence) (uint32, vkapi.Result) {
	if r, ok := d.call("AcquireNextImageKHR"); ok {
		return 0, r
	}
	s := d.swapchains[sc]
	if s == nil {
		return 0, d.invalid(vkapi.ObjectOf(sc), "use of unknown swapchain")
	}
	if !d.check(vkapi.ObjectOf(semaphore), vkapi.ObjectOf(fence)) {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	index := s.next
	s.next = (s.next + 1) % uint32(len(s.images))
	if fence != 0 {
		d.fences[fence] = true
	}
	return index, vkapi.Success
}

func (d *Driver) QueuePresentKHR(queue vkapi.Queue, info *vkapi.PresentInfoKHR) vkapi.Result {
	if r, ok := d.call("QueuePresentKHR"); ok {
		return r
	}
	if !d.check(vkapi.ObjectOf(queue)) || !d.check(objects(info.WaitSemaphores)...) {
		return vkapi.ErrorValidationFailedEXT
	}
	if len(info.ImageIndices) != len(info.Swapchains) {
		return d.invalid(vkapi.ObjectOf(queue), "%d image indices for %d swapchains", len(info.ImageIndices), len(info.Swapchains))
	}
	for i, sc := range info.Swapchains {
		s := d.swapchains[sc]
		if s == nil {
			return d.invalid(vkapi.ObjectOf(sc), "use of unknown swapchain")
		}
		if int(info.ImageIndices[i]) >= len(s.images) {
			return d.invalid(vkapi.ObjectOf(sc), "image index %d is out of range", info.ImageIndices[i])
		}
	}
	return vkapi.Success
}

func (d *Driver) CreateDebugReportCallbackEXT(instance vkapi.Instance, info *vkapi.DebugReportCallbackCreateInfoEXT, callback func(vkapi.DebugMessage)) (vkapi.DebugReportCallbackEXT, vkapi.Result) {
	if r, ok := d.call("CreateDebugReportCallbackEXT"); ok {
		return 0, r
	}
	if !d.check(vkapi.ObjectOf(instance)) {
		return 0, vkapi.ErrorValidationFailedEXT
	}
	id := vkapi.DebugReportCallbackEXT(d.create(vkapi.ObjectTypeDebugReportCallbackEXT))
	d.callbacks[id] = callback
	d.callbackIDs = append(d.callbackIDs, id)
	return id, vkapi.Success
}

func (d *Driver) DestroyDebugReportCallbackEXT(instance vkapi.Instance, callback vkapi.DebugReportCallbackEXT) {
	d.call("DestroyDebugReportCallbackEXT")
	if d.destroy(vkapi.ObjectOf(callback)) {
		delete(d.callbacks, callback)
		d.callbackIDs = slices.DeleteFunc(d.callbackIDs, func(id vkapi.DebugReportCallbackEXT) bool { return id == callback })
	}
}

var _ vkapi.API = (*Driver)(nil)
