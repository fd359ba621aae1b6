package vkdriver

import (
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

func memoryRequirements(req vk.MemoryRequirements) vkapi.MemoryRequirements {
	req.Deref()
	return vkapi.MemoryRequirements{
		Size:           uint64(req.Size),
		Alignment:      uint64(req.Alignment),
		MemoryTypeBits: req.MemoryTypeBits,
	}
}

func (d *Driver) CreateBuffer(device vkapi.Device, info *vkapi.BufferCreateInfo) (vkapi.Buffer, vkapi.Result) {
	d.dropChain("vkCreateBuffer", info.Next)
	createInfo := vk.BufferCreateInfo{
		SType:                 vk.StructureTypeBufferCreateInfo,
		Flags:                 vk.BufferCreateFlags(info.Flags),
		Size:                  vk.DeviceSize(info.Size),
		Usage:                 vk.BufferUsageFlags(info.Usage),
		SharingMode:           vk.SharingMode(info.SharingMode),
		QueueFamilyIndexCount: uint32(len(info.QueueFamilyIndices)),
		PQueueFamilyIndices:   info.QueueFamilyIndices,
	}
	var buffer vk.Buffer
	if r := vk.CreateBuffer(vk.Device(ptr(device)), &createInfo, nil, &buffer); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	return vkapi.Buffer(addr(unsafe.Pointer(buffer))), vkapi.Success
}

func (d *Driver) DestroyBuffer(device vkapi.Device, buffer vkapi.Buffer) {
	vk.DestroyBuffer(vk.Device(ptr(device)), vk.Buffer(ptr(buffer)), nil)
}

func (d *Driver) GetBufferMemoryRequirements(device vkapi.Device, buffer vkapi.Buffer) vkapi.MemoryRequirements {
	var req vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(vk.Device(ptr(device)), vk.Buffer(ptr(buffer)), &req)
	return memoryRequirements(req)
}

func (d *Driver) BindBufferMemory(device vkapi.Device, buffer vkapi.Buffer, memory vkapi.DeviceMemory, offset uint64) vkapi.Result {
	return vkapi.Result(vk.BindBufferMemory(vk.Device(ptr(device)), vk.Buffer(ptr(buffer)), vk.DeviceMemory(ptr(memory)), vk.DeviceSize(offset)))
}

// BindBufferMemory2 binds each buffer in turn with vkBindBufferMemory, which
// has the same effect for infos without chains.
func (d *Driver) BindBufferMemory2(device vkapi.Device, infos []vkapi.BindBufferMemoryInfo) vkapi.Result {
	for _, info := range infos {
		d.dropChain("vkBindBufferMemory2", info.Next)
		if r := d.BindBufferMemory(device, info.Buffer, info.Memory, info.MemoryOffset); r != vkapi.Success {
			return r
		}
	}
	return vkapi.Success
}

func (d *Driver) CreateImage(device vkapi.Device, info *vkapi.ImageCreateInfo) (vkapi.Image, vkapi.Result) {
	d.dropChain("vkCreateImage", info.Next)
	createInfo := vk.ImageCreateInfo{
		SType:                 vk.StructureTypeImageCreateInfo,
		Flags:                 vk.ImageCreateFlags(info.Flags),
		ImageType:             vk.ImageType(info.ImageType),
		Format:                vk.Format(info.Format),
		Extent:                extent3D(info.Extent),
		MipLevels:             info.MipLevels,
		ArrayLayers:           info.ArrayLayers,
		Samples:               vk.SampleCountFlagBits(info.Samples),
		Tiling:                vk.ImageTiling(info.Tiling),
		Usage:                 vk.ImageUsageFlags(info.Usage),
		SharingMode:           vk.SharingMode(info.SharingMode),
		QueueFamilyIndexCount: uint32(len(info.QueueFamilyIndices)),
		PQueueFamilyIndices:   info.QueueFamilyIndices,
		InitialLayout:         vk.ImageLayout(info.InitialLayout),
	}
	var image vk.Image
	if r := vk.CreateImage(vk.Device(ptr(device)), &createInfo, nil, &image); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	return vkapi.Image(addr(unsafe.Pointer(image))), vkapi.Success
}

func (d *Driver) DestroyImage(device vkapi.Device, image vkapi.Image) {
	vk.DestroyImage(vk.Device(ptr(device)), vk.Image(ptr(image)), nil)
}

func (d *Driver) GetImageMemoryRequirements(device vkapi.Device, image vkapi.Image) vkapi.MemoryRequirements {
	var req vk.MemoryRequirements
	vk.GetImageMemoryRequirements(vk.Device(ptr(device)), vk.Image(ptr(image)), &req)
	return memoryRequirements(req)
}

func (d *Driver) BindImageMemory(device vkapi.Device, image vkapi.Image, memory vkapi.DeviceMemory, offset uint64) vkapi.Result {
	return vkapi.Result(vk.BindImageMemory(vk.Device(ptr(device)), vk.Image(ptr(image)), vk.DeviceMemory(ptr(memory)), vk.DeviceSize(offset)))
}

// BindImageMemory2 binds each image in turn with vkBindImageMemory.
func (d *Driver) BindImageMemory2(device vkapi.Device, infos []vkapi.BindImageMemoryInfo) vkapi.Result {
	for _, info := range infos {
		d.dropChain("vkBindImageMemory2", info.Next)
		if r := d.BindImageMemory(device, info.Image, info.Memory, info.MemoryOffset); r != vkapi.Success {
			return r
		}
	}
	return vkapi.Success
}

func (d *Driver) CreateImageView(device vkapi.Device, info *vkapi.ImageViewCreateInfo) (vkapi.ImageView, vkapi.Result) {
	d.dropChain("vkCreateImageView", info.Next)
	createInfo := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Flags:    vk.ImageViewCreateFlags(info.Flags),
		Image:    vk.Image(ptr(info.Image)),
		ViewType: vk.ImageViewType(info.ViewType),
		Format:   vk.Format(info.Format),
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzle(info.Components.R),
			G: vk.ComponentSwizzle(info.Components.G),
			B: vk.ComponentSwizzle(info.Components.B),
			A: vk.ComponentSwizzle(info.Components.A),
		},
		SubresourceRange: subresourceRange(info.SubresourceRange),
	}
	var view vk.ImageView
	if r := vk.CreateImageView(vk.Device(ptr(device)), &createInfo, nil, &view); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	return vkapi.ImageView(addr(unsafe.Pointer(view))), vkapi.Success
}

func (d *Driver) DestroyImageView(device vkapi.Device, view vkapi.ImageView) {
	vk.DestroyImageView(vk.Device(ptr(device)), vk.ImageView(ptr(view)), nil)
}

func (d *Driver) CreateFence(device vkapi.Device, info *vkapi.FenceCreateInfo) (vkapi.Fence, vkapi.Result) {
	d.dropChain("vkCreateFence", info.Next)
	createInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(info.Flags),
	}
	var fence vk.Fence
	if r := vk.CreateFence(vk.Device(ptr(device)), &createInfo, nil, &fence); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	return vkapi.Fence(addr(unsafe.Pointer(fence))), vkapi.Success
}

func (d *Driver) DestroyFence(device vkapi.Device, fence vkapi.Fence) {
	vk.DestroyFence(vk.Device(ptr(device)), nativeFence(fence), nil)
}

func (d *Driver) ResetFences(device vkapi.Device, fences []vkapi.Fence) vkapi.Result {
	return vkapi.Result(vk.ResetFences(vk.Device(ptr(device)), uint32(len(fences)), convertAll(fences, nativeFence)))
}

func (d *Driver) WaitForFences(device vkapi.Device, fences []vkapi.Fence, waitAll bool, timeout uint64) vkapi.Result {
	return vkapi.Result(vk.WaitForFences(vk.Device(ptr(device)), uint32(len(fences)), convertAll(fences, nativeFence), bool32(waitAll), timeout))
}

func (d *Driver) GetFenceStatus(device vkapi.Device, fence vkapi.Fence) vkapi.Result {
	return vkapi.Result(vk.GetFenceStatus(vk.Device(ptr(device)), nativeFence(fence)))
}

func (d *Driver) CreateSemaphore(device vkapi.Device, info *vkapi.SemaphoreCreateInfo) (vkapi.Semaphore, vkapi.Result) {
	d.dropChain("vkCreateSemaphore", info.Next)
	createInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
		Flags: vk.SemaphoreCreateFlags(info.Flags),
	}
	var semaphore vk.Semaphore
	if r := vk.CreateSemaphore(vk.Device(ptr(device)), &createInfo, nil, &semaphore); r != vk.Success {
		return 0, vkapi.Result(r)
	}
	return vkapi.Semaphore(addr(unsafe.Pointer(semaphore))), vkapi.Success
}

func (d *Driver) DestroySemaphore(device vkapi.Device, semaphore vkapi.Semaphore) {
	vk.DestroySemaphore(vk.Device(ptr(device)), nativeSemaphore(semaphore), nil)
}
