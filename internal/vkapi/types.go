package vkapi

import "strings"

// QueueFlags is a VkQueueFlags bit set.
type QueueFlags uint32

const (
	QueueGraphicsBit      QueueFlags = 0x1
	QueueComputeBit       QueueFlags = 0x2
	QueueTransferBit      QueueFlags = 0x4
	QueueSparseBindingBit QueueFlags = 0x8
)

// Has reports whether all bits of mask are set in f.
func (f QueueFlags) Has(mask QueueFlags) bool { return f&mask == mask }

func (f QueueFlags) String() string {
	return flagString(uint32(f), []string{"graphics", "compute", "transfer", "sparse"})
}

// MemoryPropertyFlags is a VkMemoryPropertyFlags bit set.
type MemoryPropertyFlags uint32

const (
	MemoryPropertyDeviceLocalBit     MemoryPropertyFlags = 0x1
	MemoryPropertyHostVisibleBit     MemoryPropertyFlags = 0x2
	MemoryPropertyHostCoherentBit    MemoryPropertyFlags = 0x4
	MemoryPropertyHostCachedBit      MemoryPropertyFlags = 0x8
	MemoryPropertyLazilyAllocatedBit MemoryPropertyFlags = 0x10
)

// Has reports whether all bits of mask are set in f.
func (f MemoryPropertyFlags) Has(mask MemoryPropertyFlags) bool { return f&mask == mask }

func (f MemoryPropertyFlags) String() string {
	return flagString(uint32(f), []string{"device-local", "host-visible", "host-coherent", "host-cached", "lazy"})
}

// DebugReportFlags is a VkDebugReportFlagsEXT bit set.
type DebugReportFlags uint32

const (
	DebugReportInformationBit        DebugReportFlags = 0x1
	DebugReportWarningBit            DebugReportFlags = 0x2
	DebugReportPerformanceWarningBit DebugReportFlags = 0x4
	DebugReportErrorBit              DebugReportFlags = 0x8
	DebugReportDebugBit              DebugReportFlags = 0x10
)

func flagString(bits uint32, names []string) string {
	if bits == 0 {
		return "none"
	}
	var parts []string
	for i, name := range names {
		if bits&(1<<i) != 0 {
			parts = append(parts, name)
			bits &^= 1 << i
		}
	}
	if bits != 0 {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "|")
}

const (
	// QueueFamilyIgnored is VK_QUEUE_FAMILY_IGNORED.
	QueueFamilyIgnored uint32 = ^uint32(0)
	// QueueFamilyExternal is VK_QUEUE_FAMILY_EXTERNAL.
	QueueFamilyExternal uint32 = ^uint32(1)
	// WholeSize is VK_WHOLE_SIZE.
	WholeSize uint64 = ^uint64(0)
	// SharingModeConcurrent is VK_SHARING_MODE_CONCURRENT.
	SharingModeConcurrent uint32 = 1
)

type Extent2D struct {
	Width, Height uint32
}

type Extent3D struct {
	Width, Height, Depth uint32
}

type PhysicalDeviceProperties struct {
	APIVersion    uint32
	DriverVersion uint32
	VendorID      uint32
	DeviceID      uint32
	DeviceType    uint32
	DeviceName    string
}

type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

type MemoryHeap struct {
	Size  uint64
	Flags uint32
}

type PhysicalDeviceMemoryProperties struct {
	MemoryTypes []MemoryType
	MemoryHeaps []MemoryHeap
}

type QueueFamilyProperties struct {
	QueueFlags                  QueueFlags
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

type MemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
}

type ApplicationInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	APIVersion         uint32
}

type InstanceCreateInfo struct {
	Next              Chain
	Flags             uint32
	ApplicationInfo   *ApplicationInfo
	EnabledLayers     []string
	EnabledExtensions []string
}

type DeviceQueueCreateInfo struct {
	Next             Chain
	Flags            uint32
	QueueFamilyIndex uint32
	QueuePriorities  []float32
}

type DeviceCreateInfo struct {
	Next              Chain
	Flags             uint32
	QueueCreateInfos  []DeviceQueueCreateInfo
	EnabledLayers     []string
	EnabledExtensions []string
}

type MemoryAllocateInfo struct {
	Next            Chain
	AllocationSize  uint64
	MemoryTypeIndex uint32
}

type BufferCreateInfo struct {
	Next               Chain
	Flags              uint32
	Size               uint64
	Usage              uint32
	SharingMode        uint32
	QueueFamilyIndices []uint32
}

type ImageCreateInfo struct {
	Next               Chain
	Flags              uint32
	ImageType          uint32
	Format             uint32
	Extent             Extent3D
	MipLevels          uint32
	ArrayLayers        uint32
	Samples            uint32
	Tiling             uint32
	Usage              uint32
	SharingMode        uint32
	QueueFamilyIndices []uint32
	InitialLayout      uint32
}

type BindBufferMemoryInfo struct {
	Next         Chain
	Buffer       Buffer
	Memory       DeviceMemory
	MemoryOffset uint64
}

type BindImageMemoryInfo struct {
	Next         Chain
	Image        Image
	Memory       DeviceMemory
	MemoryOffset uint64
}

type ImageSubresourceRange struct {
	AspectMask     uint32
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

type ComponentMapping struct {
	R, G, B, A uint32
}

type ImageViewCreateInfo struct {
	Next             Chain
	Flags            uint32
	Image            Image
	ViewType         uint32
	Format           uint32
	Components       ComponentMapping
	SubresourceRange ImageSubresourceRange
}

type FenceCreateInfo struct {
	Next  Chain
	Flags uint32
}

type SemaphoreCreateInfo struct {
	Next  Chain
	Flags uint32
}

type CommandPoolCreateInfo struct {
	Next             Chain
	Flags            uint32
	QueueFamilyIndex uint32
}

type CommandBufferAllocateInfo struct {
	Next               Chain
	CommandPool        CommandPool
	Level              uint32
	CommandBufferCount uint32
}

type CommandBufferBeginInfo struct {
	Next  Chain
	Flags uint32
}

type BufferCopy struct {
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

type MemoryBarrier struct {
	Next          Chain
	SrcAccessMask uint32
	DstAccessMask uint32
}

type BufferMemoryBarrier struct {
	Next                Chain
	SrcAccessMask       uint32
	DstAccessMask       uint32
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              Buffer
	Offset              uint64
	Size                uint64
}

type ImageMemoryBarrier struct {
	Next                Chain
	SrcAccessMask       uint32
	DstAccessMask       uint32
	OldLayout           uint32
	NewLayout           uint32
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               Image
	SubresourceRange    ImageSubresourceRange
}

type DescriptorSetLayoutBinding struct {
	Binding         uint32
	DescriptorType  uint32
	DescriptorCount uint32
	StageFlags      uint32
}

type DescriptorSetLayoutCreateInfo struct {
	Next     Chain
	Flags    uint32
	Bindings []DescriptorSetLayoutBinding
}

type DescriptorPoolSize struct {
	Type            uint32
	DescriptorCount uint32
}

type DescriptorPoolCreateInfo struct {
	Next      Chain
	Flags     uint32
	MaxSets   uint32
	PoolSizes []DescriptorPoolSize
}

type DescriptorSetAllocateInfo struct {
	Next           Chain
	DescriptorPool DescriptorPool
	SetLayouts     []DescriptorSetLayout
}

type DescriptorImageInfo struct {
	ImageView   ImageView
	ImageLayout uint32
}

type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset uint64
	Range  uint64
}

type WriteDescriptorSet struct {
	Next            Chain
	DstSet          DescriptorSet
	DstBinding      uint32
	DstArrayElement uint32
	DescriptorType  uint32
	ImageInfo       []DescriptorImageInfo
	BufferInfo      []DescriptorBufferInfo
}

type CopyDescriptorSet struct {
	Next            Chain
	SrcSet          DescriptorSet
	SrcBinding      uint32
	SrcArrayElement uint32
	DstSet          DescriptorSet
	DstBinding      uint32
	DstArrayElement uint32
	DescriptorCount uint32
}

type PushConstantRange struct {
	StageFlags uint32
	Offset     uint32
	Size       uint32
}

type PipelineLayoutCreateInfo struct {
	Next               Chain
	Flags              uint32
	SetLayouts         []DescriptorSetLayout
	PushConstantRanges []PushConstantRange
}

type ShaderModuleCreateInfo struct {
	Next  Chain
	Flags uint32
	Code  []uint32
}

type PipelineShaderStageCreateInfo struct {
	Next   Chain
	Flags  uint32
	Stage  uint32
	Module ShaderModule
	Name   string
}

type ComputePipelineCreateInfo struct {
	Next               Chain
	Flags              uint32
	Stage              PipelineShaderStageCreateInfo
	Layout             PipelineLayout
	BasePipelineHandle Pipeline
	BasePipelineIndex  int32
}

type SubmitInfo struct {
	Next             Chain
	WaitSemaphores   []Semaphore
	WaitDstStageMask []uint32
	CommandBuffers   []CommandBuffer
	SignalSemaphores []Semaphore
}

type SwapchainCreateInfoKHR struct {
	Next               Chain
	Flags              uint32
	Surface            SurfaceKHR
	MinImageCount      uint32
	ImageFormat        uint32
	ImageColorSpace    uint32
	ImageExtent        Extent2D
	ImageArrayLayers   uint32
	ImageUsage         uint32
	ImageSharingMode   uint32
	QueueFamilyIndices []uint32
	PreTransform       uint32
	CompositeAlpha     uint32
	PresentMode        uint32
	Clipped            bool
	OldSwapchain       SwapchainKHR
}

type PresentInfoKHR struct {
	Next           Chain
	WaitSemaphores []Semaphore
	Swapchains     []SwapchainKHR
	ImageIndices   []uint32
}

type DebugReportCallbackCreateInfoEXT struct {
	Next  Chain
	Flags DebugReportFlags
}

// DebugMessage is a message delivered by the debug report callback of the
// live implementation.
type DebugMessage struct {
	Flags       DebugReportFlags
	ObjectType  ObjectType
	Object      uint64
	Location    uint64
	MessageCode int32
	LayerPrefix string
	Message     string
}
