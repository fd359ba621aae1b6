package vkapi

// StructureType is a VkStructureType value identifying an extension
// structure in a pNext chain.
type StructureType uint32

const (
	StructureTypeMemoryAllocateFlagsInfo     StructureType = 1000060000
	StructureTypeMemoryDedicatedAllocateInfo StructureType = 1000127001
)

// Extension is a structure that can be linked in a pNext chain.
type Extension interface {
	StructureType() StructureType
}

// Chain is a pNext chain, in link order.
type Chain []Extension

// Find returns the first extension of type T in the chain.
func Find[T Extension](chain Chain) (T, bool) {
	for _, ext := range chain {
		if v, ok := ext.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// MemoryDedicatedAllocateInfo is VkMemoryDedicatedAllocateInfo. At most one of
// Image and Buffer is non-null.
type MemoryDedicatedAllocateInfo struct {
	Image  Image
	Buffer Buffer
}

func (*MemoryDedicatedAllocateInfo) StructureType() StructureType {
	return StructureTypeMemoryDedicatedAllocateInfo
}

// MemoryAllocateFlagsInfo is VkMemoryAllocateFlagsInfo.
type MemoryAllocateFlagsInfo struct {
	Flags      uint32
	DeviceMask uint32
}

func (*MemoryAllocateFlagsInfo) StructureType() StructureType {
	return StructureTypeMemoryAllocateFlagsInfo
}

// RawExtension carries an extension structure that the engine does not
// interpret. Its body must not contain pointers or handles.
type RawExtension struct {
	Type StructureType
	Data []byte
}

func (r *RawExtension) StructureType() StructureType { return r.Type }
