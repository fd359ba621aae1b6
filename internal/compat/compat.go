// Package compat translates the hardware specific values recorded in a trace
// (queue family indices and memory type indices) to values valid on the
// replay device, when it differs from the device the trace was captured on.
package compat

import (
	"fmt"

	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

// QueueFamilyIndex returns the index of the replay queue family best matching
// the trace queue family at traceIndex.
//
// The families are considered in this order: the only family of a device
// exposing a single one, a family with identical flags (traceIndex itself
// first), a family with a superset of the flags, then the first family
// supporting graphics, compute and transfer, graphics and compute, or
// graphics only.
//
// QueueFamilyIgnored and QueueFamilyExternal are returned unchanged.
func QueueFamilyIndex(trace, replay []vkapi.QueueFamilyProperties, traceIndex uint32) (uint32, error) {
	if traceIndex == vkapi.QueueFamilyIgnored || traceIndex == vkapi.QueueFamilyExternal {
		return traceIndex, nil
	}
	if len(replay) == 1 {
		return 0, nil
	}
	if int(traceIndex) >= len(trace) {
		return 0, &NoCompatibleQueueFamilyError{Index: traceIndex}
	}
	want := trace[traceIndex].QueueFlags

	if int(traceIndex) < len(replay) && replay[traceIndex].QueueFlags == want {
		return traceIndex, nil
	}
	if i, ok := firstQueueFamily(replay, func(f vkapi.QueueFlags) bool { return f == want }); ok {
		return i, nil
	}
	if i, ok := firstQueueFamily(replay, func(f vkapi.QueueFlags) bool { return f.Has(want) }); ok {
		return i, nil
	}
	for _, fallback := range []vkapi.QueueFlags{
		vkapi.QueueGraphicsBit | vkapi.QueueComputeBit | vkapi.QueueTransferBit,
		vkapi.QueueGraphicsBit | vkapi.QueueComputeBit,
		vkapi.QueueGraphicsBit,
	} {
		if i, ok := firstQueueFamily(replay, func(f vkapi.QueueFlags) bool { return f.Has(fallback) }); ok {
			return i, nil
		}
	}
	return 0, &NoCompatibleQueueFamilyError{Index: traceIndex, Flags: want}
}

func firstQueueFamily(families []vkapi.QueueFamilyProperties, match func(vkapi.QueueFlags) bool) (uint32, bool) {
	for i, f := range families {
		if match(f.QueueFlags) {
			return uint32(i), true
		}
	}
	return 0, false
}

// MemoryTypeIndex returns the index of the replay memory type best matching
// the trace memory type at traceIndex, among the types allowed by typeBits.
//
// The types are considered in this order: a type with identical property
// flags (traceIndex itself first), a type with a superset of the flags, then
// any host visible and host coherent type.
func MemoryTypeIndex(trace, replay vkapi.PhysicalDeviceMemoryProperties, traceIndex, typeBits uint32) (uint32, error) {
	if int(traceIndex) >= len(trace.MemoryTypes) {
		return 0, &NoCompatibleMemoryTypeError{Index: traceIndex, TypeBits: typeBits}
	}
	want := trace.MemoryTypes[traceIndex].PropertyFlags

	allowed := func(i int) bool { return i < 32 && typeBits&(1<<i) != 0 }

	if int(traceIndex) < len(replay.MemoryTypes) && allowed(int(traceIndex)) &&
		replay.MemoryTypes[traceIndex].PropertyFlags == want {
		return traceIndex, nil
	}
	for _, match := range []func(vkapi.MemoryPropertyFlags) bool{
		func(f vkapi.MemoryPropertyFlags) bool { return f == want },
		func(f vkapi.MemoryPropertyFlags) bool { return f.Has(want) },
		func(f vkapi.MemoryPropertyFlags) bool {
			return f.Has(vkapi.MemoryPropertyHostVisibleBit | vkapi.MemoryPropertyHostCoherentBit)
		},
	} {
		for i, t := range replay.MemoryTypes {
			if allowed(i) && match(t.PropertyFlags) {
				return uint32(i), nil
			}
		}
	}
	return 0, &NoCompatibleMemoryTypeError{Index: traceIndex, Flags: want, TypeBits: typeBits}
}

// NoCompatibleQueueFamilyError is returned when no replay queue family can
// serve the trace queue family.
type NoCompatibleQueueFamilyError struct {
	Index uint32
	Flags vkapi.QueueFlags
}

func (e *NoCompatibleQueueFamilyError) Error() string {
	return fmt.Sprintf("no replay queue family compatible with trace queue family %d (%s)", e.Index, e.Flags)
}

// NoCompatibleMemoryTypeError is returned when no replay memory type can
// serve the trace memory type.
type NoCompatibleMemoryTypeError struct {
	Index    uint32
	Flags    vkapi.MemoryPropertyFlags
	TypeBits uint32
}

func (e *NoCompatibleMemoryTypeError) Error() string {
	return fmt.Sprintf("no replay memory type in %#b compatible with trace memory type %d (%s)", e.TypeBits, e.Index, e.Flags)
}
