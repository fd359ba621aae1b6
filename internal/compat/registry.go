package compat

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

// Snapshot is the set of capabilities of a physical device. Nil fields were
// not observed.
type Snapshot struct {
	Properties    *vkapi.PhysicalDeviceProperties
	Memory        *vkapi.PhysicalDeviceMemoryProperties
	QueueFamilies []vkapi.QueueFamilyProperties
}

// Empty reports whether nothing is known about the device.
func (s *Snapshot) Empty() bool {
	return s.Properties == nil && s.Memory == nil && len(s.QueueFamilies) == 0
}

// Matches reports whether the device described by s is indistinguishable
// from the one described by other, considering only the capabilities that s
// observed.
func (s *Snapshot) Matches(other *Snapshot) bool {
	if s.Properties != nil {
		if other.Properties == nil || !sameDevice(s.Properties, other.Properties) {
			return false
		}
	}
	if s.Memory != nil {
		if other.Memory == nil ||
			!slices.Equal(s.Memory.MemoryTypes, other.Memory.MemoryTypes) ||
			!slices.Equal(s.Memory.MemoryHeaps, other.Memory.MemoryHeaps) {
			return false
		}
	}
	if len(s.QueueFamilies) != 0 {
		if len(s.QueueFamilies) != len(other.QueueFamilies) {
			return false
		}
		for i := range s.QueueFamilies {
			if s.QueueFamilies[i].QueueFlags != other.QueueFamilies[i].QueueFlags {
				return false
			}
		}
	}
	return true
}

func sameDevice(a, b *vkapi.PhysicalDeviceProperties) bool {
	return a.VendorID == b.VendorID &&
		a.DeviceID == b.DeviceID &&
		a.DriverVersion == b.DriverVersion &&
		a.APIVersion == b.APIVersion
}

// QueryFunc returns the capabilities of the replay physical device bound to
// a trace physical device.
type QueryFunc func(vkapi.PhysicalDevice) (*Snapshot, error)

// Registry holds the capability snapshots of the physical devices of a replay
// session, keyed by trace physical device handles, and the association of
// trace logical devices to their physical device.
type Registry struct {
	compatibility bool
	query         QueryFunc
	trace         map[vkapi.PhysicalDevice]*Snapshot
	replay        map[vkapi.PhysicalDevice]*Snapshot
	devices       map[vkapi.Device]vkapi.PhysicalDevice
}

// NewRegistry creates a registry. When compatibility is false, translators
// returned by the registry are always identities and query is never called.
func NewRegistry(compatibility bool, query QueryFunc) *Registry {
	return &Registry{
		compatibility: compatibility,
		query:         query,
		trace:         make(map[vkapi.PhysicalDevice]*Snapshot),
		replay:        make(map[vkapi.PhysicalDevice]*Snapshot),
		devices:       make(map[vkapi.Device]vkapi.PhysicalDevice),
	}
}

func (r *Registry) Compatibility() bool { return r.compatibility }

func (r *Registry) snapshot(pd vkapi.PhysicalDevice) *Snapshot {
	s := r.trace[pd]
	if s == nil {
		s = new(Snapshot)
		r.trace[pd] = s
	}
	return s
}

// RecordProperties records the properties of a trace physical device. Only
// the first observation is retained.
func (r *Registry) RecordProperties(pd vkapi.PhysicalDevice, props vkapi.PhysicalDeviceProperties) {
	if s := r.snapshot(pd); s.Properties == nil {
		s.Properties = &props
	}
}

// RecordMemoryProperties records the memory properties of a trace physical
// device. Only the first observation is retained.
func (r *Registry) RecordMemoryProperties(pd vkapi.PhysicalDevice, mem vkapi.PhysicalDeviceMemoryProperties) {
	if s := r.snapshot(pd); s.Memory == nil {
		s.Memory = &mem
	}
}

// RecordQueueFamilies records the queue families of a trace physical device.
// Applications may query a subset of the families; the longest list observed
// is retained.
func (r *Registry) RecordQueueFamilies(pd vkapi.PhysicalDevice, families []vkapi.QueueFamilyProperties) {
	if s := r.snapshot(pd); len(families) > len(s.QueueFamilies) {
		s.QueueFamilies = slices.Clone(families)
	}
}

// Trace returns the snapshot of a trace physical device.
func (r *Registry) Trace(pd vkapi.PhysicalDevice) *Snapshot {
	if s := r.trace[pd]; s != nil {
		return s
	}
	return new(Snapshot)
}

// AddDevice associates a trace logical device with its physical device.
func (r *Registry) AddDevice(device vkapi.Device, pd vkapi.PhysicalDevice) {
	r.devices[device] = pd
}

func (r *Registry) RemoveDevice(device vkapi.Device) {
	delete(r.devices, device)
}

// PhysicalDevice returns the trace physical device that a trace logical device
// was created from.
func (r *Registry) PhysicalDevice(device vkapi.Device) (vkapi.PhysicalDevice, bool) {
	pd, ok := r.devices[device]
	return pd, ok
}

// Translator returns the translator of values recorded on a trace physical
// device.
func (r *Registry) Translator(pd vkapi.PhysicalDevice) (*Translator, error) {
	if !r.compatibility {
		return identity, nil
	}
	trace := r.trace[pd]
	if trace == nil || trace.Empty() {
		return identity, nil
	}
	replay := r.replay[pd]
	if replay == nil {
		s, err := r.query(pd)
		if err != nil {
			return nil, fmt.Errorf("querying replay capabilities of %s: %w", vkapi.ObjectOf(pd), err)
		}
		replay = s
		r.replay[pd] = replay
	}
	return &Translator{
		identity: trace.Matches(replay),
		trace:    trace,
		replay:   replay,
	}, nil
}

// DeviceTranslator returns the translator of values recorded on a trace
// logical device. Devices which were never registered get an identity
// translator.
func (r *Registry) DeviceTranslator(device vkapi.Device) (*Translator, error) {
	pd, ok := r.devices[device]
	if !ok {
		return identity, nil
	}
	return r.Translator(pd)
}

var identity = &Translator{identity: true}

// Translator translates the hardware specific values recorded on a trace
// physical device to values valid on the replay physical device.
type Translator struct {
	identity bool
	trace    *Snapshot
	replay   *Snapshot
}

// Identity reports whether values pass through the translator unchanged.
func (t *Translator) Identity() bool { return t.identity }

// QueueFamilyIndex translates a queue family index.
func (t *Translator) QueueFamilyIndex(index uint32) (uint32, error) {
	if t.identity || len(t.trace.QueueFamilies) == 0 {
		return index, nil
	}
	return QueueFamilyIndex(t.trace.QueueFamilies, t.replay.QueueFamilies, index)
}

// QueueFamilyIndices translates a list of queue family indices. The input is
// not modified.
func (t *Translator) QueueFamilyIndices(indices []uint32) ([]uint32, error) {
	if t.identity || indices == nil {
		return indices, nil
	}
	translated := make([]uint32, len(indices))
	for i, index := range indices {
		var err error
		if translated[i], err = t.QueueFamilyIndex(index); err != nil {
			return nil, err
		}
	}
	return translated, nil
}

// MemoryTypeIndex translates a memory type index, choosing among the replay
// memory types allowed by typeBits.
//
// Without the trace memory properties the index is kept when typeBits allows
// it, otherwise any allowed host visible and host coherent type is chosen.
func (t *Translator) MemoryTypeIndex(index, typeBits uint32) (uint32, error) {
	if t.identity {
		return index, nil
	}
	if t.trace.Memory != nil && t.replay.Memory != nil {
		return MemoryTypeIndex(*t.trace.Memory, *t.replay.Memory, index, typeBits)
	}
	if index < 32 && typeBits&(1<<index) != 0 {
		return index, nil
	}
	if t.replay.Memory != nil {
		for i, mt := range t.replay.Memory.MemoryTypes {
			if i < 32 && typeBits&(1<<i) != 0 &&
				mt.PropertyFlags.Has(vkapi.MemoryPropertyHostVisibleBit|vkapi.MemoryPropertyHostCoherentBit) {
				return uint32(i), nil
			}
		}
	}
	return 0, &NoCompatibleMemoryTypeError{Index: index, TypeBits: typeBits}
}
