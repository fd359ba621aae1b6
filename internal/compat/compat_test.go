package compat_test

import (
	"errors"
	"testing"

	"github.com/LunarG/VulkanTools-sub014/internal/assert"
	"github.com/LunarG/VulkanTools-sub014/internal/compat"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

const (
	graphics = vkapi.QueueGraphicsBit
	compute  = vkapi.QueueComputeBit
	transfer = vkapi.QueueTransferBit
	sparse   = vkapi.QueueSparseBindingBit

	deviceLocal  = vkapi.MemoryPropertyDeviceLocalBit
	hostVisible  = vkapi.MemoryPropertyHostVisibleBit
	hostCoherent = vkapi.MemoryPropertyHostCoherentBit
	hostCached   = vkapi.MemoryPropertyHostCachedBit
)

func families(flags ...vkapi.QueueFlags) []vkapi.QueueFamilyProperties {
	f := make([]vkapi.QueueFamilyProperties, len(flags))
	for i := range flags {
		f[i] = vkapi.QueueFamilyProperties{QueueFlags: flags[i], QueueCount: 1}
	}
	return f
}

func memory(flags ...vkapi.MemoryPropertyFlags) vkapi.PhysicalDeviceMemoryProperties {
	m := vkapi.PhysicalDeviceMemoryProperties{
		MemoryHeaps: []vkapi.MemoryHeap{{Size: 1 << 30}},
	}
	for _, f := range flags {
		m.MemoryTypes = append(m.MemoryTypes, vkapi.MemoryType{PropertyFlags: f})
	}
	return m
}

func TestQueueFamilyIndex(t *testing.T) {
	tests := []struct {
		scenario string
		trace    []vkapi.QueueFamilyProperties
		replay   []vkapi.QueueFamilyProperties
		index    uint32
		want     uint32
	}{
		{
			scenario: "exact match at the same index is preferred",
			trace:    families(graphics|compute, transfer),
			replay:   families(graphics|compute, transfer, graphics|compute),
			index:    0,
			want:     0,
		},
		{
			scenario: "identical flags at a later index",
			trace:    families(transfer, graphics|compute),
			replay:   families(graphics|compute|transfer, transfer, graphics|compute),
			index:    1,
			want:     2,
		},
		{
			scenario: "superset",
			trace:    families(compute, graphics),
			replay:   families(graphics, graphics|compute|transfer),
			index:    0,
			want:     1,
		},
		{
			scenario: "single replay family",
			trace:    families(graphics, compute, transfer),
			replay:   families(graphics | compute | transfer),
			index:    2,
			want:     0,
		},
		{
			scenario: "fallback to graphics compute transfer",
			trace:    families(sparse, graphics),
			replay:   families(transfer, graphics|compute|transfer, graphics),
			index:    0,
			want:     1,
		},
		{
			scenario: "fallback to graphics compute",
			trace:    families(sparse, graphics),
			replay:   families(transfer, graphics, graphics|compute),
			index:    0,
			want:     2,
		},
		{
			scenario: "fallback to graphics",
			trace:    families(sparse, graphics),
			replay:   families(transfer, graphics),
			index:    0,
			want:     1,
		},
		{
			scenario: "ignored family",
			trace:    families(graphics),
			replay:   families(graphics, compute),
			index:    vkapi.QueueFamilyIgnored,
			want:     vkapi.QueueFamilyIgnored,
		},
		{
			scenario: "external family",
			trace:    families(graphics),
			replay:   families(graphics, compute),
			index:    vkapi.QueueFamilyExternal,
			want:     vkapi.QueueFamilyExternal,
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			got, err := compat.QueueFamilyIndex(test.trace, test.replay, test.index)
			assert.OK(t, err)
			assert.Equal(t, got, test.want)
		})
	}
}

func TestNoCompatibleQueueFamily(t *testing.T) {
	_, err := compat.QueueFamilyIndex(families(sparse, compute), families(transfer, compute), 0)
	e := assert.ErrorAs[*compat.NoCompatibleQueueFamilyError](t, err)
	assert.Equal(t, e.Flags, sparse)

	_, err = compat.QueueFamilyIndex(families(graphics), families(transfer, compute), 5)
	assert.ErrorAs[*compat.NoCompatibleQueueFamilyError](t, err)
}

func TestMemoryTypeIndex(t *testing.T) {
	tests := []struct {
		scenario string
		trace    vkapi.PhysicalDeviceMemoryProperties
		replay   vkapi.PhysicalDeviceMemoryProperties
		index    uint32
		typeBits uint32
		want     uint32
	}{
		{
			scenario: "exact match at the same index",
			trace:    memory(deviceLocal, hostVisible|hostCoherent),
			replay:   memory(hostVisible|hostCoherent, hostVisible|hostCoherent),
			index:    1,
			typeBits: 0b11,
			want:     1,
		},
		{
			scenario: "exact match at another index",
			trace:    memory(deviceLocal, hostVisible|hostCoherent),
			replay:   memory(hostVisible|hostCoherent, deviceLocal),
			index:    0,
			typeBits: 0b11,
			want:     1,
		},
		{
			scenario: "exact match outside of the mask is skipped",
			trace:    memory(deviceLocal),
			replay:   memory(deviceLocal, deviceLocal|hostVisible),
			index:    0,
			typeBits: 0b10,
			want:     1,
		},
		{
			scenario: "superset",
			trace:    memory(hostVisible | hostCoherent),
			replay:   memory(deviceLocal, deviceLocal|hostVisible|hostCoherent|hostCached),
			index:    0,
			typeBits: 0b11,
			want:     1,
		},
		{
			scenario: "host visible and coherent fallback",
			trace:    memory(deviceLocal | hostCached),
			replay:   memory(deviceLocal, hostVisible|hostCoherent),
			index:    0,
			typeBits: 0b10,
			want:     1,
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			got, err := compat.MemoryTypeIndex(test.trace, test.replay, test.index, test.typeBits)
			assert.OK(t, err)
			assert.Equal(t, got, test.want)
			assert.True(t, test.typeBits&(1<<got) != 0)
		})
	}
}

func TestNoCompatibleMemoryType(t *testing.T) {
	_, err := compat.MemoryTypeIndex(memory(deviceLocal), memory(deviceLocal, hostVisible), 0, 0b10)
	e := assert.ErrorAs[*compat.NoCompatibleMemoryTypeError](t, err)
	assert.Equal(t, e.TypeBits, uint32(0b10))

	_, err = compat.MemoryTypeIndex(memory(deviceLocal), memory(deviceLocal), 3, 0b1)
	assert.ErrorAs[*compat.NoCompatibleMemoryTypeError](t, err)
}

func TestRegistryIdentity(t *testing.T) {
	props := vkapi.PhysicalDeviceProperties{VendorID: 0x10de, DeviceID: 0x1b80, DeviceName: "GPU"}
	same := &compat.Snapshot{
		Properties:    &props,
		Memory:        ptr(memory(deviceLocal, hostVisible|hostCoherent)),
		QueueFamilies: families(graphics|compute|transfer, transfer),
	}
	queries := 0
	query := func(vkapi.PhysicalDevice) (*compat.Snapshot, error) {
		queries++
		return same, nil
	}

	t.Run("compatibility disabled", func(t *testing.T) {
		r := compat.NewRegistry(false, query)
		r.RecordMemoryProperties(1, memory(hostVisible))
		tr, err := r.Translator(1)
		assert.OK(t, err)
		assert.True(t, tr.Identity())
		assert.Equal(t, queries, 0)
	})

	t.Run("missing trace snapshot", func(t *testing.T) {
		r := compat.NewRegistry(true, query)
		tr, err := r.Translator(1)
		assert.OK(t, err)
		assert.True(t, tr.Identity())
		assert.Equal(t, queries, 0)
	})

	t.Run("matching devices", func(t *testing.T) {
		r := compat.NewRegistry(true, query)
		r.RecordProperties(1, props)
		r.RecordMemoryProperties(1, *same.Memory)
		r.RecordQueueFamilies(1, same.QueueFamilies)
		r.AddDevice(10, 1)

		tr, err := r.DeviceTranslator(10)
		assert.OK(t, err)
		assert.True(t, tr.Identity())

		_, err = r.Translator(1)
		assert.OK(t, err)
		assert.Equal(t, queries, 1)
	})

	t.Run("different devices", func(t *testing.T) {
		r := compat.NewRegistry(true, query)
		r.RecordMemoryProperties(1, memory(hostCached, deviceLocal))
		r.RecordQueueFamilies(1, families(transfer, graphics|compute|transfer))
		r.AddDevice(10, 1)

		tr, err := r.DeviceTranslator(10)
		assert.OK(t, err)
		assert.False(t, tr.Identity())

		index, err := tr.MemoryTypeIndex(1, 0b11)
		assert.OK(t, err)
		assert.Equal(t, index, uint32(0))

		indices, err := tr.QueueFamilyIndices([]uint32{1, 0, vkapi.QueueFamilyIgnored})
		assert.OK(t, err)
		assert.EqualAll(t, indices, []uint32{0, 1, vkapi.QueueFamilyIgnored})

		r.RemoveDevice(10)
		tr, err = r.DeviceTranslator(10)
		assert.OK(t, err)
		assert.True(t, tr.Identity())
	})

	t.Run("missing trace memory properties", func(t *testing.T) {
		r := compat.NewRegistry(true, func(vkapi.PhysicalDevice) (*compat.Snapshot, error) {
			return &compat.Snapshot{
				Properties: &props,
				Memory:     ptr(memory(hostVisible|hostCoherent, deviceLocal)),
			}, nil
		})
		r.RecordProperties(1, vkapi.PhysicalDeviceProperties{VendorID: 1})

		tr, err := r.Translator(1)
		assert.OK(t, err)
		assert.False(t, tr.Identity())

		index, err := tr.MemoryTypeIndex(2, 0b1)
		assert.OK(t, err)
		assert.Equal(t, index, uint32(0))

		index, err = tr.MemoryTypeIndex(1, 0b11)
		assert.OK(t, err)
		assert.Equal(t, index, uint32(1))

		_, err = tr.MemoryTypeIndex(0, 0b10)
		assert.ErrorAs[*compat.NoCompatibleMemoryTypeError](t, err)
	})

	t.Run("query failure", func(t *testing.T) {
		errQuery := errors.New("lost")
		r := compat.NewRegistry(true, func(vkapi.PhysicalDevice) (*compat.Snapshot, error) {
			return nil, errQuery
		})
		r.RecordMemoryProperties(1, memory(hostVisible))
		_, err := r.Translator(1)
		assert.Error(t, err, errQuery)
	})
}

func TestRegistrySnapshotsAreStable(t *testing.T) {
	r := compat.NewRegistry(true, nil)
	r.RecordProperties(1, vkapi.PhysicalDeviceProperties{DeviceName: "first"})
	r.RecordProperties(1, vkapi.PhysicalDeviceProperties{DeviceName: "second"})
	assert.Equal(t, r.Trace(1).Properties.DeviceName, "first")

	r.RecordQueueFamilies(1, families(graphics))
	r.RecordQueueFamilies(1, families(graphics, compute, transfer))
	r.RecordQueueFamilies(1, families(graphics, compute))
	assert.Equal(t, len(r.Trace(1).QueueFamilies), 3)

	assert.True(t, r.Trace(2).Empty())
}

func ptr[T any](v T) *T { return &v }
