package replay

import (
	"io"

	"golang.org/x/exp/slices"

	"github.com/LunarG/VulkanTools-sub014/internal/compat"
	"github.com/LunarG/VulkanTools-sub014/internal/remap"
	"github.com/LunarG/VulkanTools-sub014/internal/tracefile"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
)

// allocationPlan is the outcome of looking ahead in the trace for the use of
// a memory allocation.
type allocationPlan struct {
	// The memory object is freed before being bound, the allocation can be
	// replayed verbatim.
	freed bool
	// The first bind of the memory object was found, size and typeIndex are
	// the allocation parameters fitting the replay device.
	found     bool
	size      uint64
	typeIndex uint32
}

// scanner iterates over the packets following a position of the trace. When
// the trace has a portability table, only the packets listed in the table are
// visited.
type scanner struct {
	reader *tracefile.Reader
	table  []int64
	next   int
}

func newScanner(reader *tracefile.Reader, table []int64, after int64) (*scanner, error) {
	sc := &scanner{reader: reader, table: table}
	if len(table) > 0 {
		sc.next, _ = slices.BinarySearch(table, after)
		return sc, nil
	}
	if err := reader.Seek(after); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *scanner) Next() (*tracefile.Packet, error) {
	if len(sc.table) == 0 {
		return sc.reader.Next()
	}
	if sc.next == len(sc.table) {
		return nil, io.EOF
	}
	offset := sc.table[sc.next]
	sc.next++
	return sc.reader.ReadAt(offset)
}

// planAllocation looks ahead in the trace for the first bind of the memory
// object allocated by call, and computes the allocation size and memory type
// fitting the resource bound to it on the replay device.
//
// The replay position is not changed. Resources created between the
// allocation and the bind are created early on the replay device to query
// their memory requirements, then destroyed.
func (s *Session) planAllocation(call *vkcall.AllocateMemoryCall, tr *compat.Translator) (allocationPlan, error) {
	sc, err := newScanner(s.lookahead, s.store.Header().PortabilityTable, s.packet.End())
	if err != nil {
		return allocationPlan{}, err
	}
	creates := make(map[vkapi.Object]vkcall.Call)

	for {
		p, err := sc.Next()
		if err != nil {
			if err == io.EOF {
				return allocationPlan{}, nil
			}
			return allocationPlan{}, err
		}
		if !vkcall.Portable(vkcall.CallID(p.ID)) {
			continue
		}
		next, err := vkcall.Decode(p, s.order)
		if err != nil {
			return allocationPlan{}, err
		}

		switch c := next.(type) {
		case *vkcall.FreeMemoryCall:
			if c.Memory == call.Memory {
				return allocationPlan{freed: true}, nil
			}
		case *vkcall.CreateBufferCall:
			creates[vkapi.ObjectOf(c.Buffer)] = c
		case *vkcall.CreateImageCall:
			creates[vkapi.ObjectOf(c.Image)] = c
		case *vkcall.BindBufferMemoryCall:
			if c.Memory == call.Memory {
				return s.planBind(call, tr, vkapi.ObjectOf(c.Buffer), c.MemoryOffset, creates)
			}
		case *vkcall.BindImageMemoryCall:
			if c.Memory == call.Memory {
				return s.planBind(call, tr, vkapi.ObjectOf(c.Image), c.MemoryOffset, creates)
			}
		case *vkcall.BindBufferMemory2Call:
			for _, info := range c.BindInfos {
				if info.Memory == call.Memory {
					return s.planBind(call, tr, vkapi.ObjectOf(info.Buffer), info.MemoryOffset, creates)
				}
			}
		case *vkcall.BindImageMemory2Call:
			for _, info := range c.BindInfos {
				if info.Memory == call.Memory {
					return s.planBind(call, tr, vkapi.ObjectOf(info.Image), info.MemoryOffset, creates)
				}
			}
		}
	}
}

func (s *Session) planBind(call *vkcall.AllocateMemoryCall, tr *compat.Translator, resource vkapi.Object, offset uint64, creates map[vkapi.Object]vkcall.Call) (allocationPlan, error) {
	reqs, ok, err := s.scanRequirements(call.Device, resource, creates)
	if err != nil || !ok {
		return allocationPlan{}, err
	}
	typeIndex, err := tr.MemoryTypeIndex(call.AllocateInfo.MemoryTypeIndex, reqs.MemoryTypeBits)
	if err != nil {
		return allocationPlan{}, err
	}
	return allocationPlan{
		found:     true,
		size:      allocationSize(call.AllocateInfo.AllocationSize, offset, reqs),
		typeIndex: typeIndex,
	}, nil
}

// scanRequirements returns the replay memory requirements of a resource. The
// requirements of resources which do not exist yet are obtained by replaying
// the nearest create call preceding the bind, and destroying the resource
// right after.
func (s *Session) scanRequirements(device vkapi.Device, resource vkapi.Object, creates map[vkapi.Object]vkcall.Call) (vkapi.MemoryRequirements, bool, error) {
	var reqs vkapi.MemoryRequirements
	live, err := remap.Lookup(s.table, device)
	if err != nil {
		return reqs, false, err
	}
	if h, err := s.table.Lookup(resource); err == nil {
		return s.requirements(live, vkapi.Object{Type: resource.Type, Handle: h}), true, nil
	}

	switch c := creates[resource].(type) {
	case *vkcall.CreateBufferCall:
		info, err := s.bufferCreateInfo(c.Device, c.CreateInfo)
		if err != nil {
			return reqs, false, err
		}
		buffer, r := s.api.CreateBuffer(live, info)
		if r != vkapi.Success {
			return reqs, false, nil
		}
		reqs = s.api.GetBufferMemoryRequirements(live, buffer)
		s.api.DestroyBuffer(live, buffer)
		return reqs, true, nil

	case *vkcall.CreateImageCall:
		info, err := s.imageCreateInfo(c.Device, c.CreateInfo)
		if err != nil {
			return reqs, false, err
		}
		image, r := s.api.CreateImage(live, info)
		if r != vkapi.Success {
			return reqs, false, nil
		}
		reqs = s.api.GetImageMemoryRequirements(live, image)
		s.api.DestroyImage(live, image)
		return reqs, true, nil

	default:
		return reqs, false, nil
	}
}
