package vkcall

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/LunarG/VulkanTools-sub014/internal/tracefile"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

// Payload layout
// --------------
//
// A payload starts with the fixed size fields of the call. Variable length
// values (arrays, strings, optional structures, extension chains) are stored
// out of line after the fixed fields, and referenced by a u64 offset relative
// to the beginning of the payload. Arrays are coded as a u32 element count
// followed by the offset of the first element. A zero offset is a null
// pointer.
//
// Extension chain nodes are {sType u32, bodySize u32, next u64, body}.
//
// Every value is coded by a single function working in both directions,
// which takes a coder and a pointer to the value: the encoder reads through
// the pointer while the decoder writes through it.

const (
	maxChainLength = 32
	maxDepth       = 64
)

var (
	errChainTooLong = errors.New("extension chain is too long or cyclic")
	errTooDeep      = errors.New("payload nesting is too deep")
)

type coder interface {
	decoding() bool
	u32(v *uint32)
	u64(v *uint64)
	// data codes n bytes inline.
	data(b *[]byte, n int)
	// link codes a pointer to an out of line block, fn is called to code the
	// content of the block when the pointer is not null.
	link(present *bool, fn func(coder))
	// check reports whether n elements can be decoded.
	check(n uint32) bool
	fail(err error)
}

type encoder struct {
	order      binary.ByteOrder
	body       []byte
	heap       []byte
	bodyRelocs []int
	heapRelocs []int
	err        error
}

func (e *encoder) decoding() bool { return false }

func (e *encoder) u32(v *uint32) {
	var b [4]byte
	e.order.PutUint32(b[:], *v)
	e.body = append(e.body, b[:]...)
}

func (e *encoder) u64(v *uint64) {
	var b [8]byte
	e.order.PutUint64(b[:], *v)
	e.body = append(e.body, b[:]...)
}

func (e *encoder) data(b *[]byte, n int) {
	e.body = append(e.body, (*b)[:n]...)
}

func (e *encoder) link(present *bool, fn func(coder)) {
	pos := len(e.body)
	e.body = append(e.body, make([]byte, 8)...)
	if !*present {
		return
	}

	sub := &encoder{order: e.order}
	fn(sub)
	if sub.err != nil {
		e.fail(sub.err)
	}
	block, relocs := sub.finish()

	e.heap = pad(e.heap)
	base := len(e.heap)
	e.heap = append(e.heap, block...)
	for _, r := range relocs {
		e.relocate(e.heap[base+r:], base)
		e.heapRelocs = append(e.heapRelocs, base+r)
	}
	e.order.PutUint64(e.body[pos:], uint64(base))
	e.bodyRelocs = append(e.bodyRelocs, pos)
}

func (e *encoder) check(uint32) bool { return true }

func (e *encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *encoder) relocate(b []byte, base int) {
	e.order.PutUint64(b, e.order.Uint64(b)+uint64(base))
}

// finish returns the block made of the body followed by the heap, and the
// positions of the pointers it contains.
func (e *encoder) finish() ([]byte, []int) {
	out := pad(e.body)
	base := len(out)
	out = append(out, e.heap...)

	relocs := make([]int, 0, len(e.bodyRelocs)+len(e.heapRelocs))
	for _, p := range e.bodyRelocs {
		e.relocate(out[p:], base)
		relocs = append(relocs, p)
	}
	for _, p := range e.heapRelocs {
		e.relocate(out[base+p:], base)
		relocs = append(relocs, base+p)
	}
	return out, relocs
}

func pad(b []byte) []byte {
	for len(b)%8 != 0 {
		b = append(b, 0)
	}
	return b
}

type decodeState struct {
	err   error
	depth int
}

type decoder struct {
	packet *tracefile.Packet
	order  binary.ByteOrder
	pos    uint64
	state  *decodeState
}

func (d *decoder) decoding() bool { return true }

func (d *decoder) read(n uint64) []byte {
	if d.state.err != nil {
		return nil
	}
	b, err := d.packet.Resolve(d.pos, n)
	if err != nil {
		d.state.err = err
		return nil
	}
	d.pos += n
	return b
}

func (d *decoder) u32(v *uint32) {
	if b := d.read(4); len(b) == 4 {
		*v = d.order.Uint32(b)
	}
}

func (d *decoder) u64(v *uint64) {
	if b := d.read(8); len(b) == 8 {
		*v = d.order.Uint64(b)
	}
}

func (d *decoder) data(b *[]byte, n int) {
	if src := d.read(uint64(n)); d.state.err == nil && n > 0 {
		*b = append([]byte(nil), src...)
	} else {
		*b = nil
	}
}

func (d *decoder) link(present *bool, fn func(coder)) {
	var offset uint64
	d.u64(&offset)
	*present = offset != 0 && d.state.err == nil
	if !*present {
		return
	}
	if offset >= uint64(len(d.packet.Payload)) {
		d.fail(fmt.Errorf("pointer to offset %d is out of the %d bytes payload", offset, len(d.packet.Payload)))
		*present = false
		return
	}
	if d.state.depth >= maxDepth {
		d.fail(errTooDeep)
		*present = false
		return
	}
	d.state.depth++
	fn(&decoder{packet: d.packet, order: d.order, pos: offset, state: d.state})
	d.state.depth--
}

func (d *decoder) check(n uint32) bool {
	if uint64(n) > uint64(len(d.packet.Payload)) {
		d.fail(fmt.Errorf("element count %d exceeds the %d bytes payload", n, len(d.packet.Payload)))
		return false
	}
	return d.state.err == nil
}

func (d *decoder) fail(err error) {
	if d.state.err == nil {
		d.state.err = &tracefile.CorruptTraceError{
			Offset: d.packet.Offset,
			Err:    fmt.Errorf("packet %d: %w", d.packet.Index, err),
		}
	}
}

func i32(c coder, v *int32) {
	u := uint32(*v)
	c.u32(&u)
	*v = int32(u)
}

func f32(c coder, v *float32) {
	u := math.Float32bits(*v)
	c.u32(&u)
	*v = math.Float32frombits(u)
}

func boolean(c coder, v *bool) {
	var u uint32
	if *v {
		u = 1
	}
	c.u32(&u)
	*v = u != 0
}

func enum[T ~uint32](c coder, v *T) {
	u := uint32(*v)
	c.u32(&u)
	*v = T(u)
}

func result(c coder, r *vkapi.Result) {
	u := uint32(*r)
	c.u32(&u)
	*r = vkapi.Result(int32(u))
}

func handle[H ~uint64](c coder, h *H) {
	u := uint64(*h)
	c.u64(&u)
	*h = H(u)
}

func array[T any](c coder, s *[]T, elem func(coder, *T)) {
	n := uint32(len(*s))
	c.u32(&n)
	present := n > 0
	c.link(&present, func(c coder) {
		if c.decoding() {
			if !c.check(n) {
				return
			}
			*s = make([]T, n)
		}
		for i := range *s {
			elem(c, &(*s)[i])
		}
	})
	if c.decoding() {
		if !present {
			if n != 0 {
				c.fail(fmt.Errorf("array of %d elements has a null pointer", n))
			}
			*s = nil
		}
	}
}

func handles[H ~uint64](c coder, s *[]H) {
	array(c, s, handle[H])
}

func u32s(c coder, s *[]uint32) {
	array(c, s, func(c coder, v *uint32) { c.u32(v) })
}

func byteArray(c coder, b *[]byte) {
	n := uint32(len(*b))
	c.u32(&n)
	present := n > 0
	c.link(&present, func(c coder) {
		if c.decoding() && !c.check(n) {
			return
		}
		c.data(b, int(n))
	})
	if c.decoding() && !present {
		if n != 0 {
			c.fail(fmt.Errorf("byte array of length %d has a null pointer", n))
		}
		*b = nil
	}
}

func str(c coder, s *string) {
	b := []byte(*s)
	byteArray(c, &b)
	*s = string(b)
}

func strs(c coder, s *[]string) {
	array(c, s, str)
}

func optional[T any](c coder, p **T, fn func(coder, *T)) {
	present := *p != nil
	c.link(&present, func(c coder) {
		if c.decoding() {
			*p = new(T)
		}
		fn(c, *p)
	})
	if c.decoding() && !present {
		*p = nil
	}
}

func chain(c coder, ch *vkapi.Chain) {
	if c.decoding() {
		*ch = nil
	}
	chainNode(c, ch, 0)
}

func chainNode(c coder, ch *vkapi.Chain, i int) {
	present := !c.decoding() && i < len(*ch)
	c.link(&present, func(c coder) {
		if i >= maxChainLength {
			c.fail(errChainTooLong)
			return
		}

		var ext vkapi.Extension
		var sType, size uint32
		if c.decoding() {
			*ch = append(*ch, nil)
		} else {
			ext = (*ch)[i]
			sType, size = uint32(ext.StructureType()), extensionSize(ext)
		}
		c.u32(&sType)
		c.u32(&size)
		chainNode(c, ch, i+1)

		if c.decoding() {
			if !c.check(size) {
				return
			}
			ext = newExtension(vkapi.StructureType(sType), size)
		}
		extension(c, ext, size)
		if c.decoding() {
			(*ch)[i] = ext
		}
	})
}

func extensionSize(ext vkapi.Extension) uint32 {
	switch e := ext.(type) {
	case *vkapi.MemoryDedicatedAllocateInfo:
		return 16
	case *vkapi.MemoryAllocateFlagsInfo:
		return 8
	case *vkapi.RawExtension:
		return uint32(len(e.Data))
	default:
		panic(fmt.Sprintf("extension structure of type %T cannot be encoded", ext))
	}
}

func newExtension(sType vkapi.StructureType, size uint32) vkapi.Extension {
	switch {
	case sType == vkapi.StructureTypeMemoryDedicatedAllocateInfo && size == 16:
		return new(vkapi.MemoryDedicatedAllocateInfo)
	case sType == vkapi.StructureTypeMemoryAllocateFlagsInfo && size == 8:
		return new(vkapi.MemoryAllocateFlagsInfo)
	default:
		return &vkapi.RawExtension{Type: sType}
	}
}

func extension(c coder, ext vkapi.Extension, size uint32) {
	switch e := ext.(type) {
	case *vkapi.MemoryDedicatedAllocateInfo:
		handle(c, &e.Image)
		handle(c, &e.Buffer)
	case *vkapi.MemoryAllocateFlagsInfo:
		c.u32(&e.Flags)
		c.u32(&e.DeviceMask)
	case *vkapi.RawExtension:
		c.data(&e.Data, int(size))
	}
}
