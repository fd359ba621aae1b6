package tracefile

import (
	"fmt"
	"io"
)

// Reader is a cursor over the packets of a Store.
//
// Readers created from the same store are independent of each other, moving
// one does not affect the others.
type Reader struct {
	store  *Store
	offset int64
	header [PacketHeaderSize]byte
	buffer []byte
	packet Packet
}

// Position returns the stream offset of the next packet to be read.
func (r *Reader) Position() int64 { return r.offset }

// Seek moves the reader to the given stream offset, which must be the offset
// of a packet or the end of the stream.
func (r *Reader) Seek(offset int64) error {
	if offset < 0 || offset > r.store.size {
		return fmt.Errorf("seek offset %d out of range [0:%d]", offset, r.store.size)
	}
	r.offset = offset
	return nil
}

// Next reads the next packet. The method returns io.EOF when the end of the
// stream is reached, and a *CorruptTraceError if the packet is truncated or
// malformed.
//
// The returned packet is only valid until the next call to Next.
func (r *Reader) Next() (*Packet, error) {
	p, err := r.ReadAt(r.offset)
	if err != nil {
		return nil, err
	}
	r.offset = p.End()
	return p, nil
}

// ReadAt reads the packet at the given offset without moving the cursor. The
// returned packet shares the buffer used by Next.
func (r *Reader) ReadAt(offset int64) (*Packet, error) {
	size := r.store.size
	if offset == size {
		return nil, io.EOF
	}
	if offset < 0 || offset > size {
		return nil, &CorruptTraceError{Offset: offset, Err: fmt.Errorf("packet offset out of range [0:%d]", size)}
	}
	if size-offset < PacketHeaderSize {
		return nil, &CorruptTraceError{Offset: offset, Err: fmt.Errorf("truncated packet header: %w", io.ErrUnexpectedEOF)}
	}
	if _, err := r.store.stream.ReadAt(r.header[:], offset); err != nil {
		return nil, &CorruptTraceError{Offset: offset, Err: err}
	}
	order := r.store.order
	id := order.Uint32(r.header[0:])
	index := order.Uint64(r.header[4:])
	length := order.Uint64(r.header[12:])
	if length > maxPacketSize {
		return nil, &CorruptTraceError{Offset: offset, Err: fmt.Errorf("packet %d: payload size too large: %d>%d", index, length, maxPacketSize)}
	}
	if int64(length) > size-offset-PacketHeaderSize {
		return nil, &CorruptTraceError{Offset: offset, Err: fmt.Errorf("packet %d: truncated payload of size %d: %w", index, length, io.ErrUnexpectedEOF)}
	}
	if cap(r.buffer) < int(length) {
		r.buffer = make([]byte, length, align(int64(length)))
	}
	r.buffer = r.buffer[:length]
	if _, err := r.store.stream.ReadAt(r.buffer, offset+PacketHeaderSize); err != nil && err != io.EOF {
		return nil, &CorruptTraceError{Offset: offset, Err: err}
	}
	r.packet = Packet{
		ID:      id,
		Index:   index,
		Offset:  offset,
		Payload: r.buffer,
	}
	return &r.packet, nil
}

func align(size int64) int {
	return int(((size + (defaultBufferSize - 1)) / defaultBufferSize) * defaultBufferSize)
}
