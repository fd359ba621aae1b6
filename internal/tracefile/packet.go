// Package tracefile implements the storage layer of trace files: parsing of
// the header block and sequential access to the packets that follow it.
package tracefile

import (
	"fmt"
)

const (
	// PacketHeaderSize is the size of the fixed header preceding each packet
	// payload: packet id (u32), global index (u64) and payload size (u64).
	PacketHeaderSize = 20

	maxPacketSize = 1 << 30

	defaultBufferSize = 4096
)

// Packet is a packet read from a trace.
//
// The payload is owned by the Reader that produced the packet and is only
// valid until the next call to its Next method; slices obtained from Resolve
// share this lifetime.
type Packet struct {
	// ID identifies the API call recorded in the packet.
	ID uint32
	// Index is the global sequence number assigned at capture time.
	Index uint64
	// Offset is the position of the packet in the packet stream.
	Offset int64
	// Payload is the serialized call.
	Payload []byte
}

// End returns the stream offset immediately following the packet.
func (p *Packet) End() int64 {
	return p.Offset + PacketHeaderSize + int64(len(p.Payload))
}

// Resolve returns the size bytes of the payload starting at the given
// payload-relative offset.
func (p *Packet) Resolve(offset, size uint64) ([]byte, error) {
	n := uint64(len(p.Payload))
	if offset > n || size > n-offset {
		return nil, &CorruptTraceError{
			Offset: p.Offset,
			Err:    fmt.Errorf("packet %d: reference to [%d:+%d] is out of the %d bytes payload", p.Index, offset, size, n),
		}
	}
	return p.Payload[offset : offset+size : offset+size], nil
}

// Clone returns a copy of the packet which does not share memory with p.
func (p *Packet) Clone() *Packet {
	c := *p
	c.Payload = append([]byte(nil), p.Payload...)
	return &c
}

// CorruptTraceError is returned when the trace content is malformed. There is
// no safe point to resume reading from after such an error.
type CorruptTraceError struct {
	Offset int64
	Err    error
}

func (e *CorruptTraceError) Error() string {
	return fmt.Sprintf("corrupt trace at offset %d: %s", e.Offset, e.Err)
}

func (e *CorruptTraceError) Unwrap() error { return e.Err }

// UnsupportedVersionError is returned when opening a trace with a format
// version outside of [MinVersion, CurrentVersion].
type UnsupportedVersionError struct {
	Version uint32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported trace format version %d (supported versions: %d to %d)", e.Version, MinVersion, CurrentVersion)
}

// PointerSizeError is returned when a trace was captured by a process with a
// pointer size that differs from the replaying process.
type PointerSizeError struct {
	Trace, Replay int
}

func (e *PointerSizeError) Error() string {
	return fmt.Sprintf("trace was captured with %d bytes pointers but replay uses %d bytes pointers", e.Trace, e.Replay)
}
