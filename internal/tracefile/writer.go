package tracefile

import (
	"bytes"
	"encoding/binary"
	"io"
)

const (
	// DefaultFrameSize is the size of uncompressed frames produced by writers
	// of compressed traces.
	DefaultFrameSize = 256 * 1024

	maxFrameSize = 64 * 1024 * 1024
)

// Writer produces trace files.
//
// The portability table is part of the header, so packets are buffered in
// memory and the file is written when the writer is closed.
type Writer struct {
	output    io.Writer
	header    Header
	order     binary.ByteOrder
	stream    bytes.Buffer
	index     uint64
	frameSize int
	builder   HeaderBuilder
	closed    bool
}

// NewWriter creates a writer producing a trace on w. The version and pointer
// size default to the current values when zero; the portability table of h is
// ignored and built from the packets written.
func NewWriter(w io.Writer, h Header) *Writer {
	if h.Version == 0 {
		h.Version = CurrentVersion
	}
	if h.PointerSize == 0 {
		h.PointerSize = PointerSize
	}
	h.PortabilityTable = nil
	return &Writer{
		output:    w,
		header:    h,
		order:     ByteOrder(h.Endianness),
		frameSize: DefaultFrameSize,
	}
}

// SetFrameSize sets the uncompressed size of frames in compressed traces.
func (w *Writer) SetFrameSize(size int) {
	w.frameSize = size
}

// ByteOrder returns the byte order of packets written by w.
func (w *Writer) ByteOrder() binary.ByteOrder { return w.order }

// WritePacket appends a packet and returns its global index. Packets
// flagged as portable are indexed in the portability table.
func (w *Writer) WritePacket(id uint32, payload []byte, portable bool) uint64 {
	index := w.index
	w.index++
	if portable {
		w.header.PortabilityTable = append(w.header.PortabilityTable, int64(w.stream.Len()))
	}
	var header [PacketHeaderSize]byte
	w.order.PutUint32(header[0:], id)
	w.order.PutUint64(header[4:], index)
	w.order.PutUint64(header[12:], uint64(len(payload)))
	w.stream.Write(header[:])
	w.stream.Write(payload)
	return index
}

// Close writes the trace to the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	w.builder.Reset()
	w.builder.SetHeader(&w.header)

	if _, err := io.WriteString(w.output, Magic); err != nil {
		return err
	}
	if _, err := w.builder.Write(w.output); err != nil {
		return err
	}
	if w.header.Compression == Uncompressed {
		_, err := w.output.Write(w.stream.Bytes())
		return err
	}

	var buffer []byte
	data := w.stream.Bytes()
	for len(data) > 0 {
		n := w.frameSize
		if n > len(data) {
			n = len(data)
		}
		buffer = compress(buffer[:cap(buffer)], data[:n], w.header.Compression)
		var header [frameHeaderSize]byte
		binary.LittleEndian.PutUint32(header[0:], uint32(len(buffer)))
		binary.LittleEndian.PutUint32(header[4:], uint32(n))
		if _, err := w.output.Write(header[:]); err != nil {
			return err
		}
		if _, err := w.output.Write(buffer); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
