package tracefile

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/LunarG/VulkanTools-sub014/format/tracefmt"
)

const (
	// Magic is the byte sequence that starts every trace file.
	Magic = "VKTRACE\x00"

	// MinVersion and CurrentVersion bound the format versions that can be
	// replayed.
	MinVersion     = 3
	CurrentVersion = 4

	maxHeaderSize = 16 * 1024 * 1024
)

// PointerSize is the size of pointers in the replaying process.
const PointerSize = strconv.IntSize / 8

type Endianness = tracefmt.Endianness

const (
	LittleEndian Endianness = tracefmt.EndiannessLittle
	BigEndian    Endianness = tracefmt.EndiannessBig
)

// ByteOrder returns the binary.ByteOrder of the given endianness.
func ByteOrder(e Endianness) binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// GPU is an entry of the per-GPU table recorded in a trace header.
type GPU struct {
	Name          string
	VendorID      uint32
	DeviceID      uint32
	DriverVersion uint32
	APIVersion    uint32
}

// Header is the header block of a trace file.
type Header struct {
	Version       uint32
	TracerVersion string
	PointerSize   int
	Endianness    Endianness
	Compression   Compression
	Platform      string
	GPUs          []GPU
	// PortabilityTable lists, in stream order, the offsets of the packets
	// that the portability scanner needs to look at.
	PortabilityTable []int64
}

// NewHeader parses a size prefixed header buffer.
func NewHeader(b []byte) (h *Header, err error) {
	if len(b) < 4 {
		return nil, io.ErrUnexpectedEOF
	}
	if size := binary.LittleEndian.Uint32(b); int64(size) > int64(len(b)-4) {
		return nil, fmt.Errorf("header of size %d exceeds buffer of size %d", size, len(b)-4)
	}
	// The flatbuffers accessors do not validate offsets.
	defer func() {
		if r := recover(); r != nil {
			h, err = nil, fmt.Errorf("malformed header: %v", r)
		}
	}()

	header := tracefmt.GetSizePrefixedRootAsTraceHeader(b, 0)
	h = &Header{
		Version:       header.Version(),
		TracerVersion: string(header.TracerVersion()),
		PointerSize:   int(header.PointerSize()),
		Endianness:    header.Endianness(),
		Compression:   header.Compression(),
		Platform:      string(header.Platform()),
		GPUs:          make([]GPU, header.GpusLength()),
	}
	for i := range h.GPUs {
		gpu := tracefmt.GpuInfo{}
		if !header.Gpus(&gpu, i) {
			return nil, fmt.Errorf("missing gpu in trace header: expected %d but could not load gpu at index %d", len(h.GPUs), i)
		}
		h.GPUs[i] = GPU{
			Name:          string(gpu.Name()),
			VendorID:      gpu.VendorId(),
			DeviceID:      gpu.DeviceId(),
			DriverVersion: gpu.DriverVersion(),
			APIVersion:    gpu.ApiVersion(),
		}
	}
	if n := header.PortabilityTableLength(); n > 0 {
		h.PortabilityTable = make([]int64, n)
		for i := range h.PortabilityTable {
			h.PortabilityTable[i] = int64(header.PortabilityTable(i))
		}
	}
	return h, nil
}

// HeaderBuilder is a builder for headers.
type HeaderBuilder struct {
	builder  *flatbuffers.Builder
	header   Header
	offsets  []flatbuffers.UOffsetT
	finished bool
}

// Reset resets the builder.
func (b *HeaderBuilder) Reset() {
	if b.builder == nil {
		b.builder = flatbuffers.NewBuilder(defaultBufferSize)
	} else {
		b.builder.Reset()
	}
	b.header = Header{}
	b.offsets = b.offsets[:0]
	b.finished = false
}

// SetHeader sets the header content.
func (b *HeaderBuilder) SetHeader(h *Header) {
	if b.finished {
		panic("builder must be reset before header can be set")
	}
	b.header = *h
}

// Bytes returns the serialized representation of the header.
func (b *HeaderBuilder) Bytes() []byte {
	if !b.finished {
		b.build()
		b.finished = true
	}
	return b.builder.FinishedBytes()
}

// Write writes the serialized representation of the header
// to the specified writer.
func (b *HeaderBuilder) Write(w io.Writer) (int, error) {
	return w.Write(b.Bytes())
}

func (b *HeaderBuilder) build() {
	if b.builder == nil {
		b.builder = flatbuffers.NewBuilder(defaultBufferSize)
	}
	h := &b.header

	type gpu struct {
		name flatbuffers.UOffsetT
		GPU
	}
	gpus := make([]gpu, len(h.GPUs))
	for i, g := range h.GPUs {
		gpus[i] = gpu{name: b.builder.CreateString(g.Name), GPU: g}
	}

	b.offsets = b.offsets[:0]
	for _, g := range gpus {
		tracefmt.GpuInfoStart(b.builder)
		tracefmt.GpuInfoAddVendorId(b.builder, g.VendorID)
		tracefmt.GpuInfoAddDeviceId(b.builder, g.DeviceID)
		tracefmt.GpuInfoAddDriverVersion(b.builder, g.DriverVersion)
		tracefmt.GpuInfoAddApiVersion(b.builder, g.APIVersion)
		tracefmt.GpuInfoAddName(b.builder, g.name)
		b.offsets = append(b.offsets, tracefmt.GpuInfoEnd(b.builder))
	}
	tracefmt.TraceHeaderStartGpusVector(b.builder, len(b.offsets))
	for i := len(b.offsets) - 1; i >= 0; i-- {
		b.builder.PrependUOffsetT(b.offsets[i])
	}
	gpusOffset := b.builder.EndVector(len(b.offsets))

	tracefmt.TraceHeaderStartPortabilityTableVector(b.builder, len(h.PortabilityTable))
	for i := len(h.PortabilityTable) - 1; i >= 0; i-- {
		b.builder.PrependUint64(uint64(h.PortabilityTable[i]))
	}
	portabilityOffset := b.builder.EndVector(len(h.PortabilityTable))

	platformOffset := b.builder.CreateString(h.Platform)
	tracerVersionOffset := b.builder.CreateString(h.TracerVersion)

	tracefmt.TraceHeaderStart(b.builder)
	tracefmt.TraceHeaderAddVersion(b.builder, h.Version)
	tracefmt.TraceHeaderAddPointerSize(b.builder, byte(h.PointerSize))
	tracefmt.TraceHeaderAddEndianness(b.builder, h.Endianness)
	tracefmt.TraceHeaderAddCompression(b.builder, h.Compression)
	tracefmt.TraceHeaderAddPlatform(b.builder, platformOffset)
	tracefmt.TraceHeaderAddGpus(b.builder, gpusOffset)
	tracefmt.TraceHeaderAddPortabilityTable(b.builder, portabilityOffset)
	tracefmt.TraceHeaderAddTracerVersion(b.builder, tracerVersionOffset)
	tracefmt.FinishSizePrefixedTraceHeaderBuffer(b.builder, tracefmt.TraceHeaderEnd(b.builder))
}
