package tracefile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const frameHeaderSize = 8

// Store gives access to the content of a trace.
//
// Compressed traces are fully decompressed when the store is opened; the
// packet stream of uncompressed traces is read directly from the underlying
// storage, which is memory mapped when the store is created by Open.
type Store struct {
	header *Header
	order  binary.ByteOrder
	stream io.ReaderAt
	size   int64
	close  func() error
}

// Open opens the trace file at path.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s, err := openFile(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func openFile(f *os.File) (*Store, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()

	if data, unmap, err := mmap(f, size); err == nil {
		s, err := NewStore(bytes.NewReader(data), size)
		if err != nil {
			unmap()
			return nil, err
		}
		s.close = func() error {
			return errors.Join(unmap(), f.Close())
		}
		return s, nil
	}

	s, err := NewStore(f, size)
	if err != nil {
		return nil, err
	}
	s.close = f.Close
	return s, nil
}

// NewStore creates a store reading a trace of the given size from r.
func NewStore(r io.ReaderAt, size int64) (*Store, error) {
	prefix := make([]byte, len(Magic)+4)
	if _, err := r.ReadAt(prefix, 0); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, &CorruptTraceError{Offset: 0, Err: fmt.Errorf("reading trace file prefix: %w", err)}
	}
	if string(prefix[:len(Magic)]) != Magic {
		return nil, &CorruptTraceError{Offset: 0, Err: errors.New("not a trace file (bad magic number)")}
	}

	headerSize := int64(binary.LittleEndian.Uint32(prefix[len(Magic):]))
	headerEnd := int64(len(prefix)) + headerSize
	if headerSize > maxHeaderSize || headerEnd > size {
		return nil, &CorruptTraceError{Offset: int64(len(Magic)), Err: fmt.Errorf("invalid header size: %d", headerSize)}
	}
	b := make([]byte, 4+headerSize)
	if _, err := r.ReadAt(b, int64(len(Magic))); err != nil && err != io.EOF {
		return nil, &CorruptTraceError{Offset: int64(len(Magic)), Err: err}
	}
	header, err := NewHeader(b)
	if err != nil {
		return nil, &CorruptTraceError{Offset: int64(len(Magic)), Err: err}
	}
	if header.Version < MinVersion || header.Version > CurrentVersion {
		return nil, &UnsupportedVersionError{Version: header.Version}
	}
	if header.PointerSize != PointerSize {
		return nil, &PointerSizeError{Trace: header.PointerSize, Replay: PointerSize}
	}

	s := &Store{
		header: header,
		order:  ByteOrder(header.Endianness),
		stream: io.NewSectionReader(r, headerEnd, size-headerEnd),
		size:   size - headerEnd,
		close:  func() error { return nil },
	}
	if header.Compression != Uncompressed {
		data, err := decompressFrames(s.stream, s.size, header.Compression)
		if err != nil {
			return nil, err
		}
		s.stream, s.size = bytes.NewReader(data), int64(len(data))
	}
	return s, nil
}

// Header returns the trace header.
func (s *Store) Header() *Header { return s.header }

// ByteOrder returns the byte order of the packets and their payloads.
func (s *Store) ByteOrder() binary.ByteOrder { return s.order }

// Size returns the size of the packet stream.
func (s *Store) Size() int64 { return s.size }

// NewReader returns a reader positioned at the first packet.
func (s *Store) NewReader() *Reader {
	return &Reader{store: s}
}

// Close releases the resources held by the store. Packets read from the
// store must not be used after closing it.
func (s *Store) Close() error { return s.close() }

type frame struct {
	offset           int64
	compressedSize   int64
	uncompressedSize int64
	output           int64
}

func decompressFrames(r io.ReaderAt, size int64, compression Compression) ([]byte, error) {
	var frames []frame
	var total int64
	var header [frameHeaderSize]byte

	for offset := int64(0); offset < size; {
		if size-offset < frameHeaderSize {
			return nil, &CorruptTraceError{Offset: offset, Err: fmt.Errorf("truncated frame header: %w", io.ErrUnexpectedEOF)}
		}
		if _, err := r.ReadAt(header[:], offset); err != nil && err != io.EOF {
			return nil, &CorruptTraceError{Offset: offset, Err: err}
		}
		f := frame{
			offset:           offset + frameHeaderSize,
			compressedSize:   int64(binary.LittleEndian.Uint32(header[0:])),
			uncompressedSize: int64(binary.LittleEndian.Uint32(header[4:])),
			output:           total,
		}
		if f.compressedSize > size-f.offset {
			return nil, &CorruptTraceError{Offset: offset, Err: fmt.Errorf("truncated frame of size %d: %w", f.compressedSize, io.ErrUnexpectedEOF)}
		}
		if f.uncompressedSize > maxFrameSize {
			return nil, &CorruptTraceError{Offset: offset, Err: fmt.Errorf("frame too large: %d>%d", f.uncompressedSize, maxFrameSize)}
		}
		frames = append(frames, f)
		total += f.uncompressedSize
		offset = f.offset + f.compressedSize
	}

	data := make([]byte, total)
	group := new(errgroup.Group)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for _, f := range frames {
		f := f
		group.Go(func() error {
			src := make([]byte, f.compressedSize)
			if _, err := r.ReadAt(src, f.offset); err != nil && err != io.EOF {
				return &CorruptTraceError{Offset: f.offset, Err: err}
			}
			dst := data[f.output : f.output+f.uncompressedSize]
			if err := decompress(dst, src, compression); err != nil {
				return &CorruptTraceError{Offset: f.offset - frameHeaderSize, Err: err}
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
