package tracefile_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/LunarG/VulkanTools-sub014/internal/assert"
	"github.com/LunarG/VulkanTools-sub014/internal/tracefile"
)

type packet struct {
	id       uint32
	payload  string
	portable bool
}

var packets = []packet{
	{id: 1, payload: "create instance"},
	{id: 2, payload: "allocate memory", portable: true},
	{id: 3, payload: ""},
	{id: 4, payload: "bind buffer memory", portable: true},
	{id: 5, payload: "destroy instance"},
}

func writeTrace(t *testing.T, header tracefile.Header, frameSize int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := tracefile.NewWriter(buf, header)
	if frameSize > 0 {
		w.SetFrameSize(frameSize)
	}
	for i, p := range packets {
		index := w.WritePacket(p.id, []byte(p.payload), p.portable)
		assert.Equal(t, index, uint64(i))
	}
	assert.OK(t, w.Close())
	return buf.Bytes()
}

func openTrace(t *testing.T, b []byte) *tracefile.Store {
	t.Helper()
	s, err := tracefile.NewStore(bytes.NewReader(b), int64(len(b)))
	assert.OK(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func readAll(t *testing.T, r *tracefile.Reader) []*tracefile.Packet {
	t.Helper()
	var all []*tracefile.Packet
	for {
		p, err := r.Next()
		if err == io.EOF {
			return all
		}
		assert.OK(t, err)
		all = append(all, p.Clone())
	}
}

func TestReadPackets(t *testing.T) {
	tests := []struct {
		scenario  string
		header    tracefile.Header
		frameSize int
	}{
		{scenario: "uncompressed little endian"},
		{scenario: "uncompressed big endian", header: tracefile.Header{Endianness: tracefile.BigEndian}},
		{scenario: "snappy", header: tracefile.Header{Compression: tracefile.Snappy}, frameSize: 16},
		{scenario: "zstd", header: tracefile.Header{Compression: tracefile.Zstd}, frameSize: 7},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			s := openTrace(t, writeTrace(t, test.header, test.frameSize))
			assert.Equal(t, s.Header().Compression, test.header.Compression)
			assert.Equal(t, s.Header().Version, uint32(tracefile.CurrentVersion))

			all := readAll(t, s.NewReader())
			assert.Equal(t, len(all), len(packets))
			for i, p := range all {
				assert.Equal(t, p.ID, packets[i].id)
				assert.Equal(t, p.Index, uint64(i))
				assert.Equal(t, string(p.Payload), packets[i].payload)
			}

			table := s.Header().PortabilityTable
			assert.Equal(t, len(table), 2)
			assert.Equal(t, table[0], all[1].Offset)
			assert.Equal(t, table[1], all[3].Offset)
		})
	}
}

func TestHeaderFields(t *testing.T) {
	h := tracefile.Header{
		TracerVersion: "1.3.250",
		Platform:      "linux/amd64",
		GPUs: []tracefile.GPU{
			{Name: "GPU 0", VendorID: 0x10de, DeviceID: 0x1b80, DriverVersion: 7, APIVersion: 1 << 22},
			{Name: "GPU 1", VendorID: 0x1002},
		},
	}
	s := openTrace(t, writeTrace(t, h, 0))
	got := s.Header()
	assert.Equal(t, got.TracerVersion, h.TracerVersion)
	assert.Equal(t, got.Platform, h.Platform)
	assert.Equal(t, got.PointerSize, tracefile.PointerSize)
	assert.DeepEqual(t, got.GPUs, h.GPUs)
}

func TestIndependentReaders(t *testing.T) {
	s := openTrace(t, writeTrace(t, tracefile.Header{}, 0))

	r1 := s.NewReader()
	p, err := r1.Next()
	assert.OK(t, err)
	assert.Equal(t, p.ID, uint32(1))
	position := r1.Position()

	r2 := s.NewReader()
	assert.OK(t, r2.Seek(position))
	assert.Equal(t, len(readAll(t, r2)), len(packets)-1)

	assert.Equal(t, r1.Position(), position)
	p, err = r1.Next()
	assert.OK(t, err)
	assert.Equal(t, p.ID, uint32(2))

	q, err := r2.ReadAt(position)
	assert.OK(t, err)
	assert.Equal(t, q.ID, uint32(2))
	assert.Equal(t, r2.Position(), s.Size())
}

func TestResolve(t *testing.T) {
	p := &tracefile.Packet{Payload: []byte("0123456789")}

	b, err := p.Resolve(2, 3)
	assert.OK(t, err)
	assert.Equal(t, string(b), "234")

	b, err = p.Resolve(10, 0)
	assert.OK(t, err)
	assert.Equal(t, len(b), 0)

	for _, r := range [][2]uint64{{8, 3}, {11, 0}, {1, ^uint64(0)}} {
		_, err := p.Resolve(r[0], r[1])
		assert.ErrorAs[*tracefile.CorruptTraceError](t, err)
	}
}

func TestCorruptTrace(t *testing.T) {
	b := writeTrace(t, tracefile.Header{}, 0)

	t.Run("truncated payload", func(t *testing.T) {
		s := openTrace(t, b[:len(b)-3])
		r := s.NewReader()
		for i := 0; i < len(packets)-1; i++ {
			_, err := r.Next()
			assert.OK(t, err)
		}
		_, err := r.Next()
		assert.ErrorAs[*tracefile.CorruptTraceError](t, err)
		assert.Error(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("oversized packet", func(t *testing.T) {
		c := append([]byte(nil), b...)
		first := len(c) - streamSize(t, b)
		binary.LittleEndian.PutUint64(c[first+12:], 1<<40)
		_, err := openTrace(t, c).NewReader().Next()
		assert.ErrorAs[*tracefile.CorruptTraceError](t, err)
	})

	t.Run("bad magic", func(t *testing.T) {
		c := append([]byte(nil), b...)
		c[0] = 'X'
		_, err := tracefile.NewStore(bytes.NewReader(c), int64(len(c)))
		assert.ErrorAs[*tracefile.CorruptTraceError](t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := tracefile.NewStore(bytes.NewReader(nil), 0)
		assert.ErrorAs[*tracefile.CorruptTraceError](t, err)
	})
}

func TestRejectIncompatibleTrace(t *testing.T) {
	b := writeTrace(t, tracefile.Header{PointerSize: tracefile.PointerSize / 2}, 0)
	_, err := tracefile.NewStore(bytes.NewReader(b), int64(len(b)))
	e := assert.ErrorAs[*tracefile.PointerSizeError](t, err)
	assert.Equal(t, e.Replay, tracefile.PointerSize)

	b = writeTrace(t, tracefile.Header{Version: tracefile.MinVersion - 1}, 0)
	_, err = tracefile.NewStore(bytes.NewReader(b), int64(len(b)))
	assert.ErrorAs[*tracefile.UnsupportedVersionError](t, err)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.vktrace")
	assert.OK(t, os.WriteFile(path, writeTrace(t, tracefile.Header{}, 0), 0666))

	s, err := tracefile.Open(path)
	assert.OK(t, err)
	assert.Equal(t, len(readAll(t, s.NewReader())), len(packets))
	assert.OK(t, s.Close())

	_, err = tracefile.Open(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func streamSize(t *testing.T, b []byte) int {
	s := openTrace(t, b)
	return int(s.Size())
}
