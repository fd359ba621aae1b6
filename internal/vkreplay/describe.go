package vkreplay

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/slices"

	"github.com/LunarG/VulkanTools-sub014/format"
	"github.com/LunarG/VulkanTools-sub014/internal/stream"
	"github.com/LunarG/VulkanTools-sub014/internal/tracefile"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
)

// Describe returns the description of the trace file at path: its digest,
// header and the number of packets recorded for each call.
func Describe(path string) (*format.TraceInfo, error) {
	digest, size, err := digestFile(path)
	if err != nil {
		return nil, err
	}
	store, err := tracefile.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	info, err := DescribeStore(store)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	info.Path = path
	info.Digest = digest
	info.Size = size
	return info, nil
}

// DescribeStore returns the description of the trace read from store. The
// path, digest, and size of the returned value are left unset.
func DescribeStore(store *tracefile.Store) (*format.TraceInfo, error) {
	h := store.Header()
	info := &format.TraceInfo{
		Version:       h.Version,
		TracerVersion: h.TracerVersion,
		Platform:      h.Platform,
		PointerSize:   h.PointerSize,
		Endianness:    h.Endianness.String(),
		Compression:   h.Compression.String(),
		Portable:      len(h.PortabilityTable),
	}
	for _, gpu := range h.GPUs {
		info.GPUs = append(info.GPUs, format.GPU{
			Name:          gpu.Name,
			VendorID:      gpu.VendorID,
			DeviceID:      gpu.DeviceID,
			DriverVersion: gpu.DriverVersion,
			APIVersion:    gpu.APIVersion,
		})
	}

	counts := make(callCounter)
	packets, err := stream.Copy[vkcall.CallID](counts, packetIDs(store.NewReader()))
	if err != nil {
		return nil, err
	}
	info.Packets = int(packets)

	ids := make([]vkcall.CallID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b vkcall.CallID) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return int(a) - int(b)
	})
	for _, id := range ids {
		info.Calls = append(info.Calls, format.CallCount{Call: id.String(), Count: counts[id]})
	}
	return info, nil
}

type callCounter map[vkcall.CallID]int

func (c callCounter) Write(ids []vkcall.CallID) (int, error) {
	for _, id := range ids {
		c[id]++
	}
	return len(ids), nil
}

func packetIDs(r *tracefile.Reader) stream.Reader[vkcall.CallID] {
	return stream.ReaderFunc[vkcall.CallID](func() (vkcall.CallID, error) {
		p, err := r.Next()
		if err != nil {
			return vkcall.Invalid, err
		}
		return vkcall.CallID(p.ID), nil
	})
}

func digestFile(path string) (format.Hash, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return format.Hash{}, 0, err
	}
	defer f.Close()
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return format.Hash{}, 0, err
	}
	return format.Hash{Algorithm: "sha256", Digest: hex.EncodeToString(h.Sum(nil))}, n, nil
}
