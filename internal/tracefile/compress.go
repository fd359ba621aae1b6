package tracefile

import (
	"fmt"
	"sync"

	"github.com/LunarG/VulkanTools-sub014/format/tracefmt"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
)

type Compression = tracefmt.Compression

const (
	Uncompressed Compression = tracefmt.CompressionUncompressed
	Snappy       Compression = tracefmt.CompressionSnappy
	Zstd         Compression = tracefmt.CompressionZstd
)

var (
	zstdEncoderPool objectPool[*zstd.Encoder]
	zstdDecoderPool objectPool[*zstd.Decoder]
)

type objectPool[T any] struct {
	pool sync.Pool
}

func (p *objectPool[T]) get(newObject func() T) T {
	v, ok := p.pool.Get().(T)
	if ok {
		return v
	}
	return newObject()
}

func (p *objectPool[T]) put(obj T) {
	p.pool.Put(obj)
}

func compress(dst, src []byte, compression Compression) []byte {
	switch compression {
	case Snappy:
		return snappy.Encode(dst, src)
	case Zstd:
		enc := zstdEncoderPool.get(func() *zstd.Encoder {
			e, _ := zstd.NewWriter(nil,
				zstd.WithEncoderCRC(false),
				zstd.WithEncoderConcurrency(1),
				zstd.WithEncoderLevel(zstd.SpeedFastest),
			)
			return e
		})
		defer zstdEncoderPool.put(enc)
		return enc.EncodeAll(src, dst[:0])
	default:
		return append(dst[:0], src...)
	}
}

// decompress decodes src into dst, which must be exactly the size of the
// uncompressed frame.
func decompress(dst, src []byte, compression Compression) error {
	var out []byte
	var err error
	switch compression {
	case Snappy:
		out, err = snappy.Decode(dst, src)
	case Zstd:
		dec := zstdDecoderPool.get(func() *zstd.Decoder {
			d, _ := zstd.NewReader(nil,
				zstd.IgnoreChecksum(true),
				zstd.WithDecoderConcurrency(1),
			)
			return d
		})
		defer zstdDecoderPool.put(dec)
		out, err = dec.DecodeAll(src, dst[:0])
	default:
		return fmt.Errorf("unknown compression format: %d", compression)
	}
	if err != nil {
		return err
	}
	if len(out) != len(dst) {
		return fmt.Errorf("frame decompressed to %d bytes but %d were expected", len(out), len(dst))
	}
	copy(dst, out)
	return nil
}
