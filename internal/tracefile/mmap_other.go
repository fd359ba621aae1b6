//go:build !unix

package tracefile

import (
	"errors"
	"os"
)

func mmap(f *os.File, size int64) ([]byte, func() error, error) {
	return nil, nil, errors.ErrUnsupported
}
