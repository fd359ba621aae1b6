// Package stream is a library of generic types designed to work on streams of
// values.
package stream

import "io"

// Reader is an interface implemented by types that produce a stream of values
// of type T.
type Reader[T any] interface {
	// Reads values from the stream, returning the number of values read and any
	// error that occurred.
	//
	// The error is io.EOF when the end of the stream has been reached.
	Read(values []T) (int, error)
}

// Writer is an interface implemented by types that consume a stream of
// values of type T.
type Writer[T any] interface {
	Write(values []T) (int, error)
}

// WriteCloser is like io.WriteCloser for values of any type. Writers which
// buffer values flush them on Close.
type WriteCloser[T any] interface {
	Writer[T]
	io.Closer
}

// NewReader constructs a Reader from a sequence of values.
func NewReader[T any](values ...T) Reader[T] {
	return &reader[T]{values: append([]T{}, values...)}
}

type reader[T any] struct{ values []T }

func (r *reader[T]) Read(values []T) (n int, err error) {
	n = copy(values, r.values)
	r.values = r.values[n:]
	if len(r.values) == 0 {
		err = io.EOF
	}
	return n, err
}

// ReaderFunc adapts a function returning one value per call to a Reader.
// The function returns io.EOF after the last value.
type ReaderFunc[T any] func() (T, error)

func (f ReaderFunc[T]) Read(values []T) (n int, err error) {
	for n < len(values) {
		if values[n], err = f(); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// ReadAll reads all values from r and returns them as a slice, along with any
// error that occurred (other than io.EOF).
func ReadAll[T any](r Reader[T]) ([]T, error) {
	values := make([]T, 0, 1)
	for {
		if len(values) == cap(values) {
			values = append(values, make([]T, 2*len(values))...)[:len(values)]
		}
		n, err := r.Read(values[len(values):cap(values)])
		values = values[:len(values)+n]
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			return values, err
		}
	}
}

// Copy writes the values read from r to w until r reaches the end of the
// stream, returning the number of values written.
func Copy[T any](w Writer[T], r Reader[T]) (int64, error) {
	var buf [32]T
	var total int64
	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			wn, werr := w.Write(buf[:n])
			total += int64(wn)
			if werr != nil {
				return total, werr
			}
		}
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			return total, err
		}
	}
}
