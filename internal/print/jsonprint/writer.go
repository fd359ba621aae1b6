// Package jsonprint writes values as indented JSON. A single value is
// printed as one document, multiple values as an array.
package jsonprint

import (
	"encoding/json"
	"io"

	"github.com/LunarG/VulkanTools-sub014/internal/stream"
)

// NewWriter returns a writer buffering values until it is closed.
func NewWriter[T any](w io.Writer) stream.WriteCloser[T] {
	return &writer[T]{output: w}
}

type writer[T any] struct {
	output io.Writer
	values []T
}

func (w *writer[T]) Write(values []T) (int, error) {
	w.values = append(w.values, values...)
	return len(values), nil
}

func (w *writer[T]) Close() error {
	e := json.NewEncoder(w.output)
	e.SetEscapeHTML(false)
	e.SetIndent("", "  ")
	switch len(w.values) {
	case 0:
		return nil
	case 1:
		return e.Encode(w.values[0])
	default:
		return e.Encode(w.values)
	}
}
