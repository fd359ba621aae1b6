// Package yamlprint writes values as a stream of YAML documents.
package yamlprint

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/LunarG/VulkanTools-sub014/internal/stream"
)

// NewWriter returns a writer encoding each value as a YAML document. The
// documents are separated by "---" lines.
func NewWriter[T any](w io.Writer) stream.WriteCloser[T] {
	return &writer[T]{output: w}
}

type writer[T any] struct {
	output  io.Writer
	encoder *yaml.Encoder
}

func (w *writer[T]) Write(values []T) (int, error) {
	if w.encoder == nil && len(values) > 0 {
		w.encoder = yaml.NewEncoder(w.output)
		w.encoder.SetIndent(2)
	}
	for i := range values {
		if err := w.encoder.Encode(values[i]); err != nil {
			return i, err
		}
	}
	return len(values), nil
}

// Close flushes the documents. The yaml encoder refuses to close a stream
// which never started, so nothing is written for an empty stream.
func (w *writer[T]) Close() error {
	if w.encoder == nil {
		return nil
	}
	return w.encoder.Close()
}
