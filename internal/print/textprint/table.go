// Package textprint writes values as human readable text: tables of rows for
// lists of values, and aligned "name: value" lines for single records.
//
// Column and field names are taken from the "text" struct tag, falling back
// to the Go field name. Fields tagged "-" are omitted.
package textprint

import (
	"io"
	"reflect"
	"text/tabwriter"

	"golang.org/x/exp/slices"

	"github.com/LunarG/VulkanTools-sub014/internal/stream"
)

type TableOption[T any] func(*tableWriter[T])

// Header enables or disables the header line of column names.
func Header[T any](enable bool) TableOption[T] {
	return func(t *tableWriter[T]) { t.header = enable }
}

// OrderBy sorts the rows before they are written.
func OrderBy[T any](cmp func(T, T) int) TableOption[T] {
	return func(t *tableWriter[T]) { t.orderBy = cmp }
}

// NewTableWriter returns a writer printing values as the rows of a table.
// Rows are buffered until the writer is closed so the columns can be
// aligned.
func NewTableWriter[T any](w io.Writer, opts ...TableOption[T]) stream.WriteCloser[T] {
	t := &tableWriter[T]{
		output: w,
		header: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type tableWriter[T any] struct {
	output  io.Writer
	values  []T
	header  bool
	orderBy func(T, T) int
}

func (t *tableWriter[T]) Write(values []T) (int, error) {
	t.values = append(t.values, values...)
	return len(values), nil
}

func (t *tableWriter[T]) Close() error {
	if t.orderBy != nil {
		slices.SortStableFunc(t.values, t.orderBy)
	}

	fields := fieldsOf(reflect.TypeOf(t.values).Elem())
	tw := tabwriter.NewWriter(t.output, 0, 4, 2, ' ', 0)

	if t.header {
		for _, f := range fields {
			if _, err := io.WriteString(tw, f.name+"\t"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(tw, "\n"); err != nil {
			return err
		}
	}

	for i := range t.values {
		v := indirect(reflect.ValueOf(&t.values[i]).Elem())
		for _, f := range fields {
			if err := f.encode(tw, v); err != nil {
				return err
			}
			if _, err := io.WriteString(tw, "\t"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(tw, "\n"); err != nil {
			return err
		}
	}

	return tw.Flush()
}

type field struct {
	name   string
	encode encodeFunc
}

func fieldsOf(t reflect.Type) []field {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var fields []field
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name := f.Name
		if tag := f.Tag.Get("text"); tag != "" {
			name = tag
		}
		if name == "-" {
			continue
		}
		fields = append(fields, field{
			name:   name,
			encode: encodeFuncOfStructField(f.Type, f.Index),
		})
	}
	return fields
}

func indirect(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Pointer {
		return v.Elem()
	}
	return v
}
