package textprint

import (
	"io"
	"reflect"
	"text/tabwriter"

	"github.com/LunarG/VulkanTools-sub014/internal/stream"
)

// NewDetailWriter returns a writer printing each value as a block of
// "name: value" lines, one per struct field. Fields holding slices of
// structs are printed as nested tables. Blocks are separated by an empty
// line.
func NewDetailWriter[T any](w io.Writer) stream.WriteCloser[T] {
	return &detailWriter[T]{output: w}
}

type detailWriter[T any] struct {
	output io.Writer
	count  int
}

func (d *detailWriter[T]) Write(values []T) (int, error) {
	for n := range values {
		if d.count++; d.count > 1 {
			if _, err := io.WriteString(d.output, "\n"); err != nil {
				return n, err
			}
		}
		if err := d.write(reflect.ValueOf(&values[n]).Elem()); err != nil {
			return n, err
		}
	}
	return len(values), nil
}

func (d *detailWriter[T]) write(v reflect.Value) error {
	v = indirect(v)
	tw := tabwriter.NewWriter(d.output, 0, 4, 1, ' ', 0)
	var tables []reflect.StructField

	for _, f := range reflect.VisibleFields(v.Type()) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		if f.Type.Kind() == reflect.Slice && f.Type.Elem().Kind() == reflect.Struct {
			tables = append(tables, f)
			continue
		}
		name := f.Name
		if tag := f.Tag.Get("text"); tag != "" {
			name = tag
		}
		if name == "-" {
			continue
		}
		if _, err := io.WriteString(tw, name+":\t"); err != nil {
			return err
		}
		if err := encodeFuncOf(f.Type)(tw, v.FieldByIndex(f.Index)); err != nil {
			return err
		}
		if _, err := io.WriteString(tw, "\n"); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, f := range tables {
		rows := v.FieldByIndex(f.Index)
		if rows.Len() == 0 {
			continue
		}
		if _, err := io.WriteString(d.output, "\n"); err != nil {
			return err
		}
		if err := writeRows(d.output, rows); err != nil {
			return err
		}
	}
	return nil
}

func writeRows(w io.Writer, rows reflect.Value) error {
	fields := fieldsOf(rows.Type().Elem())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range fields {
		if _, err := io.WriteString(tw, f.name+"\t"); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(tw, "\n"); err != nil {
		return err
	}
	for i, n := 0, rows.Len(); i < n; i++ {
		for _, f := range fields {
			if err := f.encode(tw, rows.Index(i)); err != nil {
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

func (d *detailWriter[T]) Close() error {
	return nil
}
