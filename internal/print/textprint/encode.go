package textprint

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"time"
)

type encodeFunc func(io.Writer, reflect.Value) error

var (
	timeType          = reflect.TypeOf(time.Time{})
	stringerType      = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

func encodeFuncOf(t reflect.Type) encodeFunc {
	switch {
	case t == timeType:
		return encodeTime
	case t.Implements(stringerType):
		return encodeStringer
	case t.Implements(textMarshalerType):
		return encodeText
	}
	switch t.Kind() {
	case reflect.Bool:
		return encodeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return encodeInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return encodeUint
	case reflect.Float32, reflect.Float64:
		return encodeFloat
	case reflect.String:
		return encodeString
	case reflect.Pointer:
		return encodeFuncOfPointer(t.Elem())
	case reflect.Slice:
		return encodeFuncOfSlice(t.Elem())
	default:
		panic("cannot print values of type " + t.String())
	}
}

func encodeFuncOfStructField(t reflect.Type, index []int) encodeFunc {
	encode := encodeFuncOf(t)
	return func(w io.Writer, v reflect.Value) error {
		return encode(w, v.FieldByIndex(index))
	}
}

// Times are printed in the local zone, zero times as a dash.
func encodeTime(w io.Writer, v reflect.Value) error {
	t := v.Interface().(time.Time)
	if t.IsZero() {
		_, err := io.WriteString(w, "-")
		return err
	}
	_, err := io.WriteString(w, t.Local().Format(time.DateTime))
	return err
}

func encodeStringer(w io.Writer, v reflect.Value) error {
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return encodeNone(w)
	}
	_, err := io.WriteString(w, v.Interface().(fmt.Stringer).String())
	return err
}

func encodeText(w io.Writer, v reflect.Value) error {
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return encodeNone(w)
	}
	b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func encodeBool(w io.Writer, v reflect.Value) error {
	s := "no"
	if v.Bool() {
		s = "yes"
	}
	_, err := io.WriteString(w, s)
	return err
}

func encodeInt(w io.Writer, v reflect.Value) error {
	_, err := io.WriteString(w, strconv.FormatInt(v.Int(), 10))
	return err
}

func encodeUint(w io.Writer, v reflect.Value) error {
	_, err := io.WriteString(w, strconv.FormatUint(v.Uint(), 10))
	return err
}

func encodeFloat(w io.Writer, v reflect.Value) error {
	_, err := io.WriteString(w, strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()))
	return err
}

func encodeString(w io.Writer, v reflect.Value) error {
	s := v.String()
	if s == "" {
		s = "-"
	}
	_, err := io.WriteString(w, s)
	return err
}

func encodeNone(w io.Writer) error {
	_, err := io.WriteString(w, "(none)")
	return err
}

func encodeFuncOfPointer(t reflect.Type) encodeFunc {
	encode := encodeFuncOf(t)
	return func(w io.Writer, v reflect.Value) error {
		if v.IsNil() {
			return encodeNone(w)
		}
		return encode(w, v.Elem())
	}
}

// Slices of scalars are printed on one line, separated by commas.
func encodeFuncOfSlice(t reflect.Type) encodeFunc {
	encode := encodeFuncOf(t)
	return func(w io.Writer, v reflect.Value) error {
		if v.Len() == 0 {
			_, err := io.WriteString(w, "-")
			return err
		}
		for i, n := 0, v.Len(); i < n; i++ {
			if i != 0 {
				if _, err := io.WriteString(w, ", "); err != nil {
					return err
				}
			}
			if err := encode(w, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
}
