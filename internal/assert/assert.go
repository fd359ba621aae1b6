// Package assert contains the assertions used by the tests of the module.
package assert

import (
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/exp/constraints"
)

func OK(t testing.TB, err error) {
	if err != nil {
		t.Helper()
		t.Fatal("error:", err)
	}
}

func Error(t testing.TB, got, want error) {
	if !errors.Is(got, want) {
		t.Helper()
		t.Fatalf("error mismatch\nwant = %s\ngot  = %s", want, got)
	}
}

// ErrorAs asserts that err wraps an error of type T and returns it.
func ErrorAs[T error](t testing.TB, err error) T {
	var target T
	if !errors.As(err, &target) {
		t.Helper()
		t.Fatalf("error type mismatch\nwant = %T\ngot  = %#v", target, err)
	}
	return target
}

func True(t testing.TB, value bool) {
	if !value {
		t.Helper()
		t.Fatal("value is false")
	}
}

func False(t testing.TB, value bool) {
	if value {
		t.Helper()
		t.Fatal("value is true")
	}
}

func Equal[T comparable](t testing.TB, got, want T) {
	if got != want {
		t.Helper()
		t.Fatalf("value mismatch\nwant = %#v\ngot  = %#v", want, got)
	}
}

func NotEqual[T comparable](t testing.TB, got, want T) {
	if got == want {
		t.Helper()
		t.Fatalf("value must differ from %#v", want)
	}
}

func EqualAll[T comparable](t testing.TB, got, want []T) {
	if len(got) != len(want) {
		t.Helper()
		t.Fatalf("number of values mismatch\nwant = %#v\ngot  = %#v", want, got)
	}

	for i, value := range want {
		if value != got[i] {
			t.Helper()
			t.Fatalf("value at index %d/%d mismatch\nwant = %#v\ngot  = %#v", i, len(want), value, got[i])
		}
	}
}

func Less[T constraints.Ordered](t testing.TB, less, more T) {
	if less >= more {
		t.Helper()
		t.Fatalf("value is too large: %v >= %v", less, more)
	}
}

func LessOrEqual[T constraints.Ordered](t testing.TB, less, more T) {
	if less > more {
		t.Helper()
		t.Fatalf("value is too large: %v > %v", less, more)
	}
}

func HasPrefix(t testing.TB, s, prefix string) {
	if !strings.HasPrefix(s, prefix) {
		t.Helper()
		t.Fatalf("prefix mismatch\nwant = %q\ngot  = %q", prefix, s)
	}
}

func Contains(t testing.TB, s, substr string) {
	if !strings.Contains(s, substr) {
		t.Helper()
		t.Fatalf("%q not found in %q", substr, s)
	}
}

// DeepEqual compares values structurally. Nil and empty slices or maps are
// considered equal.
func DeepEqual(t testing.TB, got, want any, opts ...cmp.Option) {
	opts = append(opts, cmpopts.EquateEmpty())
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Helper()
		t.Fatalf("value mismatch (-want +got):\n%s\ngot = %s", diff, spew.Sdump(got))
	}
}
