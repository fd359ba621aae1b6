package vkreplay

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrameRange is an inclusive range of frame numbers.
type FrameRange struct {
	First, Last uint64
}

// FrameSet is a set of frames written as a comma separated list of frame
// numbers and ranges, for example "1,5-10".
type FrameSet []FrameRange

func ParseFrameSet(s string) (FrameSet, error) {
	var set FrameSet
	if s = strings.TrimSpace(s); s == "" {
		return set, nil
	}
	for _, elem := range strings.Split(s, ",") {
		elem = strings.TrimSpace(elem)
		first, last, isRange := strings.Cut(elem, "-")
		lo, err := strconv.ParseUint(first, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed frame set: %q: %w", s, err)
		}
		hi := lo
		if isRange {
			if hi, err = strconv.ParseUint(last, 10, 64); err != nil {
				return nil, fmt.Errorf("malformed frame set: %q: %w", s, err)
			}
			if hi < lo {
				return nil, fmt.Errorf("malformed frame set: %q: range %s is reversed", s, elem)
			}
		}
		set = append(set, FrameRange{First: lo, Last: hi})
	}
	return set, nil
}

// Contains reports whether frame is part of the set.
func (f FrameSet) Contains(frame uint64) bool {
	for _, r := range f {
		if frame >= r.First && frame <= r.Last {
			return true
		}
	}
	return false
}

func (f FrameSet) String() string {
	elems := make([]string, len(f))
	for i, r := range f {
		if r.First == r.Last {
			elems[i] = strconv.FormatUint(r.First, 10)
		} else {
			elems[i] = fmt.Sprintf("%d-%d", r.First, r.Last)
		}
	}
	return strings.Join(elems, ",")
}

func (f *FrameSet) Set(s string) error {
	set, err := ParseFrameSet(s)
	if err != nil {
		return err
	}
	*f = set
	return nil
}

func (f FrameSet) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *FrameSet) UnmarshalText(b []byte) error {
	return f.Set(string(b))
}

func (f FrameSet) MarshalYAML() (any, error) {
	return f.String(), nil
}

func (f *FrameSet) UnmarshalYAML(node *yaml.Node) error {
	return f.Set(node.Value)
}
