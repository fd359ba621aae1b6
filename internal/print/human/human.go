// Package human contains types that parse and format values in forms that are
// convenient to type in configuration files and on the command line.
package human

import (
	"encoding"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Path represents a path on the file system.
//
// The special prefix "~/" is expanded to the home directory of the user that
// the program is running as.
type Path string

func (p Path) String() string {
	return string(p)
}

// Resolve returns the path with the "~/" prefix expanded.
func (p Path) Resolve() (string, error) {
	s := string(p)
	if len(s) >= 2 && s[0] == '~' && s[1] == os.PathSeparator {
		home, ok := os.LookupEnv("HOME")
		if !ok {
			u, err := user.Current()
			if err != nil {
				return "", err
			}
			home = u.HomeDir
		}
		s = filepath.Join(home, s[2:])
	}
	return s, nil
}

func (p *Path) Set(s string) error {
	path, err := Path(s).Resolve()
	if err != nil {
		return err
	}
	*p = Path(path)
	return nil
}

func (p *Path) UnmarshalText(b []byte) error {
	return p.Set(string(b))
}

// Duration is a time.Duration which also accepts day ("d") and week ("w")
// units, and a plain integer as a number of milliseconds.
type Duration time.Duration

const (
	Day  = Duration(24 * time.Hour)
	Week = 7 * Day
)

func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("malformed duration: empty string")
	}
	if n, err := strconv.ParseUint(s, 10, 63); err == nil {
		return Duration(time.Duration(n) * time.Millisecond), nil
	}
	for _, unit := range [...]struct {
		suffix string
		scale  Duration
	}{
		{"w", Week},
		{"d", Day},
	} {
		if v, ok := strings.CutSuffix(s, unit.suffix); ok {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return 0, fmt.Errorf("malformed duration: %s: %w", s, err)
			}
			return Duration(n * float64(unit.scale)), nil
		}
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("malformed duration: %w", err)
	}
	return Duration(d), nil
}

func (d Duration) String() string {
	switch {
	case d != 0 && d%Week == 0:
		return strconv.FormatInt(int64(d/Week), 10) + "w"
	case d != 0 && d%Day == 0:
		return strconv.FormatInt(int64(d/Day), 10) + "d"
	default:
		return time.Duration(d).String()
	}
}

func (d *Duration) Set(s string) error {
	v, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	return d.Set(string(b))
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n uint64
		if json.Unmarshal(b, &n) != nil {
			return err
		}
		s = strconv.FormatUint(n, 10)
	}
	return d.Set(s)
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(y *yaml.Node) error {
	return d.Set(y.Value)
}

// Bytes is a byte count, printed with binary unit prefixes.
type Bytes uint64

const (
	B   Bytes = 1
	KiB Bytes = 1024 * B
	MiB Bytes = 1024 * KiB
	GiB Bytes = 1024 * MiB
	TiB Bytes = 1024 * GiB
)

func (b Bytes) String() string {
	for _, unit := range [...]struct {
		scale Bytes
		name  string
	}{
		{TiB, "TiB"},
		{GiB, "GiB"},
		{MiB, "MiB"},
		{KiB, "KiB"},
	} {
		if b >= unit.scale {
			s := strconv.FormatFloat(float64(b)/float64(unit.scale), 'f', 2, 64)
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
			return s + " " + unit.name
		}
	}
	return strconv.FormatUint(uint64(b), 10) + " B"
}

func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

var (
	_ encoding.TextUnmarshaler = (*Path)(nil)
	_ flag.Value               = (*Path)(nil)
	_ flag.Value               = (*Duration)(nil)
	_ encoding.TextMarshaler   = Duration(0)
	_ json.Marshaler           = Duration(0)
	_ yaml.Marshaler           = Duration(0)
	_ yaml.Unmarshaler         = (*Duration)(nil)
	_ encoding.TextMarshaler   = Bytes(0)
)
