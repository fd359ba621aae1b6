// Package format declares the descriptive documents produced about traces and
// replay sessions, as rendered by the describe and replay commands.
package format

import (
	"bytes"
	"crypto/sha256"
	"encoding"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UUID = uuid.UUID

type Hash struct {
	Algorithm, Digest string
}

func SHA256(b []byte) Hash {
	digest := sha256.Sum256(b)
	return Hash{
		Algorithm: "sha256",
		Digest:    hex.EncodeToString(digest[:]),
	}
}

func (h Hash) Short() string {
	s := h.Digest
	if len(s) > 12 {
		s = s[:12]
	}
	return s
}

func (h Hash) String() string {
	return h.Algorithm + ":" + h.Digest
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(b []byte) error {
	algorithm, digest, ok := strings.Cut(string(b), ":")
	if !ok {
		return fmt.Errorf("malformed hash: %q", b)
	}
	h.Algorithm, h.Digest = algorithm, digest
	return nil
}

var (
	_ encoding.TextMarshaler   = Hash{}
	_ encoding.TextUnmarshaler = (*Hash)(nil)
)

type MediaType string

const (
	TypeVkTraceInfo    MediaType = "application/vnd.vktrace.info.v1+json"
	TypeVkReplayReport MediaType = "application/vnd.vkreplay.report.v1+json"
)

func (m MediaType) String() string { return string(m) }

type Resource interface {
	ContentType() MediaType
}

type ResourceMarshaler interface {
	Resource
	MarshalResource() ([]byte, error)
}

type ResourceUnmarshaler interface {
	Resource
	UnmarshalResource([]byte) error
}

// GPU describes a physical device recorded in a trace header.
type GPU struct {
	Name          string `json:"name"          yaml:"name"`
	VendorID      uint32 `json:"vendorID"      yaml:"vendorID"`
	DeviceID      uint32 `json:"deviceID"      yaml:"deviceID"`
	DriverVersion uint32 `json:"driverVersion" yaml:"driverVersion"`
	APIVersion    uint32 `json:"apiVersion"    yaml:"apiVersion"`
}

// CallCount is the number of packets recorded for one API call.
type CallCount struct {
	Call  string `json:"call"  yaml:"call"  text:"CALL"`
	Count int    `json:"count" yaml:"count" text:"COUNT"`
}

// TraceInfo is the description of a trace file.
type TraceInfo struct {
	Path          string      `json:"path"                    yaml:"path"`
	Digest        Hash        `json:"digest"                  yaml:"digest"`
	Size          int64       `json:"size"                    yaml:"size"`
	Version       uint32      `json:"version"                 yaml:"version"`
	TracerVersion string      `json:"tracerVersion,omitempty" yaml:"tracerVersion,omitempty"`
	Platform      string      `json:"platform"                yaml:"platform"`
	PointerSize   int         `json:"pointerSize"             yaml:"pointerSize"`
	Endianness    string      `json:"endianness"              yaml:"endianness"`
	Compression   string      `json:"compression"             yaml:"compression"`
	GPUs          []GPU       `json:"gpus,omitempty"          yaml:"gpus,omitempty"`
	Packets       int         `json:"packets"                 yaml:"packets"`
	Portable      int         `json:"portable"                yaml:"portable"`
	Calls         []CallCount `json:"calls,omitempty"         yaml:"calls,omitempty"`
}

func (t *TraceInfo) ContentType() MediaType {
	return TypeVkTraceInfo
}

func (t *TraceInfo) MarshalResource() ([]byte, error) {
	return jsonEncode(t)
}

func (t *TraceInfo) UnmarshalResource(b []byte) error {
	return jsonDecode(b, t)
}

// Report summarizes a replay session.
type Report struct {
	Session            UUID          `json:"session"            yaml:"session"`
	Trace              string        `json:"trace"              yaml:"trace"`
	StartTime          time.Time     `json:"startTime"          yaml:"startTime"`
	Duration           time.Duration `json:"duration"           yaml:"duration"`
	CompatibilityMode  bool          `json:"compatibilityMode"  yaml:"compatibilityMode"`
	Packets            int           `json:"packets"            yaml:"packets"`
	Frames             int           `json:"frames"             yaml:"frames"`
	SkippedCalls       int           `json:"skippedCalls"       yaml:"skippedCalls"`
	Mismatches         int           `json:"mismatches"         yaml:"mismatches"`
	ValidationMessages int           `json:"validationMessages" yaml:"validationMessages"`
	Error              string        `json:"error,omitempty"    yaml:"error,omitempty"`
}

func (r *Report) ContentType() MediaType {
	return TypeVkReplayReport
}

func (r *Report) MarshalResource() ([]byte, error) {
	return jsonEncode(r)
}

func (r *Report) UnmarshalResource(b []byte) error {
	return jsonDecode(b, r)
}

func jsonEncode(value any) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	err := enc.Encode(value)
	return buf.Bytes(), err
}

func jsonDecode(b []byte, value any) error {
	return json.Unmarshal(b, &value)
}

var (
	_ ResourceMarshaler = (*TraceInfo)(nil)
	_ ResourceMarshaler = (*Report)(nil)

	_ ResourceUnmarshaler = (*TraceInfo)(nil)
	_ ResourceUnmarshaler = (*Report)(nil)
)
