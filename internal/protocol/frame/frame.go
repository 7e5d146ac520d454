package frame

import (
	"bytes"
	"encoding/json"
	"strconv"
	"unicode/utf8"
)

// Frame is one STOMP frame: a command line, ordered headers and a body.
// A Frame is owned by a single caller; it is not safe for concurrent
// mutation.
type Frame struct {
	Command string
	Header  Header
	Body    []byte
}

// New builds a Frame. header and body are copied so later changes made
// by the caller do not leak into the frame.
func New(command string, header Header, body []byte) *Frame {
	fr := &Frame{
		Command: command,
		Header:  header.Clone(),
	}
	if len(body) > 0 {
		fr.Body = append([]byte(nil), body...)
	}
	return fr
}

// SetCommand replaces the command unconditionally.
func (f *Frame) SetCommand(command string) {
	f.Command = command
}

// SetHeader inserts or overwrites a header. Overwriting keeps the
// original position.
func (f *Frame) SetHeader(name, value string) {
	f.Header.Set(name, value)
}

// AppendToBody concatenates chunk onto the body with no delimiter.
func (f *Frame) AppendToBody(chunk []byte) {
	f.Body = append(f.Body, chunk...)
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	return New(f.Command, f.Header, f.Body)
}

// MarshalJSON renders the diagnostic snapshot
// {"command":...,"headers":{...},"body":...} with headers in insertion order.
// A body that is not valid UTF-8 is rendered in Go-quoted form (\xff
// escapes, without the outer quotes) so binary payloads stay readable.
func (f *Frame) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"command":`)
	if err := writeJSONString(&buf, f.Command); err != nil {
		return nil, err
	}
	buf.WriteString(`,"headers":{`)
	i := 0
	for name, value := range f.Header.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, value); err != nil {
			return nil, err
		}
		i++
	}
	buf.WriteString(`},"body":`)
	if err := writeJSONString(&buf, snapshotBody(f.Body)); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String returns the JSON snapshot of the frame.
func (f *Frame) String() string {
	b, err := f.MarshalJSON()
	if err != nil {
		return f.Command
	}
	return string(b)
}

func snapshotBody(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}
	quoted := strconv.Quote(string(body))
	return quoted[1 : len(quoted)-1]
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
