package frame

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/danmuck/stompframe/internal/protocol"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyCommand   = errors.New("frame: empty command")
	ErrInvalidCommand = errors.New("frame: command contains line break")
)

// Encoder writes frames to a sink, one Write call per wire segment:
// command line, each header line, content-length line, blank line,
// body and NUL terminator.
type Encoder struct {
	w      io.Writer
	escape bool
}

type EncoderOption func(*Encoder)

// WithEscaping enables STOMP 1.2 header escaping. Without it header
// names and values are written verbatim.
func WithEscaping() EncoderOption {
	return func(e *Encoder) {
		e.escape = true
	}
}

func NewEncoder(w io.Writer, opts ...EncoderOption) *Encoder {
	e := &Encoder{w: w}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes fr. A blank command fails before anything reaches the
// sink. Sink errors are returned as-is and stop the sequence.
func (e *Encoder) Encode(fr *Frame) error {
	if strings.TrimSpace(fr.Command) == "" {
		return ErrEmptyCommand
	}
	if strings.ContainsAny(fr.Command, "\r\n") {
		return ErrInvalidCommand
	}
	escape := e.escape && !escapeExempt(fr.Command)

	if _, err := io.WriteString(e.w, fr.Command+"\n"); err != nil {
		return err
	}
	for name, value := range fr.Header.All() {
		// content-length is computed below from the current body.
		if name == protocol.HdrContentLength {
			continue
		}
		if escape {
			name, value = escapeValue(name), escapeValue(value)
		}
		if _, err := io.WriteString(e.w, name+":"+value+"\n"); err != nil {
			return err
		}
	}
	length := len(fr.Body)
	if _, err := io.WriteString(e.w, protocol.HdrContentLength+":"+strconv.Itoa(length)+"\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(e.w, "\n"); err != nil {
		return err
	}
	if _, err := e.w.Write(fr.Body); err != nil {
		return err
	}
	if _, err := e.w.Write([]byte{0}); err != nil {
		return err
	}
	log.Debug().
		Str("command", fr.Command).
		Int("headers", fr.Header.Len()).
		Int("content_length", length).
		Bool("escaped", escape).
		Msg("frame.Encode")
	return nil
}

// Send encodes the frame onto w with legacy, unescaped headers.
func (f *Frame) Send(w io.Writer) error {
	return NewEncoder(w).Encode(f)
}

// Bytes returns the encoded frame.
func (f *Frame) Bytes(opts ...EncoderOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, opts...).Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
