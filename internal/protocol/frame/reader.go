package frame

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danmuck/stompframe/internal/protocol"
)

var (
	ErrMalformedHeader      = errors.New("frame: malformed header line")
	ErrInvalidContentLength = errors.New("frame: invalid content-length")
	ErrMissingTerminator    = errors.New("frame: missing NUL terminator")
	ErrBodyTooLarge         = errors.New("frame: body too large")
	ErrTooManyHeaders       = errors.New("frame: too many headers")
	ErrInvalidEscape        = errors.New("frame: invalid escape sequence")
	ErrLineTooLong          = errors.New("frame: line too long")
)

// Limits constrains decode memory use. MaxLineBytes bounds a command
// or header line without its line ending; zero means the default.
type Limits struct {
	MaxHeaders   int
	MaxBodyBytes int
	MaxLineBytes int
}

func DefaultLimits() Limits {
	return Limits{
		MaxHeaders:   256,
		MaxBodyBytes: 8 * 1024 * 1024,
		MaxLineBytes: 64 * 1024,
	}
}

// Reader decodes frames produced by Encoder.
type Reader struct {
	r        *bufio.Reader
	limits   Limits
	unescape bool
}

type ReaderOption func(*Reader)

// WithUnescaping decodes STOMP 1.2 header escapes.
func WithUnescaping() ReaderOption {
	return func(r *Reader) {
		r.unescape = true
	}
}

func WithLimits(limits Limits) ReaderOption {
	return func(r *Reader) {
		r.limits = limits
	}
}

func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	rd := &Reader{
		r:      bufio.NewReader(r),
		limits: DefaultLimits(),
	}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

// Read returns the next frame. It returns io.EOF when the stream ends
// cleanly between frames. The content-length header is consumed as
// framing metadata and is not kept in the returned Header.
func (r *Reader) Read() (*Frame, error) {
	fr := &Frame{}

	// Command, skipping heart-beat EOLs.
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if line != "" {
			fr.Command = line
			break
		}
	}

	unescape := r.unescape && !escapeExempt(fr.Command)
	contentLength := -1
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, unexpected(err)
		}
		if line == "" {
			break
		}
		if fr.Header.Len() >= r.limits.MaxHeaders {
			return nil, ErrTooManyHeaders
		}
		p := strings.IndexByte(line, ':')
		if p < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
		}
		name, value := line[:p], line[p+1:]
		if unescape {
			if name, err = unescapeValue(name); err != nil {
				return nil, err
			}
			if value, err = unescapeValue(value); err != nil {
				return nil, err
			}
		}
		if name == protocol.HdrContentLength {
			if contentLength >= 0 {
				continue
			}
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidContentLength, value)
			}
			contentLength = n
			continue
		}
		// Repeated headers: the first occurrence wins.
		if !fr.Header.Contains(name) {
			fr.Header.Set(name, value)
		}
	}

	body, err := r.readBody(contentLength)
	if err != nil {
		return nil, err
	}
	fr.Body = body
	return fr, nil
}

func (r *Reader) readBody(contentLength int) ([]byte, error) {
	if contentLength >= 0 {
		if contentLength > r.limits.MaxBodyBytes {
			return nil, ErrBodyTooLarge
		}
		body := make([]byte, contentLength)
		if _, err := io.ReadFull(r.r, body); err != nil {
			return nil, unexpected(err)
		}
		c, err := r.r.ReadByte()
		if err != nil {
			return nil, unexpected(err)
		}
		if c != 0 {
			return nil, ErrMissingTerminator
		}
		if contentLength == 0 {
			return nil, nil
		}
		return body, nil
	}

	var body []byte
	for {
		chunk, err := r.r.ReadSlice(0)
		body = append(body, chunk...)
		if len(body) > r.limits.MaxBodyBytes+1 {
			return nil, ErrBodyTooLarge
		}
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingTerminator
		}
		return nil, err
	}
	body = body[:len(body)-1]
	if len(body) == 0 {
		return nil, nil
	}
	return body, nil
}

// readLine reads one line without its \n or \r\n ending. io.EOF is
// returned only when no bytes were read.
func (r *Reader) readLine() (string, error) {
	limit := r.limits.MaxLineBytes
	if limit <= 0 {
		limit = DefaultLimits().MaxLineBytes
	}
	var line []byte
	for {
		chunk, err := r.r.ReadSlice('\n')
		line = append(line, chunk...)
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			// Room for a trailing \r\n that has not arrived yet.
			if len(line) > limit+2 {
				return "", ErrLineTooLong
			}
			continue
		}
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	line = line[:len(line)-1]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	if len(line) > limit {
		return "", ErrLineTooLong
	}
	return string(line), nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
