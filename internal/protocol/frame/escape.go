package frame

import (
	"strings"

	"github.com/danmuck/stompframe/internal/protocol"
)

// escapeExempt reports whether header escaping is skipped for cmd.
// STOMP 1.2 leaves CONNECT and CONNECTED headers unescaped.
func escapeExempt(cmd string) bool {
	return cmd == protocol.CmdConnect || cmd == protocol.CmdConnected
}

func escapeValue(value string) string {
	if !strings.ContainsAny(value, "\\\r\n:") {
		return value
	}
	var b strings.Builder
	b.Grow(len(value) + 8)
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case ':':
			b.WriteString(`\c`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func unescapeValue(value string) (string, error) {
	if strings.IndexByte(value, '\\') < 0 {
		return value, nil
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(value) {
			return "", ErrInvalidEscape
		}
		i++
		switch value[i] {
		case '\\':
			b.WriteByte('\\')
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		case 'c':
			b.WriteByte(':')
		default:
			return "", ErrInvalidEscape
		}
	}
	return b.String(), nil
}
