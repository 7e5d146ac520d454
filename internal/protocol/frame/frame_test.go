package frame

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/stompframe/internal/testutil/testlog"
)

// recordingSink keeps every Write call as a separate segment.
type recordingSink struct {
	segments []string
}

func (s *recordingSink) Write(p []byte) (int, error) {
	s.segments = append(s.segments, string(p))
	return len(p), nil
}

type failingSink struct {
	after int
	calls int
	err   error
}

func (s *failingSink) Write(p []byte) (int, error) {
	s.calls++
	if s.calls > s.after {
		return 0, s.err
	}
	return len(p), nil
}

func makeFrame() *Frame {
	return New("HITME", NewHeader("header1", "value1", "header2", "value2"), []byte("wewp de doo"))
}

func TestFrameMutators(t *testing.T) {
	testlog.Start(t)
	fr := makeFrame()
	if fr.Command != "HITME" {
		t.Fatalf("command mismatch: %q", fr.Command)
	}

	fr.SetCommand("SOMETHINGELSE")
	if fr.Command != "SOMETHINGELSE" {
		t.Fatalf("setCommand: %q", fr.Command)
	}

	fr.SetHeader("header2", "newvalue")
	if v, _ := fr.Header.Get("header2"); v != "newvalue" {
		t.Fatalf("setHeader overwrite: %q", v)
	}
	fr.SetHeader("new-header", "blah")
	if v, _ := fr.Header.Get("new-header"); v != "blah" {
		t.Fatalf("setHeader insert: %q", v)
	}

	fr.AppendToBody([]byte("pip pop"))
	if string(fr.Body) != "wewp de doopip pop" {
		t.Fatalf("appendToBody: %q", string(fr.Body))
	}
}

func TestSetHeaderKeepsPosition(t *testing.T) {
	testlog.Start(t)
	fr := makeFrame()
	fr.SetHeader("header1", "v1")
	fr.SetHeader("header1", "v2")
	names := fr.Header.Names()
	if len(names) != 2 || names[0] != "header1" || names[1] != "header2" {
		t.Fatalf("unexpected order: %v", names)
	}
	if v, _ := fr.Header.Get("header1"); v != "v2" {
		t.Fatalf("expected v2, got %q", v)
	}
}

func TestAppendToBodyMatchesConcatenation(t *testing.T) {
	testlog.Start(t)
	a := New("SEND", NewHeader(), []byte("base"))
	a.AppendToBody([]byte("-a"))
	a.AppendToBody([]byte("-b"))
	b := New("SEND", NewHeader(), []byte("base-a-b"))
	if !bytes.Equal(a.Body, b.Body) {
		t.Fatalf("body mismatch: %q vs %q", a.Body, b.Body)
	}
}

func TestNewCopiesInputs(t *testing.T) {
	testlog.Start(t)
	h := NewHeader("a", "1")
	body := []byte("body")
	fr := New("SEND", h, body)
	h.Set("a", "changed")
	h.Set("b", "2")
	body[0] = 'X'
	if v, _ := fr.Header.Get("a"); v != "1" {
		t.Fatalf("header aliased: %q", v)
	}
	if fr.Header.Contains("b") {
		t.Fatalf("header aliased: unexpected b")
	}
	if string(fr.Body) != "body" {
		t.Fatalf("body aliased: %q", fr.Body)
	}
}

func TestHeaderDelKeepsOrder(t *testing.T) {
	testlog.Start(t)
	h := NewHeader("a", "1", "b", "2", "c", "3")
	h.Del("b")
	h.Del("missing")
	names := h.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "c" {
		t.Fatalf("unexpected order after delete: %v", names)
	}
	h.Set("b", "4")
	names = h.Names()
	if names[2] != "b" {
		t.Fatalf("reinserted header should go last: %v", names)
	}
}

func TestSendSegments(t *testing.T) {
	testlog.Start(t)
	sink := &recordingSink{}
	if err := makeFrame().Send(sink); err != nil {
		t.Fatalf("send: %v", err)
	}
	want := []string{
		"HITME\n",
		"header1:value1\n",
		"header2:value2\n",
		"content-length:11\n",
		"\n",
		"wewp de doo",
		"\u0000",
	}
	if len(sink.segments) != len(want) {
		t.Fatalf("segment count: got=%d want=%d (%q)", len(sink.segments), len(want), sink.segments)
	}
	for i := range want {
		if sink.segments[i] != want[i] {
			t.Fatalf("segment %d: got=%q want=%q", i, sink.segments[i], want[i])
		}
	}
}

func TestSendRecomputesContentLength(t *testing.T) {
	testlog.Start(t)
	fr := New("SEND", NewHeader("content-length", "3", "destination", "/queue/a"), []byte("abc"))
	fr.AppendToBody([]byte("defg"))
	sink := &recordingSink{}
	if err := fr.Send(sink); err != nil {
		t.Fatalf("send: %v", err)
	}
	want := []string{"SEND\n", "destination:/queue/a\n", "content-length:7\n", "\n", "abcdefg", "\x00"}
	if len(sink.segments) != len(want) {
		t.Fatalf("segments: %q", sink.segments)
	}
	for i := range want {
		if sink.segments[i] != want[i] {
			t.Fatalf("segment %d: got=%q want=%q", i, sink.segments[i], want[i])
		}
	}
}

func TestSendContentLengthCountsBytes(t *testing.T) {
	testlog.Start(t)
	fr := New("SEND", NewHeader(), []byte("héllo"))
	out, err := fr.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	if !bytes.Contains(out, []byte("content-length:6\n")) {
		t.Fatalf("expected byte length 6: %q", out)
	}
}

func TestSendEmptyCommandWritesNothing(t *testing.T) {
	testlog.Start(t)
	for _, cmd := range []string{"", "  "} {
		sink := &recordingSink{}
		err := New(cmd, NewHeader("a", "b"), nil).Send(sink)
		if !errors.Is(err, ErrEmptyCommand) {
			t.Fatalf("expected ErrEmptyCommand for %q, got %v", cmd, err)
		}
		if len(sink.segments) != 0 {
			t.Fatalf("expected no writes, got %q", sink.segments)
		}
	}
	if err := New("SE\nND", NewHeader(), nil).Send(&recordingSink{}); !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("expected ErrInvalidCommand, got %v", err)
	}
}

func TestSendPropagatesSinkError(t *testing.T) {
	testlog.Start(t)
	boom := errors.New("boom")
	sink := &failingSink{after: 2, err: boom}
	err := makeFrame().Send(sink)
	if !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if sink.calls != 3 {
		t.Fatalf("expected encoding to stop at the failing write, calls=%d", sink.calls)
	}
}

func TestSendLegacyDoesNotEscape(t *testing.T) {
	testlog.Start(t)
	fr := New("SEND", NewHeader("x-code", "abc:def"), []byte("body"))
	out, err := fr.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	want := "SEND\nx-code:abc:def\ncontent-length:4\n\nbody\x00"
	if string(out) != want {
		t.Fatalf("got=%q want=%q", out, want)
	}
}

func TestEncoderEscaping(t *testing.T) {
	testlog.Start(t)
	fr := New("SEND", NewHeader("x-code", "abc:def\n\\oop"), []byte("body"))
	out, err := fr.Bytes(WithEscaping())
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	want := "SEND\nx-code:abc\\cdef\\n\\\\oop\ncontent-length:4\n\nbody\x00"
	if string(out) != want {
		t.Fatalf("got=%q want=%q", out, want)
	}

	connect := New("CONNECT", NewHeader("login", "a:b"), nil)
	out, err = connect.Bytes(WithEscaping())
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	if !bytes.Contains(out, []byte("login:a:b\n")) {
		t.Fatalf("CONNECT headers must not be escaped: %q", out)
	}
}

func TestFrameSnapshot(t *testing.T) {
	testlog.Start(t)
	fr := New("COMMAND", NewHeader("blah", "valueExists", "regexheader", "<x>"), nil)
	want := `{"command":"COMMAND","headers":{"blah":"valueExists","regexheader":"<x>"},"body":""}`
	if got := fr.String(); got != want {
		t.Fatalf("snapshot: got=%s want=%s", got, want)
	}
}

func TestHeaderCopyAliasesFrame(t *testing.T) {
	testlog.Start(t)
	fr := New("SEND", NewHeader("a", "1"), []byte("x"))
	h := fr.Header
	h.Set("destination", "/queue/a")
	fr.SetHeader("destination", "/queue/b")

	names := fr.Header.Names()
	if len(names) != 2 || names[1] != "destination" {
		t.Fatalf("copy did not alias header order: %v", names)
	}
	out, err := fr.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	want := "SEND\na:1\ndestination:/queue/b\ncontent-length:1\n\nx\x00"
	if string(out) != want {
		t.Fatalf("got=%q want=%q", out, want)
	}

	clone := fr.Header.Clone()
	clone.Set("x-only-clone", "1")
	if fr.Header.Contains("x-only-clone") {
		t.Fatalf("Clone must not alias")
	}
}

func TestZeroHeader(t *testing.T) {
	testlog.Start(t)
	var fr Frame
	fr.SetCommand("ACK")
	if fr.Header.Len() != 0 || fr.Header.Contains("id") {
		t.Fatalf("zero header should be empty")
	}
	fr.SetHeader("id", "1")
	if v, ok := fr.Header.Get("id"); !ok || v != "1" {
		t.Fatalf("set on zero header: %q %v", v, ok)
	}
}

func TestFrameSnapshotBinaryBody(t *testing.T) {
	testlog.Start(t)
	fr := New("SEND", NewHeader(), []byte("ab\xffc"))
	want := `{"command":"SEND","headers":{},"body":"ab\\xffc"}`
	if got := fr.String(); got != want {
		t.Fatalf("snapshot: got=%s want=%s", got, want)
	}
}
