// Package diag defines the diagnostic sink the rest of the compiler
// reports through, in place of the original compiler's free functions
// that printed straight to stdout.
package diag

import (
	"fmt"
	"io"

	"github.com/LensPlaysGames/corth/token"
)

// Sink receives log, warning, and error messages from every pipeline
// stage. Passing one in explicitly (rather than reaching for a package
// global) lets tests capture the exact sequence of diagnostics a
// compilation produced.
type Sink interface {
	Logf(format string, args ...any)
	LogAt(pos token.Position, format string, args ...any)
	Warnf(format string, args ...any)
	WarnAt(pos token.Position, format string, args ...any)
	Errorf(format string, args ...any)
	ErrorAt(pos token.Position, format string, args ...any)
}

// WriterSink writes messages to an io.Writer using the same prefix and
// position-suffix conventions as the original compiler's Errors.h:
// "[LOG]"/"[WRN]"/"[ERR]" prefixes, "LINE %d, COL %d" position suffixes.
type WriterSink struct {
	W io.Writer
}

// NewWriterSink returns a Sink that writes to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{W: w}
}

func (s *WriterSink) write(prefix, format string, args ...any) {
	fmt.Fprintf(s.W, "%s: %s\n", prefix, fmt.Sprintf(format, args...))
}

func (s *WriterSink) writeAt(prefix string, pos token.Position, format string, args ...any) {
	fmt.Fprintf(s.W, "%s LINE %d, COL %d: %s\n", prefix, pos.Line, pos.Col, fmt.Sprintf(format, args...))
}

// Logf reports an informational message with no source position.
func (s *WriterSink) Logf(format string, args ...any) { s.write("[LOG]", format, args...) }

// LogAt reports an informational message tied to a source position.
func (s *WriterSink) LogAt(pos token.Position, format string, args ...any) {
	s.writeAt("[LOG]", pos, format, args...)
}

// Warnf reports a recoverable problem with no source position.
func (s *WriterSink) Warnf(format string, args ...any) { s.write("[WRN]", format, args...) }

// WarnAt reports a recoverable problem tied to a source position.
func (s *WriterSink) WarnAt(pos token.Position, format string, args ...any) {
	s.writeAt("[WRN]", pos, format, args...)
}

// Errorf reports an error with no source position.
func (s *WriterSink) Errorf(format string, args ...any) { s.write("[ERR]", format, args...) }

// ErrorAt reports an error tied to a source position.
func (s *WriterSink) ErrorAt(pos token.Position, format string, args ...any) {
	s.writeAt("[ERR]", pos, format, args...)
}

// Message is one captured diagnostic, used by CollectSink so callers (and
// tests) can inspect what a compilation reported without parsing text.
type Message struct {
	Level    string
	Position *token.Position
	Text     string
}

// CollectSink accumulates diagnostics in memory instead of writing them
// anywhere, for use by callers (and tests) that want the message list
// rather than formatted text.
type CollectSink struct {
	Messages []Message
}

// NewCollectSink returns an empty CollectSink.
func NewCollectSink() *CollectSink {
	return &CollectSink{}
}

func (s *CollectSink) add(level string, pos *token.Position, format string, args ...any) {
	s.Messages = append(s.Messages, Message{Level: level, Position: pos, Text: fmt.Sprintf(format, args...)})
}

func (s *CollectSink) Logf(format string, args ...any) { s.add("LOG", nil, format, args...) }
func (s *CollectSink) LogAt(pos token.Position, format string, args ...any) {
	s.add("LOG", &pos, format, args...)
}
func (s *CollectSink) Warnf(format string, args ...any) { s.add("WRN", nil, format, args...) }
func (s *CollectSink) WarnAt(pos token.Position, format string, args ...any) {
	s.add("WRN", &pos, format, args...)
}
func (s *CollectSink) Errorf(format string, args ...any) { s.add("ERR", nil, format, args...) }
func (s *CollectSink) ErrorAt(pos token.Position, format string, args ...any) {
	s.add("ERR", &pos, format, args...)
}

// StackErrorAt reports the original compiler's canned stack-protection
// message (original_source/src/Errors.h's StackError), tied to a position.
func StackErrorAt(sink Sink, pos token.Position) {
	sink.ErrorAt(pos, "stack protection invoked (did you forget to put the operator after the operands, e.g. `5 5 +` not `5 + 5`)?")
}
