// Package dlog is the decoder's diagnostic logger: a thin io.Writer
// wrapper a caller can swap for io.Discard (the default) or os.Stderr.
// It carries no level filtering beyond Trace/Info/Error because the
// decoder itself only ever reports the binary->text tokenizer fallback;
// tolerated mismatches are zero-filled without being logged.
package dlog

import (
	"fmt"
	"io"
	"os"
)

type Logger struct {
	w io.Writer
}

func New(w io.Writer) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{w: w}
}

// Discard never writes anywhere; it's the zero value's effective behavior.
var Discard = New(io.Discard)

// Stderr is a convenience logger for CLI tools and tests that want to
// see tolerated-mismatch traces on the console.
var Stderr = New(os.Stderr)

func (l *Logger) Tracef(format string, a ...interface{}) {
	if l == nil {
		return
	}
	fmt.Fprintf(l.w, "trace: "+format+"\n", a...)
}

func (l *Logger) Infof(format string, a ...interface{}) {
	if l == nil {
		return
	}
	fmt.Fprintf(l.w, "info: "+format+"\n", a...)
}

func (l *Logger) Errorf(format string, a ...interface{}) {
	if l == nil {
		return
	}
	fmt.Fprintf(l.w, "error: "+format+"\n", a...)
}
