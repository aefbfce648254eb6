package monitoring

import (
	"fmt"
	"log"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger so tests can mute or capture simulation warnings.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Capture installs a logger that appends formatted lines to dst and returns a
// function restoring the previous logger.
func Capture(dst *[]string) (restore func()) {
	prev := Logf
	Logf = func(format string, v ...interface{}) {
		*dst = append(*dst, fmt.Sprintf(format, v...))
	}
	return func() { Logf = prev }
}
