// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unwind

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Exception is the record carried by a raise: a caller-defined code,
// a message, and optional call-site coordinates.
//
// Records are values. The Thread keeps a copy of the most recent one,
// and the next raise overwrites it; records are never merged.
type Exception struct {
	Code     int
	Message  string
	Function string
	File     string
	Line     int
}

// Error implements error so records can be aggregated and matched
// with errors.As.
func (e Exception) Error() string {
	return fmt.Sprintf("exception %d: %s", e.Code, e.Message)
}

// HasCoordinates reports whether the record carries call-site coordinates.
func (e Exception) HasCoordinates() bool {
	return e.File != ""
}

// Format returns the diagnostic text for e under label.
//
//	<label> (<code>) caused by: "<message>"
//		at <function>(<file>:<line>)
//
// The second line is present only when the record has coordinates.
func (e Exception) Format(label string) string {
	var b strings.Builder
	writeException(&b, label, e)
	return b.String()
}

// PrintException writes the diagnostic text for ex to w.
// The format is stable and safe for log scraping.
func PrintException(w io.Writer, label string, ex Exception) {
	writeException(w, label, ex)
}

func writeException(w io.Writer, label string, ex Exception) {
	if ex.HasCoordinates() {
		fmt.Fprintf(w, "%s (%d) caused by: \"%s\"\n\tat %s(%s:%d)\n", label, ex.Code, ex.Message, ex.Function, ex.File, ex.Line)
		return
	}
	fmt.Fprintf(w, "%s (%d) caused by: \"%s\"\n", label, ex.Code, ex.Message)
}

// newException builds a record, capturing the coordinates of the frame
// skip levels above its caller when capture is set.
func newException(code int, message string, skip int, capture bool) Exception {
	ex := Exception{Code: code, Message: message}
	if !capture {
		return ex
	}
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ex
	}
	ex.File = file
	ex.Line = line
	if fn := runtime.FuncForPC(pc); fn != nil {
		ex.Function = shortFuncName(fn.Name())
	}
	return ex
}

// shortFuncName strips the import path, keeping "pkg.Func".
func shortFuncName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}
