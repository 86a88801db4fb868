// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unwind

import (
	"io"
	"os"

	"code.hybscloud.com/atomix"
	"github.com/rs/zerolog"
)

// Handler receives a record that reached the bottom of a Thread's
// region stack without being handled.
//
// There is no resumption after a registry delivery. If the handler
// returns, the Throw or End that delivered the record returns to its
// caller, and what happens next is the caller's responsibility.
type Handler func(ex Exception)

// uncaughtLabel prefixes the default diagnostic.
const uncaughtLabel = "Uncaught exception"

// uncaught is the process-wide handler slot. Last writer wins.
var uncaught atomix.Pointer[Handler]

// Default handler sinks, replaced in tests.
var (
	diagnostics io.Writer = os.Stderr
	exit                  = os.Exit
)

// SetUncaughtHandler installs the process-wide uncaught handler and
// returns the previous one. A nil h restores the default, which prints
// the record to standard error and exits with the record's code.
func SetUncaughtHandler(h Handler) Handler {
	var p *Handler
	if h != nil {
		p = &h
	}
	if old := uncaught.SwapAcqRel(p); old != nil {
		return *old
	}
	return nil
}

// SetUncaughtHandler installs the thread-local uncaught handler and
// returns the previous one. It takes precedence over the process-wide
// handler. A nil h removes the override.
func (t *Thread) SetUncaughtHandler(h Handler) Handler {
	old := t.uncaught
	t.uncaught = h
	return old
}

// deliver hands ex to the first installed handler: thread-local, then
// process-wide, then the default print-and-exit.
func (t *Thread) deliver(ex Exception) {
	if h := t.uncaught; h != nil {
		h(ex)
		return
	}
	if p := uncaught.LoadAcquire(); p != nil {
		(*p)(ex)
		return
	}
	PrintException(diagnostics, uncaughtLabel, ex)
	exit(ex.Code)
}

// LogHandler returns a Handler that logs uncaught records through
// logger at error level instead of terminating the process.
func LogHandler(logger zerolog.Logger) Handler {
	return func(ex Exception) {
		ev := logger.Error().Int("code", ex.Code).Str("cause", ex.Message)
		if ex.HasCoordinates() {
			ev = ev.Str("function", ex.Function).Str("file", ex.File).Int("line", ex.Line)
		}
		ev.Msg(uncaughtLabel)
	}
}
