// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unwind

import "io"

// SetDiagnostics redirects the default handler's output and returns a
// function restoring the previous writer.
func SetDiagnostics(w io.Writer) (restore func()) {
	old := diagnostics
	diagnostics = w
	return func() { diagnostics = old }
}

// SetExit replaces the default handler's process exit and returns a
// function restoring the previous one.
func SetExit(fn func(code int)) (restore func()) {
	old := exit
	exit = fn
	return func() { exit = old }
}
