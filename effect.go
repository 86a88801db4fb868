// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unwind

import (
	"code.hybscloud.com/kont"
)

// errorDispatcher is the structural interface of kont Error effects
// (Throw and Catch) specialised to Exception.
type errorDispatcher interface {
	DispatchError(ctx *kont.ErrorContext[Exception]) (kont.Resumed, bool)
}

// raiseHandler implements kont.Handler for Error effects carrying an
// Exception. A throw that escapes every kont Catch becomes a raise on
// the Thread: it transfers to the innermost region when one is active.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type raiseHandler[A any] struct {
	t      *Thread
	errCtx *kont.ErrorContext[Exception]
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h raiseHandler[A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	eop, ok := op.(errorDispatcher)
	if !ok {
		panic("unwind: unhandled effect in raiseHandler")
	}
	v, _ := eop.DispatchError(h.errCtx)
	if h.errCtx.HasErr {
		h.t.ThrowException(h.errCtx.Err)
		return kont.Left[Exception, A](h.errCtx.Err), false
	}
	return v, true
}

// Exec runs a Cont-world computation on t.
//
// Error effects carrying an Exception that are not caught inside the
// computation are raised on t. Inside a protected region they transfer
// to it and Exec does not return; otherwise the uncaught handler runs,
// and if it returns, Exec returns Left. Completion returns Right.
func Exec[R any](t *Thread, protocol kont.Eff[R]) kont.Either[Exception, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[Exception, R]](protocol, func(r R) kont.Either[Exception, R] {
		return kont.Right[Exception, R](r)
	})
	var errCtx kont.ErrorContext[Exception]
	h := raiseHandler[R]{t: t, errCtx: &errCtx}
	return kont.Handle(wrapped, h)
}

// ExecExpr runs an Expr-world computation on t with the semantics of Exec.
func ExecExpr[R any](t *Thread, protocol kont.Expr[R]) kont.Either[Exception, R] {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[Exception, R] {
		return kont.Right[Exception, R](r)
	})
	var errCtx kont.ErrorContext[Exception]
	h := raiseHandler[R]{t: t, errCtx: &errCtx}
	return kont.HandleExpr(wrapped, h)
}

// Fail is the Cont-world throw of an Exception, with the caller's
// coordinates.
func Fail[A any](code int, message string) kont.Eff[A] {
	return kont.ThrowError[Exception, A](newException(code, message, 1, true))
}

// ExprFail is the Expr-world throw of an Exception, with the caller's
// coordinates.
func ExprFail[A any](code int, message string) kont.Expr[A] {
	return kont.ExprThrowError[Exception, A](newException(code, message, 1, true))
}

// Attempt runs body in a protected region on t and returns its result
// as Right, or the record that left it as Left. Nothing propagates.
func Attempt[R any](t *Thread, body func() R) kont.Either[Exception, R] {
	var result kont.Either[Exception, R]
	t.Try(func() {
		result = kont.Right[Exception, R](body())
	}).CatchAll(func(ex Exception) {
		result = kont.Left[Exception, R](ex)
	}).End()
	return result
}
