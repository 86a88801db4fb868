// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unwind

import (
	"code.hybscloud.com/kont"
)

// Step evaluates an Expr-world computation until the first effect
// suspension. Returns (Right result, nil) on completion, or
// (zero, suspension) if an effect is pending.
func Step[R any](protocol kont.Expr[R]) (kont.Either[Exception, R], *kont.Suspension[kont.Either[Exception, R]]) {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[Exception, R] {
		return kont.Right[Exception, R](r)
	})
	return kont.StepExpr(wrapped)
}

// Advance dispatches the suspended Error effect on t.
//
// A catch resumes the computation. A throw discards the suspension and
// raises the record on t: inside a protected region Advance does not
// return; otherwise it returns Left once the uncaught handler returns.
func Advance[R any](t *Thread, susp *kont.Suspension[kont.Either[Exception, R]]) (kont.Either[Exception, R], *kont.Suspension[kont.Either[Exception, R]]) {
	eop, ok := susp.Op().(errorDispatcher)
	if !ok {
		panic("unwind: unhandled effect in Advance")
	}
	var ctx kont.ErrorContext[Exception]
	v, _ := eop.DispatchError(&ctx)
	if ctx.HasErr {
		susp.Discard()
		t.ThrowException(ctx.Err)
		return kont.Left[Exception, R](ctx.Err), nil
	}
	return susp.Resume(v)
}
