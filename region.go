// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unwind

// guard is one Catch or CatchAll alternative.
type guard struct {
	code   int
	all    bool
	handle func(ex Exception)
}

func (g guard) matches(ex Exception) bool {
	return g.all || g.code == ex.Code
}

// Region describes a protected region: a body, an ordered list of
// guards and an optional Finally. Nothing runs until End.
//
//	t.Try(func() {
//		t.Throw(101, "file.txt not found")
//	}).Catch(102, func(ex unwind.Exception) {
//		// not reached
//	}).Catch(101, func(ex unwind.Exception) {
//		// runs: ex.Code == 101
//	}).CatchAll(func(ex unwind.Exception) {
//		// not reached: first match wins
//	}).Finally(func() {
//		// always runs, once
//	}).End()
type Region struct {
	t       *Thread
	body    func()
	guards  []guard
	finally func()
}

// Try starts describing a protected region around body.
func (t *Thread) Try(body func()) *Region {
	return &Region{t: t, body: body}
}

// Catch adds a guard matching records whose code equals code.
// A nil handle swallows the record.
func (r *Region) Catch(code int, handle func(ex Exception)) *Region {
	r.guards = append(r.guards, guard{code: code, handle: handle})
	return r
}

// CatchAll adds a guard matching any record.
// A nil handle swallows the record.
func (r *Region) CatchAll(handle func(ex Exception)) *Region {
	r.guards = append(r.guards, guard{all: true, handle: handle})
	return r
}

// Finally sets the cleanup that runs exactly once on every exit path,
// before the error, if any, propagates.
func (r *Region) Finally(fn func()) *Region {
	if r.finally != nil {
		panic(errFinallyTwice)
	}
	r.finally = fn
	return r
}

// End runs the region and is its single exit gate.
//
// The body runs first. If it is left by a raise, the guards are tried
// in order and the first match runs. Finally then runs, the frame is
// popped, and the region either completes or forwards the pending
// record to the enclosing region or to the uncaught handler registry.
func (r *Region) End() {
	t := r.t
	f := t.push()
	if t.resume(f, r.body) {
		f.state |= stateThrown
		f.pending = t.last
		r.dispatch(f)
	}
	if r.finally != nil && t.resume(f, r.finally) {
		f.state |= stateThrown
		f.pending = t.last
	}
	t.pop(f)
	if !f.propagate() {
		return
	}
	t.last = f.pending
	t.escalate()
}

// dispatch runs the first guard matching the pending record.
// A raise inside the matched body lands back on f, which transfer has
// already marked as thrown while handling.
func (r *Region) dispatch(f *frame) {
	t := r.t
	ex := f.pending
	for _, g := range r.guards {
		if !g.matches(ex) {
			continue
		}
		f.state |= stateHandled
		f.caught = ex
		if g.handle != nil {
			f.catching = true
			if t.resume(f, func() { g.handle(ex) }) {
				f.pending = t.last
			}
			f.catching = false
		}
		return
	}
}
