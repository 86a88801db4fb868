// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unwind

// Precondition violations. These are caller bugs and are reported by
// panicking, never through the propagation protocol.
const (
	errRethrowOutsideCatch = "unwind: Rethrow can only be used inside a Catch or CatchAll body"
	errCaughtOutsideCatch  = "unwind: Caught can only be used inside a Catch or CatchAll body"
	errForeignThread       = "unwind: resumption point used from a foreign thread"
	errNotInnermost        = "unwind: transfer bypassed the innermost region"
	errFinallyTwice        = "unwind: Finally already set on this region"
)

// Thread is the per-goroutine state of the engine: the stack of active
// protected regions, the most recently raised record, and the
// thread-local uncaught handler.
//
// A Thread must only be used by the goroutine that created it. Transfers
// are panics, and a panic only unwinds the goroutine that raised it, so
// regions of different Threads never observe each other's records.
type Thread struct {
	serial      Serial
	top         *frame
	last        Exception
	uncaught    Handler
	coordinates bool
}

// Option configures a Thread.
type Option func(*Thread)

// WithCoordinates enables or disables call-site capture on Throw.
// Capture is enabled by default.
func WithCoordinates(on bool) Option {
	return func(t *Thread) {
		t.coordinates = on
	}
}

// WithUncaughtHandler installs a thread-local uncaught handler.
func WithUncaughtHandler(h Handler) Option {
	return func(t *Thread) {
		t.uncaught = h
	}
}

// NewThread creates an empty Thread for the calling goroutine.
func NewThread(opts ...Option) *Thread {
	t := &Thread{serial: nextSerial(), coordinates: true}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Serial returns the serial number assigned to this Thread.
func (t *Thread) Serial() Serial {
	return t.serial
}

// Depth returns the number of active protected regions.
func (t *Thread) Depth() int {
	n := 0
	for f := t.top; f != nil; f = f.prev {
		n++
	}
	return n
}

// Throw raises an exception with the given code and message.
//
// With an active region, control transfers to the innermost one and
// Throw does not return. Without one, the record goes to the uncaught
// handler registry; Throw returns only if that handler returns.
func (t *Thread) Throw(code int, message string) {
	t.ThrowException(newException(code, message, 1, t.coordinates))
}

// ThrowException raises a prebuilt record. Coordinates are taken from
// ex as is.
func (t *Thread) ThrowException(ex Exception) {
	t.last = ex
	f := t.top
	if f == nil {
		t.deliver(ex)
		return
	}
	t.transfer(f)
}

// Rethrow requests that the record matched by the current Catch or
// CatchAll body leaves the region. The transfer happens when the
// region exits, after Finally.
func (t *Thread) Rethrow() {
	f := t.top
	if f == nil || !f.catching {
		panic(errRethrowOutsideCatch)
	}
	f.state |= stateRethrow
}

// Caught returns the record matched by the current Catch or CatchAll body.
func (t *Thread) Caught() Exception {
	f := t.top
	if f == nil || !f.catching {
		panic(errCaughtOutsideCatch)
	}
	return f.caught
}

func (t *Thread) push() *frame {
	f := &frame{prev: t.top, owner: t}
	t.top = f
	return f
}

func (t *Thread) pop(f *frame) {
	if t.top != f {
		panic(errNotInnermost)
	}
	t.top = f.prev
}

// transfer jumps to f's resumption point. f is always the top of the
// stack, so it is live. A frame whose guard already matched records
// that a new error superseded the handled one.
func (t *Thread) transfer(f *frame) {
	if f.has(stateHandled) {
		f.state |= stateThrownWhileHandling
	}
	panic(f)
}

// resume runs fn with f as the resumption point and reports whether fn
// was left by a transfer aimed at f. Any other panic pops f and keeps
// unwinding; transfers aimed at frames of another Thread are rejected.
func (t *Thread) resume(f *frame, fn func()) (resumed bool) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		target, ok := v.(*frame)
		if ok && target == f {
			resumed = true
			return
		}
		t.pop(f)
		if !ok {
			panic(v)
		}
		if target.owner != t {
			panic(errForeignThread)
		}
		panic(errNotInnermost)
	}()
	fn()
	return false
}

// escalate forwards the pending record to the enclosing region, or to
// the handler registry when the stack is empty.
func (t *Thread) escalate() {
	if next := t.top; next != nil {
		t.transfer(next)
	}
	t.deliver(t.last)
}

// String is what the runtime prints if a transfer escapes every region,
// which only happens when a Thread is used from a goroutine that does
// not own it.
func (f *frame) String() string {
	return errForeignThread
}
