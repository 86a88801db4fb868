// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unwind

// frameState is the per-region state bitset consulted by the exit gate.
type frameState uint8

const (
	// stateThrown: the region was resumed by a transfer, not by fall-through.
	stateThrown frameState = 1 << iota
	// stateHandled: a guard matched. Set at most once per frame.
	stateHandled
	// stateRethrow: Rethrow was called from the matched body.
	stateRethrow
	// stateThrownWhileHandling: a new error arrived after a guard matched.
	stateThrownWhileHandling
)

// frame is the runtime record of one active protected region.
// It is owned by the Region.End call that pushed it and is linked
// to the frame that was on top of the Thread's stack at that time.
// A pointer to the frame is the panic value of a transfer: the
// region that pushed it is the only one allowed to recover it.
//
// pending is the record of the latest transfer that landed on the
// frame; it is what leaves the region, whatever regions nested in
// Finally leave in the Thread's slot.
type frame struct {
	state    frameState
	catching bool
	caught   Exception
	pending  Exception
	prev     *frame
	owner    *Thread
}

func (f *frame) has(s frameState) bool {
	return f.state&s != 0
}

// propagate reports whether the error must leave the region once
// Finally has run: unmatched errors, explicit rethrows, and errors
// raised after a guard matched.
func (f *frame) propagate() bool {
	return (f.has(stateThrown) && !f.has(stateHandled)) ||
		f.has(stateRethrow) ||
		f.has(stateThrownWhileHandling)
}
