// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unwind

import (
	"runtime"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"github.com/hashicorp/go-multierror"
)

// escalationCapacity bounds the records queued per worker. A worker
// escalates at most one record, since escalation ends it.
const escalationCapacity = 4

// worker is the supervisor's view of one goroutine started by Group.Go.
// The worker produces into escalated; the supervisor consumes.
type worker struct {
	escalated lfq.SPSC[Exception]
}

// escalate queues ex for the supervisor and ends the worker goroutine,
// the per-goroutine counterpart of the default handler's process exit.
func (w *worker) escalate(ex Exception) {
	if err := w.escalated.Enqueue(&ex); err != nil {
		panic("unwind: escalation queue full")
	}
	runtime.Goexit()
}

// Group runs functions on their own goroutines, each with its own
// Thread, and collects the records that escape them.
//
// Every worker Thread has a thread-local uncaught handler that hands the
// record to the Group and ends the worker, so an uncaught raise in a
// worker never reaches the process-wide handler. Go and Wait must be
// called from the same goroutine.
type Group struct {
	opts     []Option
	workers  []*worker
	finished atomix.Uint32
}

// NewGroup creates a Group whose worker Threads are built with opts.
// A WithUncaughtHandler option is overridden by the Group's own handler.
func NewGroup(opts ...Option) *Group {
	return &Group{opts: opts}
}

// Go starts fn on a new goroutine with a fresh Thread.
func (g *Group) Go(fn func(t *Thread)) {
	w := &worker{}
	w.escalated.Init(escalationCapacity)
	g.workers = append(g.workers, w)
	go func() {
		defer g.finished.Add(1)
		t := NewThread(g.opts...)
		t.SetUncaughtHandler(w.escalate)
		fn(t)
	}()
}

// Wait blocks until every worker started so far has finished and
// returns the escalated records, in start order, as a
// *multierror.Error of Exception values, or nil if none escaped.
// Waits with adaptive backoff (iox.Backoff), without channels.
func (g *Group) Wait() error {
	var bo iox.Backoff
	n := uint32(len(g.workers))
	for g.finished.Load() < n {
		bo.Wait()
	}
	var result *multierror.Error
	for _, w := range g.workers {
		for {
			ex, err := w.escalated.Dequeue()
			if err != nil {
				break
			}
			result = multierror.Append(result, ex)
		}
	}
	return result.ErrorOrNil()
}
