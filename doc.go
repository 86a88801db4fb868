// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package unwind provides structured non-local error propagation:
// protected regions, selective handlers, guaranteed cleanup, rethrow and
// uncaught-error escalation.
//
// Errors are flat records ([Exception]): an integer code, a message and
// optional call-site coordinates. There is no type hierarchy and no
// resumption after the raise point.
//
// # Architecture
//
//   - Thread: [Thread] holds one goroutine's stack of active regions, the
//     pending record and the thread-local uncaught handler. [NewThread]
//     creates one; it must not be shared across goroutines.
//   - Regions: [Thread.Try] describes a region; [Region.Catch],
//     [Region.CatchAll] and [Region.Finally] add guards and cleanup;
//     [Region.End] runs it. Guards match in order, first match wins.
//   - Transfer: [Thread.Throw] jumps to the innermost region, unwinding
//     the calls in between. A region left by an unmatched, rethrown or
//     superseding error forwards it to the enclosing region.
//   - Registry: a record that leaves the outermost region goes to the
//     thread-local handler ([Thread.SetUncaughtHandler]), else the
//     process-wide one ([SetUncaughtHandler]), else it is printed to
//     standard error and the process exits with the record's code.
//
// # Propagation Rule
//
// At region exit, after Finally, the error leaves the region when
//
//	(raised && !handled) || rethrowRequested || thrownWhileHandling
//
// so unmatched errors propagate, [Thread.Rethrow] propagates the caught
// record, and a new raise inside a Catch body replaces the caught record
// and propagates.
//
// # Integration
//
//   - Effects: [Exec] and [ExecExpr] run [code.hybscloud.com/kont]
//     computations on a Thread; Error effects carrying an [Exception]
//     ([Fail], [ExprFail]) become raises. [Attempt] turns a region into a
//     [code.hybscloud.com/kont.Either]. [Step] and [Advance] drive an
//     Expr computation one effect at a time.
//   - Goroutines: [Group] starts workers with their own Threads and
//     collects records that escape them.
//   - Logging: [LogHandler] reports uncaught records through zerolog.
//
// # Example
//
//	t := unwind.NewThread()
//	t.Try(func() {
//		t.Throw(101, "file.txt not found")
//	}).Catch(101, func(ex unwind.Exception) {
//		unwind.PrintException(os.Stderr, "Recovered", ex)
//	}).Finally(func() {
//		release()
//	}).End()
package unwind
