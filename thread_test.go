// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unwind_test

import (
	"fmt"
	"sync"
	"testing"

	"code.hybscloud.com/unwind"
)

// mustPanic runs fn and returns the recovered value, failing if fn
// returns normally.
func mustPanic(t *testing.T, fn func()) (v any) {
	t.Helper()
	defer func() {
		v = recover()
		if v == nil {
			t.Fatal("expected panic")
		}
	}()
	fn()
	return nil
}

func TestThreadIsolation(t *testing.T) {
	const workers = 300
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			th := unwind.NewThread()
			code := 1000 + i
			msg := fmt.Sprintf("worker %d", i)
			var got unwind.Exception
			finally := 0
			th.Try(func() {
				th.Try(func() {
					th.Throw(code, msg)
				}).Catch(-1, nil).Finally(func() {
					finally++
				}).End()
			}).Catch(code, func(ex unwind.Exception) {
				got = ex
			}).Finally(func() {
				finally++
			}).End()
			if got.Code != code || got.Message != msg {
				errs <- fmt.Errorf("worker %d caught %+v", i, got)
				return
			}
			if finally != 2 {
				errs <- fmt.Errorf("worker %d ran %d finally blocks", i, finally)
				return
			}
			if th.Depth() != 0 {
				errs <- fmt.Errorf("worker %d left depth %d", i, th.Depth())
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestRethrowOutsideCatchPanics(t *testing.T) {
	th := unwind.NewThread()
	v := mustPanic(t, th.Rethrow)
	if v != "unwind: Rethrow can only be used inside a Catch or CatchAll body" {
		t.Fatalf("panic got %v", v)
	}

	// Inside a body, but not inside a handler.
	v = mustPanic(t, func() {
		th.Try(func() {
			th.Rethrow()
		}).CatchAll(nil).End()
	})
	if v != "unwind: Rethrow can only be used inside a Catch or CatchAll body" {
		t.Fatalf("panic got %v", v)
	}
	if th.Depth() != 0 {
		t.Fatalf("depth got %d, want 0", th.Depth())
	}
}

func TestCaughtInsideAndOutsideCatch(t *testing.T) {
	th := unwind.NewThread()
	v := mustPanic(t, func() { th.Caught() })
	if v != "unwind: Caught can only be used inside a Catch or CatchAll body" {
		t.Fatalf("panic got %v", v)
	}

	var got unwind.Exception
	th.Try(func() {
		th.Throw(errFileNotFound, "inspect me")
	}).Catch(errFileNotFound, func(unwind.Exception) {
		got = th.Caught()
	}).End()
	if got.Code != errFileNotFound || got.Message != "inspect me" {
		t.Fatalf("Caught got %+v", got)
	}
}

func TestForeignPanicPassesThrough(t *testing.T) {
	th := unwind.NewThread()
	caught, finally := false, false
	v := mustPanic(t, func() {
		th.Try(func() {
			th.Try(func() {
				panic("not an exception")
			}).CatchAll(func(unwind.Exception) {
				caught = true
			}).End()
		}).Finally(func() {
			finally = true
		}).End()
	})
	if v != "not an exception" {
		t.Fatalf("panic got %v", v)
	}
	if caught || finally {
		t.Fatalf("foreign panic must not run guards or Finally: caught=%v finally=%v", caught, finally)
	}
	if th.Depth() != 0 {
		t.Fatalf("depth got %d, want 0", th.Depth())
	}

	// The Thread remains usable.
	var got int
	th.Try(func() {
		th.Throw(errGenericFailure, "after")
	}).CatchAll(func(ex unwind.Exception) {
		got = ex.Code
	}).End()
	if got != errGenericFailure {
		t.Fatalf("caught code got %d", got)
	}
}

func TestForeignThreadTransferPanics(t *testing.T) {
	owner := unwind.NewThread()
	intruder := unwind.NewThread()

	v := mustPanic(t, func() {
		intruder.Try(func() {
			owner.Try(func() {
				// The transfer targets the intruder's region but unwinds
				// through a region owned by another Thread on the way.
				intruder.Throw(errGenericFailure, "wrong thread")
			}).End()
		}).End()
	})
	if v != "unwind: resumption point used from a foreign thread" {
		t.Fatalf("panic got %v", v)
	}
	if owner.Depth() != 0 || intruder.Depth() != 0 {
		t.Fatalf("depth got %d/%d, want 0/0", owner.Depth(), intruder.Depth())
	}
}
