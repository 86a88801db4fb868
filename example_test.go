// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unwind_test

import (
	"fmt"
	"os"

	"code.hybscloud.com/unwind"
)

func Example() {
	th := unwind.NewThread(unwind.WithCoordinates(false))
	th.Try(func() {
		th.Throw(101, "file.txt not found")
	}).Catch(102, func(ex unwind.Exception) {
		fmt.Println("not reached")
	}).Catch(101, func(ex unwind.Exception) {
		unwind.PrintException(os.Stdout, "Recovered", ex)
	}).Finally(func() {
		fmt.Println("cleanup")
	}).End()
	// Output:
	// Recovered (101) caused by: "file.txt not found"
	// cleanup
}

func ExampleThread_Rethrow() {
	th := unwind.NewThread(unwind.WithCoordinates(false))
	th.Try(func() {
		th.Try(func() {
			th.Throw(7, "retry later")
		}).CatchAll(func(ex unwind.Exception) {
			fmt.Println("inner saw", ex.Code)
			th.Rethrow()
		}).End()
	}).CatchAll(func(ex unwind.Exception) {
		fmt.Println("outer saw", ex.Message)
	}).End()
	// Output:
	// inner saw 7
	// outer saw retry later
}
