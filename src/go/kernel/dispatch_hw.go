//go:build i386 && freestanding

package kernel

import _ "unsafe" // required for go:linkname

// Entry points called directly from the assembly stubs in asm/stubs.S.
// Each dispatches into the single active Kernel instance; see kernel.go's
// `active` doc comment for why a package-level pointer is used here
// instead of a threaded-through parameter.

//go:linkname timerIRQHandler timerIRQHandler
//go:nosplit
//go:noinline
func timerIRQHandler() {
	active.HandleTimerIRQ()
}

//go:linkname keyboardIRQHandler keyboardIRQHandler
//go:nosplit
//go:noinline
func keyboardIRQHandler() {
	active.HandleKeyboardIRQ()
}

//go:linkname exceptionHandler exceptionHandler
//go:nosplit
//go:noinline
func exceptionHandler(vector, errCode uint32) {
	active.HandleException(vector, errCode)
}

// dispatchKeepers pins the three handlers above against dead-code
// elimination: only the assembly stubs in asm/stubs.S call them.
var dispatchKeepers = []interface{}{timerIRQHandler, keyboardIRQHandler, exceptionHandler}
