//go:build i386 && freestanding

package kernel

import "unsafe"

// Addresses of the assembly trampolines in asm/stubs.S, reached as extern
// byte symbols and address-taken, the same go:linkname-to-a-label trick
// used for the context-switch pair in thread_hw.go; there is no other way
// for Go to learn the address of a hand-written asm label.
//
//go:linkname isrDivideErrorStub isr0
var isrDivideErrorStub byte

//go:linkname isrBreakpointStub isr3
var isrBreakpointStub byte

//go:linkname isrInvalidOpcodeStub isr6
var isrInvalidOpcodeStub byte

//go:linkname isrGeneralProtectionStub isr13
var isrGeneralProtectionStub byte

//go:linkname isrPageFaultStub isr14
var isrPageFaultStub byte

//go:linkname isrTimerStub isr_timer
var isrTimerStub byte

//go:linkname isrKeyboardStub isr_keyboard
var isrKeyboardStub byte

// KernelMain is the freestanding entry point, called from asm/boot.S once
// the loader has set up protected mode, segment selectors, and a usable
// stack. Interrupts are disabled on entry.
//
//go:nosplit
//go:noinline
func KernelMain() {
	k := NewKernel(hwPorts{}, hwFramebuffer{}, hwIRQGuard{})
	k.halt = hwHalter{}
	k.wireHardwareSwitch()
	active = k

	idt := NewIDT()
	stubs := StubAddresses{
		Exceptions: [5]uint32{
			uint32(uintptr(unsafe.Pointer(&isrDivideErrorStub))),
			uint32(uintptr(unsafe.Pointer(&isrBreakpointStub))),
			uint32(uintptr(unsafe.Pointer(&isrInvalidOpcodeStub))),
			uint32(uintptr(unsafe.Pointer(&isrGeneralProtectionStub))),
			uint32(uintptr(unsafe.Pointer(&isrPageFaultStub))),
		},
		Timer:    uint32(uintptr(unsafe.Pointer(&isrTimerStub))),
		Keyboard: uint32(uintptr(unsafe.Pointer(&isrKeyboardStub))),
	}

	k.BringUp(idt, stubs, (*IDT).Load)

	sti()

	if err := createApplicationThreads(k); err != nil {
		// Best-effort: continue with however many threads were created,
		// or halt outright if none were.
		if k.Arena.Count() == 0 {
			for {
				hlt()
			}
		}
	}

	k.Schedule() // does not return: transfers control to the first thread
	for {
		hlt()
	}
}

// keepers pins KernelMain against dead-code elimination: nothing in this
// package calls it, only asm/boot.S does, via the cmd/kernelentry seam.
var keepers = []interface{}{KernelMain}
