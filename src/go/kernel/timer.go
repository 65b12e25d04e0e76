package kernel

// Timer (vector 32) and keyboard (vector 33) interrupt handlers.
//
// The EOI-before-scheduler ordering in HandleTimerIRQ is load-bearing:
// it lets the next tick latch in while a switch is in flight, and must
// not be reordered.

// HandleTimerIRQ is the timer handler body; the surrounding asm stub does
// the register save/restore and iret. It increments the tick counter and
// invokes the scheduler once per exhausted slice.
func (k *Kernel) HandleTimerIRQ() {
	k.pic.EOI(0)
	k.systemTicks++
	if k.systemTicks-k.lastSliceTick >= k.sliceTicks {
		k.lastSliceTick = k.systemTicks
		k.Schedule()
	}
}

// HandleKeyboardIRQ is the IRQ1 handler body: EOI, delegate scan-code
// decode to Keyboard, and re-ready every keyboard-blocked thread when a
// byte was produced. The wake happens here rather than in Keyboard so
// the driver stays free of scheduler dependencies.
func (k *Kernel) HandleKeyboardIRQ() {
	k.pic.EOI(1)
	if _, produced := k.kbd.HandleIRQ1(); produced {
		k.unblockKeyboardThreads()
	}
}

// HandleException is the default exception handler: log and return. No
// recovery is attempted; the offending thread typically refaults.
func (k *Kernel) HandleException(vector, errCode uint32) {
	k.log.Exception(vector, errCode)
}
