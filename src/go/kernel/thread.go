package kernel

import "unsafe"

// Thread creation and the manufactured initial stack frame. This pairs
// tightly with the assembly context-switch routine (asm/switch.S):
// changing the frame layout here without changing asm/switch.S's pop
// sequence corrupts every new thread's first resume.
const eflagsInterruptEnable = 0x00000202

// ThreadFunc is a thread entry point. It must never return: its initial
// stack frame has no caller to return to.
type ThreadFunc func()

// entryPointAddress extracts the code address of a zero-capture top-level
// function value. A Go func value is a pointer to a closure record whose
// first word is the entry PC; for a function with no captured variables
// that record is the bare code pointer, so this double-dereference yields
// the address the manufactured frame's final `ret` must land on.
func entryPointAddress(fn ThreadFunc) uintptr {
	return **(**uintptr)(unsafe.Pointer(&fn))
}

// CreateThread reserves the next arena slot, builds its initial stack
// frame, marks it READY, and appends it to the ready list.
//
// Failure modes: ErrNullPointer if fn is nil, ErrInvalidParameter if
// displayRow is out of [0, vgaHeight), ErrOutOfMemory if the arena is
// full, ErrInvalidState if the ready list no longer cycles back to its
// head.
func (a *ThreadArena) CreateThread(fn ThreadFunc, delay uint32, displayRow int) (int8, error) {
	if fn == nil {
		return noIndex, ErrNullPointer
	}
	if displayRow < 0 || displayRow >= vgaHeight {
		return noIndex, ErrInvalidParameter
	}
	if delay == 0 {
		delay = 1
	}
	if a.readyListCorrupt() {
		return noIndex, ErrInvalidState
	}

	idx, err := a.alloc()
	if err != nil {
		return noIndex, err
	}

	t := &a.threads[idx]
	t.DelayTicks = delay
	t.LastTick = 0
	t.Counter = 0
	t.DisplayRow = displayRow
	t.BlockReason = BlockNone
	t.nextBlocked = noIndex

	t.ESP = manufactureInitialFrame(&t.Stack, entryPointAddress(fn))
	t.State = ThreadReady

	a.appendReady(idx)
	return idx, nil
}

// manufactureInitialFrame writes, at the top of stack, the frame
// contextSwitch/initialContextSwitch expect to pop:
//  1. the entry-point address (the final `ret` target)
//  2. a flags word with IF and the reserved bit set (0x00000202)
//  3. seven zero words for the callee-save registers, popped in the order
//     EBP, EDI, ESI, EDX, ECX, EBX, EAX.
// It returns the resulting stack pointer as a real address of stack[top].
// On the 32-bit freestanding target that address is exactly what
// context_switch loads into ESP; on a 64-bit host test build the
// truncation to uint32 is lossy, but host tests never dereference ESP;
// they only assert on the frame bytes written into stack itself.
func manufactureInitialFrame(stack *[threadStackWords]uint32, entry uintptr) uint32 {
	top := threadStackWords

	top--
	stack[top] = uint32(entry)
	top--
	stack[top] = eflagsInterruptEnable
	// EBP, EDI, ESI, EDX, ECX, EBX, EAX, all zero, popped in that order.
	for i := 0; i < 7; i++ {
		top--
		stack[top] = 0
	}
	return uint32(uintptr(unsafe.Pointer(&stack[top])))
}
