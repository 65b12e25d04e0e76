package kernel

// Scheduler state machine, reentrancy guard, sleep/block primitives, and
// the timer/keyboard wake paths.

// isSchedulerLocked reports whether a scheduler invocation is already in
// progress; a re-entered call must return without effect.
func (k *Kernel) isSchedulerLocked() bool {
	k.irq.Disable()
	locked := k.lockCount > 0
	k.irq.Enable()
	return locked
}

// acquireSchedulerLock increments the reentrancy counter.
func (k *Kernel) acquireSchedulerLock() {
	k.irq.Disable()
	k.lockCount++
	k.irq.Enable()
}

func (k *Kernel) releaseSchedulerLock() {
	k.irq.Disable()
	k.lockCount--
	k.irq.Enable()
}

// checkAndWakeTimerThreads walks the blocked list and requeues every
// TIMER-reason entry whose deadline has elapsed. This is the only wake
// path for timer blocks.
func (k *Kernel) checkAndWakeTimerThreads() {
	k.irq.Disable()
	defer k.irq.Enable()

	prev := noIndex
	idx := k.Arena.BlockedHead()
	for idx != noIndex {
		t := k.Arena.Thread(idx)
		next := t.nextBlocked
		if t.BlockReason == BlockTimer && tickDue(k.systemTicks, t.WakeUpTick) {
			k.Arena.removeBlocked(idx, prev)
			t.State = ThreadReady
			t.BlockReason = BlockNone
			k.Arena.appendReady(idx)
			// prev is unchanged: idx was removed, next becomes the
			// candidate to examine at the same predecessor.
			idx = next
			continue
		}
		prev = idx
		idx = next
	}
}

// tickDue reports whether wake has been reached given the current tick.
// The signed-difference compare tolerates the 32-bit counter wrapping
// between the block and the deadline.
func tickDue(now, wake uint32) bool {
	return int32(now-wake) >= 0
}

// unblockKeyboardThreads requeues every KEYBOARD-reason blocked thread.
// Called from the IRQ1 dispatch path with interrupts already disabled,
// so it does not itself guard.
func (k *Kernel) unblockKeyboardThreads() {
	prev := noIndex
	idx := k.Arena.BlockedHead()
	for idx != noIndex {
		t := k.Arena.Thread(idx)
		next := t.nextBlocked
		if t.BlockReason == BlockKeyboard {
			k.Arena.removeBlocked(idx, prev)
			t.State = ThreadReady
			t.BlockReason = BlockNone
			k.Arena.appendReady(idx)
			idx = next
			continue
		}
		prev = idx
		idx = next
	}
}

// blockCurrentThread removes the current thread from the ready list and
// inserts it into the blocked list under the given reason. For TIMER
// blocks, data is the absolute wake-up tick.
func (k *Kernel) blockCurrentThread(reason BlockReason, data uint32) {
	k.irq.Disable()
	defer k.irq.Enable()

	if k.currentThread == noIndex {
		return
	}
	idx := k.currentThread
	k.Arena.removeReady(idx)
	t := k.Arena.Thread(idx)
	t.State = ThreadBlocked
	t.BlockReason = reason
	if reason == BlockTimer {
		t.WakeUpTick = data
	}
	k.Arena.insertBlocked(idx)
}

// Sleep blocks the current thread on TIMER for ticks and invokes the
// scheduler. Sleep(0) is a no-op and returns immediately; longer waits
// are capped at 65535 ticks.
func (k *Kernel) Sleep(ticks uint32) {
	if ticks == 0 {
		return
	}
	if ticks > 65535 {
		ticks = 65535
	}
	k.blockCurrentThread(BlockTimer, k.systemTicks+ticks)
	k.Schedule()
}

// GetCharBlocking pops one byte from the keyboard ring, blocking the
// current thread until one is available. Interrupts stay disabled from
// the failed pop attempt through the block call: a byte arriving in that
// window must find the reader already on the blocked list, or its wake
// would be lost.
func (k *Kernel) GetCharBlocking() byte {
	for {
		k.irq.Disable()
		if c, ok := k.kbd.GetChar(); ok {
			k.irq.Enable()
			return c
		}
		k.blockCurrentThread(BlockKeyboard, 0)
		k.Schedule()
	}
}

// Schedule runs one invocation of the scheduler state machine: wake due
// timer blocks, then pick the next thread and context-switch to it, or
// return if nothing else is runnable.
func (k *Kernel) Schedule() {
	if k.isSchedulerLocked() {
		return
	}
	k.acquireSchedulerLock()

	k.checkAndWakeTimerThreads()

	if k.Arena.ReadyHead() == noIndex {
		k.releaseSchedulerLock()
		return
	}

	if k.currentThread == noIndex {
		k.handleInitialThreadSelection()
		return // does not return in the freestanding build
	}

	current := k.Arena.Thread(k.currentThread)
	if current.State == ThreadBlocked {
		k.handleBlockedThreadScheduling()
		return
	}
	k.performThreadSwitch()
}

func (k *Kernel) handleInitialThreadSelection() {
	k.irq.Disable()
	next := k.Arena.ReadyHead()
	k.Arena.Thread(next).State = ThreadRunning
	k.currentThread = next
	k.irq.Enable()

	k.releaseSchedulerLock()
	k.switchInitial(k.Arena.Thread(next).ESP)
}

// handleBlockedThreadScheduling runs when the current thread blocked
// itself: the ready list is non-empty (checked by Schedule) and the
// blocked thread is off it, so the head is always a READY pick.
func (k *Kernel) handleBlockedThreadScheduling() {
	old := k.currentThread
	k.irq.Disable()
	head := k.Arena.ReadyHead()
	k.Arena.Thread(head).State = ThreadRunning
	k.currentThread = head
	k.irq.Enable()

	k.releaseSchedulerLock()
	oldTCB := k.Arena.Thread(old)
	k.switchOut(&oldTCB.ESP, k.Arena.Thread(head).ESP)
}

func (k *Kernel) performThreadSwitch() {
	old := k.currentThread
	start := k.Arena.Thread(old).nextReady
	next := noIndex
	idx := start
	for i := 0; i < MaxThreads; i++ {
		if idx == old {
			break
		}
		if k.Arena.Thread(idx).State == ThreadReady {
			next = idx
			break
		}
		idx = k.Arena.Thread(idx).nextReady
	}

	if next == noIndex {
		k.releaseSchedulerLock()
		return
	}

	k.irq.Disable()
	k.Arena.Thread(old).State = ThreadReady
	k.Arena.Thread(next).State = ThreadRunning
	k.currentThread = next
	k.irq.Enable()

	k.releaseSchedulerLock()
	oldTCB := k.Arena.Thread(old)
	k.switchOut(&oldTCB.ESP, k.Arena.Thread(next).ESP)
}
