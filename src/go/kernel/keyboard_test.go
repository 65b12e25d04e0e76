package kernel

import "testing"

func TestConvertScancodeLowercaseAndShifted(t *testing.T) {
	if got := convertScancode(0x1E, false); got != 'a' {
		t.Fatalf("convertScancode(0x1E, false) = %q, want 'a'", got)
	}
	if got := convertScancode(0x1E, true); got != 'A' {
		t.Fatalf("convertScancode(0x1E, true) = %q, want 'A'", got)
	}
}

func TestConvertScancodeSpaceAndEnter(t *testing.T) {
	if got := convertScancode(0x39, false); got != ' ' {
		t.Fatalf("convertScancode(0x39, false) = %q, want space", got)
	}
	if got := convertScancode(0x39, true); got != ' ' {
		t.Fatalf("convertScancode(0x39, true) = %q, want space", got)
	}
	if got := convertScancode(kbScancodeEnter, false); got != 10 {
		t.Fatalf("convertScancode(enter) = %q, want LF", got)
	}
}

func TestConvertScancodeOutOfRangeIsZero(t *testing.T) {
	if got := convertScancode(0xFF, false); got != 0 {
		t.Fatalf("convertScancode(0xFF, false) = %q, want 0", got)
	}
}

func TestConvertScancodeUnmappedSlotIsZero(t *testing.T) {
	if got := convertScancode(0x1D, false); got != 0 {
		t.Fatalf("unmapped slot 0x1D = %q, want 0", got)
	}
}

func TestHandleIRQ1SpuriousWhenOutputNotFull(t *testing.T) {
	ports := newFakePorts()
	kb := NewKeyboard(ports, nil)

	ports.reads[kbStatusPort] = 0
	if _, produced := kb.HandleIRQ1(); produced {
		t.Fatalf("spurious IRQ1 (status empty) must not produce a byte")
	}
}

func TestHandleIRQ1DecodesMakeCodeAndPushesRing(t *testing.T) {
	ports := newFakePorts()
	kb := NewKeyboard(ports, nil)

	ports.reads[kbStatusPort] = kbStatusOutputFull
	ports.reads[kbDataPort] = 0x1E // 'a' make code
	ascii, produced := kb.HandleIRQ1()
	if !produced || ascii != 'a' {
		t.Fatalf("HandleIRQ1 = (%q, %v), want ('a', true)", ascii, produced)
	}

	c, ok := kb.GetChar()
	if !ok || c != 'a' {
		t.Fatalf("GetChar() = (%q, %v), want ('a', true)", c, ok)
	}
}

func TestHandleIRQ1ShiftMakeAndBreakTogglesState(t *testing.T) {
	ports := newFakePorts()
	kb := NewKeyboard(ports, nil)

	ports.reads[kbStatusPort] = kbStatusOutputFull
	ports.reads[kbDataPort] = kbScancodeLeftShift
	if _, produced := kb.HandleIRQ1(); produced {
		t.Fatalf("shift make-code must not itself produce a byte")
	}
	if !kb.shiftPressed {
		t.Fatalf("shiftPressed must be true after left-shift make-code")
	}

	ports.reads[kbDataPort] = 0x1E // 'a' while shifted
	ascii, produced := kb.HandleIRQ1()
	if !produced || ascii != 'A' {
		t.Fatalf("HandleIRQ1 shifted = (%q, %v), want ('A', true)", ascii, produced)
	}

	ports.reads[kbDataPort] = kbScancodeLeftShift | kbScancodeReleaseBit
	if _, produced := kb.HandleIRQ1(); produced {
		t.Fatalf("shift break-code must not produce a byte")
	}
	if kb.shiftPressed {
		t.Fatalf("shiftPressed must be false after left-shift break-code")
	}
}

func TestHandleIRQ1IgnoresOtherBreakCodes(t *testing.T) {
	ports := newFakePorts()
	kb := NewKeyboard(ports, nil)

	ports.reads[kbStatusPort] = kbStatusOutputFull
	ports.reads[kbDataPort] = 0x1E | kbScancodeReleaseBit // 'a' release
	if _, produced := kb.HandleIRQ1(); produced {
		t.Fatalf("a non-shift break-code must not produce a byte")
	}
}

func TestKeyboardRingFIFOAndOverflow(t *testing.T) {
	var r KeyboardRing
	if !r.isEmpty() {
		t.Fatalf("new ring must be empty")
	}
	if _, ok := r.Pop(); ok {
		t.Fatalf("Pop on empty ring must return ok=false")
	}

	for i := 0; i < kbRingCapacity-1; i++ {
		if !r.Push(byte(i)) {
			t.Fatalf("Push %d unexpectedly reported full", i)
		}
	}
	if r.Push(42) {
		t.Fatalf("Push into a full ring must report false")
	}

	for i := 0; i < kbRingCapacity-1; i++ {
		c, ok := r.Pop()
		if !ok || c != byte(i) {
			t.Fatalf("Pop %d = (%d, %v), want (%d, true)", i, c, ok, i)
		}
	}
	if !r.isEmpty() {
		t.Fatalf("ring must be empty after draining everything pushed")
	}
}

func TestHandleIRQ1RingOverflowDoesNotProduce(t *testing.T) {
	ports := newFakePorts()
	kb := NewKeyboard(ports, nil)
	for i := 0; i < kbRingCapacity-1; i++ {
		kb.ring.Push('x')
	}

	ports.reads[kbStatusPort] = kbStatusOutputFull
	ports.reads[kbDataPort] = 0x1E // 'a'
	if _, produced := kb.HandleIRQ1(); produced {
		t.Fatalf("HandleIRQ1 must not report produced when the ring is full")
	}
}

func TestDrainStaleConsumesOnePendingByte(t *testing.T) {
	ports := newFakePorts()
	kb := NewKeyboard(ports, nil)

	ports.reads[kbStatusPort] = kbStatusOutputFull
	ports.reads[kbDataPort] = 0x1E
	kb.DrainStale()

	if len(ports.writes) != 0 {
		t.Fatalf("DrainStale must not write to any port")
	}
	// The ring itself is untouched by DrainStale: no byte should be queued.
	if _, ok := kb.GetChar(); ok {
		t.Fatalf("DrainStale must not push into the ring")
	}
}

func TestDrainStaleNoOpWhenOutputEmpty(t *testing.T) {
	ports := newFakePorts()
	kb := NewKeyboard(ports, nil)
	ports.reads[kbStatusPort] = 0
	kb.DrainStale() // must not panic or read the data port in a way that matters
}
