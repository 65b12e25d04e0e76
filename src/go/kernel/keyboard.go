package kernel

// PS/2 keyboard driver: IRQ1 handling, scan-code decode, and a single-
// producer/single-consumer ring.
const (
	kbDataPort           = 0x60
	kbStatusPort         = 0x64
	kbStatusOutputFull   = 0x01
	kbRingCapacity       = 256
	kbScancodeReleaseBit = 0x80
	kbScancodeEnter      = 0x1C
	kbScancodeLeftShift  = 0x2A
	kbScancodeRightShift = 0x36

	emptySentinel = 0
)

// scancodeToASCII / scancodeToASCIIShift are the fixed US-layout tables;
// index 0 is unused (scan code 0 never occurs), 0 in a cell means "no
// printable mapping".
var scancodeToASCII = [58]byte{
	0, 27, '1', '2', '3', '4', '5', '6', '7', '8',
	'9', '0', '-', '=', 8, 9, 'q', 'w', 'e', 'r',
	't', 'y', 'u', 'i', 'o', 'p', '[', ']', 10, 0,
	'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';',
	'\'', '`', 0, '\\', 'z', 'x', 'c', 'v', 'b', 'n',
	'm', ',', '.', '/', 0, '*', 0, ' ',
}

var scancodeToASCIIShift = [58]byte{
	0, 27, '!', '@', '#', '$', '%', '^', '&', '*',
	'(', ')', '_', '+', 8, 9, 'Q', 'W', 'E', 'R',
	'T', 'Y', 'U', 'I', 'O', 'P', '{', '}', 10, 0,
	'A', 'S', 'D', 'F', 'G', 'H', 'J', 'K', 'L', ':',
	'"', '~', 0, '|', 'Z', 'X', 'C', 'V', 'B', 'N',
	'M', '<', '>', '?', 0, '*', 0, ' ',
}

// KeyboardRing is a fixed-capacity single-producer/single-consumer byte
// ring. Push drops silently on full (the overflow is logged by the
// caller); Pop returns (0, false) on empty.
type KeyboardRing struct {
	buf        [kbRingCapacity]byte
	head, tail int
}

// Push enqueues c, returning false if the ring was full (byte dropped).
func (r *KeyboardRing) Push(c byte) bool {
	next := (r.head + 1) % kbRingCapacity
	if next == r.tail {
		return false
	}
	r.buf[r.head] = c
	r.head = next
	return true
}

// Pop dequeues the oldest byte, returning ok=false if the ring is empty.
func (r *KeyboardRing) Pop() (byte, bool) {
	if r.head == r.tail {
		return emptySentinel, false
	}
	c := r.buf[r.tail]
	r.tail = (r.tail + 1) % kbRingCapacity
	return c, true
}

func (r *KeyboardRing) isEmpty() bool { return r.head == r.tail }

// Keyboard owns the ring, shift state, and IRQ1 handling.
type Keyboard struct {
	ports        Ports
	ring         KeyboardRing
	shiftPressed bool
	log          *Logger
}

// NewKeyboard constructs a Keyboard over the given port backend.
func NewKeyboard(ports Ports, log *Logger) *Keyboard {
	return &Keyboard{ports: ports, log: log}
}

// convertScancode maps a make-code to ASCII given current shift state; 0
// means "no printable mapping".
func convertScancode(scancode byte, shiftPressed bool) byte {
	if int(scancode) >= len(scancodeToASCII) {
		return 0
	}
	if shiftPressed {
		return scancodeToASCIIShift[scancode]
	}
	return scancodeToASCII[scancode]
}

// HandleIRQ1 consumes one scan code: spurious-status check, release and
// shift bookkeeping, ASCII translation, ring push. The EOI and the
// ready-list wake belong to the caller. It returns the decoded ASCII
// byte and whether a byte was produced (and should therefore trigger a
// keyboard-wake pass).
func (k *Keyboard) HandleIRQ1() (ascii byte, produced bool) {
	if k.ports.In(kbStatusPort)&kbStatusOutputFull == 0 {
		return 0, false // spurious
	}
	code := k.ports.In(kbDataPort)

	if code&kbScancodeReleaseBit != 0 {
		released := code &^ kbScancodeReleaseBit
		if released == kbScancodeLeftShift || released == kbScancodeRightShift {
			k.shiftPressed = false
		}
		return 0, false
	}
	if code == kbScancodeLeftShift || code == kbScancodeRightShift {
		k.shiftPressed = true
		return 0, false
	}

	c := convertScancode(code, k.shiftPressed)
	if c == 0 {
		return 0, false
	}
	if !k.ring.Push(c) {
		if k.log != nil {
			k.log.Warn("keyboard ring overflow, byte dropped")
		}
		return 0, false
	}
	return c, true
}

// GetChar pops one byte; (0, false) means the ring was empty and the
// caller must block on BlockKeyboard and retry after being woken.
func (k *Keyboard) GetChar() (byte, bool) {
	return k.ring.Pop()
}

// DrainStale discards one stale byte left in the controller's output
// buffer from before the kernel took over. The ring itself starts
// zero-valued and needs no explicit reset.
func (k *Keyboard) DrainStale() {
	if k.ports.In(kbStatusPort)&kbStatusOutputFull != 0 {
		k.ports.In(kbDataPort)
	}
}
