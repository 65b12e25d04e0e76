package kernel

// Kernel is the single owned object holding every piece of otherwise
// module-level mutable state: the thread arena, the current-thread index,
// the tick counter, the scheduler reentrancy counter, and the device
// drivers. Interrupt trampolines reach it through the package-level
// `active` pointer set once during bring-up.
type Kernel struct {
	Arena *ThreadArena

	currentThread int8
	systemTicks   uint32
	lockCount     int32

	sliceTicks    uint32
	lastSliceTick uint32

	pic    *PIC
	pit    *PIT
	serial *SerialPort
	vga    *VGAConsole
	kbd    *Keyboard
	log    *Logger
	irq    IRQGuard
	halt   Halter

	// switchOut/switchInitial are the seam to the assembly context-switch
	// routine (asm/switch.S). Production wiring points these at the real
	// go:linkname'd functions; tests inject recording stubs so the
	// scheduler's state transitions can be asserted without a real
	// register-level switch.
	switchOut     func(oldESP *uint32, newESP uint32)
	switchInitial func(newESP uint32)
}

// active is the single kernel instance interrupt stubs dispatch into.
// Freestanding interrupt entry has no way to pass a context parameter
// through a CPU-pushed frame.
var active *Kernel

// NewKernel wires a Kernel over the given collaborators. Boot owns the
// order in which it is subsequently initialized (see boot.go).
func NewKernel(ports Ports, fb Framebuffer, irq IRQGuard) *Kernel {
	serial := NewSerialPort(ports)
	log := NewLogger(serial)
	k := &Kernel{
		Arena:         NewThreadArena(),
		currentThread: noIndex,
		sliceTicks:    10, // ~100ms at the 100Hz tick rate
		pic:           NewPIC(ports),
		pit:           NewPIT(ports),
		serial:        serial,
		vga:           NewVGAConsole(fb, ports),
		kbd:           NewKeyboard(ports, log),
		log:           log,
		irq:           irq,
		halt:          noopHalter{},
		switchOut:     func(*uint32, uint32) {},
		switchInitial: func(uint32) {},
	}
	return k
}

// SystemTicks returns the monotonic tick counter.
func (k *Kernel) SystemTicks() uint32 { return k.systemTicks }

// CurrentThread returns the running thread's index, or noIndex before the
// first scheduler entry.
func (k *Kernel) CurrentThread() int8 { return k.currentThread }

// LockCount exposes the reentrancy counter; it is zero whenever no
// scheduler call is in progress.
func (k *Kernel) LockCount() int32 { return k.lockCount }
