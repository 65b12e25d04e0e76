package kernel

// Bring-up sequence. Order is required and non-negotiable: serial first
// (so subsequent steps can log), then the framebuffer banner, then
// IDT/PIC/PIT, then keyboard; interrupts are enabled and the threads
// created by the caller afterwards. Factored so the device-init steps
// are host-testable with fake Ports/Framebuffer.
type StubAddresses struct {
	// Exceptions holds one trampoline address per entry of exceptionVectors
	// (divide-error, breakpoint, invalid-opcode, GP fault, page fault, in
	// that order): each vector needs its own asm label since the CPU gives
	// the handler no other way to learn which one trapped.
	Exceptions [5]uint32
	Timer      uint32
	Keyboard   uint32
}

// BringUp initializes serial, the framebuffer banner, the IDT, the PIC,
// the PIT, and the keyboard, in that order. loadIDT is invoked right
// after the gates are registered, between the table build and the PIC
// remap; the freestanding caller passes (*IDT).Load, host tests pass nil
// since lidt has no meaning there. Enabling interrupts, creating
// threads, and the first Schedule call belong to the caller (boot_hw.go's
// KernelMain); sti does not exist on a host build either.
func (k *Kernel) BringUp(idt *IDT, stubs StubAddresses, loadIDT func(*IDT)) {
	k.serial.Init()
	k.log.Info("serial initialized")

	k.vga.Clear()
	k.vga.PutString("mini-kernel: booting\n")
	k.log.Info("framebuffer initialized")

	idt.RegisterHandlers(stubs.Exceptions, stubs.Timer, stubs.Keyboard)
	if loadIDT != nil {
		loadIDT(idt)
	}
	k.pic.InitDefault()
	k.pit.Program(defaultTimerHz)
	k.log.Info("idt installed, pic remapped, pit programmed at 100Hz")

	k.kbd.DrainStale()
	k.log.Info("keyboard driver initialized")
}

// CreateThread is the interrupt-safe thread-creation entry point: list
// mutation happens under the IRQ guard since bring-up runs it with
// interrupts already enabled.
func (k *Kernel) CreateThread(fn ThreadFunc, delay uint32, displayRow int) (int8, error) {
	k.irq.Disable()
	defer k.irq.Enable()
	idx, err := k.Arena.CreateThread(fn, delay, displayRow)
	if err != nil {
		k.log.ErrorWith("thread creation failed: ", err)
	}
	return idx, err
}
