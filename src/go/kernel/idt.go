package kernel

// 256-entry Interrupt Descriptor Table and gate encoding. Pure
// data-layout code with no port access, so it is host-testable on its
// own.
const (
	idtSize              = 256
	idtKernelCodeSegment = 0x08
	idtFlagPresentDPL032 = 0x8E

	vecDivideError       = 0
	vecBreakpoint        = 3
	vecInvalidOpcode     = 6
	vecGeneralProtection = 13
	vecPageFault         = 14
	vecTimer             = 32
	vecKeyboard          = 33
)

// exceptionVectors is the fixed vector order RegisterHandlers expects its
// stub-address array in; the CPU gives no other way to tell gates apart,
// so each entry needs a distinct trampoline in asm/stubs.S that pushes its
// own vector number before falling into the shared exceptionHandler call.
var exceptionVectors = [5]int{vecDivideError, vecBreakpoint, vecInvalidOpcode, vecGeneralProtection, vecPageFault}

// idtGate is one 8-byte IDT entry: a 32-bit handler address split in two
// halves, a code-segment selector, and an attribute byte.
type idtGate struct {
	offsetLow  uint16
	selector   uint16
	zero       byte
	typeAttr   byte
	offsetHigh uint16
}

func (g *idtGate) set(handler uint32, selector uint16, typeAttr byte) {
	g.offsetLow = uint16(handler & 0xFFFF)
	g.offsetHigh = uint16(handler >> 16)
	g.selector = selector
	g.zero = 0
	g.typeAttr = typeAttr
}

func (g idtGate) present() bool { return g.typeAttr&0x80 != 0 }

// IDT is the fixed descriptor table plus the pointer structure `lidt` loads.
type IDT struct {
	gates [idtSize]idtGate
}

// NewIDT returns a table with every gate present-clear (unused).
func NewIDT() *IDT { return &IDT{} }

// SetGate populates entry vec with handler, using the kernel code segment
// and the present/DPL0/32-bit-interrupt-gate attribute byte.
func (t *IDT) SetGate(vec int, handler uint32) {
	t.gates[vec].set(handler, idtKernelCodeSegment, idtFlagPresentDPL032)
}

// Gate returns a copy of entry vec, for inspection/testing.
func (t *IDT) Gate(vec int) idtGate { return t.gates[vec] }

// RegisterHandlers wires gates 0/3/6/13/14 (exceptions, one distinct stub
// address per vector, in exceptionVectors order), 32 (timer) and 33
// (keyboard) to the given stub addresses.
func (t *IDT) RegisterHandlers(exceptionStubs [5]uint32, timerStub, keyboardStub uint32) {
	for i, vec := range exceptionVectors {
		t.SetGate(vec, exceptionStubs[i])
	}
	t.SetGate(vecTimer, timerStub)
	t.SetGate(vecKeyboard, keyboardStub)
}

// pointer returns the base/limit pair `lidt` expects; base is the address
// of gates[0]. Only meaningful in the freestanding build (see idt_hw.go).
func (t *IDT) limit() uint16 { return uint16(idtSize*8 - 1) }
