package kernel

// Dual 8259A PIC driver: remap, mask, end-of-interrupt.
const (
	picMasterCommand = 0x20
	picMasterData    = 0x21
	picSlaveCommand  = 0xA0
	picSlaveData     = 0xA1

	picICW1Init        = 0x11
	picICW2MasterBase  = 0x20
	picICW2SlaveBase   = 0x28
	picICW3MasterSlave = 0x04 // slave attached to master's IRQ2
	picICW3SlaveIdent  = 0x02
	picICW4Mode8086    = 0x01

	picEOI = 0x20

	picMaskAllDisabled   = 0xFF
	picMaskTimerKeyboard = 0xFC // all but IRQ0 (timer) and IRQ1 (keyboard)
)

// PIC drives the master/slave 8259A pair.
type PIC struct {
	ports Ports
}

// NewPIC constructs a PIC over the given port backend.
func NewPIC(ports Ports) *PIC {
	return &PIC{ports: ports}
}

// Remap reprograms the master/slave vector offsets to masterBase/slaveBase
// (IRQ0..7 -> masterBase.., IRQ8..15 -> slaveBase..), preserving and
// restoring the current interrupt masks across the ICW sequence.
func (p *PIC) Remap(masterBase, slaveBase byte) {
	savedMasterMask := p.ports.In(picMasterData)
	savedSlaveMask := p.ports.In(picSlaveData)

	p.ports.Out(picMasterCommand, picICW1Init)
	p.ports.Out(picSlaveCommand, picICW1Init)

	p.ports.Out(picMasterData, masterBase)
	p.ports.Out(picSlaveData, slaveBase)

	p.ports.Out(picMasterData, picICW3MasterSlave)
	p.ports.Out(picSlaveData, picICW3SlaveIdent)

	p.ports.Out(picMasterData, picICW4Mode8086)
	p.ports.Out(picSlaveData, picICW4Mode8086)

	p.ports.Out(picMasterData, savedMasterMask)
	p.ports.Out(picSlaveData, savedSlaveMask)
}

// SetMasks writes the master and slave IMR bytes directly; bit i set
// disables IRQ i (IRQ 8..15 map to the low 8 bits of slaveMask).
func (p *PIC) SetMasks(masterMask, slaveMask byte) {
	p.ports.Out(picMasterData, masterMask)
	p.ports.Out(picSlaveData, slaveMask)
}

// EOI issues end-of-interrupt for the given IRQ line, signalling the slave
// too when the line originated there.
func (p *PIC) EOI(irq int) {
	if irq >= 8 {
		p.ports.Out(picSlaveCommand, picEOI)
	}
	p.ports.Out(picMasterCommand, picEOI)
}

// InitDefault performs the bring-up sequence: remap to 0x20/0x28 and mask
// every line but the timer (IRQ0) and keyboard (IRQ1).
func (p *PIC) InitDefault() {
	p.Remap(picICW2MasterBase, picICW2SlaveBase)
	p.SetMasks(picMaskTimerKeyboard, picMaskAllDisabled)
}
