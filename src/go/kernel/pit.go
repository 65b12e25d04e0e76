package kernel

// 8254 PIT driver, channel 0 only.
const (
	pitBaseFrequency  = 1193180
	pitChannel0       = 0x40
	pitCommand        = 0x43
	pitModeSquareWave = 0x36 // channel 0, lo/hi access, mode 3, binary

	defaultTimerHz = 100
)

// PIT drives channel 0 of the 8254 interval timer.
type PIT struct {
	ports Ports
}

// NewPIT constructs a PIT over the given port backend.
func NewPIT(ports Ports) *PIT {
	return &PIT{ports: ports}
}

// Program sets channel 0 to a square wave at the given frequency.
func (p *PIT) Program(hz uint32) {
	if hz == 0 {
		hz = defaultTimerHz
	}
	divisor := uint16(pitBaseFrequency / hz)
	p.ports.Out(pitCommand, pitModeSquareWave)
	p.ports.Out(pitChannel0, byte(divisor&0xFF))
	p.ports.Out(pitChannel0, byte(divisor>>8))
}
