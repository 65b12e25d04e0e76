package kernel

// Shared test fakes: plain Go structs standing in for hardware, no real
// I/O.

type fakePorts struct {
	writes []portWrite
	reads  map[uint16]byte
}

type portWrite struct {
	port uint16
	val  byte
}

func newFakePorts() *fakePorts {
	return &fakePorts{reads: make(map[uint16]byte)}
}

func (f *fakePorts) Out(port uint16, val byte) {
	f.writes = append(f.writes, portWrite{port, val})
}

func (f *fakePorts) In(port uint16) byte {
	return f.reads[port]
}

type fakeFramebuffer struct {
	cells [vgaWidth * vgaHeight]uint16
}

func (f *fakeFramebuffer) SetCell(index int, cell uint16) { f.cells[index] = cell }
func (f *fakeFramebuffer) Cell(index int) uint16          { return f.cells[index] }

// newTestKernel builds a Kernel with fakes and no-op switch hooks wired,
// suitable for exercising the scheduler state machine without hardware.
func newTestKernel() *Kernel {
	k, _ := newTestKernelWithPorts()
	return k
}

// newTestKernelWithPorts additionally exposes the fake port backend so
// tests can inject scan codes and inspect device writes. The UART line
// status reads as transmit-ready so log writes drain instead of spinning.
func newTestKernelWithPorts() (*Kernel, *fakePorts) {
	ports := newFakePorts()
	ports.reads[comLineStatus] = comTransmitRdy
	k := NewKernel(ports, &fakeFramebuffer{}, noopIRQGuard{})
	k.halt = noopHalter{}
	return k, ports
}
