//go:build i386 && freestanding

package kernel

import "unsafe"

// idtPtr mirrors the packed struct `lidt` reads: a 16-bit limit followed
// by a 32-bit linear base address.
type idtPtr struct {
	limit uint16
	base  uint32
}

// Load installs the table via lidt.
func (t *IDT) Load() {
	ptr := idtPtr{
		limit: t.limit(),
		base:  uint32(uintptr(unsafe.Pointer(&t.gates[0]))),
	}
	lidt(uintptr(unsafe.Pointer(&ptr)))
}
