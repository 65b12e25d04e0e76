//go:build i386 && freestanding

package kernel

import (
	_ "unsafe" // required for go:linkname
)

// Link to external assembly in asm/lowlevel.S, assembled and linked
// outside the Go toolchain (see Makefile). These are single-instruction
// wrappers with no failure modes.
//
//go:linkname outb outb
//go:nosplit
func outb(port uint16, val byte)

//go:linkname inb inb
//go:nosplit
func inb(port uint16) byte

//go:linkname cli cli
//go:nosplit
func cli()

//go:linkname sti sti
//go:nosplit
func sti()

//go:linkname hlt hlt
//go:nosplit
func hlt()

//go:linkname lidt lidt
//go:nosplit
func lidt(ptr uintptr)

// hwPorts is the production Ports implementation: real port I/O.
type hwPorts struct{}

func (hwPorts) Out(port uint16, val byte) { outb(port, val) }
func (hwPorts) In(port uint16) byte       { return inb(port) }

// hwIRQGuard is the production IRQGuard: real cli/sti.
type hwIRQGuard struct{}

func (hwIRQGuard) Disable() { cli() }
func (hwIRQGuard) Enable()  { sti() }

// hwHalter is the production Halter: real hlt.
type hwHalter struct{}

func (hwHalter) Halt() { hlt() }
