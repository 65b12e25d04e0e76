//go:build i386 && freestanding

package kernel

import _ "unsafe" // required for go:linkname

// Link to the assembly context-switch pair in asm/switch.S: contextSwitch
// saves the callee-save registers and flags onto the outgoing thread's stack,
// writes its resulting ESP to *oldESPOut, loads ESP from newESPIn, and
// pops into the incoming thread's frame. initialContextSwitch is the
// boot-time variant used once, with no outgoing thread to save.
//
//go:linkname asmContextSwitch contextSwitch
//go:nosplit
func asmContextSwitch(oldESPOut *uint32, newESPIn uint32)

//go:linkname asmInitialContextSwitch initialContextSwitch
//go:nosplit
func asmInitialContextSwitch(newESPIn uint32)

// wireHardwareSwitch points a Kernel's switch hooks at the real assembly,
// used once during bring-up (boot.go).
func (k *Kernel) wireHardwareSwitch() {
	k.switchOut = asmContextSwitch
	k.switchInitial = asmInitialContextSwitch
}
