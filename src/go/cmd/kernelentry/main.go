// Command kernelentry is the freestanding linkage seam: a package main
// thin enough for -buildmode=c-archive, whose only job is to give
// asm/boot.S a short, stable external symbol to call into kernel.KernelMain.
package main

import (
	_ "unsafe" // required for go:linkname

	"ringkernel/go/kernel"
)

//go:linkname kernelEntry kernelEntry
//go:nosplit
func kernelEntry() {
	kernel.KernelMain()
}

// main is required by -buildmode=c-archive but is never invoked: control
// arrives at kernelEntry directly from asm/boot.S.
func main() {}

// keepers pins kernelEntry against dead-code elimination: nothing in this
// package calls it, only asm/boot.S does.
var keepers = []interface{}{kernelEntry}
