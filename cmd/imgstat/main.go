// Command imgstat inspects a built kernel image (the flat ELF Makefile
// produces from asm/*.S + the kernelentry c-archive): file stat info and a
// raw dump of the multiboot header, located by scanning for the 0x1BADB002
// magic on a 4-byte boundary within the first 8 KiB, per the multiboot
// specification asm/boot.S's .multiboot section follows.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const (
	multibootMagic    = 0x1BADB002
	multibootScanSize = 8192
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: imgstat <kernel-image>\n")
		fmt.Fprintf(os.Stderr, "Reports file stat info and dumps the multiboot header.\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	path := flag.Arg(0)
	if err := run(path); err != nil {
		fmt.Fprintf(os.Stderr, "imgstat: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	fmt.Printf("%s: %d bytes, mode %o\n", path, st.Size, st.Mode&0o777)

	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer unix.Close(fd)

	scanLen := int(st.Size)
	if scanLen > multibootScanSize {
		scanLen = multibootScanSize
	}
	if scanLen < 4 {
		return fmt.Errorf("%s is too small to contain a multiboot header", path)
	}

	data, err := unix.Mmap(fd, 0, scanLen, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return fmt.Errorf("mmap %s: %w", path, err)
	}
	defer unix.Munmap(data)

	offset := findMultibootHeader(data)
	if offset < 0 {
		return fmt.Errorf("no multiboot header found in the first %d bytes of %s", scanLen, path)
	}

	fmt.Printf("multiboot header at offset %d:\n", offset)
	dumpHeader(data[offset:])
	return nil
}

// findMultibootHeader scans data on 4-byte boundaries for the multiboot
// magic, returning the byte offset of the first match or -1.
func findMultibootHeader(data []byte) int {
	for off := 0; off+12 <= len(data); off += 4 {
		magic := leUint32(data[off:])
		if magic == multibootMagic {
			return off
		}
	}
	return -1
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// dumpHeader prints the magic/flags/checksum triple (12 bytes) raw.
func dumpHeader(data []byte) {
	magic := leUint32(data[0:])
	flags := leUint32(data[4:])
	checksum := leUint32(data[8:])
	fmt.Printf("  magic:    %#08x\n", magic)
	fmt.Printf("  flags:    %#08x\n", flags)
	fmt.Printf("  checksum: %#08x\n", checksum)
}
