package bitfield

// GateFlags is the attribute byte of a protected-mode gate descriptor,
// low bit first: the gate type nibble, the storage-segment bit, the
// two-bit descriptor privilege level, and the present bit.
type GateFlags struct {
	// GateType selects the descriptor kind (0xE = 32-bit interrupt gate).
	GateType uint8 `bitfield:",4"`

	// Storage is clear for system descriptors such as gates.
	Storage bool `bitfield:",1"`

	// DPL is the privilege level required to invoke the gate via int.
	DPL uint8 `bitfield:",2"`

	// Present marks the descriptor as in use.
	Present bool `bitfield:",1"`
}

// GateType32Interrupt is the type nibble of a 32-bit interrupt gate,
// which clears IF on entry.
const GateType32Interrupt = 0xE

// PackGateFlags packs f into the descriptor attribute byte.
func PackGateFlags(f GateFlags) (uint8, error) {
	packed, err := Pack(f, &Config{NumBits: 8})
	if err != nil {
		return 0, err
	}
	return uint8(packed), nil
}

// UnpackGateFlags splits an attribute byte back into its fields.
func UnpackGateFlags(attr uint8) GateFlags {
	var f GateFlags
	// A GateFlags covers exactly the 8 bits of attr; Unpack cannot fail.
	_ = Unpack(uint64(attr), &f)
	return f
}
