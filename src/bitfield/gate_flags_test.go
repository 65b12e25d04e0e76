package bitfield

import (
	"fmt"
	"testing"
)

func TestPackGateFlags(t *testing.T) {
	tests := []struct {
		name     string
		flags    GateFlags
		expected uint8
		wantErr  bool
	}{
		{
			name:     "empty descriptor",
			flags:    GateFlags{},
			expected: 0x00,
		},
		{
			name: "kernel interrupt gate",
			flags: GateFlags{
				GateType: GateType32Interrupt,
				Present:  true,
			},
			expected: 0x8E, // the attribute byte every populated IDT entry carries
		},
		{
			name: "user-invokable interrupt gate",
			flags: GateFlags{
				GateType: GateType32Interrupt,
				DPL:      3,
				Present:  true,
			},
			expected: 0xEE,
		},
		{
			name: "present 32-bit trap gate",
			flags: GateFlags{
				GateType: 0xF,
				Present:  true,
			},
			expected: 0x8F,
		},
		{
			name: "not present",
			flags: GateFlags{
				GateType: GateType32Interrupt,
			},
			expected: 0x0E,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed, err := PackGateFlags(tt.flags)
			if (err != nil) != tt.wantErr {
				t.Errorf("PackGateFlags() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if packed != tt.expected {
				t.Errorf("PackGateFlags() = 0x%02x, want 0x%02x", packed, tt.expected)
			}
		})
	}
}

func TestPackGateFlagsRejectsOversizedType(t *testing.T) {
	_, err := PackGateFlags(GateFlags{GateType: 0x1F})
	if err == nil {
		t.Fatalf("a 5-bit gate type must not fit the 4-bit field")
	}
}

func TestUnpackGateFlags(t *testing.T) {
	tests := []struct {
		name     string
		attr     uint8
		expected GateFlags
	}{
		{
			name: "kernel interrupt gate",
			attr: 0x8E,
			expected: GateFlags{
				GateType: GateType32Interrupt,
				Present:  true,
			},
		},
		{
			name: "user-invokable interrupt gate",
			attr: 0xEE,
			expected: GateFlags{
				GateType: GateType32Interrupt,
				DPL:      3,
				Present:  true,
			},
		},
		{
			name:     "cleared descriptor",
			attr:     0x00,
			expected: GateFlags{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnpackGateFlags(tt.attr)
			if got != tt.expected {
				t.Errorf("UnpackGateFlags(0x%02x) = %+v, want %+v", tt.attr, got, tt.expected)
			}
		})
	}
}

func TestGateFlagsRoundTrip(t *testing.T) {
	cases := []GateFlags{
		{},
		{GateType: GateType32Interrupt, Present: true},
		{GateType: 0xF, DPL: 1, Present: true},
		{GateType: 0x5, DPL: 2, Storage: true},
		{GateType: 0xF, DPL: 3, Storage: true, Present: true},
	}

	for i, original := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			packed, err := PackGateFlags(original)
			if err != nil {
				t.Fatalf("PackGateFlags() error = %v", err)
			}
			if got := UnpackGateFlags(packed); got != original {
				t.Errorf("round trip through 0x%02x = %+v, want %+v", packed, got, original)
			}
		})
	}
}

func ExamplePackGateFlags() {
	attr, err := PackGateFlags(GateFlags{
		GateType: GateType32Interrupt,
		Present:  true,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("attribute byte: 0x%02x\n", attr)

	unpacked := UnpackGateFlags(attr)
	fmt.Printf("present: %v, dpl: %d\n", unpacked.Present, unpacked.DPL)

	// Output:
	// attribute byte: 0x8e
	// present: true, dpl: 0
}
