package disassemble

import (
	"testing"
)

type flat [0x10000]uint8

func (f *flat) Peek(addr uint16) uint8 {
	return f[addr]
}

func TestStep(t *testing.T) {
	tests := []struct {
		name  string
		code  []uint8
		want  string
		count int
	}{
		{"implied", []uint8{0xEA}, "E000 EA                    NOP", 1},
		{"immediate", []uint8{0xA9, 0x42}, "E000 A9 42                 LDA #$42", 2},
		{"zp", []uint8{0x85, 0x10}, "E000 85 10                 STA $10", 2},
		{"zp,x", []uint8{0x95, 0x10}, "E000 95 10                 STA $10,X", 2},
		{"zp,y", []uint8{0xB6, 0x10}, "E000 B6 10                 LDX $10,Y", 2},
		{"(zp)", []uint8{0xB2, 0x20}, "E000 B2 20                 LDA ($20)", 2},
		{"(zp,x)", []uint8{0xA1, 0x20}, "E000 A1 20                 LDA ($20,X)", 2},
		{"(zp),y", []uint8{0xB1, 0x20}, "E000 B1 20                 LDA ($20),Y", 2},
		{"abs", []uint8{0x20, 0x34, 0xE1}, "E000 20 34 E1              JSR $E134", 3},
		{"abs,x", []uint8{0xBD, 0x34, 0x23}, "E000 BD 34 23              LDA $2334,X", 3},
		{"abs,y", []uint8{0x99, 0x34, 0x23}, "E000 99 34 23              STA $2334,Y", 3},
		{"relative forward", []uint8{0xF0, 0x05}, "E000 F0 05                 BEQ $05 ($E007)", 2},
		{"relative back", []uint8{0x80, 0xFE}, "E000 80 FE                 BRA $FE ($E000)", 2},
		{"block", []uint8{0x73, 0x00, 0x23, 0x00, 0x24, 0x05, 0x00}, "E000 73 00 23 00 24 05 00  TII $2300,$2400,$0005", 7},
		{"unknown", []uint8{0xFF, 0x12}, "E000 FF                    ???", 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var f flat
			copy(f[0xE000:], test.code)
			got, count := Step(0xE000, &f)
			if got != test.want {
				t.Errorf("bad disassembly:\ngot  %q\nwant %q", got, test.want)
			}
			if count != test.count {
				t.Errorf("bad count: got %d want %d", count, test.count)
			}
		})
	}
}
