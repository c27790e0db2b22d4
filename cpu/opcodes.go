package cpu

// Opcode describes one decoded instruction.
type Opcode struct {
	Name    string
	Mode    Mode
	Handler func(p *Chip, o Opcode) error
	Op      uint8
	// Cycles is the documented cycle count at 7.16MHz. 0 means the count
	// is variable or unknown and isn't verified.
	Cycles uint8
}

// Lookup returns the descriptor for op. The bool is false for opcodes
// which aren't decoded.
func Lookup(op uint8) (Opcode, bool) {
	o := opcodes[op]
	return o, o.Handler != nil
}

var opcodes = [256]Opcode{
	0x20: {"JSR", MODE_ABSOLUTE, (*Chip).iJSR, 0x20, 7},
	0x40: {"RTI", MODE_IMPLIED, (*Chip).iRTI, 0x40, 7},
	0x43: {"TMA", MODE_IMMEDIATE, (*Chip).iTMA, 0x43, 4},
	0x4C: {"JMP", MODE_ABSOLUTE, (*Chip).iJMP, 0x4C, 4},
	0x53: {"TAM", MODE_IMMEDIATE, (*Chip).iTAM, 0x53, 5},
	0x54: {"CSL", MODE_IMPLIED, (*Chip).iCSL, 0x54, 0},
	0x58: {"CLI", MODE_IMPLIED, (*Chip).iCLI, 0x58, 2},
	0x60: {"RTS", MODE_IMPLIED, (*Chip).iRTS, 0x60, 7},
	0x62: {"CLA", MODE_IMPLIED, (*Chip).iCLA, 0x62, 2},
	0x64: {"STZ", MODE_ZP, (*Chip).iSTZ, 0x64, 4},
	0x73: {"TII", MODE_BLOCK, (*Chip).iTII, 0x73, 0},
	0x78: {"SEI", MODE_IMPLIED, (*Chip).iSEI, 0x78, 2},
	0x80: {"BRA", MODE_RELATIVE, (*Chip).iBRA, 0x80, 4},
	0x81: {"STA", MODE_ZPX_INDIRECT, (*Chip).iSTA, 0x81, 7},
	0x82: {"CLX", MODE_IMPLIED, (*Chip).iCLX, 0x82, 2},
	0x85: {"STA", MODE_ZP, (*Chip).iSTA, 0x85, 4},
	0x88: {"DEY", MODE_IMPLIED, (*Chip).iDEY, 0x88, 2},
	0x8A: {"TXA", MODE_IMPLIED, (*Chip).iTXA, 0x8A, 2},
	0x8D: {"STA", MODE_ABSOLUTE, (*Chip).iSTA, 0x8D, 5},
	0x91: {"STA", MODE_ZP_INDIRECTY, (*Chip).iSTA, 0x91, 7},
	0x92: {"STA", MODE_ZP_INDIRECT, (*Chip).iSTA, 0x92, 7},
	0x95: {"STA", MODE_ZPX, (*Chip).iSTA, 0x95, 4},
	0x99: {"STA", MODE_ABSOLUTEY, (*Chip).iSTA, 0x99, 5},
	0x9A: {"TXS", MODE_IMPLIED, (*Chip).iTXS, 0x9A, 2},
	0x9C: {"STZ", MODE_ABSOLUTE, (*Chip).iSTZ, 0x9C, 5},
	0x9D: {"STA", MODE_ABSOLUTEX, (*Chip).iSTA, 0x9D, 5},
	0xA0: {"LDY", MODE_IMMEDIATE, (*Chip).iLDY, 0xA0, 2},
	0xA1: {"LDA", MODE_ZPX_INDIRECT, (*Chip).iLDA, 0xA1, 7},
	0xA2: {"LDX", MODE_IMMEDIATE, (*Chip).iLDX, 0xA2, 2},
	0xA5: {"LDA", MODE_ZP, (*Chip).iLDA, 0xA5, 4},
	0xA6: {"LDX", MODE_ZP, (*Chip).iLDX, 0xA6, 4},
	0xA9: {"LDA", MODE_IMMEDIATE, (*Chip).iLDA, 0xA9, 2},
	0xAA: {"TAX", MODE_IMPLIED, (*Chip).iTAX, 0xAA, 2},
	0xAD: {"LDA", MODE_ABSOLUTE, (*Chip).iLDA, 0xAD, 5},
	0xAE: {"LDX", MODE_ABSOLUTE, (*Chip).iLDX, 0xAE, 5},
	0xB1: {"LDA", MODE_ZP_INDIRECTY, (*Chip).iLDA, 0xB1, 7},
	0xB2: {"LDA", MODE_ZP_INDIRECT, (*Chip).iLDA, 0xB2, 7},
	0xB5: {"LDA", MODE_ZPX, (*Chip).iLDA, 0xB5, 4},
	0xB6: {"LDX", MODE_ZPY, (*Chip).iLDX, 0xB6, 4},
	0xB9: {"LDA", MODE_ABSOLUTEY, (*Chip).iLDA, 0xB9, 5},
	0xBD: {"LDA", MODE_ABSOLUTEX, (*Chip).iLDA, 0xBD, 5},
	0xC2: {"CLY", MODE_IMPLIED, (*Chip).iCLY, 0xC2, 2},
	0xC5: {"CMP", MODE_ZP, (*Chip).iCMP, 0xC5, 4},
	0xC8: {"INY", MODE_IMPLIED, (*Chip).iINY, 0xC8, 2},
	0xC9: {"CMP", MODE_IMMEDIATE, (*Chip).iCMP, 0xC9, 2},
	0xCA: {"DEX", MODE_IMPLIED, (*Chip).iDEX, 0xCA, 2},
	0xCD: {"CMP", MODE_ABSOLUTE, (*Chip).iCMP, 0xCD, 5},
	// Taken and not taken branches differ so BEQ/BNE aren't verified.
	0xD0: {"BNE", MODE_RELATIVE, (*Chip).iBNE, 0xD0, 0},
	0xD4: {"CSH", MODE_IMPLIED, (*Chip).iCSH, 0xD4, 0},
	0xD8: {"CLD", MODE_IMPLIED, (*Chip).iCLD, 0xD8, 2},
	0xE8: {"INX", MODE_IMPLIED, (*Chip).iINX, 0xE8, 2},
	0xEA: {"NOP", MODE_IMPLIED, (*Chip).iNOP, 0xEA, 2},
	0xF0: {"BEQ", MODE_RELATIVE, (*Chip).iBEQ, 0xF0, 0},
}
