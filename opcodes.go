package forth

// Opcodes, in the exact order the bootstrap program binds them to names:
// valid opcodes are < opLAST. The low 7 bits of a threaded-code cell name
// an opcode; bit 7 and up are free for the misc cell's other fields.
const (
	opPUSH Cell = iota
	opCOMPILE
	opRUN
	opDEFINE
	opIMMEDIATE
	opREAD
	opLOAD
	opSTORE
	opSUB
	opADD
	opAND
	opOR
	opXOR
	opINV
	opSHL
	opSHR
	opMUL
	opDIV
	opLESS
	opMORE
	opEXIT
	opEMIT
	opKEY
	opFROMR
	opTOR
	opBRANCH
	opQBRANCH
	opPNUM
	opQUOTE
	opCOMMA
	opEQUAL
	opSWAP
	opDUP
	opDROP
	opOVER
	opTAIL
	opBSAVE
	opBLOAD
	opFIND
	opPRINT
	opDEPTH
	opCLOCK
	opLAST
)

// opcodeNames gives the bootstrap word bound to each opcode, or "" for the
// handful whose names are synthesized or never exposed directly.
var opcodeNames = [opLAST]string{
	opPUSH:      "",
	opCOMPILE:   "",
	opRUN:       "",
	opDEFINE:    ":",
	opIMMEDIATE: "immediate",
	opREAD:      "read",
	opLOAD:      "@",
	opSTORE:     "!",
	opSUB:       "-",
	opADD:       "+",
	opAND:       "and",
	opOR:        "or",
	opXOR:       "xor",
	opINV:       "invert",
	opSHL:       "lshift",
	opSHR:       "rshift",
	opMUL:       "*",
	opDIV:       "/",
	opLESS:      "u<",
	opMORE:      "u>",
	opEXIT:      "exit",
	opEMIT:      "emit",
	opKEY:       "key",
	opFROMR:     "r>",
	opTOR:       ">r",
	opBRANCH:    "branch",
	opQBRANCH:   "?branch",
	opPNUM:      "pnum",
	opQUOTE:     "'",
	opCOMMA:     ",",
	opEQUAL:     "=",
	opSWAP:      "swap",
	opDUP:       "dup",
	opDROP:      "drop",
	opOVER:      "over",
	opTAIL:      "tail",
	opBSAVE:     "bsave",
	opBLOAD:     "bload",
	opFIND:      "find",
	opPRINT:     "print",
	opDEPTH:     "depth",
	opCLOCK:     "clock",
}

func packMisc(opcode Cell, lengthCells Cell) Cell {
	return (lengthCells << wordLengthOffset) | (opcode & instructionMask)
}

func unpackOpcode(misc Cell) Cell { return misc & instructionMask }
func unpackLength(misc Cell) Cell { return (misc >> wordLengthOffset) & 0xff }
func isHidden(misc Cell) bool     { return misc&hiddenBit != 0 }
