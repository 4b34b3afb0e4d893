package forth

// Register indices: fixed, low-addressed cells that name VM state. Names
// and offsets are part of the wire format (image serialization pins
// these) and must never be renumbered.
const (
	regDIC         Cell = 6  // next free dictionary cell
	regRSTK        Cell = 7  // return-stack pointer
	regSTATE       Cell = 8  // 0=interpret, nonzero=compile
	regBASE        Cell = 9  // numeric base, 2..36 (0 selects the base by prefix when parsing)
	regPWD         Cell = 10 // head of the dictionary linked list
	regSOURCE_ID   Cell = 11 // 0=file-like input, all-ones=string input
	regSIN         Cell = 12 // string-input pointer (cell index into m)
	regSIDX        Cell = 13 // string-input cursor
	regSLEN        Cell = 14 // string-input length
	regSTART_ADDR  Cell = 15 // start-of-VM address
	regFIN         Cell = 16 // file-like input handle id
	regFOUT        Cell = 17 // output sink id
	regSTDIN       Cell = 18 // handle id for stdin
	regSTDOUT      Cell = 19 // handle id for stdout
	regSTDERR      Cell = 20 // handle id for stderr
	regARGC        Cell = 21 // argument count
	regARGV        Cell = 22 // base handle id of argument strings
	regDEBUG       Cell = 23 // nonzero enables ( debug ... ) tracing
	regINVALID     Cell = 24 // sticky fatal flag
	regTOP         Cell = 25 // saved top-of-data-stack across yields
	regINSTRUCTION Cell = 26 // saved program counter across yields
	regSTACK_SIZE  Cell = 27 // size of each stack, in cells
	regSTART_TIME  Cell = 28 // zeroed on init/load; CLOCK counts from VM.created instead
	regLast             = regSTART_TIME
)

// registerNames mirrors the names the bootstrap program binds each
// register to via defineConstant, in register-index order starting at
// regDIC.
var registerNames = [...]string{
	"h", "r", "`state", "base", "pwd",
	"`source-id", "`sin", "`sidx", "`slen", "`start-address", "`fin", "`fout", "`stdin",
	"`stdout", "`stderr", "`argc", "`argv", "`debug", "`invalid", "`top", "`instruction",
	"`stack-size", "`start-time",
}

const (
	sourceFile   Cell = 0
	sourceString Cell = ^Cell(0) // all-ones: -1 reinterpreted as a cell

	stringOffset    = 32 // cell offset of the input word buffer
	maxWordLength   = 32 // max bytes in one lexed token, including NUL
	minCoreSize     = 2048
	defaultCoreSize = 32 * 1024 / 4 // cells, matching the original's byte-sized default at 32-bit cells
	blockSize       = 1024

	wordLengthOffset = 8
	instructionMask  = 0x7f
	hiddenBit        = 0x80
)

// dictionaryStart is the first dictionary cell, after the registers and
// the lexer's word buffer. The buffer is reserved in cells, sized to hold
// maxWordLength bytes regardless of cell width.
func dictionaryStart() Cell {
	cellBytes := Cell(CellBits / 8)
	bufCells := (Cell(maxWordLength) + cellBytes - 1) / cellBytes
	return stringOffset + bufCells
}
