//go:build !cell16 && !cell64

package forth

// Cell is the VM's natural machine word. The width is chosen at compile
// time by one of the cell16, cell32 or cell64 build tags; cell32 is the
// default when none is given.
type Cell = uint32

// CellBits is the width, in bits, of a Cell.
const CellBits = 32
