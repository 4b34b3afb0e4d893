//go:build cell64

package forth

// Cell is the VM's natural machine word, selected by the cell64 build tag.
type Cell = uint64

// CellBits is the width, in bits, of a Cell.
const CellBits = 64
