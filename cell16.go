//go:build cell16

package forth

// Cell is the VM's natural machine word, selected by the cell16 build tag.
type Cell = uint16

// CellBits is the width, in bits, of a Cell.
const CellBits = 16
