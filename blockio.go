package forth

import (
	"fmt"
	"io"
	"os"
)

// blockIO direction, matching the 'w'/'r' mode argument to the source's
// blockio helper.
const (
	blockWrite = iota
	blockRead
)

// blockio transfers one blockSize-byte block between m (starting at the
// byte offset poffset cells in) and the file "NNNN.blk" named by id, in
// the VM's block directory. It returns 0 on success and ^Cell(0) (-1
// reinterpreted unsigned) on failure, matching blockio's int/-1 contract,
// and never halts: block I/O failures are reported and recovered from,
// not fatal.
func (vm *VM) blockio(poffset, id Cell, dir int) Cell {
	byteOff := int(poffset) * cellByteWidth()
	limit := len(vm.m)*cellByteWidth() - blockSize
	if byteOff < 0 || byteOff > limit {
		vm.diagf("error", "\"invalid block offset %d\"", poffset)
		return ^Cell(0)
	}

	name := fmt.Sprintf("%04x.blk", uint32(id))
	path := name
	if vm.blockDir != "" {
		path = vm.blockDir + string(os.PathSeparator) + name
	}

	var f *os.File
	var err error
	if dir == blockWrite {
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		vm.diagf("error", "'file-open \"%s : could not open file\"", name)
		return ^Cell(0)
	}
	defer f.Close()

	buf := make([]byte, blockSize)
	if dir == blockWrite {
		for i := 0; i < blockSize; i++ {
			buf[i] = vm.byteAt(byteOff + i)
		}
		if _, err := f.Write(buf); err != nil {
			vm.diagf("error", "\"block write failed: %v\"", err)
			return ^Cell(0)
		}
	} else {
		n, err := io.ReadFull(f, buf)
		if err != nil && err != io.ErrUnexpectedEOF {
			vm.diagf("error", "\"block read failed: %v\"", err)
			return ^Cell(0)
		}
		for i := 0; i < n; i++ {
			vm.setByteAt(byteOff+i, buf[i])
		}
	}
	return 0
}
