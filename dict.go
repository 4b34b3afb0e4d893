package forth

import "strings"

// compile appends a new word header at the current dictionary pointer:
// name bytes, NUL-padded up to a cell boundary, then a link cell and a
// packed misc cell. It does not write any body cells; callers append
// those afterward with stor(regDIC, ...) bumps, exactly as the READ
// opcode and DEFINE do.
func (vm *VM) compile(opcode Cell, name string) {
	header := vm.load(regDIC)
	byteOff := int(header) * cellByteWidth()

	n := len(name)
	if n > maxWordLength-1 {
		n = maxWordLength - 1
	}
	for i := 0; i < n; i++ {
		vm.setByteAt(byteOff+i, name[i])
	}
	vm.setByteAt(byteOff+n, 0)

	total := n + 1
	w := cellByteWidth()
	l := Cell((total + w - 1) / w)
	vm.stor(regDIC, header+l)

	link := vm.load(regDIC)
	vm.stor(link, vm.load(regPWD))
	vm.stor(regPWD, link)
	vm.stor(regDIC, link+1)

	misc := link + 1
	vm.stor(misc, packMisc(opcode, l))
	vm.stor(regDIC, misc+1)
}

// nameAt reads the NUL-terminated name stored just below a link cell at
// the given name length, in cells.
func (vm *VM) nameAt(link Cell, lengthCells Cell) string {
	end := int(link) * cellByteWidth()
	start := end - int(lengthCells)*cellByteWidth()
	var sb strings.Builder
	for i := start; i < end; i++ {
		b := vm.byteAt(i)
		if b == 0 {
			break
		}
		sb.WriteByte(b)
	}
	return sb.String()
}

// DictionaryWords walks the dictionary from PWD toward the terminator,
// skipping hidden words, and returns every name whose lowercased form
// starts with the lowercased prefix, most-recently-defined first. Used
// by the CLI's line-editor word completer; not part of the VM's own
// opcode set.
func (vm *VM) DictionaryWords(prefix string) []string {
	lprefix := foldLower(prefix)
	var names []string
	w := vm.load(regPWD)
	ds := dictionaryStart()
	for w > ds {
		misc := vm.load(w + 1)
		if !isHidden(misc) {
			length := unpackLength(misc)
			name := vm.nameAt(w, length)
			if strings.HasPrefix(foldLower(name), lprefix) {
				names = append(names, name)
			}
		}
		w = vm.load(w)
	}
	return names
}

// find walks the dictionary from PWD toward the terminator, skipping
// hidden words, and returns one past the matching link cell (the address
// of its misc cell), or 0 if name is not found. Comparison is
// case-insensitive over ASCII, matching istrcmp.
func (vm *VM) find(name string) Cell {
	lname := foldLower(name)
	w := vm.load(regPWD)
	ds := dictionaryStart()
	for w > ds {
		misc := vm.load(w + 1)
		if !isHidden(misc) {
			length := unpackLength(misc)
			if foldLower(vm.nameAt(w, length)) == lname {
				return w + 1
			}
		}
		w = vm.load(w)
	}
	return 0
}
