package forth

import (
	"context"
	"fmt"
	"io"

	"github.com/Paul-Webster/libforth/internal/flushio"
)

// Push and Pop drive the data stack from the host side, between calls to
// Run/Eval, via the TOP register the interpreter loop saves its cached
// top-of-stack into on every suspend.
func (vm *VM) Push(v Cell) { vm.push(v) }
func (vm *VM) Pop() Cell   { return vm.pop() }

// SetFileInput switches SOURCE_ID to file-like input backed by r, queued
// behind any input already pending, matching forth_set_file_input's
// queue-and-continue behavior.
func (vm *VM) SetFileInput(r io.Reader, name string) {
	vm.fileIn.Queue = append(vm.fileIn.Queue, r)
	vm.stor(regSOURCE_ID, sourceFile)
}

// SetFileOutput redirects FOUT.
func (vm *VM) SetFileOutput(w io.Writer) {
	vm.out = flushio.NewWriteFlusher(w)
}

// SetStringInput switches SOURCE_ID to string input over s, replacing
// whatever string input was pending, matching forth_set_string_input.
func (vm *VM) SetStringInput(s string) {
	vm.stringIn = []byte(s)
	vm.stor(regSOURCE_ID, sourceString)
	vm.stor(regSIDX, 0)
	vm.stor(regSLEN, Cell(len(s)))
}

// DefineConstant defines a word that pushes v when run, by evaluating a
// tiny colon-definition, the same trick forth_define_constant uses rather
// than poking the dictionary directly.
func (vm *VM) DefineConstant(name string, v Cell) error {
	src := fmt.Sprintf(": %s %d ;\n", name, uint64(v))
	saved := vm.stringIn
	savedSrc, savedIdx, savedLen := vm.load(regSOURCE_ID), vm.load(regSIDX), vm.load(regSLEN)

	rc := vm.Eval(context.Background(), src)

	vm.stringIn = saved
	vm.stor(regSOURCE_ID, savedSrc)
	vm.stor(regSIDX, savedIdx)
	vm.stor(regSLEN, savedLen)

	if rc != 0 {
		return fmt.Errorf("define constant %q: evaluation failed", name)
	}
	return nil
}

// Invalid reports whether a prior fatal halt has permanently disabled the
// interpreter, matching the `invalid` register's sticky-failure contract.
func (vm *VM) Invalid() bool { return vm.load(regINVALID) != 0 }
