package forth

import (
	"io"
	"time"

	"github.com/Paul-Webster/libforth/internal/fileinput"
	"github.com/Paul-Webster/libforth/internal/flushio"
)

// VM is one Forth virtual machine: a single contiguous array of cells
// plus the handful of host-side fields (the data-stack pointer, I/O
// sinks, the clock epoch) that the serialized image itself does not
// carry, mirroring how the source's forth_make_default re-derives them
// on every load.
type VM struct {
	logging

	m  []Cell
	sp int // data stack pointer, index into m; reset on init/load

	out    flushio.WriteFlusher // FOUT: primary output sink
	errOut flushio.WriteFlusher // diagnostic sink, distinct from FOUT

	fileIn   fileinput.Input // backs SOURCE_ID==sourceFile
	stringIn []byte          // backs SOURCE_ID==sourceString

	blockDir string // directory BSAVE/BLOAD resolve NNNN.blk files against

	created time.Time // epoch for CLOCK
}

// dataBase and dataLimit bound the data-stack region; retBase/retLimit
// bound the return-stack region. Both live at the top of m, per §3.
func (vm *VM) dataBase() int  { return len(vm.m) - 2*int(vm.load(regSTACK_SIZE)) }
func (vm *VM) dataLimit() int { return len(vm.m) - int(vm.load(regSTACK_SIZE)) }
func (vm *VM) retBase() int   { return len(vm.m) - int(vm.load(regSTACK_SIZE)) }
func (vm *VM) retLimit() int  { return len(vm.m) }

// New creates a VM with the given core size (in cells, rounded up to the
// minimum floor) and applies opts, then runs the bootstrap program. It
// mirrors the source's forth_init: install primitive headers, write the
// self-recursive driver, evaluate the embedded Forth source.
func New(size int, opts ...VMOption) *VM {
	if size < minCoreSize {
		size = minCoreSize
	}
	vm := &VM{m: make([]Cell, size), created: time.Now()}

	defaultOptions.apply(vm)
	VMOptions(opts...).apply(vm)

	vm.makeDefault()
	vm.bootstrap()
	return vm
}

// makeDefault (re)establishes the host-side fields the serialized image
// does not carry: the data-stack pointer and the default register
// values, mirroring forth_make_default being re-run on every load.
func (vm *VM) makeDefault() {
	if vm.load(regSTACK_SIZE) == 0 {
		ss := len(vm.m) / 64
		if ss < 64 {
			ss = 64
		}
		vm.stor(regSTACK_SIZE, Cell(ss))
	}
	vm.sp = vm.dataBase()
	vm.stor(regRSTK, Cell(vm.retBase()))
	if vm.load(regDIC) == 0 {
		vm.stor(regDIC, dictionaryStart())
	}
	if vm.load(regBASE) == 0 {
		vm.stor(regBASE, 10)
	}
	vm.stor(regSTART_ADDR, 0)
	vm.stor(regSTART_TIME, 0)
	vm.created = time.Now()

	if vm.out == nil {
		vm.out = flushio.NewWriteFlusher(io.Discard)
	}
	if vm.errOut == nil {
		vm.errOut = flushio.NewWriteFlusher(io.Discard)
	}
}

// Close flushes the VM's output sinks. Block I/O opens and closes its own
// file per transfer; readers queued through SetFileInput belong to the
// caller and are not closed here.
func (vm *VM) Close() error {
	var err error
	if vm.out != nil {
		err = vm.out.Flush()
	}
	if vm.errOut != nil {
		if ferr := vm.errOut.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}
