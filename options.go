package forth

import (
	"io"

	"github.com/Paul-Webster/libforth/internal/flushio"
)

// VMOption configures a VM at construction time. The set mirrors the
// source's handful of forth_set_* calls, expressed as functional options
// in the same style gothird's options.go uses for its own VM.
type VMOption interface {
	apply(*VM)
}

type vmOptionFunc func(*VM)

func (f vmOptionFunc) apply(vm *VM) { f(vm) }

// VMOptions composes several options into one, applied in order.
func VMOptions(opts ...VMOption) VMOption {
	return vmOptionFunc(func(vm *VM) {
		for _, opt := range opts {
			opt.apply(vm)
		}
	})
}

var defaultOptions = VMOptions()

// WithOutput sets the primary output sink (FOUT).
func WithOutput(w io.Writer) VMOption {
	return vmOptionFunc(func(vm *VM) {
		vm.out = flushio.NewWriteFlusher(w)
	})
}

// WithErrorOutput sets the diagnostic sink used by diagf.
func WithErrorOutput(w io.Writer) VMOption {
	return vmOptionFunc(func(vm *VM) {
		vm.errOut = flushio.NewWriteFlusher(w)
	})
}

// WithLogf installs a trace-logging callback, matching gothird's
// withLogfn option.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption {
	return vmOptionFunc(func(vm *VM) {
		vm.logfn = logfn
	})
}

// WithDebug turns on the DEBUG register's per-access tracing as soon as
// the option is applied; New applies options before bootstrap, so the
// bootstrap's own memory accesses are traced too.
func WithDebug(on bool) VMOption {
	return vmOptionFunc(func(vm *VM) {
		if on {
			vm.stor(regDEBUG, 1)
		}
	})
}

// WithBlockDir sets the directory BSAVE/BLOAD resolve NNNN.blk names
// against; the default is the process's working directory.
func WithBlockDir(dir string) VMOption {
	return vmOptionFunc(func(vm *VM) {
		vm.blockDir = dir
	})
}
