package forth

import (
	"fmt"
)

// haltError wraps whatever error caused a fatal unwind out of run(), so
// that the API boundary can tell a clean EOF exit from a genuine failure.
type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

// halt unwinds the interpreter loop via panic, to be caught at the Run or
// Eval API boundary. It is the Go stand-in for the source's
// setjmp/longjmp escape (see the Design Notes on scoped escapes).
func (vm *VM) halt(err error) {
	if vm.out != nil {
		_ = vm.out.Flush()
	}
	if vm.errOut != nil {
		_ = vm.errOut.Flush()
	}
	vm.logf("halt: %v", err)
	panic(haltError{err})
}

type logging struct {
	logfn func(mess string, args ...interface{})
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() { log.logfn = logfn }
}

func (log logging) logf(mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v", mess)
}

// diagf writes one of the literal diagnostic forms — "( error ... )",
// "( fatal ... )" or "( debug ... )" — to the VM's error sink. These
// forms are part of the observable interface: tests assert against them
// verbatim, so callers embed their own quoting (or lack of it) in mess,
// exactly as each fprintf call in the source does for its own diagnostic.
func (vm *VM) diagf(kind, mess string, args ...interface{}) {
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	if vm.errOut != nil {
		fmt.Fprintf(vm.errOut, "( %s %s )\n", kind, mess)
		_ = vm.errOut.Flush()
	}
	vm.logf("%s %s", kind, mess)
}

func foldLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
