package forth

import (
	"errors"
	"fmt"
)

var (
	// errHalt is a clean, non-erroring reason to unwind run(): EOF on the
	// input source while READ, DEFINE or FIND waits for a word, which the
	// original treats as "nothing left to do."
	errHalt = errors.New("normal halt")

	// errIllegalOpcode is fatal: it indicates dictionary or program
	// corruption, matching the source's "default" switch arm.
	errIllegalOpcode = errors.New("illegal opcode")

	// errInvalid names the state a prior fatal halt leaves behind (INVALID
	// set); Run and Eval report that state as a -1 return, not as this
	// error value.
	errInvalid = errors.New("interpreter is invalid")
)

type illegalOpcodeError Cell

func (err illegalOpcodeError) Error() string {
	return errorf("'illegal-op %d", Cell(err))
}
func (err illegalOpcodeError) Unwrap() error { return errIllegalOpcode }

func errorf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
