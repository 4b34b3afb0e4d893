package forth

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/Paul-Webster/libforth/internal/panicerr"
)

// rawpush and rawpop implement "*++S = f" / "f = *S--" against the data
// stack array directly, bypassing the TOP register: inside the
// interpreter loop the current top-of-stack lives in the local variable
// top, and only gets written back to TOP when the loop suspends.
func (vm *VM) rawpush(v Cell) {
	vm.sp++
	vm.stor(Cell(vm.sp), v)
}

func (vm *VM) rawpop() Cell {
	v := vm.load(Cell(vm.sp))
	vm.sp--
	return v
}

func boolCell(b bool) Cell {
	if b {
		return ^Cell(0)
	}
	return 0
}

// Run drives the interpreter loop until EOF on the configured input,
// cancellation of ctx, or a fatal error. It returns 0 on a clean stop and
// -1 once INVALID has been (or becomes) set, matching run()'s contract.
// Once INVALID is set every subsequent call returns -1 without executing.
// The fatal unwind out of exec is caught by panicerr.Recover, the same
// boundary gothird's own api.go wraps its VM calls in.
func (vm *VM) Run(ctx context.Context) int {
	if vm.load(regINVALID) != 0 {
		return -1
	}

	err := panicerr.Recover("VM", func() error {
		vm.exec(ctx)
		return nil
	})

	var he haltError
	if errors.As(err, &he) {
		err = he.error
	}
	if isCleanHalt(err) {
		return 0
	}
	vm.stor(regINVALID, 1)
	return -1
}

func isCleanHalt(err error) bool {
	return err == nil || errors.Is(err, errHalt) || errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Eval temporarily sets string input to s and runs to completion.
func (vm *VM) Eval(ctx context.Context, s string) int {
	vm.SetStringInput(s)
	return vm.Run(ctx)
}

// exec is the threaded-code interpreter loop: fetch pc from the current
// word stream at I, then repeatedly dispatch the opcode at pc until a
// branching opcode updates I and the outer loop resumes. READ is the one
// opcode that can re-enter the dispatch switch with a new pc without
// going back through the outer fetch, mirroring the source's single
// "goto INNER" use.
func (vm *VM) exec(ctx context.Context) {
	I := vm.load(regINSTRUCTION)
	top := vm.load(regTOP)
	defer func() {
		vm.stor(regINSTRUCTION, I)
		vm.stor(regTOP, top)
	}()

	for {
		if err := ctx.Err(); err != nil {
			vm.halt(err)
		}

		pc := vm.load(I)
		I++
		if pc == 0 {
			return
		}

		for {
			instr := vm.load(pc)
			pc++
			op := instr & instructionMask
			redo := false

			switch op {
			case opPUSH, opQUOTE:
				vm.rawpush(top)
				top = vm.load(I)
				I++

			case opCOMPILE:
				dic := vm.load(regDIC)
				vm.stor(dic, pc)
				vm.stor(regDIC, dic+1)

			case opRUN:
				r := vm.load(regRSTK) + 1
				vm.stor(r, I)
				vm.stor(regRSTK, r)
				I = pc

			case opDEFINE:
				vm.stor(regSTATE, 1)
				token, ok := vm.getWord()
				if !ok {
					vm.halt(errHalt)
				}
				vm.compile(opCOMPILE, token)
				dic := vm.load(regDIC)
				vm.stor(dic, opRUN)
				vm.stor(regDIC, dic+1)

			case opIMMEDIATE:
				dic := vm.load(regDIC) - 2
				misc := vm.load(dic)
				misc = (misc &^ Cell(instructionMask)) | opRUN
				vm.stor(dic, misc)
				vm.stor(regDIC, dic+1)

			case opREAD:
				token, ok := vm.getWord()
				if !ok {
					vm.halt(errHalt)
				}
				if w := vm.find(token); w > 1 {
					pc = w
					if vm.load(regSTATE) == 0 && unpackOpcode(vm.load(pc)) == opCOMPILE {
						pc++
					}
					redo = true
				} else if n, ok := numberify(vm.load(regBASE), token); ok {
					if vm.load(regSTATE) != 0 {
						dic := vm.load(regDIC)
						vm.stor(dic, 2) // address of the zero-initialized, never-written cell whose value (0) aliases opPUSH
						vm.stor(dic+1, n)
						vm.stor(regDIC, dic+2)
					} else {
						vm.rawpush(top)
						top = n
					}
				} else {
					vm.diagf("error", "\"%s is not a word\"", token)
				}

			case opLOAD:
				top = vm.load(top)
			case opSTORE:
				addr := top
				val := vm.rawpop()
				vm.stor(addr, val)
				top = vm.rawpop()

			case opSUB:
				a := vm.rawpop()
				top = a - top
			case opADD:
				a := vm.rawpop()
				top = a + top
			case opAND:
				a := vm.rawpop()
				top = a & top
			case opOR:
				a := vm.rawpop()
				top = a | top
			case opXOR:
				a := vm.rawpop()
				top = a ^ top
			case opINV:
				top = ^top
			case opSHL:
				a := vm.rawpop()
				top = a << top
			case opSHR:
				a := vm.rawpop()
				top = a >> top
			case opMUL:
				a := vm.rawpop()
				top = a * top
			case opDIV:
				if top == 0 {
					vm.diagf("error", "\"x/0\"")
				} else {
					a := vm.rawpop()
					top = a / top
				}
			case opLESS:
				a := vm.rawpop()
				top = boolCell(a < top)
			case opMORE:
				a := vm.rawpop()
				top = boolCell(a > top)
			case opEQUAL:
				a := vm.rawpop()
				top = boolCell(a == top)

			case opEXIT:
				r := vm.load(regRSTK)
				I = vm.load(r)
				vm.stor(regRSTK, r-1)

			case opEMIT:
				vm.writeOutByte(byte(top))
				top = vm.rawpop()
			case opKEY:
				vm.rawpush(top)
				if b, ok := vm.getChar(); ok {
					top = Cell(b)
				} else {
					top = ^Cell(0)
				}

			case opFROMR:
				vm.rawpush(top)
				r := vm.load(regRSTK)
				top = vm.load(r)
				vm.stor(regRSTK, r-1)
			case opTOR:
				r := vm.load(regRSTK) + 1
				vm.stor(r, top)
				vm.stor(regRSTK, r)
				top = vm.rawpop()

			case opBRANCH:
				top2 := vm.load(I)
				I += top2
			case opQBRANCH:
				if top == 0 {
					I += vm.load(I)
				} else {
					I++
				}
				top = vm.rawpop()

			case opPNUM:
				vm.writeOutString(formatCell(vm.load(regBASE), top))
				top = vm.rawpop()

			case opCOMMA:
				dic := vm.load(regDIC)
				vm.stor(dic, top)
				vm.stor(regDIC, dic+1)
				top = vm.rawpop()

			case opSWAP:
				w := top
				top = vm.rawpop()
				vm.rawpush(w)
			case opDUP:
				vm.rawpush(top)
			case opDROP:
				top = vm.rawpop()
			case opOVER:
				w := vm.load(Cell(vm.sp))
				vm.rawpush(top)
				top = w

			case opTAIL:
				vm.stor(regRSTK, vm.load(regRSTK)-1)

			case opBSAVE:
				off := vm.rawpop()
				top = vm.blockio(off, top, blockWrite)
			case opBLOAD:
				off := vm.rawpop()
				top = vm.blockio(off, top, blockRead)

			case opFIND:
				vm.rawpush(top)
				token, ok := vm.getWord()
				if !ok {
					vm.halt(errHalt)
				}
				w := vm.find(token)
				if w < dictionaryStart() {
					w = 0
				}
				top = w

			case opPRINT:
				vm.writeOutString(vm.readCString(top))
				top = vm.rawpop()

			case opDEPTH:
				depth := Cell(vm.sp - vm.dataBase())
				vm.rawpush(top)
				top = depth

			case opCLOCK:
				vm.rawpush(top)
				top = Cell(time.Since(vm.created).Milliseconds())

			default:
				err := illegalOpcodeError(op)
				vm.diagf("fatal", "%s", err.Error())
				vm.stor(regINVALID, 1)
				vm.halt(err)
			}

			if !redo {
				break
			}
		}
	}
}

// readCString reads bytes starting at cell address addr (byte offset
// addr times the cell width, within m's byte view) until a NUL or the end
// of m, for the PRINT opcode.
func (vm *VM) readCString(addr Cell) string {
	var buf []byte
	off := int(addr) * cellByteWidth()
	limit := len(vm.m) * cellByteWidth()
	for off < limit {
		b := vm.byteAt(off)
		if b == 0 {
			break
		}
		buf = append(buf, b)
		off++
	}
	return string(buf)
}

func (vm *VM) writeOutByte(b byte) {
	if vm.out != nil {
		_, _ = vm.out.Write([]byte{b})
	}
}

func (vm *VM) writeOutString(s string) {
	if vm.out != nil {
		_, _ = io.WriteString(vm.out, s)
	}
}
