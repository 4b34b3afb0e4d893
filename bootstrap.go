package forth

import "context"

// initialProgram is evaluated once during bootstrap, after the register
// constants are named. It builds the handful of control-structure words
// (if/else/then, begin/until), comment handling, a few stack shuffling
// words, and the conventional "." alias for pnum, entirely in Forth out
// of the primitives the bootstrap loop just installed.
const initialProgram = `
: . pnum ;
: here h @ ;
: [ immediate 0 state ! ;
: ] 1 state ! ;
: >mark here 0 , ;
: :noname immediate -1 , here 2 , ] ;
: if immediate ' ?branch , >mark ;
: else immediate ' branch , >mark swap dup here swap - swap ! ;
: then immediate dup here swap - swap ! ;
: 2dup over over ;
: begin immediate here ;
: until immediate ' ?branch , here - , ;
: '\n' 10 ;
: ')' 41 ;
: cr '\n' emit ;
: ( immediate begin key ')' = until ; ( We can now use comments! )
: rot >r swap r> swap ;
: -rot rot rot ;
: tuck swap over ;
: nip swap drop ;
: :: [ find : , ] ;
: allot here + h ! ;
`

// defineMinimal is evaluated right after the primitive names are bound,
// before state and the other registers have real names yet: it gives
// "state" and the immediate word ";" (compile exit, return to interpret
// mode) meaning, by hand, the same
// way forth_init seeds state before any later word can reference it by
// name.
const defineMinimal = `: state 8 exit : ; immediate ' exit , 0 state ! ;`

// bootstrap installs the primitive dictionary, the self-recursive outer
// driver, the register-name constants and the Forth-level standard words,
// mirroring forth_init. It is called exactly once, from New, on a freshly
// zeroed core.
func (vm *VM) bootstrap() {
	vm.stor(regPWD, 0)

	dic := dictionaryStart()
	vm.stor(regDIC, dic)

	tail := dic
	vm.stor(dic, opTAIL)
	dic++

	readWord := dic
	vm.stor(dic, opREAD)
	dic++
	vm.stor(dic, opRUN)
	dic++

	instruction := dic
	vm.stor(regINSTRUCTION, instruction)
	vm.stor(dic, readWord)
	dic++
	vm.stor(dic, tail)
	dic++
	vm.stor(dic, instruction-1)
	dic++

	vm.stor(regDIC, dic)

	// ":" and "immediate" dispatch directly off their own opcode, rather
	// than through the usual COMPILE wrapper, so they always run
	// regardless of STATE.
	vm.compile(opDEFINE, ":")
	vm.compile(opIMMEDIATE, "immediate")

	for i, name := range opcodeNames {
		if name == "" {
			continue
		}
		if Cell(i) == opDEFINE || Cell(i) == opIMMEDIATE {
			continue
		}
		vm.compile(opCOMPILE, name)
		d := vm.load(regDIC)
		vm.stor(d, Cell(i))
		vm.stor(regDIC, d+1)
	}

	if rc := vm.Eval(context.Background(), defineMinimal); rc != 0 {
		panic("bootstrap: defineMinimal failed")
	}

	for i, name := range registerNames {
		if err := vm.DefineConstant(name, regDIC+Cell(i)); err != nil {
			panic("bootstrap: register constant " + name + ": " + err.Error())
		}
	}

	if rc := vm.Eval(context.Background(), initialProgram); rc != 0 {
		panic("bootstrap: initialProgram failed")
	}

	if err := vm.DefineConstant("size", Cell(cellByteWidth())); err != nil {
		panic("bootstrap: size constant: " + err.Error())
	}
	if err := vm.DefineConstant("stack-start", Cell(vm.dataBase())); err != nil {
		panic("bootstrap: stack-start constant: " + err.Error())
	}
	if err := vm.DefineConstant("max-core", Cell(len(vm.m))); err != nil {
		panic("bootstrap: max-core constant: " + err.Error())
	}
}
