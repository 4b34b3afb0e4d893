package forth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileAndFind(t *testing.T) {
	vm := New(minCoreSize)

	before := vm.load(regDIC)
	vm.compile(opCOMPILE, "foo")
	d := vm.load(regDIC)
	vm.stor(d, opADD)
	vm.stor(regDIC, d+1)

	assert.Greater(t, vm.load(regDIC), before)

	w := vm.find("foo")
	assert.NotZero(t, w)
	// find returns the misc-cell address; its opcode is always COMPILE for
	// a word compiled this way, with the real behavior one cell further on.
	assert.Equal(t, opCOMPILE, unpackOpcode(vm.load(w)))
	assert.Equal(t, opADD, vm.load(w+1))
}

func TestFindIsCaseInsensitive(t *testing.T) {
	vm := New(minCoreSize)
	vm.compile(opCOMPILE, "Foo")
	d := vm.load(regDIC)
	vm.stor(d, opADD)
	vm.stor(regDIC, d+1)

	lower := vm.find("foo")
	upper := vm.find("FOO")
	mixed := vm.find("FoO")
	assert.NotZero(t, lower)
	assert.Equal(t, lower, upper)
	assert.Equal(t, lower, mixed)
}

func TestFindReturnsZeroWhenMissing(t *testing.T) {
	vm := New(minCoreSize)
	assert.Zero(t, vm.find("does-not-exist"))
}

func TestCompileLinksEveryEntryBackward(t *testing.T) {
	vm := New(minCoreSize)
	for _, name := range []string{"one", "two", "three"} {
		vm.compile(opCOMPILE, name)
		d := vm.load(regDIC)
		vm.stor(d, opADD)
		vm.stor(regDIC, d+1)
	}

	w := vm.load(regPWD)
	for w != 0 {
		link := vm.load(w)
		assert.Less(t, link, w)
		w = link
	}
}
