package forth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadStorRoundTrip(t *testing.T) {
	vm := New(minCoreSize)
	vm.stor(100, 42)
	assert.EqualValues(t, 42, vm.load(100))
}

func TestLoadOutOfBoundsHalts(t *testing.T) {
	vm := New(minCoreSize)
	assert.Panics(t, func() {
		vm.load(Cell(len(vm.m)) + 1000)
	})
}

func TestByteAtRoundTrip(t *testing.T) {
	vm := New(minCoreSize)
	for i := 0; i < cellByteWidth()*4; i++ {
		vm.setByteAt(i, byte(i*7))
	}
	for i := 0; i < cellByteWidth()*4; i++ {
		assert.EqualValues(t, byte(i*7), vm.byteAt(i))
	}
}

func TestPushPopViaTopRegister(t *testing.T) {
	vm := New(minCoreSize)
	base := vm.StackPosition()
	vm.push(1)
	vm.push(2)
	vm.push(3)
	assert.Equal(t, base+3, vm.StackPosition())
	assert.EqualValues(t, 3, vm.pop())
	assert.EqualValues(t, 2, vm.pop())
	assert.EqualValues(t, 1, vm.pop())
	assert.Equal(t, base, vm.StackPosition())
}
