package forth

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVM() (*VM, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	vm := New(minCoreSize, WithOutput(&out), WithErrorOutput(&errOut))
	return vm, &out, &errOut
}

func TestEvalAddAndPrint(t *testing.T) {
	vm, out, _ := newTestVM()
	rc := vm.Eval(context.Background(), " 2 3 + . ")
	assert.Equal(t, 0, rc)
	assert.Contains(t, out.String(), "5")
	assert.Equal(t, vm.dataBase(), vm.sp)
}

func TestEvalDefineAndCallWord(t *testing.T) {
	vm, out, _ := newTestVM()
	rc := vm.Eval(context.Background(), ": square dup * ; 7 square . ")
	require.Equal(t, 0, rc)
	assert.Equal(t, "49", out.String())
	assert.NotZero(t, vm.find("square"))
}

func TestEvalRecursiveFactorial(t *testing.T) {
	vm, out, _ := newTestVM()
	rc := vm.Eval(context.Background(),
		": fact dup 1 u< if drop 1 exit then dup 1 - fact * ; 5 fact . ")
	require.Equal(t, 0, rc)
	assert.Equal(t, "120", out.String())
}

func TestEvalUnknownWordReportsRecoverableError(t *testing.T) {
	vm, _, errOut := newTestVM()
	rc := vm.Eval(context.Background(), "xyzzy")
	assert.Equal(t, 0, rc)
	assert.Contains(t, errOut.String(), `( error "xyzzy is not a word" )`)
}

func TestEvalBoundsFailureIsFatalAndSticky(t *testing.T) {
	vm, _, errOut := newTestVM()
	rc := vm.Eval(context.Background(), ": bad 999999999 @ ;")
	require.Equal(t, 0, rc)

	rc = vm.Eval(context.Background(), "bad")
	assert.Equal(t, -1, rc)
	assert.Contains(t, errOut.String(), `( fatal "bounds check failed: `)

	rc = vm.Eval(context.Background(), "1 2 + .")
	assert.Equal(t, -1, rc)
}

func TestSaveLoadRoundTripPreservesDefinitions(t *testing.T) {
	vm, _, _ := newTestVM()
	rc := vm.Eval(context.Background(), ": c1 42 ; ")
	require.Equal(t, 0, rc)

	var buf bytes.Buffer
	require.NoError(t, vm.SaveCore(&buf))

	var out bytes.Buffer
	loaded, err := LoadCore(&buf, WithOutput(&out))
	require.NoError(t, err)

	rc = loaded.Eval(context.Background(), "c1 . ")
	assert.Equal(t, 0, rc)
	assert.Equal(t, "42", out.String())
}

func TestSaveCoreRefusesInvalidImage(t *testing.T) {
	vm, _, _ := newTestVM()
	rc := vm.Eval(context.Background(), ": bad 999999999 @ ; bad")
	require.Equal(t, -1, rc)

	var buf bytes.Buffer
	err := vm.SaveCore(&buf)
	assert.Error(t, err)
}

func TestDivisionByZeroLeavesStackUnchanged(t *testing.T) {
	vm, _, errOut := newTestVM()
	vm.push(7)
	vm.push(0)
	before := vm.StackPosition()
	rc := vm.Eval(context.Background(), "/")
	assert.Equal(t, 0, rc)
	assert.Contains(t, errOut.String(), "x/0")
	assert.Equal(t, before, vm.StackPosition())
}

func TestCaseInsensitiveFindAgreesAcrossCasings(t *testing.T) {
	vm, _, _ := newTestVM()
	require.Equal(t, 0, vm.Eval(context.Background(), ": MixedCase 1 ; "))
	lower := vm.find("mixedcase")
	upper := vm.find("MIXEDCASE")
	mixed := vm.find("MixedCase")
	assert.NotZero(t, lower)
	assert.Equal(t, lower, upper)
	assert.Equal(t, lower, mixed)
}
