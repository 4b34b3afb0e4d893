package forth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberifyBases(t *testing.T) {
	cases := []struct {
		base  Cell
		token string
		want  Cell
		ok    bool
	}{
		{10, "123", 123, true},
		{10, "-123", ^Cell(123) + 1, true},
		{16, "ff", 255, true},
		{2, "1010", 10, true},
		{36, "z", 35, true},
		{0, "0x1f", 31, true},
		{0, "010", 8, true},
		{0, "10", 10, true},
		{10, "12a", 0, false},
		{10, "", 0, false},
		{37, "1", 0, false},
	}
	for _, c := range cases {
		got, ok := numberify(c.base, c.token)
		assert.Equal(t, c.ok, ok, "token %q base %d", c.token, c.base)
		if c.ok {
			assert.Equal(t, c.want, got, "token %q base %d", c.token, c.base)
		}
	}
}

func TestFormatCellRoundTrip(t *testing.T) {
	for base := Cell(2); base <= 36; base++ {
		for _, v := range []Cell{0, 1, 35, 1000, ^Cell(0)} {
			s := formatCell(base, v)
			got, ok := numberify(base, s)
			assert.True(t, ok, "base %d value %d rendered %q", base, v, s)
			assert.Equal(t, v, got, "base %d value %d rendered %q", base, v, s)
		}
	}
}

func TestGetWordSkipsWhitespace(t *testing.T) {
	vm := New(minCoreSize)
	vm.SetStringInput("   hello   world")
	w, ok := vm.getWord()
	assert.True(t, ok)
	assert.Equal(t, "hello", w)
	w, ok = vm.getWord()
	assert.True(t, ok)
	assert.Equal(t, "world", w)
	_, ok = vm.getWord()
	assert.False(t, ok)
}

func TestGetWordTruncatesAtMaxLength(t *testing.T) {
	vm := New(minCoreSize)
	long := ""
	for i := 0; i < maxWordLength+10; i++ {
		long += "a"
	}
	vm.SetStringInput(long)
	w, ok := vm.getWord()
	assert.True(t, ok)
	assert.Equal(t, maxWordLength-1, len(w))
}
