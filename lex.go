package forth

import "strings"

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// getChar reads one byte from whichever input SOURCE_ID selects. The
// bool result is false on EOF, mirroring forth_get_char's EOF sentinel.
func (vm *VM) getChar() (byte, bool) {
	switch vm.load(regSOURCE_ID) {
	case sourceFile:
		r, _, err := vm.fileIn.ReadRune()
		if err != nil || r == 0 {
			return 0, false
		}
		return byte(r), true
	case sourceString:
		idx, ln := vm.load(regSIDX), vm.load(regSLEN)
		if idx >= ln || int(idx) >= len(vm.stringIn) {
			return 0, false
		}
		b := vm.stringIn[idx]
		vm.stor(regSIDX, idx+1)
		return b, true
	default:
		return 0, false
	}
}

// getWord skips leading whitespace then reads up to maxWordLength-1
// non-whitespace bytes. The bool result is false only when EOF is hit
// before any token byte is read, mirroring forth_get_word's negative
// return used by READ to terminate the outer loop cleanly.
func (vm *VM) getWord() (string, bool) {
	var b byte
	var ok bool
	for {
		b, ok = vm.getChar()
		if !ok {
			return "", false
		}
		if !isSpace(b) {
			break
		}
	}

	var sb strings.Builder
	sb.WriteByte(b)
	for sb.Len() < maxWordLength-1 {
		b, ok = vm.getChar()
		if !ok || isSpace(b) {
			break
		}
		sb.WriteByte(b)
	}
	return sb.String(), true
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

// numberify converts token to a cell in the given base (2..36, or 0 to
// detect a base from a "0x"/"0" prefix the way strtol(..., 0) does). The
// conversion is always attempted and the value of the digits read before
// the first illegal one is returned either way; the bool result reports
// whether the whole token was a legal numeral in that base, matching
// numberify's contract of writing *n regardless of success.
func numberify(base Cell, token string) (Cell, bool) {
	if token == "" {
		return 0, false
	}
	neg := false
	i := 0
	switch token[0] {
	case '-':
		neg, i = true, 1
	case '+':
		i = 1
	}
	s := token[i:]

	b := base
	if b == 0 {
		switch {
		case len(s) >= 2 && (s[0:2] == "0x" || s[0:2] == "0X"):
			b, s = 16, s[2:]
		case len(s) > 1 && s[0] == '0':
			b, s = 8, s[1:]
		default:
			b = 10
		}
	}
	if s == "" || b < 2 || b > 36 {
		return 0, false
	}

	var val uint64
	ok := true
	for i := 0; i < len(s); i++ {
		d := digitValue(s[i])
		if d < 0 || Cell(d) >= b {
			ok = false
			break
		}
		val = val*uint64(b) + uint64(d)
	}
	n := Cell(val)
	if neg {
		n = -n
	}
	return n, ok
}

// formatCell renders v, reinterpreted as unsigned, in the given base
// (2..36; anything else falls back to 10), lowercase digits — the
// generalization of print_cell beyond its original base 10/16 special
// case, per §4.3.
func formatCell(base, v Cell) string {
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	if base < 2 || base > 36 {
		base = 10
	}
	if v == 0 {
		return "0"
	}
	var buf []byte
	for v > 0 {
		buf = append(buf, digits[v%base])
		v /= base
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}
