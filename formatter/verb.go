package formatter

// conversion letters accepted after '%'
func isConversion(c byte) bool {
	switch c {
	case 'd', 'i', 'u', 'o', 'x', 'X',
		'f', 'F', 'e', 'E', 'g', 'G', 'a', 'A',
		'c', 's', 'p', 'n':
		return true
	}
	return false
}

// flag, width, precision and length characters allowed between '%' and the
// conversion letter
func isModifier(c byte) bool {
	switch c {
	case 'l', 'L', 'I', 'P', 'R', 'q',
		'#', '+', '-', '*', '.':
		return true
	}
	return c >= '0' && c <= '9'
}

// isLength reports modifiers that only size the C argument and have no
// meaning for a typed Arg.
func isLength(c byte) bool {
	switch c {
	case 'l', 'L', 'I', 'P', 'R', 'q', '*':
		return true
	}
	return false
}

// ScanVerb parses the conversion that starts at format[i], which must be a
// '%'. It returns the index just past the conversion letter. ok is false when
// the sequence hits an unknown character or the end of the string.
func ScanVerb(format string, i int) (end int, ok bool) {
	for j := i + 1; j < len(format); j++ {
		c := format[j]
		if isConversion(c) {
			return j + 1, true
		}
		if !isModifier(c) {
			return 0, false
		}
	}
	return 0, false
}
