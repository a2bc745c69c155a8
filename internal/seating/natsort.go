package seating

// naturalLess compares seat names chunk by chunk, treating runs of digits as
// numbers, so "A2" sorts before "A10" and "B1" after "A12".
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		aChunk, aNumeric, aRest := nextChunk(a)
		bChunk, bNumeric, bRest := nextChunk(b)

		if aNumeric && bNumeric {
			if cmp := compareNumeric(aChunk, bChunk); cmp != 0 {
				return cmp < 0
			}

			// Equal values spelled differently ("01" vs "1") still need a
			// deterministic order.
			if aChunk != bChunk {
				return aChunk < bChunk
			}
		} else if aChunk != bChunk {
			return aChunk < bChunk
		}

		a, b = aRest, bRest
	}

	return len(a) < len(b)
}

func nextChunk(s string) (chunk string, numeric bool, rest string) {
	numeric = isDigit(s[0])

	i := 1
	for i < len(s) && isDigit(s[i]) == numeric {
		i++
	}

	return s[:i], numeric, s[i:]
}

// compareNumeric compares two digit runs without parsing them into ints, so
// arbitrarily long runs cannot overflow. Leading zeros are stripped first.
func compareNumeric(a, b string) int {
	a = trimLeadingZeros(a)
	b = trimLeadingZeros(b)

	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}

	return s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
