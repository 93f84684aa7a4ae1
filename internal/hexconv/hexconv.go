package hexconv

// Halfbyte maps an ASCII character to its hexadecimal value. Characters that aren't hex
// digits are mapped to 0xFF.
var Halfbyte = newHalfbyteTable()

func newHalfbyteTable() (table [256]byte) {
	for i := range table {
		table[i] = 0xFF
	}

	for c := '0'; c <= '9'; c++ {
		table[c] = byte(c - '0')
	}

	for c := 'a'; c <= 'f'; c++ {
		table[c] = byte(c-'a') + 10
		table[c-'a'+'A'] = byte(c-'a') + 10
	}

	return table
}

// IsHex reports whether the character is a hexadecimal digit.
func IsHex(c byte) bool {
	return Halfbyte[c] != 0xFF
}
