package sqldump

import (
	"bytes"
)

// Sections splits data into at most n contiguous sections that can be
// scanned independently. Every section but the first begins with an INSERT
// statement for table. Concatenated, the sections equal data.
//
// Boundaries are only placed on markers at the start of a line. mysqldump
// escapes newlines inside string literals, so a line start is never inside a
// literal.
func Sections(data []byte, table string, n int) [][]byte {
	if n <= 1 || len(data) == 0 {
		return [][]byte{data}
	}
	marker := append([]byte{'\n'}, insertMarker(table)...)
	size := len(data) / n

	var out [][]byte
	start := 0
	for len(out) < n-1 {
		target := max((len(out)+1)*size, start+1)
		if target >= len(data) {
			break
		}
		j := bytes.Index(data[target:], marker)
		if j < 0 {
			break
		}
		cut := target + j + 1
		out = append(out, data[start:cut])
		start = cut
	}
	return append(out, data[start:])
}
