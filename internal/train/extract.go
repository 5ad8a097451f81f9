package train

import "strings"

// ExtractStructure run-length-encodes line into its L/D/S structure
// string. The scan stops at the first byte above ASCII 127 rather than
// rejecting or skipping it; run extraction below scans the whole line
// regardless.
func ExtractStructure(line string) string {
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case isDigitByte(c):
			b.WriteByte('D')
		case isLetterByte(c):
			b.WriteByte('L')
		case c <= 127:
			b.WriteByte('S')
		default:
			return b.String()
		}
	}
	return b.String()
}

func isDigitByte(c byte) bool  { return c >= '0' && c <= '9' }
func isLetterByte(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// extractRuns collects maximal runs of bytes satisfying keep, discarding
// runs shorter than minLen.
func extractRuns(line string, minLen int, keep func(byte) bool) []string {
	var runs []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if keep(c) {
			cur.WriteByte(c)
			continue
		}
		if cur.Len() > 0 {
			if cur.Len() >= minLen {
				runs = append(runs, cur.String())
			}
			cur.Reset()
		}
	}
	if cur.Len() >= minLen {
		runs = append(runs, cur.String())
	}
	return runs
}

// ExtractDigitRuns pulls maximal digit substrings of length >= minLen.
func ExtractDigitRuns(line string, minLen int) []string {
	return extractRuns(line, minLen, isDigitByte)
}

// ExtractLetterRuns pulls maximal letter substrings of length >= minLen.
func ExtractLetterRuns(line string, minLen int) []string {
	return extractRuns(line, minLen, isLetterByte)
}

// ExtractSpecialRuns pulls maximal substrings of bytes that are neither
// letters nor digits, length >= minLen. Unlike ExtractStructure this scans
// the whole line regardless of high-bit bytes.
func ExtractSpecialRuns(line string, minLen int) []string {
	return extractRuns(line, minLen, func(c byte) bool {
		return !isDigitByte(c) && !isLetterByte(c)
	})
}
