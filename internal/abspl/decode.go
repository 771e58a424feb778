package abspl

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DefaultCharmap is the code page the instrument software writes exports in.
var DefaultCharmap = charmap.Windows1252

// Bytes with no assignment in code page 1252. charmap passes them through as
// C1 controls; exports never contain them legitimately.
var unassigned1252 = [256]bool{0x81: true, 0x8D: true, 0x8F: true, 0x90: true, 0x9D: true}

// DecodeLines decodes data with DefaultCharmap and splits it into lines.
func DecodeLines(data []byte) []string {
	return DecodeLinesWith(DefaultCharmap, data)
}

// DecodeLinesWith decodes data byte-by-byte through cm and splits it into
// lines. A nil cm selects DefaultCharmap. Decoding cannot fail.
func DecodeLinesWith(cm *charmap.Charmap, data []byte) []string {
	return splitLines(decode(cm, data))
}

func decode(cm *charmap.Charmap, data []byte) string {
	if cm == nil {
		cm = DefaultCharmap
	}
	strict1252 := cm == charmap.Windows1252

	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		if strict1252 && unassigned1252[c] {
			b.WriteRune(utf8.RuneError)
			continue
		}
		b.WriteRune(cm.DecodeByte(c))
	}
	return b.String()
}

// splitLines splits on universal line boundaries. Terminators are dropped,
// empty lines kept, and a trailing terminator does not add an empty line.
func splitLines(text string) []string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	i := 0
	for i < len(text) {
		r, size := rune(text[i]), 1
		if r >= 0x80 {
			r, size = utf8.DecodeRuneInString(text[i:])
		}
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1C, 0x1D, 0x1E, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}
