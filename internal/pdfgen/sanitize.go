package pdfgen

import "strings"

// glyphMap substitutes the unicode the model likes to emit with bracketed
// ASCII tags or plain equivalents. The embedded core fonts only cover a
// Latin-1-ish subset; anything unmapped and non-ASCII is dropped outright so
// it cannot corrupt the page stream.
var glyphMap = map[rune]string{
	'✓': "[OK] ",
	'✔': "[OK] ",
	'✅': "[OK] ",
	'✗': "[X] ",
	'✘': "[X] ",
	'❌': "[X] ",
	'⚠': "[!] ",
	'❗': "[!] ",
	'•': "- ",
	'→': "->",
	'←': "<-",
	'‘': "'",
	'’': "'",
	'“': `"`,
	'”': `"`,
	'—': "-",
	'–': "-",
	'…': "...",
	'™': "(tm)",
	'®': "(r)",
	'©': "(c)",
	'°': " deg",
	'×': "x",
	'≈': "~",
	'½': "1/2",
	'¼': "1/4",
	'¾': "3/4",
}

// Sanitize folds a string down to the ASCII the page fonts render reliably.
func Sanitize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if repl, ok := glyphMap[r]; ok {
			sb.WriteString(repl)
			continue
		}
		if r < 128 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
