package pdfgen

import "strings"

// Wrap greedily packs whitespace-separated words into lines whose measured
// width stays within maxWidth. A word wider than maxWidth gets a line of its
// own rather than being split. Always returns at least one line.
func Wrap(text string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 4)
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if measure(candidate) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
