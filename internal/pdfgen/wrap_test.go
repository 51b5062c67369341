package pdfgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed-width fake measurer: 6 points per byte.
func charWidth(s string) float64 { return float64(len(s)) * 6 }

func TestWrap_EmptyInput(t *testing.T) {
	assert.Equal(t, []string{""}, Wrap("", 100, charWidth))
	assert.Equal(t, []string{""}, Wrap("   ", 100, charWidth))
}

func TestWrap_SingleShortLine(t *testing.T) {
	assert.Equal(t, []string{"hello world"}, Wrap("hello world", 100, charWidth))
}

func TestWrap_BreaksOnOverflow(t *testing.T) {
	// 10 chars max per line at width 60.
	lines := Wrap("aaaa bbbb cccc", 60, charWidth)
	assert.Equal(t, []string{"aaaa bbbb", "cccc"}, lines)
}

func TestWrap_OverlongWordGetsOwnLine(t *testing.T) {
	lines := Wrap("hi supercalifragilistic yo", 60, charWidth)
	assert.Equal(t, []string{"hi", "supercalifragilistic", "yo"}, lines)
}

// Every line fits (given no single word exceeds the width) and rejoining
// reproduces the whitespace-normalized input.
func TestWrap_WidthAndReassemblyProperty(t *testing.T) {
	texts := []string{
		"The bid excludes demolition hauling and permit fees entirely",
		"one",
		"a b c d e f g h i j k l m n o p",
		"Multiple   internal    spaces are   collapsed by wrapping",
	}
	for _, text := range texts {
		for _, maxWidth := range []float64{40, 60, 90, 200, 1000} {
			lines := Wrap(text, maxWidth, charWidth)
			require.NotEmpty(t, lines)
			widest := 0.0
			for _, w := range strings.Fields(text) {
				if charWidth(w) > widest {
					widest = charWidth(w)
				}
			}
			if widest <= maxWidth {
				for _, line := range lines {
					assert.LessOrEqual(t, charWidth(line), maxWidth,
						"line %q overflows at width %v", line, maxWidth)
				}
			}
			joined := strings.Join(lines, " ")
			assert.Equal(t, strings.Join(strings.Fields(text), " "), joined)
		}
	}
}
