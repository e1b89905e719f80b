package utils

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nonWord = regexp.MustCompile(`\W+`)

var lower = cases.Lower(language.Und)

// ParseLines splits free text into trimmed, non-empty lines.
// Every task counter in the application goes through this rule.
func ParseLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// CountLines returns len(ParseLines(text)).
func CountLines(text string) int {
	return len(ParseLines(text))
}

// Lower lower-cases text for matching and tokenization.
func Lower(text string) string {
	return lower.String(text)
}

// Words lower-cases text and splits it on runs of non-word characters,
// keeping tokens longer than minLen characters.
func Words(text string, minLen int) []string {
	var words []string
	for _, w := range nonWord.Split(Lower(text), -1) {
		if len([]rune(w)) > minLen {
			words = append(words, w)
		}
	}
	return words
}

// Truncate returns the first n runes of s.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Round rounds half away from zero, which for the non-negative values used
// here matches rounding half up.
func Round(x float64) int {
	return int(math.Round(x))
}

// Percent returns round(num/den*100), or 0 when den is 0.
func Percent(num, den int) int {
	if den <= 0 {
		return 0
	}
	return Round(float64(num) / float64(den) * 100)
}
