// Package markup handles the decorative tag syntax quest authors embed in
// display text, such as <red>Hard</red>. Display surfaces render plain text,
// so derived labels and lore strip tags before use.
package markup

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`</?[a-zA-Z_][a-zA-Z0-9_:#-]*>`)

// Strip removes decorative tags and legacy section-sign color codes, leaving
// the visible text.
func Strip(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	var b strings.Builder
	b.Grow(len(s))
	skip := false
	for _, r := range s {
		if skip {
			skip = false
			continue
		}
		if r == '§' {
			skip = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Wrap breaks text into lines of at most width visible characters, splitting
// on word boundaries. Words longer than the width land on their own line
// unbroken.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len([]rune(line))+1+len([]rune(word)) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
