package tmpl

import "strings"

// Sanitize breaks up every "{{" and "}}" in user text by inserting a space
// between adjacent braces, then trims surrounding whitespace. The result
// never contains either marker, so it cannot open a substitution or
// iteration tag once embedded in a prompt.
func Sanitize(input string) string {
	if !strings.Contains(input, "{{") && !strings.Contains(input, "}}") {
		return strings.TrimSpace(input)
	}

	var b strings.Builder
	b.Grow(len(input) + len(input)/4)
	var prev byte
	for i := 0; i < len(input); i++ {
		c := input[i]
		if (c == '{' || c == '}') && prev == c {
			b.WriteByte(' ')
		}
		b.WriteByte(c)
		prev = c
	}
	return strings.TrimSpace(b.String())
}
