package shell

import (
	"fmt"
	"io"
	"strings"
)

// Candidate is a completion candidate with its help text.
type Candidate struct {
	Name string
	Desc string
}

// WriteHelp prints candidates in two aligned columns, Junos style.
func WriteHelp(w io.Writer, candidates []Candidate) {
	maxWidth := 20
	for _, c := range candidates {
		if len(c.Name) > maxWidth {
			maxWidth = len(c.Name)
		}
	}
	var b strings.Builder
	b.WriteString("Possible completions:\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "  %-*s %s\n", maxWidth, c.Name, c.Desc)
	}
	io.WriteString(w, b.String())
}

// CommonPrefix returns the longest prefix shared by all words.
func CommonPrefix(words []string) string {
	if len(words) == 0 {
		return ""
	}
	prefix := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
