package command

import (
	"sort"
	"strings"
)

// Disambiguate expands every line token that resolves uniquely against
// the tree: subcommand names first, then this node's options. With
// preferExact, a token equal to a subcommand name wins even when it is
// also a prefix of longer siblings. A pipe splits the work between the
// primary tree and the pipe tree.
func (c *Command) Disambiguate(line []string, preferExact bool) []string {
	if c.WillPipe(line) {
		first, last := SplitPipe(line)
		firstDis := c.Disambiguate(first, preferExact)
		lastDis := c.PipeTree().Disambiguate(last, preferExact)
		if len(firstDis) > 0 {
			out := make([]string, 0, len(firstDis)+1+len(lastDis))
			out = append(out, firstDis...)
			out = append(out, PipeToken)
			return append(out, lastDis...)
		}
		return lastDis
	}
	return c.disambiguate(line, preferExact)
}

func (c *Command) disambiguate(line []string, preferExact bool) []string {
	if len(line) == 0 {
		return []string{}
	}
	first := strings.ToLower(line[0])
	var matches []string
	for _, name := range c.childNames() {
		if preferExact && name == first {
			matches = []string{name}
			break
		}
		if strings.HasPrefix(strings.ToLower(name), first) && first != "" {
			matches = append(matches, name)
		}
	}
	switch {
	case len(matches) > 1:
		out := append([]string{}, line...)
		out[0] = commonPrefix(matches)
		return out
	case len(matches) == 1:
		out := []string{matches[0]}
		if len(line) > 1 {
			out = append(out, c.children[matches[0]].Disambiguate(line[1:], preferExact)...)
		}
		return out
	}
	return c.Options.Disambiguate(line)
}

func (c *Command) childNames() []string {
	names := make([]string, 0, len(c.children))
	for name := range c.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// commonPrefix returns the longest prefix shared by all words.
func commonPrefix(words []string) string {
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
