package command

import (
	"strings"

	"github.com/google/squires/pkg/option"
)

// CompleteOpts adjusts completion behavior.
type CompleteOpts struct {
	// ShowHidden includes hidden commands and options in candidates.
	ShowHidden bool
}

// Complete returns completion candidates for the line. Candidates
// starting with '<' are display-only placeholders. The line follows the
// tokenizer convention: a trailing " " token means the cursor is on a
// fresh word. A pipe hands completion to the pipe tree.
func (c *Command) Complete(line []string, opts CompleteOpts) map[string]string {
	c.CommandLine = line
	dis := c.Disambiguate(line, false)

	if c.WillPipe(dis) {
		_, last := SplitPipe(dis)
		return c.PipeTree().Complete(last, opts)
	}

	candidates := map[string]string{}
	for _, name := range c.childNames() {
		sub := c.children[name]
		if !sub.matchesLine(dis) {
			continue
		}
		if len(dis) > 1 {
			// Deeper tokens belong to the first matching subcommand.
			return sub.Complete(dis[1:], opts)
		}
		if !sub.Hidden || opts.ShowHidden {
			candidates[name] = sub.Help
		}
	}

	ctx := option.CompleteContext{
		Runnable:    c.Runnable,
		HasPipe:     c.PipeTree() != nil,
		ShowHidden:  opts.ShowHidden,
		ExecuteHelp: c.ExecuteHelp,
	}
	for k, v := range c.Options.Completes(dis, ctx) {
		candidates[k] = v
	}
	return candidates
}

// matchesLine reports whether the line's first token selects this
// command. An empty line or a bare fresh-word sentinel matches every
// command, meaning "list them all".
func (c *Command) matchesLine(line []string) bool {
	if len(line) == 0 || (len(line) == 1 && line[0] == " ") {
		return true
	}
	return strings.HasPrefix(c.Name, strings.ToLower(line[0]))
}
