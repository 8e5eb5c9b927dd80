package command

import (
	"errors"
	"fmt"
)

// ErrNotRun reports that a line was dispatched but no handler ran: the
// options did not validate, or the resolved command is incomplete.
var ErrNotRun = errors.New("command not run")

// GetCommand resolves the line to its deepest matching node, recording
// the disambiguated remainder on each node passed through. A leading
// pipe token is retained so a piped line dispatches into the pipe tree.
func (c *Command) GetCommand(line []string) *Command {
	c.CommandLine = c.Disambiguate(line, true)
	if c.WillPipe(line) && len(line) > 0 && line[0] == PipeToken {
		c.CommandLine = append([]string{PipeToken}, c.CommandLine...)
	}
	if len(c.CommandLine) == 0 {
		return c
	}
	child, ok := c.children[c.CommandLine[0]]
	if !ok {
		return c
	}
	return child.GetCommand(c.CommandLine[1:])
}

// Execute dispatches the line: resolve the command, validate its
// options, then run the handler. Validation diagnostics go to the
// node's output writer. With a pipe present, the pipe verb is started
// before the handler and stopped afterwards; the stop always runs so a
// failing handler cannot leave the output writer swapped.
func (c *Command) Execute(line []string) error {
	cmd := c.GetCommand(line)

	checkLine := cmd.CommandLine
	if cmd.WillPipe(checkLine) {
		checkLine, _ = SplitPipe(checkLine)
	}
	if res := cmd.Options.Validate(checkLine); !res.OK() {
		res.Describe(cmd.Out())
		return ErrNotRun
	}

	if cmd.WillPipe(cmd.CommandLine) {
		first, last := SplitPipe(cmd.CommandLine)
		tree := cmd.PipeTree()
		start := append(append([]string{}, last...), "start")
		if err := tree.Execute(start); err != nil {
			return err
		}
		stop := append(append([]string{}, last...), "stop")
		defer tree.Execute(stop)
		return cmd.run(first)
	}
	return cmd.run(cmd.CommandLine)
}

func (c *Command) run(line []string) error {
	if c.Handler == nil {
		fmt.Fprintln(c.Out(), "% Incomplete command.")
		return ErrNotRun
	}
	return c.Handler(c, line)
}
