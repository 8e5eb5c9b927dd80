// Package pipe provides output post-processing for a command tree. Each
// verb is a command in a pipe sub-tree; while a piped command runs, the
// verb's Pipe intercepts the tree's output writer and forwards filtered
// output to the writer that was in place before.
package pipe

import (
	"io"

	"github.com/google/squires/pkg/command"
	"github.com/google/squires/pkg/option"
)

// Pipe is one output interceptor. Begin is called before the piped
// command runs, with the verb's command node so options can be read and
// the downstream writer captured via c.Out(). End is called after the
// command, always, and flushes whatever the pipe buffered.
type Pipe interface {
	Begin(c *command.Command) error
	End() error
	io.Writer
}

// Attach registers a pipe verb on the tree. The verb carries hidden
// boolean start/stop options; dispatch runs "<verb> ... start" before
// the piped command and "<verb> ... stop" after it, and the handler
// swaps the host tree's output writer between the two.
func Attach(tree *command.Command, name, help string, p Pipe, opts ...option.Def) (*command.Command, error) {
	var prev io.Writer
	cmd, err := tree.AddSubCommand(name, command.Def{
		Help:     help,
		Runnable: command.RunYes,
		Handler: func(c *command.Command, line []string) error {
			switch {
			case c.Options.GetOption(line, "start") != "":
				prev = c.Out()
				if err := p.Begin(c); err != nil {
					prev = nil
					return err
				}
				c.SetOut(p)
			case c.Options.GetOption(line, "stop") != "":
				if prev != nil {
					c.SetOut(prev)
					prev = nil
				}
				return p.End()
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	lifecycle := []option.Def{
		{Name: "start", Help: "Start the pipe", Hidden: true},
		{Name: "stop", Help: "Stop the pipe", Hidden: true},
	}
	for _, od := range append(lifecycle, opts...) {
		if err := cmd.AddOption(od); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

// DefaultTree assembles the standard pipe verbs: more, grep, except,
// count and sh.
func DefaultTree() *command.Command {
	tree := command.NewRoot()
	matchString := func(help string) option.Def {
		return option.Def{Name: "string", Help: help, Match: `\S+`, Required: true}
	}
	Attach(tree, "more", "One page at a time", NewMore())
	Attach(tree, "grep", "Find a string", NewMatch(), matchString("String to find"))
	Attach(tree, "except", "Except a string", NewExcept(), matchString("String to exclude"))
	Attach(tree, "count", "Count lines", NewCount())
	Attach(tree, "sh", "Pipe to shell command", NewShell(), matchString("Command to pipe to"))
	return tree
}
