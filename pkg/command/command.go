// Package command implements a hierarchical command tree for interactive
// shells. Each node carries its own option set; the tree provides shared
// disambiguation, validation, completion and dispatch over it, plus an
// optional pipe sub-tree whose verbs post-process command output.
package command

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/google/squires/pkg/option"
)

// Handler runs a command. line holds the command's own tokens: everything
// after the command path, pipe segment excluded.
type Handler func(c *Command, line []string) error

// RunMode controls whether a command can be executed by itself.
type RunMode int

const (
	// RunAuto makes a command runnable iff it has a handler.
	RunAuto RunMode = iota
	RunYes
	RunNo
)

// Def describes a command to register.
type Def struct {
	Help     string
	Handler  Handler
	Runnable RunMode
	Hidden   bool
	Meta     any
	// Pipe attaches a pipe sub-tree at this node.
	Pipe *Command
}

// Command is one node of the tree. Fields are fixed at registration
// except CommandLine, which records the disambiguated remainder of the
// most recent dispatch through this node.
type Command struct {
	Name     string
	Help     string
	Runnable bool
	Hidden   bool
	Handler  Handler
	Options  option.Options
	Meta     any

	// Prompt is only meaningful on the root.
	Prompt string
	// ExecuteHelp is shown as the help of the <cr> candidate.
	ExecuteHelp string
	// CommandLine is the disambiguated token remainder for this node,
	// set by GetCommand before the handler runs.
	CommandLine []string

	children map[string]*Command
	parent   *Command
	pipeTree *Command
	// host points from a pipe tree root back to the command the tree is
	// attached to, so pipe verbs can reach the primary output writer.
	host *Command
	out  io.Writer
}

// NewRoot returns an empty tree root.
func NewRoot() *Command {
	return &Command{
		Name:        "<root>",
		Prompt:      "> ",
		ExecuteHelp: "Execute this command",
		children:    map[string]*Command{},
	}
}

var errEmptyPath = errors.New("empty command path")

// AddCommand registers a command under the space-separated path,
// anchored at the tree root. Missing ancestors are created as hidden
// placeholders. Registering an existing path replaces the node's own
// fields and options but keeps its subcommands.
func (c *Command) AddCommand(path string, def Def) (*Command, error) {
	names := strings.Fields(path)
	if len(names) == 0 {
		return nil, errEmptyPath
	}
	node := &Command{
		Name:        names[len(names)-1],
		Help:        def.Help,
		Handler:     def.Handler,
		Hidden:      def.Hidden,
		Meta:        def.Meta,
		ExecuteHelp: "Execute this command",
		children:    map[string]*Command{},
	}
	switch def.Runnable {
	case RunYes:
		node.Runnable = true
	case RunNo:
		node.Runnable = false
	default:
		node.Runnable = def.Handler != nil
	}
	if def.Pipe != nil {
		node.SetPipeTree(def.Pipe)
	}
	c.Root().attach(names[:len(names)-1], node)
	return node, nil
}

// AddSubCommand registers a command directly below this node.
func (c *Command) AddSubCommand(name string, def Def) (*Command, error) {
	path := append(c.Path(), name)
	return c.AddCommand(strings.Join(path, " "), def)
}

func (c *Command) attach(ancestors []string, node *Command) {
	cur := c
	for _, key := range ancestors {
		child, ok := cur.children[key]
		if !ok {
			child = &Command{
				Name:        key,
				Hidden:      true,
				ExecuteHelp: "Execute this command",
				children:    map[string]*Command{},
				parent:      cur,
			}
			cur.children[key] = child
		}
		cur = child
	}
	if old, ok := cur.children[node.Name]; ok {
		for name, sub := range old.children {
			node.children[name] = sub
			sub.parent = node
		}
	}
	node.parent = cur
	cur.children[node.Name] = node
}

// AddOption adds an option to this command.
func (c *Command) AddOption(def option.Def) error {
	return c.Options.Add(def)
}

// Children returns the subcommand map, keyed by name.
func (c *Command) Children() map[string]*Command { return c.children }

// Parent returns the parent node, nil on a root.
func (c *Command) Parent() *Command { return c.parent }

// Root returns the root of the tree this node belongs to.
func (c *Command) Root() *Command {
	for c.parent != nil {
		c = c.parent
	}
	return c
}

// Path returns the command names from the root to this node.
func (c *Command) Path() []string {
	var path []string
	for cur := c; cur.parent != nil; cur = cur.parent {
		path = append(path, cur.Name)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// SetPipeTree attaches a pipe sub-tree at this node and points the tree
// back here, so pipe verbs can swap this tree's output writer.
func (c *Command) SetPipeTree(tree *Command) {
	c.pipeTree = tree
	tree.Root().host = c
}

// PipeTree returns the nearest pipe tree, climbing towards the root.
func (c *Command) PipeTree() *Command {
	if c.pipeTree != nil {
		return c.pipeTree
	}
	if c.parent != nil {
		return c.parent.PipeTree()
	}
	return nil
}

// Host returns the command a pipe tree is attached to. Nil when called
// on a node of the primary tree.
func (c *Command) Host() *Command {
	return c.Root().host
}

// WillPipe reports whether the line contains a pipe and a pipe tree is
// reachable to process it.
func (c *Command) WillPipe(line []string) bool {
	if c.PipeTree() == nil {
		return false
	}
	for _, t := range line {
		if t == PipeToken {
			return true
		}
	}
	return false
}

// Out returns the output writer commands should print to. It lives on
// the primary tree's root; pipe verbs swap it for the duration of a
// piped command. From a pipe tree node it resolves through the host.
func (c *Command) Out() io.Writer {
	root := c.Root()
	if root.host != nil {
		return root.host.Out()
	}
	if root.out == nil {
		return os.Stdout
	}
	return root.out
}

// SetOut swaps the output writer on the primary tree's root.
func (c *Command) SetOut(w io.Writer) {
	root := c.Root()
	if root.host != nil {
		root.host.SetOut(w)
		return
	}
	root.out = w
}

// GetOption reads an option value off this node's current command line.
// The pipe segment, if any, is excluded.
func (c *Command) GetOption(name string) string {
	line := c.CommandLine
	if c.WillPipe(line) {
		line, _ = SplitPipe(line)
	}
	return c.Options.GetOption(line, name)
}

// GetGroupOption reads which member of a group the current command line
// supplied.
func (c *Command) GetGroupOption(group string) string {
	line := c.CommandLine
	if c.WillPipe(line) {
		line, _ = SplitPipe(line)
	}
	return c.Options.GetGroupOption(line, group)
}
