package command

import (
	"sort"

	"github.com/google/squires/pkg/option"
)

// NodeDef declares one command, its options and its subcommands, for
// bulk registration with BuildTree.
type NodeDef struct {
	Def
	Options     []option.Def
	SubCommands map[string]NodeDef
}

// BuildTree registers a nested command declaration under the root.
// Nodes are added in sorted name order so registration is
// deterministic.
func BuildTree(root *Command, defs map[string]NodeDef) error {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := buildNode(root, name, defs[name]); err != nil {
			return err
		}
	}
	return nil
}

func buildNode(root *Command, path string, def NodeDef) error {
	cmd, err := root.AddCommand(path, def.Def)
	if err != nil {
		return err
	}
	for _, od := range def.Options {
		if err := cmd.AddOption(od); err != nil {
			return err
		}
	}
	subs := make([]string, 0, len(def.SubCommands))
	for name := range def.SubCommands {
		subs = append(subs, name)
	}
	sort.Strings(subs)
	for _, name := range subs {
		if err := buildNode(root, path+" "+name, def.SubCommands[name]); err != nil {
			return err
		}
	}
	return nil
}
