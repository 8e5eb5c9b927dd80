// Command adventure is a tiny text adventure demonstrating the squires
// toolkit: command tree, every option style, tab completion, '?' help
// and output piping.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/google/squires/pkg/command"
	"github.com/google/squires/pkg/option"
	"github.com/google/squires/pkg/pipe"
	"github.com/google/squires/pkg/shell"
)

func main() {
	var (
		historyFile string
		showHidden  bool
	)
	root := &cobra.Command{
		Use:          "adventure",
		Short:        "A useless text adventure with a Junos-style CLI",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(historyFile, showHidden)
		},
	}
	root.Flags().StringVar(&historyFile, "history-file", "/tmp/adventure_history", "readline history file")
	root.Flags().BoolVar(&showHidden, "show-hidden", false, "show hidden commands and options in completion")
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(historyFile string, showHidden bool) error {
	a := newAdventure()
	tree := command.NewRoot()
	tree.Prompt = "adventure> "
	tree.SetPipeTree(pipe.DefaultTree())
	if err := a.register(tree); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	sess, err := shell.New(tree, shell.Config{
		Prompt:      tree.Prompt,
		HistoryFile: historyFile,
		ShowHidden:  showHidden,
		Logger:      logger,
		Registerer:  prometheus.DefaultRegisterer,
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	a.slowPrint(os.Stdout, "Welcome to Squires Adventure 1.0! Press <tab> for help.")
	return sess.Run()
}

// adventure holds the game state. The inventory lives in a TTL cache:
// picked-up chupachups melt away after a while.
type adventure struct {
	inventory *cache.Cache
	rnd       *rand.Rand
}

func newAdventure() *adventure {
	inv := cache.New(cache.NoExpiration, 10*time.Minute)
	inv.Set("dagger", 1, cache.NoExpiration)
	inv.Set("chupachup", 2, cache.NoExpiration)
	return &adventure{
		inventory: inv,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (a *adventure) count(item string) int {
	if v, ok := a.inventory.Get(item); ok {
		return v.(int)
	}
	return 0
}

// items feeds the Dynamic matchers, so completion always reflects the
// current inventory.
func (a *adventure) items(_ *option.Option) map[string]string {
	values := map[string]string{}
	for name, it := range a.inventory.Items() {
		values[name] = fmt.Sprintf("%d in inventory", it.Object.(int))
	}
	return values
}

func (a *adventure) register(tree *command.Command) error {
	itemOption := func(help string) option.Def {
		return option.Def{
			Name: "item", Help: help, Group: "item", Required: true,
			Enumerator: option.EnumeratorFunc(a.items),
		}
	}
	return command.BuildTree(tree, map[string]command.NodeDef{
		"use": {
			Def: command.Def{Help: "Use an item"},
			SubCommands: map[string]command.NodeDef{
				"weapon": {
					Def:     command.Def{Help: "Use a weapon", Handler: a.useWeapon},
					Options: []option.Def{itemOption("Weapon to use")},
				},
				"food": {
					Def:     command.Def{Help: "Eat some food", Handler: a.useFood},
					Options: []option.Def{itemOption("Food to eat.")},
				},
			},
		},
		"pickup": {
			Def: command.Def{Help: "Pickup an item.", Handler: a.pickup},
			Options: []option.Def{
				{Name: "item", Help: "Item to pickup.", Group: "items", Required: true, Match: `\w+`},
				{Name: "chupachups", Group: "items", Required: true},
			},
		},
		"set": {
			Def: command.Def{Help: "Set something.", Handler: a.set},
			Options: []option.Def{
				{Name: "colour", Help: "Cli colour", Match: `[a-z]+`, KeyValue: true, Default: "white"},
				{Name: "error", Help: "Make an error"},
				{Name: "file", Help: "Dump gold to file", IsPath: true, KeyValue: true, Default: "default.txt"},
				{Name: "pager", Help: "Change screen pager", KeyValue: true,
					MatchMap: map[string]string{"on": "Enable the pager", "off": "Disable the pager"}},
				{Name: "power", Help: "Change power", KeyValue: true,
					MatchMap: map[string]string{"low": "Set power low", "high": "Set power high"}},
				{Name: "linewrap", Help: "Change linewrap", KeyValue: true,
					MatchMap: map[string]string{"on": "Set linewrap on", "off": "Set linewrap off"}},
				{Name: "strength", Help: "Set strength", KeyValue: true, Hidden: true, Default: "strong",
					Enumerator: option.EnumeratorFunc(strengths)},
			},
		},
		"look": {
			Def: command.Def{Help: "Look around the room", Handler: a.look},
			Options: []option.Def{
				{Name: "direction", Help: "Direction to look", Match: `\w+`, Default: "up"},
			},
		},
		"fight": {
			Def: command.Def{Help: "Fight an enemy", Handler: a.fight},
			Options: []option.Def{
				{Name: "enemy", Help: "Enemy to fight", KeyValue: true, Match: `\S+`},
				{Name: "weapon", Help: "Weapon to use", Match: `\S+`},
			},
		},
		"walk": {
			Def: command.Def{Help: "Walk somewhere", Handler: a.walk},
			Options: []option.Def{
				{Name: "direction", Help: "Direction to walk", Default: "north",
					MatchList: []string{"north", "northeast", "south", "east", "west"}},
			},
		},
		"inventory": {
			Def: command.Def{Help: "See your inventory", Handler: a.showInventory},
		},
		"say": {
			Def: command.Def{Help: "Say something", Handler: a.say},
			Options: []option.Def{
				{Name: "shout", Help: "Shout it out!"},
				{Name: "words", Help: "Words to say", KeyValue: true, Match: `.+`, Multiword: true},
			},
		},
		"quit": {
			Def: command.Def{Help: "Leave the dungeon", Handler: func(c *command.Command, line []string) error {
				return shell.ErrExit
			}},
		},
	})
}

func strengths(_ *option.Option) map[string]string {
	return map[string]string{
		"pissweak": "Pointless!",
		"weak":     "Meh",
		"strong":   "Better",
		"superman": "Now we're talking!",
	}
}

func (a *adventure) useWeapon(c *command.Command, line []string) error {
	item := c.GetGroupOption("item")
	if a.count(item) > 0 {
		a.slowPrint(c.Out(), fmt.Sprintf("You attempt to use a %s as a weapon.", item))
		a.slowPrint(c.Out(), "There is nothing here to attack.")
	} else {
		a.slowPrint(c.Out(), fmt.Sprintf("You dont have a %s to attack with!", item))
	}
	return nil
}

func (a *adventure) useFood(c *command.Command, line []string) error {
	item := c.GetGroupOption("item")
	if a.count(item) == 0 {
		a.slowPrint(c.Out(), fmt.Sprintf("You dont have a %s to eat!", item))
		return nil
	}
	a.slowPrint(c.Out(), fmt.Sprintf("You attempt to eat a %s.", item))
	if item == "chupachup" {
		a.inventory.Set("chupachup", a.count("chupachup")-1, cache.NoExpiration)
		a.slowPrint(c.Out(), "*suck suck suck*")
		a.slowPrint(c.Out(), "Yum!")
		return nil
	}
	a.slowPrint(c.Out(), "You are not a trained sword swallower. ")
	a.slowPrint(c.Out(), "You die from internal bleeding.")
	return shell.ErrExit
}

func (a *adventure) pickup(c *command.Command, line []string) error {
	item := c.GetGroupOption("items")
	if item == "chupachups" {
		a.slowPrint(c.Out(), "You picked up the chupachups.")
		// Found sweets go soft eventually.
		a.inventory.Set("chupachup", a.count("chupachup")+1, 30*time.Minute)
	} else {
		a.slowPrint(c.Out(), fmt.Sprintf("I dont see a %s.", item))
	}
	return nil
}

func (a *adventure) set(c *command.Command, line []string) error {
	if c.GetOption("error") != "" {
		return fmt.Errorf("boo!")
	}
	fmt.Fprintf(c.Out(), "Colour is: %s\n", c.GetOption("colour"))
	fmt.Fprintf(c.Out(), "File is: %s\n", c.GetOption("file"))
	fmt.Fprintf(c.Out(), "Pager is: %s\n", c.GetOption("pager"))
	fmt.Fprintf(c.Out(), "Strength is: %s\n", c.GetOption("strength"))
	return nil
}

func (a *adventure) look(c *command.Command, line []string) error {
	switch direction := c.GetOption("direction"); direction {
	case "north", "south", "east", "west":
		a.slowPrint(c.Out(), fmt.Sprintf("You see a corridor to the %s", direction))
	case "up":
		a.slowPrint(c.Out(), "There is a wet stone ceiling above your head.")
	case "down":
		a.slowPrint(c.Out(), "You see Chupa Chups on the floor.# Looks tasty.")
	case "":
		a.slowPrint(c.Out(), "You see various things in different places.# Look where?")
	default:
		a.slowPrint(c.Out(), fmt.Sprintf("I dont know how to look %s", direction))
	}
	return nil
}

func (a *adventure) walk(c *command.Command, line []string) error {
	direction := c.GetOption("direction")
	fmt.Fprintf(c.Out(), "Walking %s\n", direction)
	if a.rnd.Intn(8) == 0 {
		a.slowPrint(c.Out(), "You are eaten by a grue.")
		return shell.ErrExit
	}
	if direction == "east" || direction == "west" {
		a.slowPrint(c.Out(), "You walk down a long corridor.")
	} else {
		a.slowPrint(c.Out(), "You have entered a room with four exits.")
	}
	return nil
}

func (a *adventure) showInventory(c *command.Command, line []string) error {
	a.slowPrint(c.Out(), "Current inventory items:")
	for name := range a.inventory.Items() {
		a.slowPrint(c.Out(), fmt.Sprintf("%d# %s(s)", a.count(name), name))
	}
	return nil
}

func (a *adventure) fight(c *command.Command, line []string) error {
	a.slowPrint(c.Out(), fmt.Sprintf("Fighting %s with a %s...",
		c.GetOption("enemy"), c.GetOption("weapon")))
	return nil
}

func (a *adventure) say(c *command.Command, line []string) error {
	tone := "mutter"
	if c.GetOption("shout") != "" {
		tone = "shout"
	}
	a.slowPrint(c.Out(), fmt.Sprintf("You %s, %q.", tone, c.GetOption("words")))
	return nil
}

// slowPrint writes the line character by character, ancient modem
// style. A '#' pauses for a second instead of printing.
func (a *adventure) slowPrint(w io.Writer, line string) {
	for _, char := range line {
		if char == '#' {
			time.Sleep(time.Second)
			continue
		}
		fmt.Fprintf(w, "%c", char)
		time.Sleep(10 * time.Millisecond)
	}
	fmt.Fprintln(w)
}
