package command

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/google/squires/pkg/option"
)

// yamlTree is the document layout accepted by LoadYAML.
type yamlTree struct {
	Commands []yamlCommand `yaml:"commands"`
}

type yamlCommand struct {
	Name     string        `yaml:"name"`
	Help     string        `yaml:"help"`
	Handler  string        `yaml:"handler"`
	Runnable *bool         `yaml:"runnable"`
	Hidden   bool          `yaml:"hidden"`
	Options  []yamlOption  `yaml:"options"`
	Commands []yamlCommand `yaml:"commands"`
}

type yamlOption struct {
	Name      string            `yaml:"name"`
	Help      string            `yaml:"help"`
	Boolean   *bool             `yaml:"boolean"`
	KeyValue  bool              `yaml:"keyvalue"`
	Required  bool              `yaml:"required"`
	Hidden    bool              `yaml:"hidden"`
	Default   string            `yaml:"default"`
	Group     string            `yaml:"group"`
	Position  *int              `yaml:"position"`
	Match     string            `yaml:"match"`
	Multiword bool              `yaml:"multiword"`
	List      []string          `yaml:"list"`
	Map       map[string]string `yaml:"map"`
	Path      *yamlPath         `yaml:"path"`
}

type yamlPath struct {
	Pattern   string `yaml:"pattern"`
	Dir       string `yaml:"dir"`
	OnlyValid bool   `yaml:"only_valid"`
	OnlyDirs  bool   `yaml:"only_dirs"`
}

// LoadYAML registers the command tree declared in a YAML document.
// Handler references in the document are resolved by name against
// handlers; a reference with no entry is an error.
func LoadYAML(root *Command, r io.Reader, handlers map[string]Handler) error {
	var doc yamlTree
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("parsing command tree: %w", err)
	}
	for _, yc := range doc.Commands {
		if err := loadYAMLCommand(root, "", yc, handlers); err != nil {
			return err
		}
	}
	return nil
}

func loadYAMLCommand(root *Command, prefix string, yc yamlCommand, handlers map[string]Handler) error {
	if yc.Name == "" {
		return fmt.Errorf("command under %q has no name", prefix)
	}
	path := yc.Name
	if prefix != "" {
		path = prefix + " " + yc.Name
	}
	def := Def{Help: yc.Help, Hidden: yc.Hidden}
	if yc.Handler != "" {
		h, ok := handlers[yc.Handler]
		if !ok {
			return fmt.Errorf("command %q: unknown handler %q", path, yc.Handler)
		}
		def.Handler = h
	}
	if yc.Runnable != nil {
		if *yc.Runnable {
			def.Runnable = RunYes
		} else {
			def.Runnable = RunNo
		}
	}
	cmd, err := root.AddCommand(path, def)
	if err != nil {
		return err
	}
	for _, yo := range yc.Options {
		od := option.Def{
			Name:      yo.Name,
			Help:      yo.Help,
			Boolean:   yo.Boolean,
			KeyValue:  yo.KeyValue,
			Required:  yo.Required,
			Hidden:    yo.Hidden,
			Default:   yo.Default,
			Group:     yo.Group,
			Match:     yo.Match,
			Multiword: yo.Multiword,
			MatchList: yo.List,
			MatchMap:  yo.Map,
		}
		if yo.Position != nil {
			od.Positional = true
			od.Position = *yo.Position
		}
		if yo.Path != nil {
			od.IsPath = true
			od.PathDef = &option.PathDef{
				Pattern:   yo.Path.Pattern,
				Dir:       yo.Path.Dir,
				OnlyValid: yo.Path.OnlyValid,
				OnlyDirs:  yo.Path.OnlyDirs,
			}
		}
		if err := cmd.AddOption(od); err != nil {
			return fmt.Errorf("command %q: %w", path, err)
		}
	}
	for _, sub := range yc.Commands {
		if err := loadYAMLCommand(root, path, sub, handlers); err != nil {
			return err
		}
	}
	return nil
}
