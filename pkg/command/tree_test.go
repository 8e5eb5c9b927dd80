package command

import (
	"strings"
	"testing"

	"github.com/google/squires/pkg/option"
)

func TestBuildTree(t *testing.T) {
	root := NewRoot()
	ran := ""
	handler := func(c *Command, line []string) error {
		ran = strings.Join(c.Path(), " ")
		return nil
	}
	err := BuildTree(root, map[string]NodeDef{
		"show": {
			Def: Def{Help: "Show things"},
			SubCommands: map[string]NodeDef{
				"version": {
					Def: Def{Help: "Show version", Handler: handler},
				},
				"interface": {
					Def: Def{Help: "Show interfaces", Handler: handler},
					Options: []option.Def{
						{Name: "terse", Help: "Brief output"},
						{Name: "name", Help: "Interface name", KeyValue: true, Match: `\S+`},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	intf := root.Children()["show"].Children()["interface"]
	if intf == nil {
		t.Fatal("show interface not registered")
	}
	if len(intf.Options) != 3 { // terse + name key and value sides
		t.Errorf("expected 3 options, got %d", len(intf.Options))
	}
	if err := root.Execute([]string{"show", "interface", "terse"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ran != "show interface" {
		t.Errorf("expected show interface to run, got %q", ran)
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `
commands:
  - name: show
    help: Show things
    commands:
      - name: version
        help: Show version
        handler: version
      - name: interface
        help: Show interfaces
        handler: interface
        options:
          - name: terse
            help: Brief output
          - name: lines
            help: Lines to show
            keyvalue: true
            match: '\d+'
            default: "25"
`
	root := NewRoot()
	ran := ""
	handlers := map[string]Handler{
		"version":   func(c *Command, line []string) error { ran = "version"; return nil },
		"interface": func(c *Command, line []string) error { ran = c.GetOption("lines"); return nil },
	}
	if err := LoadYAML(root, strings.NewReader(doc), handlers); err != nil {
		t.Fatal(err)
	}

	if err := root.Execute([]string{"show", "version"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ran != "version" {
		t.Errorf("expected version handler, got %q", ran)
	}
	if err := root.Execute([]string{"show", "interface", "lines", "10"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ran != "10" {
		t.Errorf("expected lines 10, got %q", ran)
	}
}

func TestLoadYAMLUnknownHandler(t *testing.T) {
	doc := `
commands:
  - name: show
    handler: missing
`
	err := LoadYAML(NewRoot(), strings.NewReader(doc), nil)
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Errorf("expected unknown handler error, got %v", err)
	}
}

func TestLoadYAMLUnknownField(t *testing.T) {
	doc := `
commands:
  - name: show
    bogus: true
`
	if err := LoadYAML(NewRoot(), strings.NewReader(doc), nil); err == nil {
		t.Error("expected error for unknown field")
	}
}
