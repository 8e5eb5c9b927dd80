package pipe

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/squires/pkg/command"
)

// newHost returns a tree with the default pipe verbs and a single
// command printing a few lines, plus the buffer its output lands in.
func newHost(t *testing.T) (*command.Command, *bytes.Buffer) {
	t.Helper()
	root := command.NewRoot()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetPipeTree(DefaultTree())
	_, err := root.AddCommand("show lines", command.Def{
		Help: "Show some lines",
		Handler: func(c *command.Command, line []string) error {
			for _, l := range []string{"one fish", "two fish", "red fish", "blue fish"} {
				c.Out().Write([]byte(l + "\n"))
			}
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return root, &buf
}

func TestGrep(t *testing.T) {
	root, buf := newHost(t)
	if err := root.Execute([]string{"show", "lines", "|", "grep", "fish"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 4 {
		t.Errorf("expected all 4 lines, got %q", buf.String())
	}

	buf.Reset()
	if err := root.Execute([]string{"show", "lines", "|", "grep", "TWO"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if buf.String() != "two fish\n" {
		t.Errorf("expected case-insensitive match, got %q", buf.String())
	}
}

func TestExcept(t *testing.T) {
	root, buf := newHost(t)
	if err := root.Execute([]string{"show", "lines", "|", "except", "fish"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if buf.String() != "" {
		t.Errorf("expected everything excluded, got %q", buf.String())
	}

	if err := root.Execute([]string{"show", "lines", "|", "except", "o"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := "red fish\nblue fish\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestCount(t *testing.T) {
	root, buf := newHost(t)
	if err := root.Execute([]string{"show", "lines", "|", "count"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if buf.String() != "Count: 4\n" {
		t.Errorf("expected count, got %q", buf.String())
	}
}

func TestPipeRestoresOutput(t *testing.T) {
	root, buf := newHost(t)
	if err := root.Execute([]string{"show", "lines", "|", "count"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	buf.Reset()
	if err := root.Execute([]string{"show", "lines"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 4 {
		t.Errorf("output writer not restored after pipe: %q", buf.String())
	}
}

func TestPipeMissingRequiredOption(t *testing.T) {
	root, _ := newHost(t)
	if err := root.Execute([]string{"show", "lines", "|", "grep"}); !errors.Is(err, command.ErrNotRun) {
		t.Errorf("expected ErrNotRun without pattern, got %v", err)
	}
}

func TestPipeAbbreviatedVerb(t *testing.T) {
	root, buf := newHost(t)
	if err := root.Execute([]string{"sh", "lines", "|", "co"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if buf.String() != "Count: 4\n" {
		t.Errorf("expected count via abbreviation, got %q", buf.String())
	}
}

func TestFilterFlushesPartialLine(t *testing.T) {
	root := command.NewRoot()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetPipeTree(DefaultTree())
	root.AddCommand("emit", command.Def{
		Help: "Emit without trailing newline",
		Handler: func(c *command.Command, line []string) error {
			c.Out().Write([]byte("par"))
			c.Out().Write([]byte("tial"))
			return nil
		},
	})

	if err := root.Execute([]string{"emit", "|", "grep", "tial"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if buf.String() != "partial" {
		t.Errorf("expected trailing partial line flushed, got %q", buf.String())
	}
}

func TestPipeCompletion(t *testing.T) {
	root, _ := newHost(t)
	got := root.Complete([]string{"show", "lines", "|", " "}, command.CompleteOpts{})
	for _, want := range []string{"grep", "except", "count", "more", "sh"} {
		if _, ok := got[want]; !ok {
			t.Errorf("expected verb %q, got %v", want, got)
		}
	}
	if _, ok := got["start"]; ok {
		t.Error("hidden lifecycle option leaked into candidates")
	}
}
