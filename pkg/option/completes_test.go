package option

import (
	"testing"
)

func TestCompletesFreshToken(t *testing.T) {
	var opts Options
	opts.Add(Def{Name: "detailed", Help: "Full detail"})
	opts.Add(Def{Name: "lines", Help: "Lines to show", KeyValue: true, Match: `\d+`, Default: "25"})

	ctx := CompleteContext{Runnable: true, ExecuteHelp: "Execute this command"}
	got := opts.Completes([]string{" "}, ctx)

	for _, want := range []string{"detailed", "lines", "<cr>"} {
		if _, ok := got[want]; !ok {
			t.Errorf("expected candidate %q, got %v", want, got)
		}
	}
	if got["<cr>"] != "Execute this command" {
		t.Errorf("unexpected <cr> help: %q", got["<cr>"])
	}
}

func TestCompletesKeyValueArg(t *testing.T) {
	var opts Options
	opts.Add(Def{Name: "lines", Help: "Lines to show", KeyValue: true, Match: `\d+`, Default: "25"})

	ctx := CompleteContext{Runnable: true, ExecuteHelp: "Execute this command"}
	got := opts.Completes([]string{"lines", " "}, ctx)

	if len(got) != 1 {
		t.Fatalf("value position must own the candidate set, got %v", got)
	}
	want := "Lines to show [Default: 25]"
	if got["<lines>"] != want {
		t.Errorf("expected {<lines>: %q}, got %v", want, got)
	}
}

func TestCompletesKeyValueEnumArg(t *testing.T) {
	var opts Options
	opts.Add(Def{Name: "pager", KeyValue: true,
		MatchMap: map[string]string{"on": "Enable", "off": "Disable"}})

	got := opts.Completes([]string{"pager", "o"}, CompleteContext{})
	if len(got) != 2 {
		t.Fatalf("expected on/off, got %v", got)
	}
	got = opts.Completes([]string{"pager", "of"}, CompleteContext{})
	if _, ok := got["off"]; !ok || len(got) != 1 {
		t.Errorf("expected {off}, got %v", got)
	}
}

func TestCompletesCrOnlyWhenValid(t *testing.T) {
	var opts Options
	opts.Add(Def{Name: "target", Match: `\S+`, Required: true})

	ctx := CompleteContext{Runnable: true, ExecuteHelp: "Execute this command"}
	if got := opts.Completes([]string{" "}, ctx); got["<cr>"] != "" {
		t.Errorf("<cr> offered while required option missing: %v", got)
	}
	got := opts.Completes([]string{"something", " "}, ctx)
	if _, ok := got["<cr>"]; !ok {
		t.Errorf("expected <cr> once required option present, got %v", got)
	}
}

func TestCompletesPipeCandidate(t *testing.T) {
	var opts Options
	ctx := CompleteContext{Runnable: true, HasPipe: true, ExecuteHelp: "Execute this command"}
	got := opts.Completes([]string{" "}, ctx)
	if _, ok := got["|"]; !ok {
		t.Errorf("expected pipe candidate, got %v", got)
	}
}

func TestCompletesDropsPlaceholdersMidToken(t *testing.T) {
	var opts Options
	opts.Add(Def{Name: "detailed", Help: "Full detail"})
	opts.Add(Def{Name: "delay", Help: "Delay", Match: `\d+`, Boolean: boolPtr(false)})

	got := opts.Completes([]string{"de"}, CompleteContext{})
	if _, ok := got["<delay>"]; ok {
		t.Errorf("placeholder should be dropped when concrete candidates exist: %v", got)
	}
	if _, ok := got["detailed"]; !ok {
		t.Errorf("expected detailed, got %v", got)
	}
}

func TestCompletesHidden(t *testing.T) {
	var opts Options
	opts.Add(Def{Name: "secret", Hidden: true})
	opts.Add(Def{Name: "public"})

	if got := opts.Completes([]string{" "}, CompleteContext{}); len(got) != 1 {
		t.Errorf("hidden option leaked: %v", got)
	}
	got := opts.Completes([]string{" "}, CompleteContext{ShowHidden: true})
	if _, ok := got["secret"]; !ok {
		t.Errorf("expected hidden option with ShowHidden, got %v", got)
	}
}

func boolPtr(b bool) *bool { return &b }
