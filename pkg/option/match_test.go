package option

import (
	"reflect"
	"sort"
	"testing"
)

func mustOption(t *testing.T, def Def) *Option {
	t.Helper()
	o, err := New(def)
	if err != nil {
		t.Fatalf("New(%q): %v", def.Name, err)
	}
	return o
}

func validKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestBooleanMatch(t *testing.T) {
	o := mustOption(t, Def{Name: "detailed", Help: "Detailed output"})
	if o.Kind() != KindBoolean {
		t.Fatalf("expected boolean kind, got %s", o.Kind())
	}

	tests := []struct {
		token string
		count int
		value string
	}{
		{"detailed", 1, "detailed"},
		{"det", 1, "detailed"},
		{"DET", 1, "detailed"},
		{"terse", 0, ""},
		{" ", 0, ""},
	}
	for _, tc := range tests {
		m := o.FindMatches([]string{tc.token}, 0)
		if m.Count != tc.count {
			t.Errorf("token %q: expected count %d, got %d", tc.token, tc.count, m.Count)
		}
		if m.Value != tc.value {
			t.Errorf("token %q: expected value %q, got %q", tc.token, tc.value, m.Value)
		}
	}

	if got := validKeys(o.ValidMatches("")); !reflect.DeepEqual(got, []string{"detailed"}) {
		t.Errorf("expected [detailed], got %v", got)
	}
	if got := o.ValidMatches("xyz"); len(got) != 0 {
		t.Errorf("expected no candidates, got %v", got)
	}
}

func TestRegexMatch(t *testing.T) {
	o := mustOption(t, Def{Name: "count", Help: "A count", Match: `\d+`})
	if o.Kind() != KindRegex {
		t.Fatalf("expected regex kind, got %s", o.Kind())
	}

	m := o.FindMatches([]string{"123"}, 0)
	if m.Count != 1 || m.Value != "123" {
		t.Errorf("expected (123, 1), got (%q, %d)", m.Value, m.Count)
	}
	m = o.FindMatches([]string{"abc"}, 0)
	if m.Count != 0 {
		t.Errorf("expected no match for abc, got count %d", m.Count)
	}

	valid := o.ValidMatches("")
	if _, ok := valid["<count>"]; !ok {
		t.Errorf("expected <count> placeholder, got %v", valid)
	}
	valid = o.ValidMatches("42")
	if _, ok := valid["42"]; !ok || len(valid) != 1 {
		t.Errorf("expected {42}, got %v", valid)
	}
}

func TestRegexMatchBadPattern(t *testing.T) {
	if _, err := New(Def{Name: "bad", Match: `([`}); err == nil {
		t.Error("expected error for unparseable pattern")
	}
}

func TestMultiwordMatch(t *testing.T) {
	o := mustOption(t, Def{Name: "description", Match: `\w+ \w+ \w+`, Multiword: true})

	tokens := []string{"A", "fast", "interface", "leftover"}
	m := o.FindMatches(tokens, 0)
	if m.Count != 3 {
		t.Errorf("expected 3 tokens consumed, got %d", m.Count)
	}
	if m.Value != "A fast interface" {
		t.Errorf("expected %q, got %q", "A fast interface", m.Value)
	}

	if m := o.FindMatches([]string{"only", "two"}, 0); m.Count != 0 {
		t.Errorf("expected no match for short line, got count %d", m.Count)
	}
}

func TestListMatch(t *testing.T) {
	o := mustOption(t, Def{Name: "colour", MatchList: []string{"blue", "black", "blueish", "red"}})
	if o.Kind() != KindList {
		t.Fatalf("expected list kind, got %s", o.Kind())
	}

	got := validKeys(o.ValidMatches("bl"))
	want := []string{"black", "blue", "blueish"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	tests := []struct {
		token string
		count int
		value string
	}{
		{"red", 1, "red"},
		{"blue", 1, "blue"}, // exact beats blueish prefix
		{"blu", 1, ""},      // two candidates, unresolved
		{"black", 1, "black"},
		{"bla", 1, "black"},
		{"green", 0, ""},
	}
	for _, tc := range tests {
		m := o.FindMatches([]string{tc.token}, 0)
		if m.Count != tc.count || m.Value != tc.value {
			t.Errorf("token %q: expected (%q, %d), got (%q, %d)",
				tc.token, tc.value, tc.count, m.Value, m.Count)
		}
	}
}

func TestListMatchEmbeddedRegex(t *testing.T) {
	o := mustOption(t, Def{Name: "intf", MatchList: []string{"/wi.*/", "/bo.*/", "foobar"}})

	// Patterns match tokens but are not completion candidates for them.
	if m := o.FindMatches([]string{"booo"}, 0); m.Count != 1 {
		t.Errorf("expected booo to match /bo.*/, got count %d", m.Count)
	}
	if got := o.ValidMatches("booo"); len(got) != 0 {
		t.Errorf("expected no candidates for booo, got %v", got)
	}

	if m := o.FindMatches([]string{"fo"}, 0); m.Value != "foobar" {
		t.Errorf("expected prefix to resolve to foobar, got %q", m.Value)
	}

	got := validKeys(o.ValidMatches(""))
	want := []string{"/bo.*/", "/wi.*/", "foobar"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDictMatchDefaultAnnotation(t *testing.T) {
	o := mustOption(t, Def{
		Name:    "pager",
		Default: "on",
		MatchMap: map[string]string{
			"on":  "Enable the pager",
			"off": "Disable the pager",
		},
	})
	if o.Kind() != KindDict {
		t.Fatalf("expected dict kind, got %s", o.Kind())
	}
	valid := o.ValidMatches("")
	if valid["on"] != "Enable the pager [Default]" {
		t.Errorf("expected default annotation, got %q", valid["on"])
	}
	if valid["off"] != "Disable the pager" {
		t.Errorf("unexpected help for off: %q", valid["off"])
	}
}

func TestDynamicMatch(t *testing.T) {
	items := []string{"dagger"}
	o := mustOption(t, Def{
		Name: "item",
		Enumerator: ListEnumerator(func(_ *Option) []string {
			return items
		}),
	})
	if o.Kind() != KindDynamic {
		t.Fatalf("expected dynamic kind, got %s", o.Kind())
	}
	if m := o.FindMatches([]string{"dag"}, 0); m.Value != "dagger" {
		t.Errorf("expected dagger, got %q", m.Value)
	}

	// The enumerator is consulted on every query.
	items = append(items, "chupachup")
	if m := o.FindMatches([]string{"chu"}, 0); m.Value != "chupachup" {
		t.Errorf("expected chupachup after catalog change, got %q", m.Value)
	}
}

func TestConstructionErrors(t *testing.T) {
	tests := []struct {
		name string
		def  Def
	}{
		{"no name", Def{}},
		{"multiple sources", Def{Name: "x", Match: `\d`, MatchList: []string{"a"}}},
		{"keyvalue without source", Def{Name: "x", KeyValue: true}},
		{"path not keyvalue or positional", Def{Name: "x", IsPath: true}},
	}
	for _, tc := range tests {
		if _, err := New(tc.def); err == nil {
			t.Errorf("%s: expected construction error", tc.name)
		}
	}
}
