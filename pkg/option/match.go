// Package option implements the option model for an interactive command
// shell: a named argument descriptor owning exactly one matching strategy,
// and an ordered option set with the shared disambiguation, validation and
// completion algorithms that operate over it.
package option

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Kind tags the closed set of matching strategies. The numeric order is
// the tie-break order within an option set: boolean-style options are
// tried before enumerated ones, free-form regexes come last.
type Kind int

const (
	KindBoolean Kind = iota
	KindDict
	KindList
	KindDynamic
	KindPath
	KindRegex
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindDict:
		return "dict"
	case KindList:
		return "list"
	case KindDynamic:
		return "dynamic"
	case KindPath:
		return "path"
	case KindRegex:
		return "regex"
	}
	return "unknown"
}

// Match is the result of matching an option against a command line.
type Match struct {
	// Value is the canonical matched text. Empty when the match failed
	// or the token could not be resolved to a single candidate.
	Value string
	// Count is the number of tokens consumed. Zero means no match.
	Count int
	// Reason explains a failed match.
	Reason string
	// Valid maps candidate literals (or <name> placeholders for
	// free-form patterns) to their help text.
	Valid map[string]string
}

// Matcher is one matching strategy. Match reports whether the tokens at
// index satisfy the strategy; ValidMatches enumerates completion
// candidates for a (stripped) token, all legal values when it is empty.
type Matcher interface {
	Kind() Kind
	Match(tokens []string, index int) (value string, count int, reason string)
	ValidMatches(token string) map[string]string
}

// booleanMatch matches the option's own name, by case-insensitive prefix.
type booleanMatch struct {
	name string
	help string
}

func (m *booleanMatch) Kind() Kind { return KindBoolean }

func (m *booleanMatch) Match(tokens []string, index int) (string, int, string) {
	token := tokens[index]
	if token != "" && hasFoldPrefix(m.name, token) {
		return m.name, 1, ""
	}
	return "", 0, fmt.Sprintf("no match for %q", m.name)
}

func (m *booleanMatch) ValidMatches(token string) map[string]string {
	if token == "" || hasFoldPrefix(m.name, token) {
		return map[string]string{m.name: m.help}
	}
	return map[string]string{}
}

// regexMatch matches an anchored, case-insensitive pattern. In multiword
// mode the pattern is applied to the remaining tokens joined by single
// spaces, and Count covers every token the match span reaches into.
type regexMatch struct {
	re        *regexp.Regexp
	pattern   string
	name      string
	help      string
	multiword bool
}

func newRegexMatch(pattern, name, help string, multiword bool) (*regexMatch, error) {
	re, err := regexp.Compile(`(?i)^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("option %q: bad pattern %q: %w", name, pattern, err)
	}
	return &regexMatch{re: re, pattern: pattern, name: name, help: help, multiword: multiword}, nil
}

func (m *regexMatch) Kind() Kind { return KindRegex }

func (m *regexMatch) Match(tokens []string, index int) (string, int, string) {
	if m.multiword {
		joined := strings.Join(tokens[index:], " ")
		loc := m.re.FindStringIndex(joined)
		if loc == nil {
			return "", 0, "must match pattern: " + m.pattern
		}
		count, covered := 0, 0
		for _, t := range tokens[index:] {
			if covered >= loc[1] {
				break
			}
			if count > 0 {
				covered++ // joining space
			}
			covered += len(t)
			count++
		}
		return joined[:loc[1]], count, ""
	}
	token := tokens[index]
	if m.re.MatchString(token) {
		return token, 1, ""
	}
	return "", 0, "must match pattern: " + m.pattern
}

func (m *regexMatch) ValidMatches(token string) map[string]string {
	if token == "" {
		return map[string]string{
			placeholder(m.name): fmt.Sprintf("%s (%s)", m.help, m.pattern),
		}
	}
	if m.re.MatchString(token) {
		return map[string]string{token: m.help}
	}
	return map[string]string{}
}

// enumEntry is one member of an enumerated value set. Entries written as
// /pattern/ are embedded regexes: they match tokens but are listed as
// candidates only when no token has been typed.
type enumEntry struct {
	literal string
	re      *regexp.Regexp
	help    string
}

// enumMatch matches against an enumerated value set, either fixed at
// construction (list, dict) or produced live by an Enumerator (dynamic).
// Exact literal match wins outright; a prefix of exactly one candidate
// resolves to it; two or more prefix matches cannot be resolved.
type enumMatch struct {
	kind    Kind
	entries []enumEntry
	enum    Enumerator
	opt     *Option
}

func newListMatch(values []string) (*enumMatch, error) {
	entries := make([]enumEntry, 0, len(values))
	for _, v := range values {
		e, err := newEnumEntry(v, "")
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return &enumMatch{kind: KindList, entries: entries}, nil
}

func newDictMatch(values map[string]string) (*enumMatch, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]enumEntry, 0, len(keys))
	for _, k := range keys {
		e, err := newEnumEntry(k, values[k])
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return &enumMatch{kind: KindDict, entries: entries}, nil
}

func newDynamicMatch(enum Enumerator) *enumMatch {
	return &enumMatch{kind: KindDynamic, enum: enum}
}

func newEnumEntry(value, help string) (enumEntry, error) {
	if embedded := embeddedRegex(value); embedded != "" {
		re, err := regexp.Compile(`^(?:` + embedded + `)`)
		if err != nil {
			return enumEntry{}, fmt.Errorf("bad embedded pattern %q: %w", value, err)
		}
		return enumEntry{literal: value, re: re, help: help}, nil
	}
	return enumEntry{literal: value, help: help}, nil
}

// embeddedRegex returns the pattern inside a /pattern/ value, or "".
func embeddedRegex(value string) string {
	if len(value) > 1 && strings.HasPrefix(value, "/") && strings.HasSuffix(value, "/") {
		return strings.Trim(value, "/")
	}
	return ""
}

func (m *enumMatch) Kind() Kind { return m.kind }

// current returns the entry set, re-enumerating for dynamic matchers so
// catalogs that change at runtime are always seen fresh.
func (m *enumMatch) current() []enumEntry {
	if m.enum == nil {
		return m.entries
	}
	values := m.enum.Enumerate(m.opt)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]enumEntry, 0, len(keys))
	for _, k := range keys {
		e, err := newEnumEntry(k, values[k])
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func (m *enumMatch) Match(tokens []string, index int) (string, int, string) {
	token := tokens[index]
	entries := m.current()
	var (
		exact       string
		prefixes    []string
		regexHit    bool
		allLiterals []string
	)
	for _, e := range entries {
		if e.re != nil {
			if e.re.MatchString(token) {
				regexHit = true
			}
			continue
		}
		allLiterals = append(allLiterals, e.literal)
		if e.literal == token {
			exact = e.literal
		}
		if token != "" && hasFoldPrefix(e.literal, token) {
			prefixes = append(prefixes, e.literal)
		}
	}
	switch {
	case exact != "":
		return exact, 1, ""
	case len(prefixes) == 1:
		return prefixes[0], 1, ""
	case len(prefixes) > 1:
		// Matches, but cannot be resolved to one candidate.
		return "", 1, ""
	case regexHit:
		return token, 1, ""
	}
	return "", 0, "must match one of: " + strings.Join(allLiterals, ",")
}

func (m *enumMatch) ValidMatches(token string) map[string]string {
	matches := map[string]string{}
	for _, e := range m.current() {
		if e.re != nil {
			// Embedded patterns are only listed for an empty token.
			if token == "" {
				matches[e.literal] = e.help
			}
			continue
		}
		if token == "" || hasFoldPrefix(e.literal, token) {
			help := e.help
			if m.opt != nil && m.opt.Default == e.literal {
				if help == "" {
					help = "[Default]"
				} else {
					help += " [Default]"
				}
			}
			matches[e.literal] = help
		}
	}
	return matches
}

// placeholder renders an option name as a bracketed completion label.
// Names that are already bracketed (keyvalue value options) are reused.
func placeholder(name string) string {
	if strings.HasPrefix(name, "<") {
		return strings.Replace(name, "__arg", "", 1)
	}
	return "<" + name + ">"
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
