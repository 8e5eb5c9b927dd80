package option

import (
	"errors"
	"fmt"
	"strings"
)

// NoPosition marks an option with no positional constraint.
const NoPosition = -1

// Def describes an option to construct. Exactly one matcher source may be
// set: Match (regex), MatchList, MatchMap, Enumerator, or IsPath/PathDef.
// With none set the option is a boolean flag matching its own name.
type Def struct {
	Name string
	Help string

	// Boolean forces flag semantics (the matched value is the option
	// name). Nil infers it: true iff no matcher source is configured.
	Boolean  *bool
	KeyValue bool
	Required bool
	Hidden   bool

	Default string
	Group   string

	// Positional pins the option to token index Position.
	Positional bool
	Position   int

	Match      string
	Multiword  bool
	MatchList  []string
	MatchMap   map[string]string
	Enumerator Enumerator
	IsPath     bool
	PathDef    *PathDef
}

// Option is a single named argument of a command.
type Option struct {
	Name     string
	Help     string
	Required bool
	Boolean  bool
	KeyValue bool
	Hidden   bool
	Group    string
	Default  string
	Position int

	matcher Matcher
	argKey  *Option // set on the value side of a keyvalue pair
	argVal  *Option // set on the key side of a keyvalue pair
}

// New builds an Option from a Def.
func New(def Def) (*Option, error) {
	if def.Name == "" {
		return nil, errors.New("option name is required")
	}
	sources := 0
	if def.Match != "" {
		sources++
	}
	if def.MatchList != nil {
		sources++
	}
	if def.MatchMap != nil {
		sources++
	}
	if def.Enumerator != nil {
		sources++
	}
	isPath := def.IsPath || def.PathDef != nil
	if isPath {
		sources++
	}
	if sources > 1 {
		return nil, fmt.Errorf("option %q: multiple matcher sources", def.Name)
	}
	if def.KeyValue && sources == 0 {
		return nil, fmt.Errorf("option %q: keyvalue needs a matcher source", def.Name)
	}
	if isPath && !def.KeyValue && !def.Positional {
		return nil, fmt.Errorf("option %q: path options must be keyvalue or positional", def.Name)
	}

	o := &Option{
		Name:     def.Name,
		Help:     def.Help,
		Required: def.Required,
		KeyValue: def.KeyValue,
		Hidden:   def.Hidden,
		Group:    def.Group,
		Default:  def.Default,
		Position: NoPosition,
	}
	if def.Positional {
		o.Position = def.Position
	}
	if def.Boolean != nil {
		o.Boolean = *def.Boolean
	} else {
		o.Boolean = sources == 0
	}

	var err error
	switch {
	case isPath:
		pd := PathDef{}
		if def.PathDef != nil {
			pd = *def.PathDef
		}
		var pm *pathMatch
		pm, err = newPathMatch(pd, def.Help)
		if pm != nil {
			pm.opt = o
			o.matcher = pm
		}
	case def.Match != "":
		o.matcher, err = newRegexMatch(def.Match, def.Name, def.Help, def.Multiword)
	case def.MatchList != nil:
		var em *enumMatch
		em, err = newListMatch(def.MatchList)
		if em != nil {
			em.opt = o
			o.matcher = em
		}
	case def.MatchMap != nil:
		var em *enumMatch
		em, err = newDictMatch(def.MatchMap)
		if em != nil {
			em.opt = o
			o.matcher = em
		}
	case def.Enumerator != nil:
		em := newDynamicMatch(def.Enumerator)
		em.opt = o
		o.matcher = em
	default:
		o.matcher = &booleanMatch{name: def.Name, help: def.Help}
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Kind returns the kind of the option's matcher.
func (o *Option) Kind() Kind { return o.matcher.Kind() }

// ArgKey returns the key side of a keyvalue pair, when this option is
// the synthesized value side.
func (o *Option) ArgKey() *Option { return o.argKey }

// ArgVal returns the value side of a keyvalue pair, when this option is
// the key side.
func (o *Option) ArgVal() *Option { return o.argVal }

// ValidMatches enumerates completion candidates for token.
func (o *Option) ValidMatches(token string) map[string]string {
	return o.matcher.ValidMatches(token)
}

// FindMatches matches the option against the token at index. Positional
// options only match at their index; a keyvalue value side only matches
// when its key matched the preceding token.
func (o *Option) FindMatches(tokens []string, index int) Match {
	if o.Position > NoPosition && index != o.Position {
		return Match{Reason: "position mismatch", Valid: map[string]string{}}
	}
	if index < 0 || index >= len(tokens) {
		return Match{Reason: "position out of range", Valid: map[string]string{}}
	}
	if o.argKey != nil {
		if key := o.argKey.FindMatches(tokens, index-1); key.Count == 0 {
			return Match{Reason: "key mismatch", Valid: map[string]string{}}
		}
	}
	valid := o.matcher.ValidMatches(strings.TrimSpace(tokens[index]))
	value, count, reason := o.matcher.Match(tokens, index)
	if count > 0 {
		reason = ""
		if o.Boolean {
			value = o.Name
		}
	}
	return Match{Value: value, Count: count, Reason: reason, Valid: valid}
}

// Matches reports whether the option matches the token at index.
func (o *Option) Matches(tokens []string, index int) bool {
	return o.FindMatches(tokens, index).Count > 0
}
