package option

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Ambiguity records a token that matched an option but could not be
// resolved to a single candidate.
type Ambiguity struct {
	Option     string
	Token      string
	Candidates []string
}

// InvalidArg records a keyvalue option whose argument did not match.
type InvalidArg struct {
	Option string
	Reason string
}

// Result collects everything wrong with a command line's options. All
// categories are gathered in one pass rather than stopping at the first
// problem, so a user sees the full diagnosis at once.
type Result struct {
	Ambiguous       []Ambiguity
	UnknownTokens   []string
	BadPaths        []string
	MissingArgs     []string
	InvalidArgs     []InvalidArg
	DuplicateGroups []string
	MissingOptions  []string
	MissingGroups   []string
}

// OK reports whether the line validated cleanly.
func (r *Result) OK() bool {
	return len(r.Ambiguous) == 0 && len(r.UnknownTokens) == 0 &&
		len(r.BadPaths) == 0 && len(r.MissingArgs) == 0 &&
		len(r.InvalidArgs) == 0 && len(r.DuplicateGroups) == 0 &&
		len(r.MissingOptions) == 0 && len(r.MissingGroups) == 0
}

// Describe writes the diagnostics in "% ..." shell style.
func (r *Result) Describe(w io.Writer) {
	for _, a := range r.Ambiguous {
		if a.Option != "" {
			fmt.Fprintf(w, "%% Multiple matches for %q argument %q:\n", a.Option, a.Token)
		} else {
			fmt.Fprintf(w, "%% Multiple matches for %q:\n", a.Token)
		}
		for _, c := range a.Candidates {
			fmt.Fprintf(w, " %s\n", c)
		}
	}
	for _, p := range r.BadPaths {
		fmt.Fprintf(w, "%% File not found: %s\n", p)
	}
	for _, name := range r.MissingArgs {
		fmt.Fprintf(w, "%% Argument for option %q missing.\n", name)
	}
	for _, ia := range r.InvalidArgs {
		if ia.Reason != "" {
			fmt.Fprintf(w, "%% Invalid argument for option %q. %s\n", ia.Option, ia.Reason)
		} else {
			fmt.Fprintf(w, "%% Invalid argument for option %q.\n", ia.Option)
		}
	}
	for _, members := range r.DuplicateGroups {
		fmt.Fprintf(w, "%% Supply only one of: %s\n", members)
	}
	if len(r.UnknownTokens) > 0 {
		fmt.Fprintf(w, "%% Unknown/duplicate token(s): %s\n", strings.Join(r.UnknownTokens, ", "))
	}
	if len(r.MissingGroups) > 0 {
		fmt.Fprintf(w, "%% Missing group(s): %s\n", strings.Join(r.MissingGroups, ", "))
	}
	if len(r.MissingOptions) > 0 {
		fmt.Fprintf(w, "%% Missing option(s): %s\n", strings.Join(r.MissingOptions, ", "))
	}
}

// HasAllValidOptions reports whether the line satisfies the option set.
func (opts Options) HasAllValidOptions(line []string) bool {
	return opts.Validate(line).OK()
}

// Validate checks the line against the option set. Each token is given
// to the first option in kind order that accepts it; boolean names are
// resolved across the whole set first so an exact name always beats a
// prefix of a longer one.
func (opts Options) Validate(line []string) *Result {
	res := &Result{}
	if n := len(line); n > 0 && line[n-1] == " " {
		line = line[:n-1]
	}

	var missingOptions, missingGroups []string
	for _, o := range opts {
		if !o.Required || o.argKey != nil {
			continue
		}
		if o.Group != "" {
			if !contains(missingGroups, o.Group) {
				missingGroups = append(missingGroups, o.Group)
			}
		} else {
			missingOptions = append(missingOptions, o.Name)
		}
	}

	foundNames := map[string]bool{}
	seenGroups := map[string]bool{}

	idx := 0
	for idx < len(line) {
		token := line[idx]

		opt, ambiguous := opts.resolveBooleanName(token, idx, foundNames)
		if ambiguous != nil {
			res.Ambiguous = append(res.Ambiguous, Ambiguity{Token: token, Candidates: ambiguous})
			idx++
			continue
		}
		var m Match
		if opt != nil {
			if m = opt.FindMatches(line, idx); m.Count == 0 {
				opt = nil
			}
		}
		if opt == nil {
			for _, o := range opts {
				if foundNames[o.Name] || o.argKey != nil || o.Kind() == KindBoolean {
					continue
				}
				if mm := o.FindMatches(line, idx); mm.Count > 0 {
					opt, m = o, mm
					break
				}
			}
		}
		if opt == nil {
			if opts.pathCouldTake(line, idx, foundNames) {
				res.BadPaths = append(res.BadPaths, token)
			} else {
				res.UnknownTokens = append(res.UnknownTokens, token)
			}
			idx++
			continue
		}

		jump := m.Count - 1
		foundNames[opt.Name] = true

		if len(m.Valid) != 1 && m.Value == "" {
			if _, ok := m.Valid[token]; !ok {
				res.Ambiguous = append(res.Ambiguous, Ambiguity{opt.Name, token, sortedKeys(m.Valid)})
			}
		}

		if opt.argVal != nil {
			switch {
			case idx+jump >= len(line)-1:
				res.MissingArgs = append(res.MissingArgs, opt.Name)
			default:
				vm := opt.argVal.FindMatches(line, idx+jump+1)
				if vm.Count == 0 {
					if isMustExistPath(opt.argVal) {
						res.BadPaths = append(res.BadPaths, line[idx+jump+1])
					} else {
						res.InvalidArgs = append(res.InvalidArgs, InvalidArg{opt.Name, vm.Reason})
					}
					jump++
				} else {
					jump += vm.Count
					argTok := line[idx+jump]
					if len(vm.Valid) != 1 && vm.Value == "" {
						if _, ok := vm.Valid[argTok]; !ok {
							res.Ambiguous = append(res.Ambiguous, Ambiguity{opt.Name, argTok, sortedKeys(vm.Valid)})
						}
					}
					foundNames[opt.argVal.Name] = true
				}
			}
		}

		if opt.Group != "" {
			if seenGroups[opt.Group] {
				res.DuplicateGroups = append(res.DuplicateGroups, opts.groupMembers(opt.Group))
			}
			seenGroups[opt.Group] = true
			missingGroups = remove(missingGroups, opt.Group)
		} else if opt.Required {
			missingOptions = remove(missingOptions, opt.Name)
		}

		idx += jump + 1
	}

	res.MissingOptions = missingOptions
	res.MissingGroups = missingGroups
	return res
}

// resolveBooleanName resolves a token against the boolean option names
// not yet consumed and eligible at idx. An exact name wins outright;
// otherwise a unique case-insensitive prefix resolves, and two or more
// prefix hits are returned as the ambiguity candidate list.
func (opts Options) resolveBooleanName(token string, idx int, foundNames map[string]bool) (*Option, []string) {
	var prefixed []*Option
	for _, o := range opts {
		if o.Kind() != KindBoolean || o.argKey != nil || foundNames[o.Name] {
			continue
		}
		if o.Position > NoPosition && o.Position != idx {
			continue
		}
		if strings.EqualFold(o.Name, token) {
			return o, nil
		}
		if token != "" && hasFoldPrefix(o.Name, token) {
			prefixed = append(prefixed, o)
		}
	}
	switch len(prefixed) {
	case 0:
		return nil, nil
	case 1:
		return prefixed[0], nil
	}
	names := make([]string, 0, len(prefixed))
	for _, o := range prefixed {
		names = append(names, o.Name)
	}
	sort.Strings(names)
	return nil, names
}

// pathCouldTake reports whether an unconsumed must-exist path option was
// positioned to take the token at idx, so the failure reads as a bad
// path rather than an unknown token.
func (opts Options) pathCouldTake(line []string, idx int, foundNames map[string]bool) bool {
	for _, o := range opts {
		if foundNames[o.Name] || o.argKey != nil || !isMustExistPath(o) {
			continue
		}
		if o.Position == NoPosition || o.Position == idx {
			return true
		}
	}
	return false
}

func isMustExistPath(o *Option) bool {
	pm, ok := o.matcher.(*pathMatch)
	return ok && pm.onlyValid
}

func (opts Options) groupMembers(group string) string {
	var names []string
	for _, o := range opts {
		if o.Group == group && o.argKey == nil {
			names = append(names, o.Name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

func remove(s []string, v string) []string {
	out := s[:0]
	for _, e := range s {
		if e != v {
			out = append(out, e)
		}
	}
	return out
}
