package option

import (
	"sort"
	"strings"
)

// Options is an ordered option set. The order is the match order: kept
// sorted by kind so boolean options are tried before enumerated ones and
// free-form regexes come last.
type Options []*Option

// Add builds an option from def and inserts it, replacing any existing
// option of the same name. A keyvalue def decomposes into two entries:
// a boolean key carrying the name, and a "<name__arg>" value option
// holding the matcher, linked by mutual back references.
func (opts *Options) Add(def Def) error {
	built, err := New(def)
	if err != nil {
		return err
	}
	opts.remove(def.Name)

	if !def.KeyValue {
		*opts = append(*opts, built)
		opts.sort()
		return nil
	}

	forceBool := true
	key, err := New(Def{
		Name:     def.Name,
		Help:     def.Help,
		Boolean:  &forceBool,
		Required: def.Required,
		Hidden:   def.Hidden,
		Group:    def.Group,
		Default:  def.Default,
	})
	if err != nil {
		return err
	}
	key.KeyValue = true

	valDef := def
	valDef.Name = "<" + def.Name + "__arg>"
	valDef.Required = false
	valDef.Hidden = false
	valDef.Positional = false
	valDef.Group = ""
	val, err := New(valDef)
	if err != nil {
		return err
	}
	key.argVal = val
	val.argKey = key

	*opts = append(*opts, key, val)
	opts.sort()
	return nil
}

func (opts *Options) remove(name string) {
	old := opts.Get(name)
	if old == nil {
		return
	}
	kept := (*opts)[:0]
	for _, o := range *opts {
		if o == old || o == old.argVal {
			continue
		}
		kept = append(kept, o)
	}
	*opts = kept
}

func (opts Options) sort() {
	sort.SliceStable(opts, func(i, j int) bool {
		return opts[i].Kind() < opts[j].Kind()
	})
}

// Get returns the option named name, or nil.
func (opts Options) Get(name string) *Option {
	for _, o := range opts {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// found pairs an option with the value a line supplied for it.
type found struct {
	opt   *Option
	value string
}

// findOptions assigns each line token to the first option that accepts
// it, in kind order. With exact set, boolean options only take tokens
// equal to their name, so reads never resolve a prefix twice. A keyvalue
// key consumes its value tokens in the same step. An unassignable token
// stops the scan; what matched before it is still returned.
func (opts Options) findOptions(line []string, exact bool) []found {
	var matched []found
	seen := map[*Option]bool{}
scan:
	for index := 0; index < len(line); index++ {
		token := line[index]
		assigned := false
		for _, opt := range opts {
			if seen[opt] || opt.argKey != nil {
				continue
			}
			if exact && opt.Boolean && !strings.EqualFold(opt.Name, token) {
				continue
			}
			m := opt.FindMatches(line, index)
			if m.Count == 0 {
				continue
			}
			seen[opt] = true
			if opt.argVal != nil {
				vm := opt.argVal.FindMatches(line, index+1)
				if vm.Count > 0 {
					seen[opt.argVal] = true
					matched = append(matched, found{opt, vm.Value})
					index += vm.Count
				} else {
					matched = append(matched, found{opt, ""})
				}
			} else {
				matched = append(matched, found{opt, m.Value})
				if m.Count > 1 {
					index += m.Count - 1
				}
			}
			assigned = true
			break
		}
		if !assigned {
			break scan
		}
	}
	return matched
}

// GetOption reads the value the line supplies for the named option. A
// present boolean option reads as its own name. An absent keyvalue
// option with a default reads as the default; defaults are applied only
// here, never during validation.
func (opts Options) GetOption(line []string, name string) string {
	for _, f := range opts.findOptions(line, true) {
		if f.opt.Name != name {
			continue
		}
		if f.value == "" && f.opt.Boolean && f.opt.argVal == nil {
			return f.opt.Name
		}
		return f.value
	}
	if o := opts.Get(name); o != nil {
		return o.Default
	}
	return ""
}

// GetGroupOption returns which member of a group the line supplied: the
// member's name for a boolean member, its value otherwise. Empty when
// the group is absent.
func (opts Options) GetGroupOption(line []string, group string) string {
	for _, f := range opts.findOptions(line, true) {
		if f.opt.Group != group {
			continue
		}
		if f.opt.Boolean && f.opt.argVal == nil {
			return f.opt.Name
		}
		return f.value
	}
	return ""
}

// Disambiguate expands line tokens that resolve to exactly one candidate
// across the whole option set. Expansion stops at the first token whose
// candidate union is not a single value; it and the remaining tokens are
// returned unchanged.
func (opts Options) Disambiguate(line []string) []string {
	expanded := make([]string, 0, len(line))
	for index, token := range line {
		candidates := map[string]string{}
		for _, opt := range opts {
			m := opt.FindMatches(line, index)
			if m.Count == 0 {
				continue
			}
			for k, v := range m.Valid {
				candidates[k] = v
			}
		}
		if len(candidates) != 1 {
			return append(expanded, line[index:]...)
		}
		for k := range candidates {
			if strings.HasPrefix(k, "<") {
				// A placeholder is not a concrete expansion.
				expanded = append(expanded, token)
			} else {
				expanded = append(expanded, k)
			}
		}
	}
	return expanded
}
