package option

import (
	"strings"
)

// CompleteContext carries the command-level facts option completion
// needs: whether the owning command can run, whether a pipe tree is
// reachable, whether hidden options are shown, and the help string for
// the <cr> candidate.
type CompleteContext struct {
	Runnable    bool
	HasPipe     bool
	ShowHidden  bool
	ExecuteHelp string
}

// Completes returns the completion candidates for the option part of a
// line. The last token is the word under the cursor; a trailing " "
// token means the cursor sits on a fresh word. The value position of a
// keyvalue option replaces the candidate set entirely. <cr> is offered
// when the line so far would validate and the command is runnable.
func (opts Options) Completes(line []string, ctx CompleteContext) map[string]string {
	completes := map[string]string{}
	lastIndex := len(line) - 1
	lastToken := ""
	hasLast := len(line) > 0
	if hasLast {
		lastToken = line[lastIndex]
	}

	findLine := line
	if hasLast && lastToken != " " {
		findLine = line[:lastIndex]
	}
	foundSet := map[*Option]bool{}
	seenGroups := map[string]bool{}
	for _, f := range opts.findOptions(findLine, false) {
		foundSet[f.opt] = true
		if f.opt.Group != "" {
			seenGroups[f.opt.Group] = true
		}
	}

	hasRequired := false
	if hasLast {
		hasRequired = opts.HasAllValidOptions(line[:lastIndex])
	} else {
		hasRequired = opts.HasAllValidOptions(nil)
	}

	for _, option := range opts {
		switch {
		case foundSet[option]:
			continue
		case option.Hidden && !ctx.ShowHidden:
			continue
		case option.Group != "" && seenGroups[option.Group] && option.argKey == nil:
			continue
		case option.Position > NoPosition && lastIndex != option.Position:
			continue
		case lastToken != " " && option.FindMatches(line, lastIndex).Count == 0:
			continue
		}
		match := option.FindMatches(line, lastIndex)

		if option.argKey != nil {
			// Value position of a keyvalue pair. Only offered when the
			// preceding token is its key, and then it owns the
			// candidate set outright.
			if len(line) < 2 || option.argKey.FindMatches(line, lastIndex-1).Count == 0 {
				continue
			}
			switch option.Kind() {
			case KindList, KindDict, KindDynamic, KindPath:
				completes = match.Valid
				if len(completes) != 1 {
					hasRequired = false
				}
			default:
				key := strings.Replace(option.Name, "__arg", "", 1)
				help := option.Help
				if option.Default != "" {
					help += " [Default: " + option.Default + "]"
				}
				completes = map[string]string{key: help}
			}
			break
		}

		if option.Kind() == KindRegex {
			completes["<"+option.Name+">"] = option.Help
		} else {
			for k, v := range match.Valid {
				completes[k] = v
			}
		}
	}

	if hasRequired && ctx.Runnable && (!hasLast || lastToken == " ") {
		completes["<cr>"] = ctx.ExecuteHelp
		if ctx.HasPipe {
			completes["|"] = "Run stdout through pipe"
		}
	}

	// With a word under the cursor, placeholders only show when nothing
	// concrete matches.
	if hasLast && lastToken != " " && lastToken != "" {
		concrete := false
		for k := range completes {
			if !strings.HasPrefix(k, "<") {
				concrete = true
				break
			}
		}
		if concrete {
			for k := range completes {
				if strings.HasPrefix(k, "<") {
					delete(completes, k)
				}
			}
		}
	}
	return completes
}
