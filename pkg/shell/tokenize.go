package shell

import (
	"unicode"

	shellwords "github.com/mattn/go-shellwords"
)

// Split tokenizes a raw input line; quoted parameters become single
// tokens. A line left mid-quote (common while typing) is repaired by
// retrying with a closing double then single quote. When the raw line
// ends in whitespace a trailing " " sentinel token is appended, meaning
// the cursor sits on a fresh word.
func Split(line string) ([]string, error) {
	tokens, err := shellwords.Parse(line)
	if err != nil {
		for _, quote := range []string{`"`, `'`} {
			repaired, rerr := shellwords.Parse(line + quote)
			if rerr == nil {
				tokens, err = repaired, nil
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}
	if line != "" && endsInSpace(line) {
		tokens = append(tokens, " ")
	}
	return tokens, nil
}

// lastWord returns the word under the cursor, using the same repaired
// tokenization as Split so quoted words stay whole. Empty when the
// cursor sits on a fresh word.
func lastWord(text string) string {
	tokens, err := Split(text)
	if err != nil || len(tokens) == 0 {
		return ""
	}
	if last := tokens[len(tokens)-1]; last != " " {
		return last
	}
	return ""
}

func endsInSpace(line string) bool {
	runes := []rune(line)
	return unicode.IsSpace(runes[len(runes)-1])
}
