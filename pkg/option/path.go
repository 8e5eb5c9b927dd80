package option

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// PathDef configures a filesystem path option.
type PathDef struct {
	// Pattern filters entry names. It is applied unanchored, so a
	// pattern of "txt" admits any name containing it.
	Pattern string
	// Dir is the directory searched when the token does not start with
	// "/" or "./". It is also stripped from completion candidates.
	Dir string
	// OnlyValid requires the token to name an existing entry.
	OnlyValid bool
	// OnlyDirs restricts candidates to directories.
	OnlyDirs bool
}

// pathMatch completes and validates filesystem paths. Candidates are the
// entries of the directory portion of the token that extend its basename;
// directories carry a trailing separator so completion can descend.
type pathMatch struct {
	nameRe    *regexp.Regexp
	baseDir   string
	onlyValid bool
	onlyDirs  bool
	help      string
	opt       *Option
}

func newPathMatch(def PathDef, help string) (*pathMatch, error) {
	m := &pathMatch{
		baseDir:   normalizeDir(def.Dir),
		onlyValid: def.OnlyValid,
		onlyDirs:  def.OnlyDirs,
		help:      help,
	}
	if def.Pattern != "" {
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("bad path pattern %q: %w", def.Pattern, err)
		}
		m.nameRe = re
	}
	return m, nil
}

// normalizeDir reduces a base directory to a relative prefix with a
// trailing separator, so candidate stripping is a plain TrimPrefix.
func normalizeDir(dir string) string {
	if dir == "" {
		return ""
	}
	dir = strings.TrimPrefix(dir, "./")
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	return dir
}

func (m *pathMatch) Kind() Kind { return KindPath }

func (m *pathMatch) Match(tokens []string, index int) (string, int, string) {
	token := strings.TrimSpace(tokens[index])
	if token == "" {
		return "", 0, "a path is required"
	}
	if !m.onlyValid {
		return token, 1, ""
	}
	if _, ok := m.ValidMatches(token)[token]; ok {
		return token, 1, ""
	}
	return "", 0, fmt.Sprintf("no such path: %q", token)
}

func (m *pathMatch) ValidMatches(token string) map[string]string {
	valid := map[string]string{}
	dirname, basename := splitPath(token)
	searchDir := dirname
	if m.baseDir != "" && !strings.HasPrefix(token, "/") && !strings.HasPrefix(token, "./") {
		searchDir = m.baseDir + dirname
	}
	listDir := searchDir
	if listDir == "" {
		listDir = "."
	}
	entries, err := os.ReadDir(listDir)
	if err != nil {
		entries = nil
	}
	for _, entry := range entries {
		if m.onlyDirs && !entry.IsDir() {
			continue
		}
		if m.nameRe != nil && !m.nameRe.MatchString(entry.Name()) {
			continue
		}
		if !strings.HasPrefix(entry.Name(), basename) {
			continue
		}
		full := searchDir + entry.Name()
		if entry.IsDir() {
			full += "/"
		}
		if m.baseDir != "" {
			full = strings.TrimPrefix(full, m.baseDir)
		}
		valid[full] = ""
	}
	if m.opt != nil && m.opt.Default != "" {
		valid[m.opt.Default] = "[Default]"
	}
	return valid
}

// splitPath splits a token at its last separator. The directory part
// keeps the trailing separator; either part may be empty.
func splitPath(token string) (dir, base string) {
	if i := strings.LastIndex(token, "/"); i >= 0 {
		return token[:i+1], token[i+1:]
	}
	return "", token
}
