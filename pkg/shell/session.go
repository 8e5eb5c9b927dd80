// Package shell runs an interactive readline session over a command
// tree: line editing, '?' contextual help, tab completion, history and
// per-session metrics.
package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/google/squires/pkg/command"
)

// ErrExit may be returned by a command handler to end the session.
var ErrExit = errors.New("exit")

// Config configures a session. Zero values fall back to the tree's
// prompt, a discarding logger, no metrics registration and the process
// standard streams.
type Config struct {
	Prompt      string
	HistoryFile string
	ShowHidden  bool
	Logger      *slog.Logger
	Registerer  prometheus.Registerer
	Stdin       io.ReadCloser
	Stdout      io.Writer
	Stderr      io.Writer
}

// Session owns one interactive loop over a command tree.
type Session struct {
	root    *command.Command
	rl      *readline.Instance
	logger  *slog.Logger
	metrics *metrics
	cfg     Config
}

// New wires a readline instance over the tree. Close the session when
// done with it.
func New(root *command.Command, cfg Config) (*Session, error) {
	if cfg.Prompt == "" {
		cfg.Prompt = root.Prompt
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		root:    root,
		logger:  cfg.Logger,
		metrics: newMetrics(cfg.Registerer),
		cfg:     cfg,
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    &treeCompleter{session: s},
		Stdin:           cfg.Stdin,
		Stdout:          cfg.Stdout,
		Stderr:          cfg.Stderr,
		Listener: readline.FuncListener(func(line []rune, pos int, key rune) ([]rune, int, bool) {
			if key != '?' || pos < 1 {
				return line, pos, false
			}
			// Strip the '?' that readline already inserted.
			cleanLine := make([]rune, 0, len(line)-1)
			cleanLine = append(cleanLine, line[:pos-1]...)
			cleanLine = append(cleanLine, line[pos:]...)
			text := string(cleanLine[:pos-1])
			candidates := s.complete(text + " ")
			if len(candidates) == 0 {
				fmt.Fprintln(s.rl.Stdout(), "  (no help available)")
				return cleanLine, pos - 1, true
			}
			WriteHelp(s.rl.Stdout(), candidates)
			return cleanLine, pos - 1, true
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("readline: %w", err)
	}
	s.rl = rl
	if cfg.Stdout != nil {
		root.SetOut(cfg.Stdout)
	}
	return s, nil
}

// Close tears down the readline instance.
func (s *Session) Close() error { return s.rl.Close() }

// Run reads and dispatches lines until EOF or a handler returns
// ErrExit. Interrupts discard the current line; handler errors are
// logged and printed, and the loop continues.
func (s *Session) Run() error {
	for {
		line, err := s.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tokens, err := Split(line)
		if err != nil {
			fmt.Fprintf(s.rl.Stderr(), "%% %v\n", err)
			continue
		}

		start := time.Now()
		err = s.root.Execute(tokens)
		s.metrics.observeCommand(err, time.Since(start))
		switch {
		case errors.Is(err, ErrExit):
			return nil
		case errors.Is(err, command.ErrNotRun):
			// Diagnostics were already written by the dispatcher.
		case err != nil:
			s.logger.Error("command failed", "line", line, "err", err)
			fmt.Fprintf(s.rl.Stderr(), "%% %v\n", err)
		}
	}
}

// complete tokenizes the text and queries the tree, returning sorted
// candidates. Tokenizer errors mean the line is mid-edit; no candidates.
func (s *Session) complete(text string) []Candidate {
	s.metrics.observeCompletion()
	tokens, err := Split(text)
	if err != nil {
		return nil
	}
	completes := s.root.Complete(tokens, command.CompleteOpts{ShowHidden: s.cfg.ShowHidden})
	candidates := make([]Candidate, 0, len(completes))
	for name, desc := range completes {
		candidates = append(candidates, Candidate{Name: name, Desc: desc})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	return candidates
}

type treeCompleter struct {
	session *Session
}

func (tc *treeCompleter) Do(line []rune, pos int) ([][]rune, int) {
	s := tc.session
	text := string(line[:pos])

	candidates := s.complete(text)
	if len(candidates) == 0 {
		return nil, 0
	}

	partial := lastWord(text)

	// Placeholders like <cr> display in help but never complete.
	var completable []string
	for _, c := range candidates {
		if strings.HasPrefix(c.Name, "<") {
			continue
		}
		completable = append(completable, c.Name)
	}

	if len(completable) == 1 && strings.HasPrefix(completable[0], partial) {
		suffix := completable[0][len(partial):]
		return [][]rune{[]rune(suffix + " ")}, len(partial)
	}

	// Multiple matches: show descriptions above the prompt, then
	// insert whatever prefix is unambiguous.
	WriteHelp(s.rl.Stdout(), candidates)
	cp := CommonPrefix(completable)
	if !strings.HasPrefix(cp, partial) {
		return nil, 0
	}
	suffix := cp[len(partial):]
	if suffix == "" {
		return nil, 0
	}
	return [][]rune{[]rune(suffix)}, len(partial)
}
