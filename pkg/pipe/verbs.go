package pipe

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"

	"github.com/google/squires/pkg/command"
)

// filter passes or drops whole lines against a case-insensitive regex
// taken from the verb's required "string" option. Partial lines are
// buffered until their newline arrives; a trailing unterminated line is
// flushed at End.
type filter struct {
	invert bool
	re     *regexp.Regexp
	next   io.Writer
	buf    bytes.Buffer
}

// NewMatch returns a pipe printing only lines that match.
func NewMatch() Pipe { return &filter{} }

// NewExcept returns a pipe printing only lines that do not match.
func NewExcept() Pipe { return &filter{invert: true} }

func (f *filter) Begin(c *command.Command) error {
	re, err := regexp.Compile("(?i)" + c.GetOption("string"))
	if err != nil {
		return fmt.Errorf("bad pipe pattern: %w", err)
	}
	f.re = re
	f.next = c.Out()
	f.buf.Reset()
	return nil
}

func (f *filter) Write(p []byte) (int, error) {
	f.buf.Write(p)
	for {
		i := bytes.IndexByte(f.buf.Bytes(), '\n')
		if i < 0 {
			return len(p), nil
		}
		line := make([]byte, i+1)
		f.buf.Read(line)
		if f.re.Match(line[:i]) != f.invert {
			if _, err := f.next.Write(line); err != nil {
				return len(p), err
			}
		}
	}
}

func (f *filter) End() error {
	if f.buf.Len() == 0 {
		return nil
	}
	line := f.buf.Bytes()
	f.buf.Reset()
	if f.re.Match(line) != f.invert {
		_, err := f.next.Write(line)
		return err
	}
	return nil
}

// counter swallows output and prints the line count at End.
type counter struct {
	next  io.Writer
	count int
}

// NewCount returns a line-counting pipe.
func NewCount() Pipe { return &counter{} }

func (ct *counter) Begin(c *command.Command) error {
	ct.next = c.Out()
	ct.count = 0
	return nil
}

func (ct *counter) Write(p []byte) (int, error) {
	ct.count += bytes.Count(p, []byte("\n"))
	return len(p), nil
}

func (ct *counter) End() error {
	_, err := fmt.Fprintf(ct.next, "Count: %d\n", ct.count)
	return err
}

// shell feeds output into an external command's stdin. The command is
// the verb's "string" option for sh, the system pager for more.
type shell struct {
	pager bool
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// NewShell returns a pipe running output through a shell command.
func NewShell() Pipe { return &shell{} }

// NewMore returns a pipe paginating output through the system pager.
func NewMore() Pipe { return &shell{pager: true} }

func (s *shell) Begin(c *command.Command) error {
	cmdline := c.GetOption("string")
	if s.pager {
		cmdline = os.Getenv("PAGER")
		if cmdline == "" {
			cmdline = "more"
		}
	}
	s.cmd = exec.Command("/bin/sh", "-c", cmdline)
	s.cmd.Stdout = os.Stdout
	s.cmd.Stderr = os.Stderr
	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := s.cmd.Start(); err != nil {
		return err
	}
	s.stdin = stdin
	return nil
}

func (s *shell) Write(p []byte) (int, error) {
	return s.stdin.Write(p)
}

func (s *shell) End() error {
	if s.stdin == nil {
		return nil
	}
	s.stdin.Close()
	err := s.cmd.Wait()
	s.stdin, s.cmd = nil, nil
	return err
}
