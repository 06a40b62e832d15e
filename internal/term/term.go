package term

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"github.com/creack/pty"
)

// maxLines bounds the scrollback kept for the overlay pane.
const maxLines = 500

// Session is the embedded shell backing the terminal overlay. It is
// spawned once on first show, keeps running while hidden, and is killed
// only when the application exits. The output buffer is shared between the
// pty reader goroutine and the render pass.
type Session struct {
	shellCmd string

	mu    sync.Mutex
	lines []string
	ptmx  *os.File
	cmd   *exec.Cmd
}

func New(shellCmd string) *Session {
	if shellCmd == "" {
		shellCmd = "bash"
	}
	return &Session{shellCmd: shellCmd}
}

// Start spawns the shell attached to a pseudo-terminal and begins reading
// its output. Starting an already-running session is a no-op.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ptmx != nil {
		return nil
	}

	cmd := exec.Command(s.shellCmd)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 200})
	if err != nil {
		return fmt.Errorf("spawn %s: %w", s.shellCmd, err)
	}
	s.cmd = cmd
	s.ptmx = ptmx

	go s.read(ptmx)
	return nil
}

func (s *Session) read(ptmx *os.File) {
	scanner := bufio.NewScanner(ptmx)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		s.mu.Lock()
		s.lines = append(s.lines, scanner.Text())
		if len(s.lines) > maxLines {
			s.lines = s.lines[len(s.lines)-maxLines:]
		}
		s.mu.Unlock()
	}
}

// Running reports whether the shell process is alive.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ptmx != nil
}

// Send writes one command line to the shell's input.
func (s *Session) Send(line string) error {
	s.mu.Lock()
	ptmx := s.ptmx
	s.mu.Unlock()
	if ptmx == nil {
		return fmt.Errorf("shell not running")
	}
	_, err := fmt.Fprintln(ptmx, line)
	return err
}

// Lines returns a copy of the buffered output.
func (s *Session) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Tail returns up to n most recent output lines.
func (s *Session) Tail(n int) []string {
	lines := s.Lines()
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// Clear drops the buffered output without touching the process.
func (s *Session) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
}

// Restart kills the current shell and spawns a fresh one.
func (s *Session) Restart() error {
	s.Close()
	return s.Start()
}

// Close terminates the shell process and releases the pty.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
		go s.cmd.Wait()
	}
	if s.ptmx != nil {
		_ = s.ptmx.Close()
	}
	s.cmd = nil
	s.ptmx = nil
	s.lines = nil
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]|\x1b\][^\x07]*\x07|\x1b[()][A-B0-2]`)

// StripANSI removes escape sequences and control characters the overlay
// pane cannot render, and expands tabs.
func StripANSI(in string) string {
	out := ansiRe.ReplaceAllString(in, "")
	out = strings.ReplaceAll(out, "\r", "")
	out = strings.ReplaceAll(out, "\t", "    ")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r >= ' ' {
			return r
		}
		return -1
	}, out)
}
