package shell

import (
	"os/exec"
	"strings"
)

// Commander abstracts running short-lived external tools so callers can be
// tested without spawning real processes.
type Commander interface {
	RunDir(dir, name string, args ...string) ([]byte, error)
	RunInput(input, name string, args ...string) ([]byte, error)
}

type ExecCommander struct{}

func (e *ExecCommander) RunDir(dir, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

func (e *ExecCommander) RunInput(input, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(input)
	return cmd.Output()
}
