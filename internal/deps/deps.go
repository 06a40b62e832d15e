package deps

import (
	"os/exec"
	"runtime"
)

// Tools holds resolved paths of the optional external helpers. An empty
// string means the tool is not installed and the built-in fallback applies.
type Tools struct {
	Enumerator string // fd: lists files under the working directory
	Matcher    string // fzf: fuzzy filter over the file index
	Searcher   string // rg: content search across files
}

type Dependency struct {
	Name       string
	Commands   []string
	InstallCmd map[string]string
}

var dependencies = []Dependency{
	{
		Name:     "fd",
		Commands: []string{"fd", "fdfind"},
		InstallCmd: map[string]string{
			"darwin": "brew install fd",
			"linux":  "sudo apt install fd-find",
		},
	},
	{
		Name:     "fzf",
		Commands: []string{"fzf"},
		InstallCmd: map[string]string{
			"darwin": "brew install fzf",
			"linux":  "sudo apt install fzf",
		},
	},
	{
		Name:     "rg",
		Commands: []string{"rg"},
		InstallCmd: map[string]string{
			"darwin": "brew install ripgrep",
			"linux":  "sudo apt install ripgrep",
		},
	},
}

// Detect probes PATH for the optional tools. None is required; every
// consumer has a built-in fallback.
func Detect() Tools {
	return Tools{
		Enumerator: lookFirst(dependencies[0].Commands),
		Matcher:    lookFirst(dependencies[1].Commands),
		Searcher:   lookFirst(dependencies[2].Commands),
	}
}

func lookFirst(commands []string) string {
	for _, c := range commands {
		if path, err := exec.LookPath(c); err == nil {
			return path
		}
	}
	return ""
}

// Missing reports names of optional tools that were not found.
func Missing(t Tools) []string {
	var missing []string
	if t.Enumerator == "" {
		missing = append(missing, "fd")
	}
	if t.Matcher == "" {
		missing = append(missing, "fzf")
	}
	if t.Searcher == "" {
		missing = append(missing, "rg")
	}
	return missing
}

func InstallHint(name string) string {
	for _, dep := range dependencies {
		if dep.Name == name {
			if cmd, ok := dep.InstallCmd[runtime.GOOS]; ok {
				return cmd
			}
		}
	}
	return "install " + name + " via your package manager"
}
