package index

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/vuit/vuit/internal/shell"
)

// Build produces the file index for dir. When an enumerator binary is
// available its full output is captured before the index is swapped in;
// a failed or absent enumerator falls back to the built-in walk. The
// returned error is non-nil only when the fallback had to be used because
// the enumerator failed, so the caller can surface it once.
func Build(dir, enumerator string, cmd shell.Commander) ([]string, error) {
	if enumerator == "" {
		return Walk(dir), nil
	}
	out, err := cmd.RunDir(dir, enumerator, "--type", "f", "--hidden", "--exclude", ".git")
	if err != nil {
		return Walk(dir), err
	}
	return parseLines(string(out)), nil
}

// Walk is the built-in enumerator: every regular file under dir, relative
// paths, .git pruned, unreadable subtrees skipped rather than aborting.
func Walk(dir string) []string {
	var entries []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return nil
		}
		entries = append(entries, filepath.ToSlash(rel))
		return nil
	})
	return dedup(entries)
}

func parseLines(out string) []string {
	var entries []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "./")
		entries = append(entries, filepath.ToSlash(line))
	}
	return dedup(entries)
}

func dedup(entries []string) []string {
	seen := make(map[string]bool, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
