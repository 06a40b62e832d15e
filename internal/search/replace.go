package search

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ReplaceAll rewrites the lines named by hits, substituting oldText with
// newText. Only hit lines are touched; other lines containing oldText are
// left alone. Hits are grouped per file so each file is read and written
// once. Unreadable files are skipped; the count of rewritten files is
// returned along with any write errors.
func ReplaceAll(dir string, hits []Hit, oldText, newText string) (int, error) {
	if oldText == "" {
		return 0, nil
	}

	lines := make(map[string][]string)
	var order []string
	for _, h := range hits {
		path := h.Path
		if dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(dir, h.Path)
		}
		content, seen := lines[path]
		if !seen {
			data, err := os.ReadFile(path)
			if err != nil {
				lines[path] = nil
				continue
			}
			content = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
			lines[path] = content
			order = append(order, path)
		}
		if content == nil || h.Line < 1 || h.Line > len(content) {
			continue
		}
		content[h.Line-1] = strings.ReplaceAll(content[h.Line-1], oldText, newText)
	}

	written := 0
	var errs []error
	for _, path := range order {
		out := strings.Join(lines[path], "\n") + "\n"
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			errs = append(errs, err)
			continue
		}
		written++
	}
	return written, errors.Join(errs...)
}
