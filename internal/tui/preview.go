package tui

import (
	"bufio"
	"os"
	"strings"
)

const previewLines = 50

// loadPreview reads the first n lines of path for the preview pane,
// filtering bytes the pane cannot render.
func loadPreview(path string, n int) []string {
	f, err := os.Open(path)
	if err != nil {
		return []string{"No Preview Available"}
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() && len(lines) < n {
		lines = append(lines, cleanLine(scanner.Text()))
	}
	return lines
}

func cleanLine(line string) string {
	line = strings.ReplaceAll(line, "\t", "    ")
	return strings.Map(func(r rune) rune {
		if r >= ' ' || r == '\n' {
			return r
		}
		return -1
	}, line)
}
