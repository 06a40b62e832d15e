package match

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/vuit/vuit/internal/config"
	"github.com/vuit/vuit/internal/shell"
)

// Matcher filters a backing entry list by a query. When Tool names an
// installed fzf binary the list is piped through `fzf --filter` and its
// relevance order is kept; otherwise the local matcher applies. The local
// matcher preserves backing-list order in substring mode and ranks by
// score in fuzzy mode.
type Matcher struct {
	Tool string
	Mode string
	Cmd  shell.Commander
}

func New(tool, mode string, cmd shell.Commander) *Matcher {
	if mode == "" {
		mode = config.MatchSubstring
	}
	return &Matcher{Tool: tool, Mode: mode, Cmd: cmd}
}

// Match returns the matching subsequence of entries. An empty query
// returns entries unchanged.
func (m *Matcher) Match(entries []string, query string) []string {
	if query == "" {
		return entries
	}
	if m.Tool != "" && m.Cmd != nil {
		if out, err := m.Cmd.RunInput(strings.Join(entries, "\n"), m.Tool, "--filter", query); err == nil {
			return intersect(parseLines(string(out)), entries)
		}
		// tool failure discards its output entirely and falls back
	}
	if m.Mode == config.MatchFuzzy {
		return fuzzyMatch(entries, query)
	}
	return substringMatch(entries, query)
}

func substringMatch(entries []string, query string) []string {
	query = strings.ToLower(query)
	var out []string
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e), query) {
			out = append(out, e)
		}
	}
	return out
}

func fuzzyMatch(entries []string, query string) []string {
	matches := fuzzy.Find(query, entries)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

// intersect keeps only tool-emitted lines that exist in the backing list,
// in the tool's order. Filtered entries must stay a subset of the backing
// list even if the tool mangles or injects lines.
func intersect(matched, entries []string) []string {
	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e] = true
	}
	var out []string
	for _, m := range matched {
		if known[m] {
			out = append(out, m)
		}
	}
	return out
}

func parseLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
