package search

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Hit is one content-search record.
type Hit struct {
	Path string
	Line int
	Text string
}

// Event is a batch of hits delivered to the UI loop. Gen identifies the
// query that produced it; deliveries from superseded generations are
// discarded by the consumer.
type Event struct {
	Gen  int
	Hits []Hit
	Done bool
	Err  error
}

const (
	batchSize     = 64
	batchInterval = 50 * time.Millisecond
)

// Runner owns one in-flight content search at a time. Starting a new query
// cancels the previous subprocess; results stream over Events.
type Runner struct {
	Tool   string // rg binary, "" for the built-in scan
	Events chan Event

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    int
}

func NewRunner(tool string) *Runner {
	return &Runner{Tool: tool, Events: make(chan Event, 8)}
}

// Start launches a search for pattern, cancelling any previous one, and
// returns the generation number tagging its events. files is the backing
// index used by the built-in fallback.
func (r *Runner) Start(dir, pattern string, files []string) int {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	if r.Tool != "" {
		go r.runTool(ctx, gen, dir, pattern)
	} else {
		go r.runScan(ctx, gen, dir, pattern, files)
	}
	return gen
}

// Cancel stops the in-flight search, killing its subprocess.
func (r *Runner) Cancel() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()
}

// Gen returns the generation of the most recently started search.
func (r *Runner) Gen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

func (r *Runner) runTool(ctx context.Context, gen int, dir, pattern string) {
	cmd := exec.CommandContext(ctx, r.Tool, "--vimgrep", "-S", "--", pattern)
	cmd.Dir = dir
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		r.emit(ctx, Event{Gen: gen, Done: true, Err: err})
		return
	}
	if err := cmd.Start(); err != nil {
		r.emit(ctx, Event{Gen: gen, Done: true, Err: err})
		return
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	batch := make([]Hit, 0, batchSize)
	last := time.Now()
	for scanner.Scan() {
		if hit, ok := ParseHit(scanner.Text()); ok {
			batch = append(batch, hit)
		}
		if len(batch) >= batchSize || time.Since(last) > batchInterval {
			if !r.emit(ctx, Event{Gen: gen, Hits: batch}) {
				_ = cmd.Wait()
				return
			}
			batch = make([]Hit, 0, batchSize)
			last = time.Now()
		}
	}
	// rg exits 1 on no matches; partial output is kept either way
	_ = cmd.Wait()
	if len(batch) > 0 {
		if !r.emit(ctx, Event{Gen: gen, Hits: batch}) {
			return
		}
	}
	r.emit(ctx, Event{Gen: gen, Done: true})
}

// runScan is the built-in fallback: case-insensitive substring scan of the
// indexed files. Unreadable files are skipped.
func (r *Runner) runScan(ctx context.Context, gen int, dir string, pattern string, files []string) {
	needle := strings.ToLower(pattern)
	batch := make([]Hit, 0, batchSize)
	for _, rel := range files {
		select {
		case <-ctx.Done():
			return
		default:
		}
		path := rel
		if dir != "" {
			path = filepath.Join(dir, rel)
		}
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := scanner.Text()
			if strings.Contains(strings.ToLower(line), needle) {
				batch = append(batch, Hit{Path: rel, Line: lineNum, Text: line})
				if len(batch) >= batchSize {
					if !r.emit(ctx, Event{Gen: gen, Hits: batch}) {
						f.Close()
						return
					}
					batch = make([]Hit, 0, batchSize)
				}
			}
		}
		f.Close()
	}
	if len(batch) > 0 {
		if !r.emit(ctx, Event{Gen: gen, Hits: batch}) {
			return
		}
	}
	r.emit(ctx, Event{Gen: gen, Done: true})
}

func (r *Runner) emit(ctx context.Context, ev Event) bool {
	select {
	case r.Events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// ParseHit parses a path:line:text record, tolerating the extra column
// field rg emits in --vimgrep mode (path:line:col:text).
func ParseHit(record string) (Hit, bool) {
	parts := strings.SplitN(record, ":", 4)
	if len(parts) < 3 {
		return Hit{}, false
	}
	line, err := strconv.Atoi(parts[1])
	if err != nil {
		return Hit{}, false
	}
	text := parts[2]
	if len(parts) == 4 {
		if _, err := strconv.Atoi(parts[2]); err == nil {
			text = parts[3]
		} else {
			text = parts[2] + ":" + parts[3]
		}
	}
	return Hit{Path: parts[0], Line: line, Text: text}, true
}

// Format renders a hit back into the path:line:text wire form shown in the
// results pane.
func (h Hit) Format() string {
	return h.Path + ":" + strconv.Itoa(h.Line) + ":" + h.Text
}
