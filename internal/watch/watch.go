// Package watch implements "luat watch": it re-lexes and re-parses a
// source file each time the filesystem reports a write to it, printing
// diagnostics (or a success line) after every change.
package watch

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/luat-lang/luat/internal/arena"
	"github.com/luat-lang/luat/internal/lexer"
	"github.com/luat-lang/luat/internal/parser"
	"github.com/luat-lang/luat/internal/strpool"
)

// Result is one reparse outcome, reported to the Watcher's callback.
type Result struct {
	Path       string
	TokenCount int
	Success    bool
	Errors     []string
}

// Watcher re-parses a single source file on every write event.
type Watcher struct {
	path   string
	fw     *fsnotify.Watcher
	logger *log.Logger
}

// New creates a watcher for path. The caller must call Run to start
// watching, and Close when done.
func New(path string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	if err := fw.Add(path); err != nil {
		fw.Close()

		return nil, fmt.Errorf("watch: add %q: %w", path, err)
	}

	return &Watcher{path: path, fw: fw, logger: logger}, nil
}

// Close releases the underlying OS watch handle.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

// Run blocks, re-parsing the watched file on every Write/Create event and
// invoking onResult with each outcome, until either fsnotify channel is
// closed (via Close). Errors received from fsnotify are logged and
// watching continues.
func (w *Watcher) Run(onResult func(Result)) {
	w.reparse(onResult)

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reparse(onResult)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}

			w.logger.Printf("watch: %v", err)
		}
	}
}

func (w *Watcher) reparse(onResult func(Result)) {
	src, err := os.ReadFile(w.path)
	if err != nil {
		onResult(Result{Path: w.path, Errors: []string{err.Error()}})

		return
	}

	a := arena.New(1 << 20)
	pool := strpool.New(a, 1024)

	tokens := lexer.Tokenize(src, pool)
	_, diags := parser.Parse(tokens, a)

	result := Result{Path: w.path, TokenCount: len(tokens), Success: diags.Empty()}

	for _, d := range diags.All() {
		result.Errors = append(result.Errors, d.Error())
	}

	onResult(result)
}

// Fprint writes a one-line summary of a Result to w.
func Fprint(w io.Writer, r Result) {
	if r.Success {
		fmt.Fprintf(w, "%s: ok (%d tokens)\n", r.Path, r.TokenCount)

		return
	}

	fmt.Fprintf(w, "%s: %d error(s)\n", r.Path, len(r.Errors))

	for _, e := range r.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}
