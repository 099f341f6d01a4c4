package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/aide-complexity/pkg/analyzer"
	"github.com/jmylchreest/aide-complexity/pkg/watcher"
)

// cmdWatch implements "aide-complexity watch <path>...". It debounces
// filesystem events over the given root paths and re-analyzes changed
// .c/.h files, printing the functions whose complexity changed.
func cmdWatch(args []string) error {
	var paths []string
	for _, a := range args {
		if a == "-h" || a == "--help" {
			continue
		}
		paths = append(paths, a)
	}
	if len(paths) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		paths = []string{cwd}
	}

	delay := DefaultWatchDebounce
	if envDelay := os.Getenv("AIDE_COMPLEXITY_WATCH_DELAY"); envDelay != "" {
		if secs, err := strconv.Atoi(envDelay); err == nil {
			delay = time.Duration(secs) * time.Second
		}
	}

	h := &analyzeHandler{lastComplexity: make(map[string]int)}

	w, err := watcher.New(watcher.Config{
		Paths:         paths,
		DebounceDelay: delay,
		FileFilter:    isCSourceFile,
	}, h)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	if err := w.Start(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Stop()

	fmt.Fprintf(os.Stderr, "aide-complexity: watching %v for C source changes (debounce %v)\n", paths, delay)

	// Block forever; Ctrl-C terminates the process.
	select {}
}

func isCSourceFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".c" || ext == ".h"
}

// analyzeHandler re-runs Analyze on changed files and reports any change in
// a function's recorded complexity (the report line also shows the current
// recurrence). A recurrence change with unchanged complexity is not reported.
type analyzeHandler struct {
	lastComplexity map[string]int
}

func (h *analyzeHandler) OnChanges(files map[string]fsnotify.Op) {
	for path, op := range files {
		if watcher.IsRemove(op) {
			delete(h.lastComplexity, path)
			continue
		}

		code, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		_, summary := analyzer.Analyze("c", string(code))
		for _, fn := range summary.Functions {
			key := path + ":" + fn.Name
			if prev, ok := h.lastComplexity[key]; !ok || prev != fn.Complexity {
				h.lastComplexity[key] = fn.Complexity
				fmt.Printf("%s: %s complexity=%d recursive=%v recurrence=%s\n",
					path, fn.Name, fn.Complexity, fn.IsRecursive, recurrenceLabel(fn.Recurrence))
			}
		}
	}
}
