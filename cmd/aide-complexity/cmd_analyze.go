package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/jmylchreest/aide-complexity/pkg/aideignore"
	"github.com/jmylchreest/aide-complexity/pkg/analyzer"
	"github.com/jmylchreest/aide-complexity/pkg/httputil"
)

// languageForPath maps a file extension to the analyzer's language name.
// Only "c" is ever recognized by the analyzer core itself; ".h" files are
// treated as C too since the walker only cares about function definitions.
func languageForPath(path string) string {
	switch filepath.Ext(path) {
	case ".c", ".h":
		return "c"
	default:
		return "c"
	}
}

// cmdAnalyze implements "aide-complexity analyze <file|dir|-> [--json] [--remote=url]".
func cmdAnalyze(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("analyze: expected a file, directory, or - for stdin")
	}

	target := args[0]
	jsonOut := hasFlag(args, "--json")
	remote := parseFlag(args, "--remote=")
	if remote == "" {
		remote = os.Getenv("AIDE_COMPLEXITY_REMOTE")
	}

	if target == "-" {
		code, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("analyze: reading stdin: %w", err)
		}
		result, err := runAnalysis(remote, "c", string(code))
		if err != nil {
			return err
		}
		return renderResult(target, result, jsonOut)
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if !info.IsDir() {
		code, err := os.ReadFile(target)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		result, err := runAnalysis(remote, languageForPath(target), string(code))
		if err != nil {
			return err
		}
		return renderResult(target, result, jsonOut)
	}

	return analyzeDirectory(target, remote, jsonOut)
}

// analyzeDirectory walks a directory for .c/.h files, honoring .aideignore
// patterns, and renders one result per file.
func analyzeDirectory(root, remote string, jsonOut bool) error {
	matcher, err := aideignore.New(root)
	if err != nil {
		return fmt.Errorf("analyze: loading .aideignore: %w", err)
	}
	shouldSkip := matcher.WalkFunc(root)

	type fileResult struct {
		Path    string                  `json:"path"`
		AST     *analyzer.AstDescriptor `json:"ast"`
		Summary *analyzer.Summary       `json:"summary"`
	}
	var results []fileResult

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if skip, skipDir := shouldSkip(path, info); skip {
			if skipDir {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".c" && ext != ".h" {
			return nil
		}
		code, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		result, analyzeErr := runAnalysis(remote, languageForPath(path), string(code))
		if analyzeErr != nil {
			return analyzeErr
		}
		results = append(results, fileResult{Path: path, AST: result.AST, Summary: result.Summary})
		return nil
	})
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, r := range results {
		fmt.Printf("\n%s\n", r.Path)
		renderTable(r.Summary)
	}
	return nil
}

// runAnalysis runs the analyzer locally, or against a remote /parse endpoint
// when remote is non-empty.
func runAnalysis(remote, language, code string) (*analyzer.ParseResult, error) {
	if remote == "" {
		ast, summary := analyzer.Analyze(language, code)
		return &analyzer.ParseResult{AST: ast, Summary: summary}, nil
	}

	client := httputil.NewClient()
	url := strings.TrimSuffix(remote, "/") + "/parse"
	body := map[string]string{"language": language, "code": code}
	var result analyzer.ParseResult
	if err := client.PostJSON(context.Background(), url, body, &result); err != nil {
		return nil, fmt.Errorf("analyze: remote request to %s: %w", url, err)
	}
	return &result, nil
}

func renderResult(label string, result *analyzer.ParseResult, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	fmt.Printf("%s (%s)\n", label, result.AST.RootType)
	renderTable(result.Summary)
	return nil
}

// renderTable prints a human-readable function table.
func renderTable(summary *analyzer.Summary) {
	if len(summary.Functions) == 0 {
		fmt.Println("  no functions found")
		return
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header([]string{"Function", "Recursive", "Loops", "MaxDepth", "Complexity", "Recurrence"})
	for _, fn := range summary.Functions {
		table.Append([]string{
			fn.Name,
			strconv.FormatBool(fn.IsRecursive),
			strconv.Itoa(fn.LoopCount),
			strconv.Itoa(fn.MaxLoopDepth),
			strconv.Itoa(fn.Complexity),
			recurrenceLabel(fn.Recurrence),
		})
	}
	table.Render()

	if summary.Recurrence != nil {
		fmt.Printf("T(n) = %d*T(n/%d) + %s\n", summary.Recurrence.A, summary.Recurrence.B, summary.Recurrence.F)
	}
}

func recurrenceLabel(r *analyzer.Recurrence) string {
	if r == nil {
		return "-"
	}
	switch r.Model {
	case "divide":
		ambiguous := ""
		if r.BAmbiguous {
			ambiguous = " (ambiguous b)"
		}
		return fmt.Sprintf("T(n)=%d*T(n/%d)+%s%s", r.A, r.B, r.F, ambiguous)
	case "decrease":
		return fmt.Sprintf("T(n)=%d*T(n-%d)+%s", r.A, r.C, r.F)
	default:
		return fmt.Sprintf("a=%d f=%s", r.A, r.F)
	}
}
