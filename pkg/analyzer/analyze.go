package analyzer

import (
	"github.com/jmylchreest/aide-complexity/pkg/grammar"
)

// defaultProvider is the package-level syntax provider, backed by the
// built-in grammar registry. Analyze is a pure function from the caller's
// point of view; the provider is internal plumbing, not configuration the
// caller needs to thread through.
var defaultProvider = newSyntaxProvider(grammar.NewBuiltinRegistry())

// Analyze parses code as the given language and produces both a minimal
// AST descriptor and a semantic Summary. Only language == LangC ("c")
// produces a non-empty Summary; any other language, or empty code,
// yields the empty-summary shape with rootType "unknown" — this never
// fails, matching the ERROR HANDLING DESIGN's UnsupportedLanguage and
// EmptyInput cases.
func Analyze(language, code string) (*AstDescriptor, *Summary) {
	ast := &AstDescriptor{Language: language, RootType: "unknown"}
	if language == "" {
		ast.Language = "unknown"
	}

	if language != LangC || len(code) == 0 {
		return ast, emptySummary()
	}

	root, closeFn, ok := defaultProvider.parse(language, []byte(code))
	defer closeFn()
	if !ok || root == nil {
		return ast, emptySummary()
	}

	ast.RootType = root.Kind()

	w := newWalker([]byte(code))
	w.visitChildren(root)

	summary := &Summary{
		Loops:       nonEmptyLoops(w.loops),
		Calls:       nonNilStrings(w.globalCalls),
		Functions:   nonEmptyFunctions(w.functions),
		Recurrences: nonEmptyRecurrences(w.recurrences),
	}
	summary.Recurrence = buildConvenienceRecurrence(summary.Recurrences)

	return ast, summary
}

func nonEmptyLoops(l []LoopRecord) []LoopRecord {
	if l == nil {
		return []LoopRecord{}
	}
	return l
}

func nonEmptyFunctions(f []FunctionRecord) []FunctionRecord {
	if f == nil {
		return []FunctionRecord{}
	}
	return f
}

func nonEmptyRecurrences(r []RecurrenceEntry) []RecurrenceEntry {
	if r == nil {
		return []RecurrenceEntry{}
	}
	return r
}

// buildConvenienceRecurrence implements §4.7: when exactly one
// RecurrenceEntry exists and it is a divide model with b > 1, publish a
// top-level {a, b, f} shorthand.
func buildConvenienceRecurrence(entries []RecurrenceEntry) *ConvenienceRecurrence {
	if len(entries) != 1 {
		return nil
	}
	e := entries[0]
	if e.Model != kindDivide || e.B <= 1 {
		return nil
	}
	return &ConvenienceRecurrence{A: e.A, B: e.B, F: e.F}
}
