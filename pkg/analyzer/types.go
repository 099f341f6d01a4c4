// Package analyzer extracts algorithmic-complexity evidence from C source
// text: loop statistics, call graphs, and — for self-recursive functions —
// an inferred divide-and-conquer or decrease-and-conquer recurrence
// relation of the form T(n) = a*T(n/b) + f(n) or T(n) = a*T(n-c) + f(n).
package analyzer

// AstDescriptor is a minimal description of the parsed tree, enough to
// confirm the input was recognized as the given language.
type AstDescriptor struct {
	Language string `json:"language"`
	RootType string `json:"rootType"`
}

// LoopRecord describes a single for/while loop encountered during the walk.
type LoopRecord struct {
	Kind  string `json:"kind"`
	Bound string `json:"bound"`
	Depth int    `json:"depth"`
}

// Recurrence is the inferred recurrence relation for a self-recursive
// function, embedded inside its FunctionRecord.
type Recurrence struct {
	A          int    `json:"a"`
	F          string `json:"f"`
	B          int    `json:"b,omitempty"`
	Model      string `json:"model,omitempty"`
	C          int    `json:"c,omitempty"`
	BAmbiguous bool   `json:"b_ambiguous,omitempty"`
}

// RecurrenceEntry is the top-level, flattened form of a Recurrence: the
// same fields plus the enclosing function's name.
type RecurrenceEntry struct {
	Function   string `json:"function"`
	A          int    `json:"a"`
	F          string `json:"f"`
	B          int    `json:"b,omitempty"`
	Model      string `json:"model,omitempty"`
	C          int    `json:"c,omitempty"`
	BAmbiguous bool   `json:"b_ambiguous,omitempty"`
}

// FunctionRecord summarizes one function definition encountered in source
// traversal order.
type FunctionRecord struct {
	Name           string      `json:"name"`
	IsRecursive    bool        `json:"is_recursive"`
	Calls          []string    `json:"calls"`
	LoopCount      int         `json:"loopCount"`
	MaxLoopDepth   int         `json:"maxLoopDepth"`
	Complexity     int         `json:"complexity"`
	SizeParam      string      `json:"sizeParam,omitempty"`
	SizeParamIndex *int        `json:"sizeParamIndex,omitempty"`
	Recurrence     *Recurrence `json:"recurrence,omitempty"`
}

// ConvenienceRecurrence is the optional top-level {a, b, f} shorthand
// published when exactly one RecurrenceEntry exists and it is a divide
// model with b > 1.
type ConvenienceRecurrence struct {
	A int    `json:"a"`
	B int    `json:"b"`
	F string `json:"f"`
}

// Summary is the semantic result of analyzing one snippet of C source.
type Summary struct {
	Loops       []LoopRecord           `json:"loops"`
	Calls       []string               `json:"calls"`
	Functions   []FunctionRecord       `json:"functions"`
	Recurrences []RecurrenceEntry      `json:"recurrences"`
	Recurrence  *ConvenienceRecurrence `json:"recurrence,omitempty"`
}

// ParseResult pairs the AST descriptor with the semantic summary — the
// full return value of Analyze.
type ParseResult struct {
	AST     *AstDescriptor `json:"ast"`
	Summary *Summary       `json:"summary"`
}

// emptySummary returns a Summary with empty (never nil) slices, matching
// the invariant that loops/calls/functions/recurrences are always arrays
// in the JSON encoding, even when analysis produced nothing.
func emptySummary() *Summary {
	return &Summary{
		Loops:       []LoopRecord{},
		Calls:       []string{},
		Functions:   []FunctionRecord{},
		Recurrences: []RecurrenceEntry{},
	}
}
