package analyzer

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAnalyzeS1LinearRecursionDecreaseModel(t *testing.T) {
	_, summary := Analyze("c", "int f(int n){ if(n<=1) return 1; return f(n-1); }")

	if len(summary.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(summary.Functions))
	}
	fn := summary.Functions[0]
	if fn.Name != "f" || !fn.IsRecursive || fn.LoopCount != 0 || fn.MaxLoopDepth != 0 {
		t.Fatalf("unexpected function record: %+v", fn)
	}
	if fn.SizeParam != "n" || fn.SizeParamIndex == nil || *fn.SizeParamIndex != 0 {
		t.Fatalf("unexpected size param: %q/%v", fn.SizeParam, fn.SizeParamIndex)
	}
	if fn.Recurrence == nil {
		t.Fatal("expected a recurrence")
	}
	r := fn.Recurrence
	if r.A != 1 || r.F != "1" || r.Model != "decrease" || r.C != 1 {
		t.Fatalf("unexpected recurrence: %+v", r)
	}
	if summary.Recurrence != nil {
		t.Fatalf("expected no convenience recurrence, got %+v", summary.Recurrence)
	}
}

// TestAnalyzeS1SizeParamIndexZeroSurvivesJSON guards against omitempty
// dropping a legitimate sizeParamIndex of 0 (the most common case: the
// size parameter is the function's only/first parameter). Comparing Go
// struct fields alone can't catch this, since a round trip through
// encoding/json silently heals a missing key back to the zero value —
// the raw encoded bytes must be inspected instead.
func TestAnalyzeS1SizeParamIndexZeroSurvivesJSON(t *testing.T) {
	_, summary := Analyze("c", "int f(int n){ if(n<=1) return 1; return f(n-1); }")

	data, err := json.Marshal(summary.Functions[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"sizeParamIndex":0`) {
		t.Fatalf("expected sizeParamIndex:0 in encoded JSON, got %s", data)
	}
}

func TestAnalyzeS2BinaryRecursionDivideModel(t *testing.T) {
	_, summary := Analyze("c", "int g(int n){ if(n<2) return 1; return g(n/2)+g(n/2); }")

	if len(summary.Recurrences) != 1 {
		t.Fatalf("expected 1 recurrence, got %d", len(summary.Recurrences))
	}
	e := summary.Recurrences[0]
	if e.Function != "g" || e.A != 2 || e.F != "1" || e.B != 2 || e.Model != "divide" {
		t.Fatalf("unexpected recurrence entry: %+v", e)
	}
	if summary.Recurrence == nil || summary.Recurrence.A != 2 || summary.Recurrence.B != 2 || summary.Recurrence.F != "1" {
		t.Fatalf("unexpected convenience recurrence: %+v", summary.Recurrence)
	}
}

func TestAnalyzeS3DivideViaAlias(t *testing.T) {
	_, summary := Analyze("c", "int m(int n){ if(n<2) return 1; int mid = n/2; return m(mid)+m(mid); }")

	if len(summary.Recurrences) != 1 {
		t.Fatalf("expected 1 recurrence, got %d", len(summary.Recurrences))
	}
	e := summary.Recurrences[0]
	if e.Function != "m" || e.A != 2 || e.F != "1" || e.B != 2 || e.Model != "divide" {
		t.Fatalf("unexpected recurrence entry (alias-derived b): %+v", e)
	}
}

func TestAnalyzeS4DivideAndConquerWithLinearMerge(t *testing.T) {
	_, summary := Analyze("c", "void s(int* a, int n){ if(n<2) return; s(a, n/2); s(a, n/2); for(int i=0;i<n;i++){} }")

	if len(summary.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(summary.Functions))
	}
	fn := summary.Functions[0]
	if fn.LoopCount != 1 || fn.MaxLoopDepth != 1 {
		t.Fatalf("unexpected loop stats: %+v", fn)
	}
	if fn.SizeParam != "n" || fn.SizeParamIndex == nil || *fn.SizeParamIndex != 1 {
		t.Fatalf("unexpected size param: %q/%v", fn.SizeParam, fn.SizeParamIndex)
	}
	if fn.Recurrence == nil {
		t.Fatal("expected a recurrence")
	}
	r := fn.Recurrence
	if r.A != 2 || r.B != 2 || r.F != "n" || r.Model != "divide" {
		t.Fatalf("unexpected recurrence: %+v", r)
	}
}

// TestAnalyzeS4bPointerReturnDivideModel guards selectSizeParam against
// pointer return types: tree-sitter-c wraps the function_declarator in a
// pointer_declarator when the return type is a pointer, so a naive
// single-hop ChildByFieldName("parameters") lookup on the outer
// declarator would find nothing and silently drop the recurrence.
func TestAnalyzeS4bPointerReturnDivideModel(t *testing.T) {
	_, summary := Analyze("c", "int* merge(int* a, int* b, int n){ if(n<2) return a; return merge(a, b, n/2); }")

	if len(summary.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(summary.Functions))
	}
	fn := summary.Functions[0]
	if fn.SizeParam != "n" || fn.SizeParamIndex == nil || *fn.SizeParamIndex != 2 {
		t.Fatalf("unexpected size param: %q/%v", fn.SizeParam, fn.SizeParamIndex)
	}
	if fn.Recurrence == nil {
		t.Fatal("expected a recurrence despite the pointer return type")
	}
	r := fn.Recurrence
	if r.A != 1 || r.B != 2 || r.Model != "divide" {
		t.Fatalf("unexpected recurrence: %+v", r)
	}
}

func TestAnalyzeS5NonRecursiveNestedLoops(t *testing.T) {
	_, summary := Analyze("c", "void h(int n){ for(int i=0;i<n;i++) for(int j=0;j<n;j++){} }")

	if len(summary.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(summary.Functions))
	}
	fn := summary.Functions[0]
	if fn.IsRecursive {
		t.Fatal("expected non-recursive function")
	}
	if fn.LoopCount != 2 || fn.MaxLoopDepth != 2 {
		t.Fatalf("unexpected loop stats: %+v", fn)
	}
	if len(summary.Recurrences) != 0 {
		t.Fatalf("expected no recurrences, got %+v", summary.Recurrences)
	}
	if summary.Recurrence != nil {
		t.Fatalf("expected no convenience recurrence, got %+v", summary.Recurrence)
	}
	if len(summary.Loops) != 2 || summary.Loops[0].Depth != 1 || summary.Loops[1].Depth != 2 {
		t.Fatalf("unexpected loop records: %+v", summary.Loops)
	}
}

func TestAnalyzeS6AmbiguousDivideFactor(t *testing.T) {
	_, summary := Analyze("c", "int q(int n){ if(n<2) return 1; return q(n/2)+q(n/3); }")

	if len(summary.Recurrences) != 1 {
		t.Fatalf("expected 1 recurrence, got %d", len(summary.Recurrences))
	}
	e := summary.Recurrences[0]
	if e.A != 2 || e.B != 2 || !e.BAmbiguous || e.Model != "divide" {
		t.Fatalf("unexpected ambiguous recurrence: %+v", e)
	}
}

func TestAnalyzeUnsupportedLanguage(t *testing.T) {
	ast, summary := Analyze("python", "def f(n): pass")
	if ast.Language != "python" || ast.RootType != "unknown" {
		t.Fatalf("unexpected ast: %+v", ast)
	}
	if len(summary.Functions) != 0 || len(summary.Loops) != 0 || len(summary.Calls) != 0 || len(summary.Recurrences) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	ast, summary := Analyze("c", "")
	if ast.RootType != "unknown" {
		t.Fatalf("expected unknown root type, got %q", ast.RootType)
	}
	if len(summary.Functions) != 0 {
		t.Fatalf("expected no functions, got %+v", summary.Functions)
	}
}

func TestAnalyzeCallsSupersetOfFunctionCalls(t *testing.T) {
	_, summary := Analyze("c", `
		int helper(int x) { return x; }
		int f(int n) { return helper(n) + f(n-1); }
	`)

	seen := map[string]bool{}
	for _, c := range summary.Calls {
		seen[c] = true
	}
	for _, fn := range summary.Functions {
		for _, c := range fn.Calls {
			if !seen[c] {
				t.Fatalf("global calls missing %q from function %q", c, fn.Name)
			}
		}
	}
}

func TestAnalyzeComplexityInvariant(t *testing.T) {
	_, summary := Analyze("c", "int f(int n){ if(n<=1) return 1; return f(n-1); }")
	for _, fn := range summary.Functions {
		if fn.Complexity < 1 {
			t.Fatalf("expected complexity >= 1, got %d for %q", fn.Complexity, fn.Name)
		}
	}
}

func TestAnalyzeRootTypeReflectsParse(t *testing.T) {
	ast, _ := Analyze("c", "int f(int n){ return n; }")
	if ast.RootType == "unknown" || ast.RootType == "" {
		t.Fatalf("expected a real root type for valid C source, got %q", ast.RootType)
	}
}
