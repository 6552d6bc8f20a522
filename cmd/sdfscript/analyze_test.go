package main

import (
	"strings"
	"testing"

	"github.com/mgomes/sdfscript/script"
)

func analyzeSource(t *testing.T, src string) []lintWarning {
	t.Helper()
	stmt, err := script.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return analyzeProgram(stmt)
}

func TestAnalyzeReportsOverwrittenAndUnused(t *testing.T) {
	warnings := analyzeSource(t, "a = 1, b = 2, a = 3, a")
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %+v", warnings)
	}
	if warnings[0].Rule != "overwritten" || warnings[0].Pos.Line != 1 || warnings[0].Pos.Column != 1 {
		t.Fatalf("unexpected first warning %+v", warnings[0])
	}
	if warnings[1].Rule != "unused" || warnings[1].Pos.Column != 8 || !strings.Contains(warnings[1].Message, "b is assigned") {
		t.Fatalf("unexpected second warning %+v", warnings[1])
	}
}

func TestAnalyzeCleanSources(t *testing.T) {
	for _, src := range []string{
		"L(x, y, z) - 1",
		"s = 2, x = x * s, L(x, y, z) / s",
		"[x, y] = r0(x, y), B(x)",
		"a = 1, a++, a",
		"d = L(x, y, z)",
	} {
		if warnings := analyzeSource(t, src); len(warnings) != 0 {
			t.Fatalf("%q: unexpected warnings %+v", src, warnings)
		}
	}
}

func TestAnalyzeTracksReadsInsideExpressions(t *testing.T) {
	warnings := analyzeSource(t, "c = 1, d = 2, e = c ? -d : U(d, 3), e, q = 4, 0")
	if len(warnings) != 1 || warnings[0].Rule != "unused" || !strings.Contains(warnings[0].Message, "q ") {
		t.Fatalf("expected only q to be unused, got %+v", warnings)
	}
}

func TestAnalyzeCommand(t *testing.T) {
	path := writeScene(t, "a = 1, a = 2, a")
	out, err := captureStdout(t, func() error {
		return analyzeCommand([]string{path})
	})
	if err == nil || !strings.Contains(err.Error(), "analysis found 1 issue(s)") {
		t.Fatalf("expected one issue, got %v", err)
	}
	if !strings.Contains(out, path+":1:1: value assigned to a is overwritten before use (overwritten)") {
		t.Fatalf("unexpected report:\n%s", out)
	}

	out, err = captureStdout(t, func() error {
		return analyzeCommand([]string{"-e", "L(x,y,z)-1"})
	})
	if err != nil {
		t.Fatalf("clean source failed: %v", err)
	}
	if strings.TrimSpace(out) != "No issues found" {
		t.Fatalf("unexpected output %q", out)
	}
}
