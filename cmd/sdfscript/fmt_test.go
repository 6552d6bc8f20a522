package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatSceneSource(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain", "s=2;L(x,y,z)-s", "s = 2, L(x, y, z) - s\n"},
		{"empty", "", ""},
		{"macro keeps layout", "@3{$,}  \r\nx\n\n\n", "@3{$,}\nx\n"},
		{"comment keeps layout", "// ball\nL(x,y,z)-1\t\n", "// ball\nL(x,y,z)-1\n"},
	}
	for _, tt := range tests {
		got, err := formatSceneSource(tt.src, 100)
		if err != nil {
			t.Fatalf("%s: format failed: %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}

	if _, err := formatSceneSource("L(x", 100); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFmtCommandCheckAndWrite(t *testing.T) {
	dir := t.TempDir()
	messy := filepath.Join(dir, "messy.sdf")
	clean := filepath.Join(dir, "nested", "clean.sdf")
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(messy, []byte("x+1"), 0o644); err != nil {
		t.Fatalf("write messy: %v", err)
	}
	if err := os.WriteFile(clean, []byte("x + 1\n"), 0o644); err != nil {
		t.Fatalf("write clean: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x+1"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	err := fmtCommand([]string{"-check", dir})
	if err == nil || !strings.Contains(err.Error(), "1 file(s) need formatting") {
		t.Fatalf("expected check failure, got %v", err)
	}

	if err := fmtCommand([]string{"-w", dir}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}
	got, err := os.ReadFile(messy)
	if err != nil {
		t.Fatalf("read messy: %v", err)
	}
	if string(got) != "x + 1\n" {
		t.Fatalf("unexpected rewrite %q", got)
	}
	notes, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	if err != nil {
		t.Fatalf("read notes: %v", err)
	}
	if string(notes) != "x+1" {
		t.Fatalf("non-scene files must be left alone, got %q", notes)
	}

	if err := fmtCommand([]string{"-check", dir}); err != nil {
		t.Fatalf("expected clean tree after -w, got %v", err)
	}
}

func TestFmtCommandPrintsToStdout(t *testing.T) {
	path := writeScene(t, "U( a ,b )")
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("fmt failed: %v", err)
	}
	if out != "U(a, b)\n" {
		t.Fatalf("unexpected output %q", out)
	}

	if err := fmtCommand(nil); err == nil || !strings.Contains(err.Error(), "path required") {
		t.Fatalf("expected missing path error, got %v", err)
	}
}
