package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("from file"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no args reads stdin", want: "from stdin"},
		{name: "dash reads stdin", args: []string{"-"}, want: "from stdin"},
		{name: "path reads file", args: []string{path}, want: "from file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readInput(strings.NewReader("from stdin"), tt.args)
			if err != nil {
				t.Fatalf("readInput: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := readInput(nil, []string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEllipsize(t *testing.T) {
	if got := ellipsize("short", 10); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
	if got := ellipsize("abcdefghij", 5); got != "abcd…" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := renderTable([]string{"Name", "Count"}, [][]string{{"a", "1"}, {"bb", "22"}}, []columnAlignment{alignLeft, alignRight})
	for _, want := range []string{"NAME", "COUNT", "bb", "22"} {
		requireContains(t, out, want)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty table for no headers")
	}
}
