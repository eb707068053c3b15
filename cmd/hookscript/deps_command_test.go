package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"hookscript/internal/deps"
)

func TestStatusPrinterFormat(t *testing.T) {
	plain := &statusPrinter{w: io.Discard, width: 20}
	if got := plain.format("yt-dlp", statusOK, "Ready"); got != "  yt-dlp:              [OK] Ready" {
		t.Fatalf("unexpected plain line %q", got)
	}

	colored := &statusPrinter{w: io.Discard, color: true, width: 20}
	got := colored.format("yt-dlp", statusError, "")
	if !strings.HasPrefix(got, ansiRed) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected red line, got %q", got)
	}
	if !strings.Contains(got, "[ERROR]") {
		t.Fatalf("expected error label, got %q", got)
	}
}

func TestReportDependencies(t *testing.T) {
	statuses := []deps.Status{
		{Requirement: deps.Requirement{Name: "yt-dlp", Command: "yt-dlp"}, Available: true, Version: "2025.06.09", Path: "/usr/bin/yt-dlp"},
		{Requirement: deps.Requirement{Name: "FFmpeg", Command: "ffmpeg"}, Detail: `binary "ffmpeg" not found`},
		{Requirement: deps.Requirement{Name: "uvx", Command: "uvx", Optional: true}},
	}
	var buf bytes.Buffer
	reportDependencies(&statusPrinter{w: &buf, width: 20}, statuses)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %v", len(lines), lines)
	}
	requireContains(t, lines[0], "[OK] 2025.06.09 (/usr/bin/yt-dlp)")
	requireContains(t, lines[1], `[ERROR] binary "ffmpeg" not found`)
	requireContains(t, lines[2], "[WARN] not available (optional)")
	requireContains(t, lines[3], "Missing dependencies")
	requireContains(t, lines[3], "FFmpeg")
	if strings.Contains(lines[3], "uvx") {
		t.Fatalf("optional dependency listed as missing: %s", lines[3])
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatal("expected no color for non-file writer")
	}
	if newStatusPrinter(&bytes.Buffer{}).color {
		t.Fatal("expected buffer printer to stay plain")
	}
}

func TestDepsCommandReportsMissingBinary(t *testing.T) {
	env := setupCLITestEnv(t, "[download]\nytdlp_binary = \"hookscript-no-such-binary\"\n")
	out, _, err := runCLI(t, []string{"deps"}, env.configPath, "")
	if err == nil {
		t.Fatal("expected missing dependency error")
	}
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, `binary "hookscript-no-such-binary" not found`)
}
