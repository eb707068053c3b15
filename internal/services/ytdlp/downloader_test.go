package ytdlp_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"hookscript/internal/services"
	"hookscript/internal/services/ytdlp"
)

func TestDownloadProducesMP3(t *testing.T) {
	dir := t.TempDir()
	d := ytdlp.New(ytdlp.Config{Binary: "yt", FFmpegBinary: "/opt/ffmpeg/bin/ffmpeg"})

	var gotName string
	var gotArgs []string
	d.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		return os.WriteFile(filepath.Join(dir, "audio.mp3"), []byte("ID3"), 0o644)
	})

	path, err := d.Download(context.Background(), " https://youtube.com/shorts/abc ", dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if path != filepath.Join(dir, "audio.mp3") {
		t.Fatalf("unexpected path %q", path)
	}
	if gotName != "yt" {
		t.Fatalf("unexpected binary %q", gotName)
	}
	for _, want := range []string{"bestaudio/best", "--extract-audio", "mp3", "--no-playlist", "--ffmpeg-location"} {
		if !slices.Contains(gotArgs, want) {
			t.Fatalf("expected %q in args %v", want, gotArgs)
		}
	}
	if gotArgs[len(gotArgs)-1] != "https://youtube.com/shorts/abc" {
		t.Fatalf("expected url last, got %v", gotArgs)
	}
}

func TestDownloadOmitsFFmpegLocationForBareName(t *testing.T) {
	dir := t.TempDir()
	d := ytdlp.New(ytdlp.Config{FFmpegBinary: "ffmpeg"})
	d.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		if name != ytdlp.DefaultBinary {
			t.Fatalf("expected default binary, got %q", name)
		}
		if slices.Contains(args, "--ffmpeg-location") {
			t.Fatalf("unexpected ffmpeg location in %v", args)
		}
		return os.WriteFile(filepath.Join(dir, "audio.mp3"), []byte("ID3"), 0o644)
	})
	if _, err := d.Download(context.Background(), "https://example.com/v", dir); err != nil {
		t.Fatalf("Download: %v", err)
	}
}

func TestDownloadFailures(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		runner func(dir string) func(ctx context.Context, name string, args ...string) error
		marker error
	}{
		{
			name:   "empty url",
			url:    "  ",
			marker: services.ErrValidation,
		},
		{
			name: "tool fails",
			url:  "https://example.com/v",
			runner: func(string) func(context.Context, string, ...string) error {
				return func(context.Context, string, ...string) error { return errors.New("exit status 1") }
			},
			marker: services.ErrExternalTool,
		},
		{
			name: "no output file",
			url:  "https://example.com/v",
			runner: func(string) func(context.Context, string, ...string) error {
				return func(context.Context, string, ...string) error { return nil }
			},
			marker: services.ErrExternalTool,
		},
		{
			name: "empty output file",
			url:  "https://example.com/v",
			runner: func(dir string) func(context.Context, string, ...string) error {
				return func(context.Context, string, ...string) error {
					return os.WriteFile(filepath.Join(dir, "audio.mp3"), nil, 0o644)
				}
			},
			marker: services.ErrExternalTool,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			d := ytdlp.New(ytdlp.Config{})
			if tt.runner != nil {
				d.WithCommandRunner(tt.runner(dir))
			}
			_, err := d.Download(context.Background(), tt.url, dir)
			if !errors.Is(err, tt.marker) {
				t.Fatalf("expected %v, got %v", tt.marker, err)
			}
		})
	}
}
