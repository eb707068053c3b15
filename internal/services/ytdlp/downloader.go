// Package ytdlp downloads the audio track of a video URL with yt-dlp.
package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"hookscript/internal/services"
)

const (
	// DefaultBinary is the yt-dlp executable resolved from PATH.
	DefaultBinary = "yt-dlp"
	// AudioFormat is the container yt-dlp extracts audio into.
	AudioFormat = "mp3"
	// OutputBase is the file name stem of the extracted audio.
	OutputBase = "audio"
)

// Config controls the yt-dlp invocation.
type Config struct {
	Binary       string
	FFmpegBinary string
}

// Downloader fetches audio for a single URL into a caller-owned directory.
type Downloader struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// New constructs a Downloader.
func New(cfg Config) *Downloader {
	if strings.TrimSpace(cfg.Binary) == "" {
		cfg.Binary = DefaultBinary
	}
	return &Downloader{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (d *Downloader) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	d.commandRunner = runner
}

// Download extracts the best audio stream of url into workDir and returns
// the path of the resulting mp3.
func (d *Downloader) Download(ctx context.Context, url, workDir string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", services.Wrap(services.ErrValidation, "download", "yt-dlp", "url required", nil)
	}
	if workDir == "" {
		return "", services.Wrap(services.ErrValidation, "download", "yt-dlp", "work dir required", nil)
	}

	if err := d.run(ctx, d.cfg.Binary, d.buildArgs(url, workDir)...); err != nil {
		marker := services.ErrExternalTool
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return "", services.Wrap(marker, "download", "yt-dlp", "", err)
	}

	audioPath := filepath.Join(workDir, OutputBase+"."+AudioFormat)
	info, err := os.Stat(audioPath)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "download", "yt-dlp", "audio file not produced", err)
	}
	if info.Size() == 0 {
		return "", services.Wrap(services.ErrExternalTool, "download", "yt-dlp", "audio file is empty", nil)
	}
	return audioPath, nil
}

func (d *Downloader) buildArgs(url, workDir string) []string {
	args := []string{
		"--format", "bestaudio/best",
		"--extract-audio",
		"--audio-format", AudioFormat,
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"--output", filepath.Join(workDir, OutputBase+".%(ext)s"),
	}
	if ffmpeg := strings.TrimSpace(d.cfg.FFmpegBinary); strings.ContainsRune(ffmpeg, filepath.Separator) {
		args = append(args, "--ffmpeg-location", ffmpeg)
	}
	return append(args, "--", url)
}

func (d *Downloader) run(ctx context.Context, name string, args ...string) error {
	if d.commandRunner != nil {
		return d.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
