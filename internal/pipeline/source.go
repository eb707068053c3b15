package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"hookscript/internal/logging"
	"hookscript/internal/script"
	"hookscript/internal/transcribe"
)

// Source returns the ordered, speaker-tagged utterances spoken in a video.
type Source interface {
	Fetch(ctx context.Context, url string) ([]script.Utterance, error)
}

// Downloader extracts the audio track of url into workDir.
type Downloader interface {
	Download(ctx context.Context, url, workDir string) (string, error)
}

// MediaSource downloads audio into a private temp directory, transcribes it,
// and removes the directory afterwards. Concurrent fetches never share files.
type MediaSource struct {
	downloader      Downloader
	transcriber     transcribe.Transcriber
	workRoot        string
	downloadTimeout time.Duration
	logger          *slog.Logger
}

// MediaSourceOption customizes a MediaSource.
type MediaSourceOption func(*MediaSource)

// WithDownloadTimeout bounds the download step.
func WithDownloadTimeout(d time.Duration) MediaSourceOption {
	return func(m *MediaSource) { m.downloadTimeout = d }
}

// WithSourceLogger sets the logger used for per-step timing.
func WithSourceLogger(logger *slog.Logger) MediaSourceOption {
	return func(m *MediaSource) { m.logger = logger }
}

// NewMediaSource composes a downloader and a transcriber. workRoot is the
// parent of per-request temp directories; empty means os.TempDir().
func NewMediaSource(downloader Downloader, transcriber transcribe.Transcriber, workRoot string, opts ...MediaSourceOption) *MediaSource {
	m := &MediaSource{
		downloader:  downloader,
		transcriber: transcriber,
		workRoot:    workRoot,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logging.NewComponentLogger(m.logger, "source")
	return m
}

// Fetch downloads and transcribes url.
func (m *MediaSource) Fetch(ctx context.Context, url string) ([]script.Utterance, error) {
	if m.workRoot != "" {
		if err := os.MkdirAll(m.workRoot, 0o755); err != nil {
			return nil, fmt.Errorf("ensure work dir: %w", err)
		}
	}
	workDir, err := os.MkdirTemp(m.workRoot, "request-*")
	if err != nil {
		return nil, fmt.Errorf("create request dir: %w", err)
	}
	logger := logging.WithContext(ctx, m.logger)
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			logger.Warn("request dir cleanup failed", logging.String("path", workDir), logging.Error(rmErr))
		}
	}()

	downloadCtx := ctx
	if m.downloadTimeout > 0 {
		var cancel context.CancelFunc
		downloadCtx, cancel = context.WithTimeout(ctx, m.downloadTimeout)
		defer cancel()
	}

	start := time.Now()
	audioPath, err := m.downloader.Download(downloadCtx, url, workDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("audio downloaded", logging.String("path", audioPath), logging.Duration("elapsed", time.Since(start)))

	start = time.Now()
	utterances, err := m.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("audio transcribed",
		logging.String("backend", m.transcriber.Name()),
		logging.Int("utterances", len(utterances)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return utterances, nil
}
