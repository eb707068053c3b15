package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"hookscript/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Credentials are filled with placeholders so Require* checks pass.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.LockPath = filepath.Join(base, "hookscript.lock")
	cfgVal.Discord.Token = "test-token"
	cfgVal.Discord.ApplicationID = "123"
	cfgVal.Deepgram.APIKey = "test"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithDeepgramServer points the Deepgram backend at a test server.
func WithDeepgramServer(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Transcription.Backend = config.BackendDeepgram
		b.cfg.Deepgram.BaseURL = url
	}
}

// WithNtfyTopic enables notifications against a test server.
func WithNtfyTopic(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = url
		b.cfg.Notifications.ScriptReady = true
		b.cfg.Notifications.Errors = true
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH for the rest of the test. If names is empty, yt-dlp
// and ffmpeg are stubbed. The download binaries are reset to bare names so
// PATH lookup finds the stubs.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"yt-dlp", "ffmpeg"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
		b.cfg.Download.YTDLPBinary = "yt-dlp"
		b.cfg.Download.FFmpegBinary = "ffmpeg"
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkDir)
}
