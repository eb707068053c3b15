package testsupport

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"hookscript/internal/script"
)

// FakeDownloader writes a placeholder audio file into the work directory.
type FakeDownloader struct {
	T   testing.TB
	Err error

	mu   sync.Mutex
	urls []string
	dirs []string
}

// Download records the call and returns <workDir>/audio.mp3.
func (f *FakeDownloader) Download(_ context.Context, url, workDir string) (string, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.dirs = append(f.dirs, workDir)
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	path := filepath.Join(workDir, "audio.mp3")
	WriteFile(f.T, path, 16)
	return path, nil
}

// URLs returns the URLs passed to Download in call order.
func (f *FakeDownloader) URLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

// WorkDirs returns the work directories passed to Download in call order.
func (f *FakeDownloader) WorkDirs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.dirs...)
}

// FakeTranscriber returns canned utterances.
type FakeTranscriber struct {
	Utterances []script.Utterance
	Err        error

	mu    sync.Mutex
	paths []string
}

// Name identifies the fake in logs.
func (f *FakeTranscriber) Name() string { return "fake" }

// Transcribe records the audio path and returns the canned result.
func (f *FakeTranscriber) Transcribe(_ context.Context, audioPath string) ([]script.Utterance, error) {
	f.mu.Lock()
	f.paths = append(f.paths, audioPath)
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]script.Utterance(nil), f.Utterances...), nil
}

// AudioPaths returns the paths passed to Transcribe in call order.
func (f *FakeTranscriber) AudioPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}
