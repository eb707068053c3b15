package whisperx_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"hookscript/internal/script"
	"hookscript/internal/services"
	"hookscript/internal/services/whisperx"
)

const diarizedJSON = `{"segments":[
 {"text":" Hello there. ","start":0.0,"end":1.2,"speaker":"SPEAKER_00"},
 {"text":"Hi!","start":1.3,"end":1.8,"speaker":"SPEAKER_01"},
 {"text":"   ","start":1.9,"end":2.0,"speaker":"SPEAKER_01"},
 {"text":"Unattributed words","start":2.1,"end":3.0}
]}`

func TestTranscribeRunsFFmpegThenWhisperX(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "audio.mp3")
	if err := os.WriteFile(audio, []byte("fake"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	svc := whisperx.NewService(whisperx.Config{Model: "small", HFToken: "hf", Language: "en"}, "ffmpeg-bin")
	var calls []string
	var whisperArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		calls = append(calls, name)
		if name == whisperx.UVXCommand {
			whisperArgs = args
			out := filepath.Join(dir, "whisperx", "audio_16k.json")
			return os.WriteFile(out, []byte(diarizedJSON), 0o644)
		}
		return nil
	})

	utts, err := svc.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if !slices.Equal(calls, []string{"ffmpeg-bin", whisperx.UVXCommand}) {
		t.Fatalf("unexpected command order: %v", calls)
	}
	for _, flag := range []string{"--diarize", "--hf_token", "small", "--language", "json"} {
		if !slices.Contains(whisperArgs, flag) {
			t.Fatalf("expected %q in whisperx args %v", flag, whisperArgs)
		}
	}

	want := []script.Utterance{
		{Speaker: "SPEAKER_00", Text: "Hello there."},
		{Speaker: "SPEAKER_01", Text: "Hi!"},
		{Speaker: script.DefaultSpeaker, Text: "Unattributed words"},
	}
	if !slices.Equal(utts, want) {
		t.Fatalf("unexpected utterances:\n got %+v\nwant %+v", utts, want)
	}
}

func TestTranscribeEmptySegmentsReportsNoSpeech(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "clip.m4a")
	svc := whisperx.NewService(whisperx.Config{}, "")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		if name == whisperx.UVXCommand {
			return os.WriteFile(filepath.Join(dir, "whisperx", "clip_16k.json"), []byte(`{"segments":[]}`), 0o644)
		}
		return nil
	})
	_, err := svc.Transcribe(context.Background(), audio)
	if !errors.Is(err, script.ErrNoSpeechDetected) {
		t.Fatalf("expected ErrNoSpeechDetected, got %v", err)
	}
}

func TestTranscribeToolFailureIsExternal(t *testing.T) {
	svc := whisperx.NewService(whisperx.Config{}, "")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("exit status 1")
	})
	_, err := svc.Transcribe(context.Background(), filepath.Join(t.TempDir(), "a.mp3"))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestModelDefault(t *testing.T) {
	if got := whisperx.NewService(whisperx.Config{}, "").Model(); got != whisperx.DefaultModel {
		t.Fatalf("unexpected default model: %q", got)
	}
}
