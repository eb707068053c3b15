package transcribe_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"hookscript/internal/config"
	"hookscript/internal/script"
	"hookscript/internal/testsupport"
	"hookscript/internal/transcribe"
)

func TestNewSelectsBackend(t *testing.T) {
	tests := []struct {
		name     string
		backend  string
		apiKey   string
		wantName string
		wantErr  bool
	}{
		{name: "deepgram", backend: config.BackendDeepgram, apiKey: "k", wantName: "deepgram"},
		{name: "deepgram without key", backend: config.BackendDeepgram, wantErr: true},
		{name: "whisperx", backend: config.BackendWhisperX, wantName: "whisperx"},
		{name: "unknown", backend: "vosk", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Transcription.Backend = tt.backend
			cfg.Deepgram.APIKey = tt.apiKey

			got, err := transcribe.New(&cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got backend %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got.Name() != tt.wantName {
				t.Fatalf("expected %s backend, got %s", tt.wantName, got.Name())
			}
		})
	}
}

func TestNewRejectsNilConfig(t *testing.T) {
	if _, err := transcribe.New(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestDeepgramBackendReturnsUtterances(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("diarize") != "true" {
			t.Errorf("expected diarize=true, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"results":{"channels":[{"alternatives":[{"transcript":"x","paragraphs":{"paragraphs":[
 {"speaker":0,"sentences":[{"text":"Hello there."},{"text":"Welcome back."}]},
 {"speaker":1,"sentences":[{"text":"Hi."}]}
]}}]}]}}`)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithDeepgramServer(server.URL+"/v1/listen"))
	audio := filepath.Join(testsupport.BaseDir(cfg), "clip.mp3")
	testsupport.WriteFile(t, audio, 64)

	tr, err := transcribe.New(cfg, transcribe.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := tr.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	want := []script.Utterance{
		{Speaker: "0", Text: "Hello there. Welcome back."},
		{Speaker: "1", Text: "Hi."},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d utterances, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("utterance %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
