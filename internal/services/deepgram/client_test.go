package deepgram_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"hookscript/internal/script"
	"hookscript/internal/services"
	"hookscript/internal/services/deepgram"
)

const diarizedResponse = `{
  "metadata": {"request_id": "abc", "duration": 12.5},
  "results": {"channels": [{"alternatives": [{
    "transcript": "Hello there. Hi! Welcome back.",
    "confidence": 0.98,
    "paragraphs": {"transcript": "...", "paragraphs": [
      {"speaker": 0, "num_words": 2, "sentences": [{"text": "Hello there.", "start": 0, "end": 1}]},
      {"speaker": 1, "num_words": 1, "sentences": [{"text": "Hi!", "start": 1, "end": 2}]},
      {"speaker": 0, "num_words": 2, "sentences": [{"text": "Welcome", "start": 2, "end": 3}, {"text": "back.", "start": 3, "end": 4}]}
    ]}
  }]}]}
}`

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.mp3")
	if err := os.WriteFile(path, []byte("ID3fake"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func TestTranscribeSendsDiarizedRequest(t *testing.T) {
	var gotQuery, gotAuth, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(diarizedResponse))
	}))
	defer srv.Close()

	client := deepgram.NewClient(deepgram.Config{APIKey: "key-123", BaseURL: srv.URL, Language: "en"})
	utts, err := client.Transcribe(context.Background(), writeAudio(t))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if gotAuth != "Token key-123" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotType != "audio/mpeg" {
		t.Fatalf("unexpected content type %q", gotType)
	}
	if gotBody != "ID3fake" {
		t.Fatalf("unexpected body %q", gotBody)
	}
	for _, param := range []string{"model=nova-3", "smart_format=true", "diarize=true", "language=en"} {
		if !strings.Contains(gotQuery, param) {
			t.Fatalf("query %q missing %q", gotQuery, param)
		}
	}

	want := []script.Utterance{
		{Speaker: "0", Text: "Hello there."},
		{Speaker: "1", Text: "Hi!"},
		{Speaker: "0", Text: "Welcome back."},
	}
	if !slices.Equal(utts, want) {
		t.Fatalf("unexpected utterances:\n got %+v\nwant %+v", utts, want)
	}
}

func TestTranscribeHTTPErrorIsExternal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"err_msg":"bad key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := deepgram.NewClient(deepgram.Config{APIKey: "nope", BaseURL: srv.URL})
	_, err := client.Transcribe(context.Background(), writeAudio(t))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestTranscribeRequiresAPIKey(t *testing.T) {
	client := deepgram.NewClient(deepgram.Config{})
	_, err := client.Transcribe(context.Background(), writeAudio(t))
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestUtterancesFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []script.Utterance
		wantErr error
	}{
		{
			name: "no paragraphs uses transcript",
			body: `{"results":{"channels":[{"alternatives":[{"transcript":"  just words  "}]}]}}`,
			want: []script.Utterance{{Speaker: script.DefaultSpeaker, Text: "just words"}},
		},
		{
			name: "paragraph without speaker",
			body: `{"results":{"channels":[{"alternatives":[{"transcript":"x","paragraphs":{"paragraphs":[{"sentences":[{"text":"Solo."}]}]}}]}]}}`,
			want: []script.Utterance{{Speaker: script.DefaultSpeaker, Text: "Solo."}},
		},
		{
			name:    "empty transcript",
			body:    `{"results":{"channels":[{"alternatives":[{"transcript":""}]}]}}`,
			wantErr: script.ErrNoSpeechDetected,
		},
		{
			name:    "missing results",
			body:    `{"metadata":{}}`,
			wantErr: services.ErrExternalTool,
		},
		{
			name:    "no channels",
			body:    `{"results":{"channels":[]}}`,
			wantErr: services.ErrExternalTool,
		},
		{
			name:    "no alternatives",
			body:    `{"results":{"channels":[{"alternatives":[]}]}}`,
			wantErr: services.ErrExternalTool,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := deepgram.DecodeResponse(strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("DecodeResponse: %v", err)
			}
			got, err := resp.Utterances()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Utterances: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("got %+v want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeResponseRejectsGarbage(t *testing.T) {
	if _, err := deepgram.DecodeResponse(strings.NewReader("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}
