package deepgram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hookscript/internal/script"
	"hookscript/internal/services"
)

const (
	defaultBaseURL     = "https://api.deepgram.com/v1/listen"
	defaultModel       = "nova-3"
	defaultHTTPTimeout = 5 * time.Minute
	userAgent          = "hookscript/0.1.0"
)

// Config captures the runtime settings required to talk to Deepgram.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Language string
	Timeout  time.Duration
}

// Client wraps the prerecorded /v1/listen endpoint. It is safe for
// concurrent use and meant to be constructed once per process.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a Deepgram client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	client := &Client{
		cfg: Config{
			APIKey:   strings.TrimSpace(cfg.APIKey),
			BaseURL:  strings.TrimSpace(cfg.BaseURL),
			Model:    strings.TrimSpace(cfg.Model),
			Language: strings.TrimSpace(cfg.Language),
			Timeout:  timeout,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
	}
	return client
}

// Name identifies the backend in logs.
func (c *Client) Name() string { return "deepgram" }

// Transcribe uploads the audio file and returns diarized utterances.
func (c *Client) Transcribe(ctx context.Context, audioPath string) ([]script.Utterance, error) {
	resp, err := c.TranscribeFile(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	return resp.Utterances()
}

// TranscribeFile uploads the audio file and returns the raw response.
func (c *Client) TranscribeFile(ctx context.Context, audioPath string) (*Response, error) {
	if c.cfg.APIKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "deepgram", "api key required", nil)
	}
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "transcribe", "deepgram", "open audio", err)
	}
	defer file.Close()

	endpoint, err := c.endpoint()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "deepgram", "build endpoint", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, file)
	if err != nil {
		return nil, fmt.Errorf("build deepgram request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.cfg.APIKey)
	req.Header.Set("Content-Type", contentType(audioPath))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if info, statErr := file.Stat(); statErr == nil {
		req.ContentLength = info.Size()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		marker := services.ErrTransient
		if errors.Is(err, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return nil, services.Wrap(marker, "transcribe", "deepgram", "request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "deepgram",
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	return DecodeResponse(resp.Body)
}

func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("model", c.cfg.Model)
	q.Set("smart_format", "true")
	q.Set("diarize", "true")
	q.Set("paragraphs", "true")
	if c.cfg.Language != "" {
		q.Set("language", c.cfg.Language)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

var audioTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".opus": "audio/ogg",
	".webm": "audio/webm",
	".flac": "audio/flac",
}

func contentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := audioTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
