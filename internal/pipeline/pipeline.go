package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"hookscript/internal/logging"
	"hookscript/internal/script"
	"hookscript/internal/services"
)

// Result is the outcome of one successful run.
type Result struct {
	RequestID  string
	URL        string
	Speaker    script.SpeakerID
	Tally      script.Tally
	Transcript string
	Script     script.Script
	// Text is the rendered script. It is empty when the dominant speaker's
	// transcript held no sentences.
	Text     string
	Duration time.Duration
}

// Empty reports whether there is nothing to show for this run.
func (r Result) Empty() bool {
	return strings.TrimSpace(r.Text) == ""
}

// Pipeline resolves and formats the utterances a Source returns.
type Pipeline struct {
	source  Source
	segment script.SegmentConfig
	logger  *slog.Logger
	newID   func() string
}

// New constructs a Pipeline.
func New(source Source, segment script.SegmentConfig, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		source:  source,
		segment: segment,
		logger:  logging.NewComponentLogger(logger, "pipeline"),
		newID:   uuid.NewString,
	}
}

// Run fetches utterances for url and renders the dominant speaker's script.
// A request ID already present on ctx is reused; otherwise one is minted.
// Errors wrap script.ErrNoSpeechDetected when the video had no speech.
func (p *Pipeline) Run(ctx context.Context, url string) (Result, error) {
	url = strings.TrimSpace(url)
	requestID, ok := services.RequestIDFromContext(ctx)
	if !ok {
		requestID = p.newID()
		ctx = services.WithRequestID(ctx, requestID)
	}
	ctx = services.WithSourceURL(ctx, url)
	logger := logging.WithContext(ctx, p.logger)

	result := Result{RequestID: requestID, URL: url}
	if url == "" {
		return result, services.Wrap(services.ErrValidation, "pipeline", "run", "url required", nil)
	}

	start := time.Now()
	logger.Info("format request started")

	utterances, err := p.source.Fetch(ctx, url)
	if err != nil {
		logger.Warn("fetch failed", logging.Error(err))
		return result, err
	}

	resolution, err := script.ResolveMainSpeakerDetail(utterances)
	if err != nil {
		logger.Info("no speech detected", logging.Int("utterances", len(utterances)))
		return result, err
	}
	result.Speaker = resolution.Speaker
	result.Tally = resolution.Tally
	result.Transcript = resolution.Transcript

	formatted, ok := script.Segment(resolution.Transcript, p.segment)
	if ok {
		result.Script = formatted
		result.Text = formatted.Render(p.segment)
	}
	result.Duration = time.Since(start)

	logger.Info("format request completed",
		logging.String("speaker", string(result.Speaker)),
		logging.Int("speakers", resolution.Tally.Len()),
		logging.Int("words", script.WordCount(result.Transcript)),
		logging.Int("backend_segments", len(formatted.Chunks())),
		logging.Duration("elapsed", result.Duration),
	)
	return result, nil
}
