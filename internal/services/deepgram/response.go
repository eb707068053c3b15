package deepgram

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hookscript/internal/script"
	"hookscript/internal/services"
)

// Response is the subset of a prerecorded transcription response we read.
type Response struct {
	Metadata struct {
		RequestID string  `json:"request_id"`
		Duration  float64 `json:"duration"`
	} `json:"metadata"`
	Results *Results `json:"results"`
}

// Results holds per-channel transcription alternatives.
type Results struct {
	Channels []Channel `json:"channels"`
}

// Channel is one audio channel.
type Channel struct {
	Alternatives []Alternative `json:"alternatives"`
}

// Alternative is one transcription hypothesis.
type Alternative struct {
	Transcript string      `json:"transcript"`
	Confidence float64     `json:"confidence"`
	Paragraphs *Paragraphs `json:"paragraphs"`
}

// Paragraphs groups sentences by speaker turn.
type Paragraphs struct {
	Transcript string      `json:"transcript"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Paragraph is a speaker turn. Speaker is absent when diarization is off.
type Paragraph struct {
	Speaker   *int       `json:"speaker"`
	NumWords  int        `json:"num_words"`
	Sentences []Sentence `json:"sentences"`
}

// Sentence is one sentence of a paragraph.
type Sentence struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// DecodeResponse parses a JSON response body.
func DecodeResponse(r io.Reader) (*Response, error) {
	var resp Response
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("deepgram decode: %w", err)
	}
	return &resp, nil
}

// Utterances flattens the first alternative into speaker-tagged utterances,
// one per paragraph. Without paragraphs the whole transcript becomes a single
// utterance from script.DefaultSpeaker. A response carrying no text at all
// reports script.ErrNoSpeechDetected.
func (r *Response) Utterances() ([]script.Utterance, error) {
	if r == nil || r.Results == nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "deepgram", "no results in response", nil)
	}
	if len(r.Results.Channels) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "deepgram", "no channels in results", nil)
	}
	alts := r.Results.Channels[0].Alternatives
	if len(alts) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "deepgram", "no alternatives in channel", nil)
	}
	alt := alts[0]

	if alt.Paragraphs == nil || len(alt.Paragraphs.Paragraphs) == 0 {
		transcript := strings.TrimSpace(alt.Transcript)
		if transcript == "" {
			return nil, services.Wrap(script.ErrNoSpeechDetected, "transcribe", "deepgram", "empty transcript", nil)
		}
		return []script.Utterance{{Speaker: script.DefaultSpeaker, Text: transcript}}, nil
	}

	paragraphs := make([]script.Paragraph, 0, len(alt.Paragraphs.Paragraphs))
	for _, p := range alt.Paragraphs.Paragraphs {
		sentences := make([]string, 0, len(p.Sentences))
		for _, s := range p.Sentences {
			sentences = append(sentences, s.Text)
		}
		paragraphs = append(paragraphs, script.Paragraph{
			Speaker:   speakerID(p.Speaker),
			Sentences: sentences,
		})
	}
	return script.FlattenParagraphs(paragraphs), nil
}

func speakerID(speaker *int) script.SpeakerID {
	if speaker == nil {
		return script.DefaultSpeaker
	}
	return script.SpeakerID(strconv.Itoa(*speaker))
}
