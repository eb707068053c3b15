package script

import "strings"

// SpeakerID is an opaque speaker tag produced by diarization.
type SpeakerID string

// DefaultSpeaker labels utterances whose transcription carried no speaker tag.
const DefaultSpeaker SpeakerID = "spk"

// Utterance is one speaker-attributed span of transcript text.
type Utterance struct {
	Speaker SpeakerID
	Text    string
}

// Paragraph groups consecutive sentences spoken by the same speaker, as some
// transcription services report them.
type Paragraph struct {
	Speaker   SpeakerID
	Sentences []string
}

// FlattenParagraphs converts paragraphs into utterances, one per paragraph,
// joining each paragraph's sentences with single spaces.
func FlattenParagraphs(paragraphs []Paragraph) []Utterance {
	if len(paragraphs) == 0 {
		return nil
	}
	out := make([]Utterance, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, Utterance{
			Speaker: normalizeSpeaker(p.Speaker),
			Text:    strings.Join(p.Sentences, " "),
		})
	}
	return out
}

func normalizeSpeaker(id SpeakerID) SpeakerID {
	if strings.TrimSpace(string(id)) == "" {
		return DefaultSpeaker
	}
	return id
}
