package script

import (
	"errors"
	"strings"
)

// ErrNoSpeechDetected reports that a transcript carried no utterances to
// resolve a speaker from.
var ErrNoSpeechDetected = errors.New("no speech detected")

// Tally holds per-speaker word counts in first-appearance order.
type Tally struct {
	order  []SpeakerID
	counts map[SpeakerID]int
}

// NewTally counts words per speaker across utterances in a single ordered pass.
// An utterance with empty text still registers its speaker with zero words.
func NewTally(utterances []Utterance) Tally {
	t := Tally{counts: make(map[SpeakerID]int, 4)}
	for _, u := range utterances {
		spk := normalizeSpeaker(u.Speaker)
		if _, ok := t.counts[spk]; !ok {
			t.order = append(t.order, spk)
		}
		t.counts[spk] += WordCount(u.Text)
	}
	return t
}

// Len reports the number of distinct speakers.
func (t Tally) Len() int { return len(t.order) }

// Speakers returns speaker tags in first-appearance order.
func (t Tally) Speakers() []SpeakerID {
	out := make([]SpeakerID, len(t.order))
	copy(out, t.order)
	return out
}

// Count returns the word count recorded for speaker.
func (t Tally) Count(speaker SpeakerID) int { return t.counts[speaker] }

// Total returns the sum of all speaker counts.
func (t Tally) Total() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Dominant returns the speaker with the highest count. Ties go to the speaker
// that appeared first. ok is false when the tally is empty.
func (t Tally) Dominant() (speaker SpeakerID, ok bool) {
	best := -1
	for _, spk := range t.order {
		if n := t.counts[spk]; n > best {
			best = n
			speaker = spk
		}
	}
	return speaker, best >= 0
}

// Resolution describes the outcome of dominant speaker selection.
type Resolution struct {
	Speaker    SpeakerID
	Tally      Tally
	Transcript string
}

// ResolveMainSpeaker returns the dominant speaker's words joined in original
// order. It fails with ErrNoSpeechDetected when utterances is empty.
func ResolveMainSpeaker(utterances []Utterance) (string, error) {
	res, err := ResolveMainSpeakerDetail(utterances)
	if err != nil {
		return "", err
	}
	return res.Transcript, nil
}

// ResolveMainSpeakerDetail is ResolveMainSpeaker with the selected speaker and
// tally attached.
func ResolveMainSpeakerDetail(utterances []Utterance) (Resolution, error) {
	tally := NewTally(utterances)
	speaker, ok := tally.Dominant()
	if !ok {
		return Resolution{}, ErrNoSpeechDetected
	}

	parts := make([]string, 0, len(utterances))
	for _, u := range utterances {
		if normalizeSpeaker(u.Speaker) == speaker {
			parts = append(parts, u.Text)
		}
	}
	return Resolution{
		Speaker:    speaker,
		Tally:      tally,
		Transcript: strings.TrimSpace(strings.Join(parts, " ")),
	}, nil
}
