// Package deepgram is a minimal client for Deepgram's prerecorded
// transcription API with speaker diarization.
//
// Only the response fields the script pipeline consumes are modeled: the
// first channel's first alternative, its paragraphs (speaker plus sentences),
// and the whole-alternative transcript used when paragraphs are absent.
package deepgram
