// Package pipeline turns a video URL into a narration script.
//
// A Source fetches speaker-tagged utterances for a URL (download plus
// transcription in production, canned data in tests). Pipeline.Run resolves
// the dominant speaker and formats that speaker's words with the script
// segmenter. Every run carries a request ID for log correlation.
package pipeline
