// Package script turns diarized transcripts into narration scripts.
//
// Two pure stages live here. The speaker resolver tallies words per speaker
// tag, picks the dominant speaker (earliest speaker wins a tie), and joins that
// speaker's utterances into one transcript. The segmenter splits a transcript
// into sentences, carves out a hook, greedily packs the remaining sentences
// into word-bounded backend chunks, and renders the labeled narration block.
//
// Nothing in this package performs I/O or keeps state between calls, so the
// functions are safe to call concurrently from any goroutine.
package script
