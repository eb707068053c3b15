// Package whisperx runs WhisperX locally (through uvx) as a diarizing
// transcription backend.
//
// This package handles:
//   - Converting downloaded audio to the mono 16kHz WAV WhisperX expects
//   - WhisperX invocation with speaker diarization enabled
//   - Mapping WhisperX JSON segments to speaker-tagged utterances
//
// Configuration options (model, CUDA, Hugging Face token) are passed via Config.
package whisperx
