package script

import (
	"strconv"
	"strings"
)

// TextPlaceholder marks where chunk text goes in a narration template.
const TextPlaceholder = "{text}"

const (
	defaultMaxBackendWords    = 35
	defaultMinHookWords       = 15
	defaultHookLabel          = "**HOOK:**"
	defaultBackendLabelPrefix = "**Backend "
	defaultBackendLabelSuffix = ":**"
	defaultNarrationTemplate  = `NO CAPTIONS ON SCREEN. Make the avatar say: "{text}"`
)

// SegmentConfig controls hook sizing, backend packing, and rendering.
// Zero-valued fields fall back to DefaultSegmentConfig.
type SegmentConfig struct {
	// MaxBackendWords caps the words of a backend chunk built from more than
	// one sentence. A single longer sentence is never split.
	MaxBackendWords int
	// MinHookWords is the length below which the hook absorbs the next sentence.
	// 1 keeps the first sentence as the hook on its own.
	MinHookWords       int
	HookLabel          string
	BackendLabelPrefix string
	BackendLabelSuffix string
	// NarrationTemplate wraps every chunk; TextPlaceholder is replaced by the
	// chunk text.
	NarrationTemplate string
}

// DefaultSegmentConfig returns the reference segmentation settings: 35-word
// backend beats and a 15-word minimum hook.
func DefaultSegmentConfig() SegmentConfig {
	return SegmentConfig{
		MaxBackendWords:    defaultMaxBackendWords,
		MinHookWords:       defaultMinHookWords,
		HookLabel:          defaultHookLabel,
		BackendLabelPrefix: defaultBackendLabelPrefix,
		BackendLabelSuffix: defaultBackendLabelSuffix,
		NarrationTemplate:  defaultNarrationTemplate,
	}
}

func (c SegmentConfig) withDefaults() SegmentConfig {
	def := DefaultSegmentConfig()
	if c.MaxBackendWords <= 0 {
		c.MaxBackendWords = def.MaxBackendWords
	}
	if c.MinHookWords <= 0 {
		c.MinHookWords = def.MinHookWords
	}
	if c.HookLabel == "" {
		c.HookLabel = def.HookLabel
	}
	if c.BackendLabelPrefix == "" && c.BackendLabelSuffix == "" {
		c.BackendLabelPrefix = def.BackendLabelPrefix
		c.BackendLabelSuffix = def.BackendLabelSuffix
	}
	if c.NarrationTemplate == "" {
		c.NarrationTemplate = def.NarrationTemplate
	}
	return c
}

// Script is a segmented transcript: one hook followed by backend chunks.
type Script struct {
	Hook    string
	Backend []string
}

// Segment splits transcript into a hook and backend chunks. ok is false when
// the transcript holds no sentences, which callers treat as "nothing to show".
func Segment(transcript string, cfg SegmentConfig) (Script, bool) {
	cfg = cfg.withDefaults()

	sentences := SplitSentences(transcript)
	if len(sentences) == 0 || sentences[0] == "" {
		return Script{}, false
	}

	hook := sentences[0]
	rest := sentences[1:]
	if WordCount(hook) < cfg.MinHookWords && len(rest) > 0 {
		hook += " " + rest[0]
		rest = rest[1:]
	}

	var (
		chunks  []string
		current []string
		words   int
	)
	for _, s := range rest {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		n := WordCount(s)
		if len(current) > 0 && words+n > cfg.MaxBackendWords {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{s}
			words = n
			continue
		}
		current = append(current, s)
		words += n
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return Script{Hook: strings.TrimSpace(hook), Backend: chunks}, true
}

// Render formats the script with the labels and narration template in cfg.
// Every block, including the last, ends with a blank line. Backend indices
// start at 1 and skip no numbers.
func (s Script) Render(cfg SegmentConfig) string {
	cfg = cfg.withDefaults()
	if s.Hook == "" && len(s.Backend) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(cfg.HookLabel)
	b.WriteByte('\n')
	b.WriteString(narrate(cfg.NarrationTemplate, s.Hook))
	b.WriteString("\n\n")

	for i, chunk := range s.Chunks() {
		b.WriteString(cfg.BackendLabelPrefix)
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(cfg.BackendLabelSuffix)
		b.WriteByte('\n')
		b.WriteString(narrate(cfg.NarrationTemplate, chunk))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Chunks returns the non-empty backend chunks, trimmed, in render order.
// Backend label n belongs to Chunks()[n-1].
func (s Script) Chunks() []string {
	out := make([]string, 0, len(s.Backend))
	for _, chunk := range s.Backend {
		if chunk = strings.TrimSpace(chunk); chunk != "" {
			out = append(out, chunk)
		}
	}
	return out
}

// Format segments and renders transcript in one step. It returns "" for empty
// or whitespace-only input.
func Format(transcript string, cfg SegmentConfig) string {
	s, ok := Segment(transcript, cfg)
	if !ok {
		return ""
	}
	return s.Render(cfg)
}

func narrate(template, text string) string {
	return strings.ReplaceAll(template, TextPlaceholder, strings.TrimSpace(text))
}
