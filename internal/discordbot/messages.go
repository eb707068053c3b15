package discordbot

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

const (
	// MaxMessageLength is Discord's per-message content limit.
	MaxMessageLength = 2000
	// NoSpeechMessage answers requests whose video had nothing to transcribe.
	NoSpeechMessage = "I couldn't find any speech in that video."

	maxEmbedFieldValue = 1024
	codeFence          = "```"
	colorGreen         = 0x2ecc71
	colorRed           = 0xe74c3c
)

// splitSeparators are tried in order when a piece is too long: script blocks,
// then lines, then words.
var splitSeparators = []string{"\n\n", "\n", " "}

// ScriptMessages wraps text in code blocks that each fit in one message.
// Breaks fall between script blocks where possible so a narration line is
// only cut when it alone exceeds the limit.
func ScriptMessages(text string) []string {
	text = strings.TrimSpace(strings.ReplaceAll(text, codeFence, "'''"))
	if text == "" {
		return nil
	}
	budget := MaxMessageLength - len(codeFence+"\n") - len("\n"+codeFence)
	parts := pack(text, budget, 0)

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, codeFence+"\n"+part+"\n"+codeFence)
	}
	return out
}

func pack(text string, limit, level int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	if level == len(splitSeparators) {
		return splitBytes(text, limit)
	}
	sep := splitSeparators[level]

	var out []string
	var cur string
	has := false
	for _, piece := range strings.Split(text, sep) {
		if has && len(cur)+len(sep)+len(piece) <= limit {
			cur += sep + piece
			continue
		}
		if has {
			out = append(out, cur)
			has = false
		}
		if len(piece) <= limit {
			cur, has = piece, true
			continue
		}
		out = append(out, pack(piece, limit, level+1)...)
	}
	if has {
		out = append(out, cur)
	}
	return out
}

// splitBytes cuts text into pieces of at most limit bytes on rune boundaries.
func splitBytes(text string, limit int) []string {
	var out []string
	for len(text) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			cut = limit
		}
		out = append(out, text[:cut])
		text = text[cut:]
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}

// ScriptEmbed accompanies the first script message.
func ScriptEmbed(sourceURL string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Formatted Script",
		Description: "See the full script below for easy copying.",
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Original URL", Value: truncate(sourceURL, maxEmbedFieldValue), Inline: false},
		},
	}
}

// ErrorEmbed reports a failed request with the error text attached.
func ErrorEmbed(err error) *discordgo.MessageEmbed {
	detail := "unknown error"
	if err != nil {
		detail = err.Error()
	}
	value := fmt.Sprintf("`%s`", truncate(strings.ReplaceAll(detail, "`", "'"), maxEmbedFieldValue-2))
	return &discordgo.MessageEmbed{
		Title:       "An Error Occurred",
		Description: "Sorry, an error occurred while processing the video.\nPlease check the URL and try again.",
		Color:       colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Error Details", Value: value, Inline: false},
		},
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	const ellipsis = "…"
	return splitBytes(s, limit-len(ellipsis))[0] + ellipsis
}
