package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Credentials are checked
// separately by RequireDiscord and RequireTranscription so offline commands
// work without them.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateScript(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.Backend {
	case BackendDeepgram, BackendWhisperX:
		return nil
	default:
		return fmt.Errorf("transcription.backend: unsupported value %q (want %q or %q)", c.Transcription.Backend, BackendDeepgram, BackendWhisperX)
	}
}

func (c *Config) validateScript() error {
	if c.Script.MaxBackendWords <= 0 {
		return errors.New("script.max_backend_words must be positive")
	}
	if c.Script.MinHookWords <= 0 {
		return errors.New("script.min_hook_words must be positive (1 never extends the hook)")
	}
	if !strings.Contains(c.Script.NarrationTemplate, "{text}") {
		return errors.New("script.narration_template must contain the {text} placeholder")
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	return ensurePositiveMap(map[string]int{
		"bot.max_concurrent_jobs":       c.Bot.MaxConcurrentJobs,
		"bot.job_timeout_seconds":       c.Bot.JobTimeoutSeconds,
		"deepgram.timeout_seconds":      c.Deepgram.TimeoutSeconds,
		"download.timeout_seconds":      c.Download.TimeoutSeconds,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	})
}

// RequireDiscord reports whether the bot credentials are present.
func (c *Config) RequireDiscord() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("discord.token is required. Set DISCORD_BOT_TOKEN or edit %s (create with 'hookscript config init')", displayConfigPath())
	}
	return nil
}

// RequireTranscription reports whether the selected backend has what it needs.
func (c *Config) RequireTranscription() error {
	if c.Transcription.Backend == BackendDeepgram && c.Deepgram.APIKey == "" {
		return fmt.Errorf("deepgram.api_key is required. Set DEEPGRAM_API_KEY or edit %s", displayConfigPath())
	}
	return nil
}

func displayConfigPath() string {
	path, err := DefaultConfigPath()
	if err != nil {
		return "~/.config/hookscript/config.toml"
	}
	return path
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
