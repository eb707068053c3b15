package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDiscord()
	if err := c.normalizeTranscription(); err != nil {
		return err
	}
	c.normalizeDeepgram()
	c.normalizeWhisperX()
	c.normalizeDownload()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockPath) == "" {
		c.Paths.LockPath = defaultLockPath
	}
	if c.Paths.LockPath, err = expandPath(c.Paths.LockPath); err != nil {
		return fmt.Errorf("paths.lock_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeDiscord() {
	c.Discord.Token = strings.TrimSpace(c.Discord.Token)
	if c.Discord.Token == "" {
		if value, ok := os.LookupEnv("DISCORD_BOT_TOKEN"); ok {
			c.Discord.Token = strings.TrimSpace(value)
		}
	}
	c.Discord.ApplicationID = strings.TrimSpace(c.Discord.ApplicationID)
	if c.Discord.ApplicationID == "" {
		if value, ok := os.LookupEnv("DISCORD_APPLICATION_ID"); ok {
			c.Discord.ApplicationID = strings.TrimSpace(value)
		}
	}
	c.Discord.GuildID = strings.TrimSpace(c.Discord.GuildID)
	c.Discord.CommandName = strings.ToLower(strings.TrimSpace(c.Discord.CommandName))
	if c.Discord.CommandName == "" {
		c.Discord.CommandName = defaultCommandName
	}
}

func (c *Config) normalizeTranscription() error {
	c.Transcription.Backend = strings.ToLower(strings.TrimSpace(c.Transcription.Backend))
	if c.Transcription.Backend == "" {
		c.Transcription.Backend = defaultBackend
	}
	lang := strings.TrimSpace(c.Transcription.Language)
	if lang == "" {
		lang = defaultLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("transcription.language: %w", err)
	}
	c.Transcription.Language = tag.String()
	return nil
}

func (c *Config) normalizeDeepgram() {
	c.Deepgram.APIKey = strings.TrimSpace(c.Deepgram.APIKey)
	if c.Deepgram.APIKey == "" {
		if value, ok := os.LookupEnv("DEEPGRAM_API_KEY"); ok {
			c.Deepgram.APIKey = strings.TrimSpace(value)
		}
	}
	c.Deepgram.BaseURL = strings.TrimSpace(c.Deepgram.BaseURL)
	if c.Deepgram.BaseURL == "" {
		c.Deepgram.BaseURL = defaultDeepgramBaseURL
	}
	c.Deepgram.Model = strings.TrimSpace(c.Deepgram.Model)
	if c.Deepgram.Model == "" {
		c.Deepgram.Model = defaultDeepgramModel
	}
	if c.Deepgram.TimeoutSeconds <= 0 {
		c.Deepgram.TimeoutSeconds = defaultDeepgramTimeout
	}
}

func (c *Config) normalizeWhisperX() {
	c.WhisperX.Model = strings.TrimSpace(c.WhisperX.Model)
	if c.WhisperX.Model == "" {
		c.WhisperX.Model = defaultWhisperXModel
	}
	c.WhisperX.HFToken = strings.TrimSpace(c.WhisperX.HFToken)
	if c.WhisperX.HFToken == "" {
		if value, ok := os.LookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			c.WhisperX.HFToken = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.WhisperX.HFToken = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeDownload() {
	c.Download.YTDLPBinary = strings.TrimSpace(c.Download.YTDLPBinary)
	if c.Download.YTDLPBinary == "" {
		c.Download.YTDLPBinary = defaultYTDLPBinary
	}
	c.Download.FFmpegBinary = strings.TrimSpace(c.Download.FFmpegBinary)
	if c.Download.FFmpegBinary == "" {
		c.Download.FFmpegBinary = defaultFFmpegBinary
	}
	if c.Download.TimeoutSeconds <= 0 {
		c.Download.TimeoutSeconds = defaultDownloadTimeout
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// LanguageBase returns the ISO 639 base language of the configured
// transcription language (e.g. "en" for "en-US").
func (c *Config) LanguageBase() string {
	tag, err := language.Parse(c.Transcription.Language)
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	return base.String()
}
