package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"hookscript/internal/script"
)

//go:embed sample_config.toml
var sampleConfig string

// Transcription backend identifiers.
const (
	BackendDeepgram = "deepgram"
	BackendWhisperX = "whisperx"
)

// Paths contains working, log, and lock file locations.
type Paths struct {
	WorkDir  string `toml:"work_dir"`
	LogDir   string `toml:"log_dir"`
	LockPath string `toml:"lock_path"`
}

// Discord contains bot credentials and slash command registration settings.
type Discord struct {
	Token         string `toml:"token"`
	ApplicationID string `toml:"application_id"`
	GuildID       string `toml:"guild_id"`
	CommandName   string `toml:"command_name"`
}

// Transcription selects the speech-to-text backend.
type Transcription struct {
	Backend  string `toml:"backend"`
	Language string `toml:"language"`
}

// Deepgram contains configuration for the Deepgram prerecorded API.
type Deepgram struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// WhisperX contains configuration for local WhisperX transcription.
type WhisperX struct {
	Model       string `toml:"model"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
	HFToken     string `toml:"hf_token"`
}

// Download contains configuration for audio acquisition via yt-dlp.
type Download struct {
	YTDLPBinary    string `toml:"ytdlp_binary"`
	FFmpegBinary   string `toml:"ffmpeg_binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Script contains the narration script formatting rules.
type Script struct {
	MaxBackendWords    int    `toml:"max_backend_words"`
	MinHookWords       int    `toml:"min_hook_words"`
	HookLabel          string `toml:"hook_label"`
	BackendLabelPrefix string `toml:"backend_label_prefix"`
	BackendLabelSuffix string `toml:"backend_label_suffix"`
	NarrationTemplate  string `toml:"narration_template"`
}

// Bot contains runtime limits for the chat bot.
type Bot struct {
	MaxConcurrentJobs int `toml:"max_concurrent_jobs"`
	JobTimeoutSeconds int `toml:"job_timeout_seconds"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	ScriptReady    bool   `toml:"script_ready"`
	Errors         bool   `toml:"errors"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for hookscript.
//
// Configuration sections by subsystem:
//   - Paths: working directory for downloads, log and lock locations
//   - Discord: bot token and slash command registration
//   - Transcription: backend selection and spoken language
//   - Deepgram / WhisperX: backend-specific settings
//   - Download: yt-dlp and ffmpeg binaries
//   - Script: hook and backend chunk formatting
//   - Bot: concurrency and per-request timeouts
//   - Notifications: ntfy operator alerts
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Discord       Discord       `toml:"discord"`
	Transcription Transcription `toml:"transcription"`
	Deepgram      Deepgram      `toml:"deepgram"`
	WhisperX      WhisperX      `toml:"whisperx"`
	Download      Download      `toml:"download"`
	Script        Script        `toml:"script"`
	Bot           Bot           `toml:"bot"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/hookscript/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("hookscript.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the working and log directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.WorkDir, c.Paths.LogDir}
	if c.Paths.LockPath != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.LockPath))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SegmentConfig converts the [script] section into segmentation settings.
func (c *Config) SegmentConfig() script.SegmentConfig {
	return script.SegmentConfig{
		MaxBackendWords:    c.Script.MaxBackendWords,
		MinHookWords:       c.Script.MinHookWords,
		HookLabel:          c.Script.HookLabel,
		BackendLabelPrefix: c.Script.BackendLabelPrefix,
		BackendLabelSuffix: c.Script.BackendLabelSuffix,
		NarrationTemplate:  c.Script.NarrationTemplate,
	}
}

// DeepgramTimeout returns the HTTP timeout for transcription requests.
func (c *Config) DeepgramTimeout() time.Duration {
	return time.Duration(c.Deepgram.TimeoutSeconds) * time.Second
}

// DownloadTimeout returns the time budget for a single audio download.
func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.Download.TimeoutSeconds) * time.Second
}

// JobTimeout returns the time budget for one chat request end to end.
func (c *Config) JobTimeout() time.Duration {
	return time.Duration(c.Bot.JobTimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
