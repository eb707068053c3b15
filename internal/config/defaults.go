package config

const (
	defaultWorkDir              = "~/.cache/hookscript/work"
	defaultLogDir               = "~/.local/share/hookscript/logs"
	defaultLockPath             = "~/.local/share/hookscript/hookscript.lock"
	defaultCommandName          = "format"
	defaultBackend              = BackendDeepgram
	defaultLanguage             = "en"
	defaultDeepgramBaseURL      = "https://api.deepgram.com/v1/listen"
	defaultDeepgramModel        = "nova-3"
	defaultDeepgramTimeout      = 300
	defaultWhisperXModel        = "large-v3"
	defaultYTDLPBinary          = "yt-dlp"
	defaultFFmpegBinary         = "ffmpeg"
	defaultDownloadTimeout      = 300
	defaultMaxConcurrentJobs    = 2
	defaultJobTimeoutSeconds    = 900
	defaultNotifyRequestTimeout = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:  defaultWorkDir,
			LogDir:   defaultLogDir,
			LockPath: defaultLockPath,
		},
		Discord: Discord{
			CommandName: defaultCommandName,
		},
		Transcription: Transcription{
			Backend:  defaultBackend,
			Language: defaultLanguage,
		},
		Deepgram: Deepgram{
			BaseURL:        defaultDeepgramBaseURL,
			Model:          defaultDeepgramModel,
			TimeoutSeconds: defaultDeepgramTimeout,
		},
		WhisperX: WhisperX{
			Model: defaultWhisperXModel,
		},
		Download: Download{
			YTDLPBinary:    defaultYTDLPBinary,
			FFmpegBinary:   defaultFFmpegBinary,
			TimeoutSeconds: defaultDownloadTimeout,
		},
		Script: Script{
			MaxBackendWords:    35,
			MinHookWords:       15,
			HookLabel:          "**HOOK:**",
			BackendLabelPrefix: "**Backend ",
			BackendLabelSuffix: ":**",
			NarrationTemplate:  `NO CAPTIONS ON SCREEN. Make the avatar say: "{text}"`,
		},
		Bot: Bot{
			MaxConcurrentJobs: defaultMaxConcurrentJobs,
			JobTimeoutSeconds: defaultJobTimeoutSeconds,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			ScriptReady:    false,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
