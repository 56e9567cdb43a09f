package config

const (
	defaultConfigFile = "~/.config/dashcap/config.toml"

	defaultLogDir      = "~/.local/share/dashcap/logs"
	defaultHistoryPath = "~/.local/share/dashcap/history.db"

	defaultSourceUnit  = "mph"
	defaultDisplayUnit = "mph"

	defaultTrailingSeconds = 1.0
	defaultMinCueSeconds   = 0.1

	defaultFFmpegBinary         = "ffmpeg"
	defaultFFprobeBinary        = "ffprobe"
	defaultTranscodeTimeoutSecs = 1800
	defaultWatchSettleSeconds   = 5

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns the built-in configuration used before any file or
// environment overrides are applied.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: "",
			LogDir:    defaultLogDir,
		},
		Speed: Speed{
			SourceUnit:  defaultSourceUnit,
			DisplayUnit: defaultDisplayUnit,
		},
		Captions: Captions{
			IncludeTime:     true,
			TrailingSeconds: defaultTrailingSeconds,
			MinCueSeconds:   defaultMinCueSeconds,
		},
		Transcode: Transcode{
			FFmpegBinary:   defaultFFmpegBinary,
			FFprobeBinary:  defaultFFprobeBinary,
			TimeoutSeconds: defaultTranscodeTimeoutSecs,
			BurnDefault:    false,
		},
		History: History{
			Enabled: false,
			Path:    defaultHistoryPath,
		},
		Watch: Watch{
			SettleSeconds: defaultWatchSettleSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
