package config

const (
	defaultStateDir                = "~/.local/share/scribe"
	defaultStagingDir              = "~/.local/share/scribe/staging"
	defaultLogDir                  = "~/.local/share/scribe/logs"
	defaultRecordingsContainer     = "recordings"
	defaultTranscriptionsContainer = "transcriptions"
	defaultProcessedContainer      = "processed-recordings"
	defaultBatchSize               = 10
	defaultStaleLockMinutes        = 120
	defaultWhisperModel            = "Systran/faster-whisper-large-v3"
	defaultWhisperDevice           = "cuda"
	defaultWhisperComputeType      = "float32"
	defaultWhisperBeamSize         = 5
	defaultWhisperModelDir         = "/opt/whisper_models"
	defaultSMTPHost                = "smtp.gmail.com"
	defaultSMTPPort                = 587
	defaultIntervalMinutes         = 60
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
	defaultLogRetentionDays        = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir:   defaultStateDir,
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
		},
		Storage: Storage{
			RecordingsContainer:     defaultRecordingsContainer,
			TranscriptionsContainer: defaultTranscriptionsContainer,
			ProcessedContainer:      defaultProcessedContainer,
		},
		Processing: Processing{
			BatchSize:        defaultBatchSize,
			StaleLockMinutes: defaultStaleLockMinutes,
		},
		Whisper: Whisper{
			Model:       defaultWhisperModel,
			Device:      defaultWhisperDevice,
			ComputeType: defaultWhisperComputeType,
			BeamSize:    defaultWhisperBeamSize,
			ModelDir:    defaultWhisperModelDir,
		},
		Email: Email{
			SMTPHost: defaultSMTPHost,
			SMTPPort: defaultSMTPPort,
		},
		Scheduler: Scheduler{
			IntervalMinutes: defaultIntervalMinutes,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
