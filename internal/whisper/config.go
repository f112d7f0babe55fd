package whisper

// Config captures runtime settings for the transcription subprocess.
type Config struct {
	// Model is the faster-whisper model identifier.
	Model string
	// Device selects the compute device ("cuda" or "cpu").
	Device string
	// ComputeType is the ctranslate2 compute type (e.g. "float32").
	ComputeType string
	// BeamSize is the decoding beam width.
	BeamSize int
	// ModelDir is the local directory holding pre-downloaded models.
	ModelDir string
}

// Defaults applied when Config fields are empty.
const (
	DefaultModel       = "Systran/faster-whisper-large-v3"
	DefaultDevice      = "cuda"
	DefaultComputeType = "float32"
	DefaultBeamSize    = 5

	// VAD settings mirror the engine's recommended silence filtering.
	VADMinSilenceMS = "500"
)

// Command names for external tools.
const (
	UVXCommand = "uvx"
	CLIName    = "whisper-ctranslate2"
)
