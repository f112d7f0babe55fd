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

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains local directory configuration.
type Paths struct {
	StateDir   string `toml:"state_dir"`
	StagingDir string `toml:"staging_dir"`
	LogDir     string `toml:"log_dir"`
}

// Storage contains blob storage connection settings and the three
// namespaces the pipeline reconciles.
type Storage struct {
	ConnectionString        string `toml:"connection_string"`
	RecordingsContainer     string `toml:"recordings_container"`
	TranscriptionsContainer string `toml:"transcriptions_container"`
	ProcessedContainer      string `toml:"processed_container"`
}

// Processing contains batch execution knobs.
type Processing struct {
	BatchSize        int `toml:"batch_size" validate:"gte=1,lte=1000"`
	StaleLockMinutes int `toml:"stale_lock_minutes" validate:"gte=1"`
}

// Whisper contains settings for the transcription engine subprocess.
type Whisper struct {
	Model       string `toml:"model"`
	Device      string `toml:"device"`
	ComputeType string `toml:"compute_type"`
	BeamSize    int    `toml:"beam_size" validate:"gte=1,lte=20"`
	ModelDir    string `toml:"model_dir"`
}

// Email contains SMTP settings for run reports. Reports are disabled when
// recipients or credentials are missing.
type Email struct {
	Recipients []string `toml:"recipients"`
	SMTPHost   string   `toml:"smtp_host"`
	SMTPPort   int      `toml:"smtp_port" validate:"gte=0,lte=65535"`
	Username   string   `toml:"username"`
	Password   string   `toml:"password"`
	From       string   `toml:"from"`
}

// Scheduler contains recurring execution settings for the start command.
type Scheduler struct {
	IntervalMinutes int `toml:"interval_minutes" validate:"gte=1"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days" validate:"gte=0"`
}

// Config encapsulates all configuration values for scribe.
//
// Configuration sections by subsystem:
//   - Paths: state, staging, and log directories
//   - Storage: blob storage connection and container names
//   - Processing: batch size and run-guard staleness window
//   - Whisper: transcription subprocess settings
//   - Email: SMTP report delivery
//   - Scheduler: recurring run interval
//   - Logging: log format, level, and retention
type Config struct {
	Paths      Paths      `toml:"paths"`
	Storage    Storage    `toml:"storage"`
	Processing Processing `toml:"processing"`
	Whisper    Whisper    `toml:"whisper"`
	Email      Email      `toml:"email"`
	Scheduler  Scheduler  `toml:"scheduler"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/scribe/config.toml")
}

// Load locates, parses, and validates a configuration file. A .env file in
// the working directory is applied to the environment first so secrets can
// live outside the TOML file. The returned config has all path fields
// expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	// A missing .env is the common case, not an error.
	_ = godotenv.Load()

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

	projectPath, err := filepath.Abs("scribe.toml")
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

// EnsureDirectories creates the local directories a run needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.StagingDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RunStatePath returns the path of the persisted run record.
func (c *Config) RunStatePath() string {
	return filepath.Join(c.Paths.StateDir, "run_state.json")
}

// RunLockPath returns the path of the sidecar lock that serializes access
// to the run record.
func (c *Config) RunLockPath() string {
	return filepath.Join(c.Paths.StateDir, "run_state.lock")
}

// StaleLockWindow returns the age past which an active run record is
// presumed crashed.
func (c *Config) StaleLockWindow() time.Duration {
	return time.Duration(c.Processing.StaleLockMinutes) * time.Minute
}

// Interval returns the scheduler run interval.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Scheduler.IntervalMinutes) * time.Minute
}

// EmailEnabled reports whether report delivery is fully configured.
func (c *Config) EmailEnabled() bool {
	return len(c.Email.Recipients) > 0 &&
		strings.TrimSpace(c.Email.Username) != "" &&
		strings.TrimSpace(c.Email.Password) != ""
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
