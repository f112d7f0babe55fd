package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateEmail(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateBounds()
}

func (c *Config) validateStorage() error {
	if c.Storage.ConnectionString == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/scribe/config.toml"
		}
		return fmt.Errorf("storage.connection_string is required. Set AZURE_STORAGE_CONNECTION_STRING (or .env) or edit %s (create with 'scribe config init')", defaultPath)
	}
	if c.Storage.RecordingsContainer == "" {
		return errors.New("storage.recordings_container must be set")
	}
	if c.Storage.TranscriptionsContainer == "" {
		return errors.New("storage.transcriptions_container must be set")
	}
	if c.Storage.ProcessedContainer == "" {
		return errors.New("storage.processed_container must be set")
	}
	if c.Storage.RecordingsContainer == c.Storage.ProcessedContainer {
		return errors.New("storage.processed_container must differ from storage.recordings_container")
	}
	return nil
}

func (c *Config) validateEmail() error {
	if !c.EmailEnabled() {
		return nil
	}
	if c.Email.SMTPHost == "" {
		return errors.New("email.smtp_host must be set when recipients are configured")
	}
	if c.Email.From == "" {
		return errors.New("email.from must be set when recipients are configured")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// validateBounds applies the struct-tag range checks on numeric knobs.
func (c *Config) validateBounds() error {
	err := structValidator.Struct(c)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("validate config: %w", err)
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		first := fields[0]
		return fmt.Errorf("config field %s fails bound %s=%s",
			strings.ToLower(first.Namespace()), first.Tag(), first.Param())
	}
	return fmt.Errorf("validate config: %w", err)
}
