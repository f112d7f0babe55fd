package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStorage()
	c.normalizeEmail()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return err
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Whisper.ModelDir, err = expandPath(c.Whisper.ModelDir); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeStorage() {
	c.Storage.ConnectionString = strings.TrimSpace(c.Storage.ConnectionString)
	if c.Storage.ConnectionString == "" {
		c.Storage.ConnectionString = strings.TrimSpace(os.Getenv("AZURE_STORAGE_CONNECTION_STRING"))
	}
	c.Storage.RecordingsContainer = strings.TrimSpace(c.Storage.RecordingsContainer)
	c.Storage.TranscriptionsContainer = strings.TrimSpace(c.Storage.TranscriptionsContainer)
	c.Storage.ProcessedContainer = strings.TrimSpace(c.Storage.ProcessedContainer)
}

func (c *Config) normalizeEmail() {
	c.Email.SMTPHost = strings.TrimSpace(c.Email.SMTPHost)
	c.Email.Username = strings.TrimSpace(c.Email.Username)
	if c.Email.Username == "" {
		c.Email.Username = strings.TrimSpace(os.Getenv("SMTP_USERNAME"))
	}
	c.Email.Password = strings.TrimSpace(c.Email.Password)
	if c.Email.Password == "" {
		c.Email.Password = strings.TrimSpace(os.Getenv("SMTP_PASSWORD"))
	}
	c.Email.From = strings.TrimSpace(c.Email.From)
	if c.Email.From == "" {
		c.Email.From = c.Email.Username
	}

	recipients := c.Email.Recipients[:0]
	for _, recipient := range c.Email.Recipients {
		if trimmed := strings.TrimSpace(recipient); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	c.Email.Recipients = recipients
	if len(c.Email.Recipients) == 0 {
		if raw := strings.TrimSpace(os.Getenv("EMAIL_RECIPIENTS")); raw != "" {
			for _, recipient := range strings.Split(raw, ",") {
				if trimmed := strings.TrimSpace(recipient); trimmed != "" {
					c.Email.Recipients = append(c.Email.Recipients, trimmed)
				}
			}
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
