package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/stats"
)

// Mailer delivers run reports over SMTP with a plain-text body and an
// HTML alternative.
type Mailer struct {
	cfg    config.Email
	logger *slog.Logger

	// send is swapped in tests to capture the composed message.
	send func(ctx context.Context, msg *mail.Msg) error
}

func NewMailer(cfg config.Email, logger *slog.Logger) *Mailer {
	m := &Mailer{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "report"),
	}
	m.send = m.dialAndSend
	return m
}

func (m *Mailer) Enabled() bool { return true }

// SendRunReport skips runs that touched nothing; there is no news to
// deliver and a daily empty email trains operators to ignore reports.
func (m *Mailer) SendRunReport(ctx context.Context, snap stats.Snapshot) error {
	if snap.Processed == 0 && snap.Moved == 0 {
		m.logger.Info("nothing processed, skipping run report")
		return nil
	}
	msg, err := m.compose(subject(snap), snap)
	if err != nil {
		return err
	}
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("send run report: %w", err)
	}
	m.logger.Info("run report sent",
		logging.Int("recipients", len(m.cfg.Recipients)),
		logging.Int("processed", snap.Processed))
	return nil
}

// SendTest delivers a report built from synthetic statistics.
func (m *Mailer) SendTest(ctx context.Context) error {
	snap := stats.Snapshot{
		StartTime:       time.Now().Add(-5 * time.Minute),
		DurationMinutes: 5,
		Processed:       3,
		Successful:      2,
		Failed:          1,
		Moved:           2,
		Deleted:         2,
		Errors:          []string{"synthetic test error"},
	}
	msg, err := m.compose("Transcription pipeline test email", snap)
	if err != nil {
		return err
	}
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("send test report: %w", err)
	}
	return nil
}

func (m *Mailer) compose(subj string, snap stats.Snapshot) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("report sender %q: %w", m.cfg.From, err)
	}
	if err := msg.To(m.cfg.Recipients...); err != nil {
		return nil, fmt.Errorf("report recipients: %w", err)
	}
	msg.Subject(subj)
	msg.SetBodyString(mail.TypeTextPlain, textBody(snap))
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody(snap))
	return msg, nil
}

func (m *Mailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	client, err := mail.NewClient(m.cfg.SMTPHost,
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
