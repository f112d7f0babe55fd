package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/wneessen/go-mail"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/stats"
)

func testSnapshot() stats.Snapshot {
	return stats.Snapshot{
		StartTime:       time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		DurationMinutes: 12.5,
		Processed:       10,
		Successful:      9,
		Failed:          1,
		Moved:           9,
		Deleted:         9,
		Errors:          []string{"transcribe a.wav: engine exploded"},
	}
}

func testMailer(t *testing.T) (*Mailer, *[]*mail.Msg) {
	t.Helper()
	m := NewMailer(config.Email{
		Recipients: []string{"ops@example.com"},
		SMTPHost:   "smtp.example.com",
		SMTPPort:   587,
		Username:   "sender@example.com",
		Password:   "secret",
		From:       "sender@example.com",
	}, logging.NewNop())
	var sent []*mail.Msg
	m.send = func(_ context.Context, msg *mail.Msg) error {
		sent = append(sent, msg)
		return nil
	}
	return m, &sent
}

func TestSendRunReport(t *testing.T) {
	m, sent := testMailer(t)
	if err := m.SendRunReport(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("SendRunReport: %v", err)
	}
	if len(*sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(*sent))
	}
	msg := (*sent)[0]
	if got := msg.GetGenHeader(mail.HeaderSubject); len(got) == 0 || !strings.Contains(got[0], "10 processed") {
		t.Fatalf("unexpected subject: %v", got)
	}
}

func TestSendRunReportSkipsEmptyRun(t *testing.T) {
	m, sent := testMailer(t)
	if err := m.SendRunReport(context.Background(), stats.Snapshot{}); err != nil {
		t.Fatalf("SendRunReport: %v", err)
	}
	if len(*sent) != 0 {
		t.Fatal("empty run must not produce a report")
	}
}

func TestNewReturnsNoopWithoutCredentials(t *testing.T) {
	cfg := config.Default()
	svc := New(&cfg, logging.NewNop())
	if svc.Enabled() {
		t.Fatal("expected disabled service without credentials")
	}
	if err := svc.SendRunReport(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("noop send: %v", err)
	}
	if err := svc.SendTest(context.Background()); err != nil {
		t.Fatalf("noop test: %v", err)
	}
}

func TestTextBody(t *testing.T) {
	body := textBody(testSnapshot())
	for _, want := range []string{
		"Processed:  10",
		"Successful: 9",
		"Success rate: 90.0%",
		"engine exploded",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("text body missing %q:\n%s", want, body)
		}
	}
}

func TestTextBodyOmitsRateWhenNothingProcessed(t *testing.T) {
	body := textBody(stats.Snapshot{})
	if strings.Contains(body, "Success rate") {
		t.Fatalf("rate should be omitted for empty runs:\n%s", body)
	}
}

func TestTextBodyTruncatesErrors(t *testing.T) {
	snap := testSnapshot()
	snap.Errors = nil
	for i := 0; i < stats.ReportErrorLimit+4; i++ {
		snap.Errors = append(snap.Errors, "boom")
	}
	body := textBody(snap)
	if !strings.Contains(body, "... and 4 more") {
		t.Fatalf("expected truncation marker:\n%s", body)
	}
}

func TestHTMLBodyRateColors(t *testing.T) {
	tests := []struct {
		successful int
		color      string
	}{
		{10, "#2e7d32"},
		{8, "#f9a825"},
		{3, "#c62828"},
	}
	for _, tt := range tests {
		snap := stats.Snapshot{Processed: 10, Successful: tt.successful}
		body := htmlBody(snap)
		if !strings.Contains(body, tt.color) {
			t.Errorf("rate %d/10: expected color %s in body", tt.successful, tt.color)
		}
	}
}

func TestHTMLBodyEscapesErrorText(t *testing.T) {
	snap := stats.Snapshot{Processed: 1, Failed: 1, Errors: []string{"<script>alert(1)</script>"}}
	body := htmlBody(snap)
	if strings.Contains(body, "<script>") {
		t.Fatal("error text not escaped")
	}
}
