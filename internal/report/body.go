package report

import (
	"fmt"
	"html"
	"strings"
	"time"

	"scribe/internal/stats"
)

// rateColor maps a success rate to the accent color used in the HTML
// report: green for healthy runs, amber for degraded, red otherwise.
func rateColor(rate float64) string {
	switch {
	case rate >= 90:
		return "#2e7d32"
	case rate >= 70:
		return "#f9a825"
	default:
		return "#c62828"
	}
}

func subject(snap stats.Snapshot) string {
	if snap.Failed > 0 {
		return fmt.Sprintf("Transcription run: %d processed, %d failed", snap.Processed, snap.Failed)
	}
	return fmt.Sprintf("Transcription run: %d processed", snap.Processed)
}

func textBody(snap stats.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Transcription Run Report\n")
	fmt.Fprintf(&b, "========================\n\n")
	fmt.Fprintf(&b, "Started:   %s\n", snap.StartTime.UTC().Format(time.RFC1123))
	fmt.Fprintf(&b, "Duration:  %.1f minutes\n\n", snap.DurationMinutes)
	fmt.Fprintf(&b, "Processed:  %d\n", snap.Processed)
	fmt.Fprintf(&b, "Successful: %d\n", snap.Successful)
	fmt.Fprintf(&b, "Failed:     %d\n", snap.Failed)
	fmt.Fprintf(&b, "Archived:   %d\n", snap.Moved)
	fmt.Fprintf(&b, "Deleted:    %d\n", snap.Deleted)
	if rate, ok := snap.SuccessRate(); ok {
		fmt.Fprintf(&b, "Success rate: %.1f%%\n", rate)
	}

	if errors, omitted := snap.TruncatedErrors(); len(errors) > 0 {
		fmt.Fprintf(&b, "\nErrors:\n")
		for _, msg := range errors {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
		if omitted > 0 {
			fmt.Fprintf(&b, "  ... and %d more\n", omitted)
		}
	}
	return b.String()
}

func htmlBody(snap stats.Snapshot) string {
	var b strings.Builder
	b.WriteString(`<html><body style="font-family: sans-serif;">`)
	b.WriteString("<h2>Transcription Run Report</h2>")
	fmt.Fprintf(&b, "<p>Started %s, ran for %.1f minutes.</p>",
		html.EscapeString(snap.StartTime.UTC().Format(time.RFC1123)), snap.DurationMinutes)

	b.WriteString(`<table cellpadding="4">`)
	row := func(label string, value int) {
		fmt.Fprintf(&b, "<tr><td>%s</td><td><b>%d</b></td></tr>", label, value)
	}
	row("Processed", snap.Processed)
	row("Successful", snap.Successful)
	row("Failed", snap.Failed)
	row("Archived", snap.Moved)
	row("Deleted", snap.Deleted)
	if rate, ok := snap.SuccessRate(); ok {
		fmt.Fprintf(&b, `<tr><td>Success rate</td><td><b style="color: %s;">%.1f%%</b></td></tr>`,
			rateColor(rate), rate)
	}
	b.WriteString("</table>")

	if errors, omitted := snap.TruncatedErrors(); len(errors) > 0 {
		b.WriteString("<h3>Errors</h3><ul>")
		for _, msg := range errors {
			fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(msg))
		}
		if omitted > 0 {
			fmt.Fprintf(&b, "<li>... and %d more</li>", omitted)
		}
		b.WriteString("</ul>")
	}
	b.WriteString("</body></html>")
	return b.String()
}
