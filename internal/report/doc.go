// Package report emails the per-run summary to operators. Delivery is
// best effort and never fails a run; when SMTP is not configured the
// service degrades to a logging no-op.
package report
