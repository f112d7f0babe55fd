// Package pipeline contains the per-item execution engine: batch
// windowing, download-transcribe-publish for pending assets, two-phase
// archival for completed ones, and orphan replay after a crash.
package pipeline
