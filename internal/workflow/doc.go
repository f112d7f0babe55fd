// Package workflow orchestrates one reconciliation cycle end to end:
// acquire the run guard, scan the namespace, replay orphans, process
// pending assets in batches, archive the successes and emit the report.
package workflow
