// Package runguard prevents overlapping pipeline executions.
//
// A single persisted record at a well-known path is the whole mechanism:
// Acquire refuses while a live record exists, self-heals records older than
// the staleness window (a crashed prior run), and Release stamps the record
// with the run outcome and statistics so the status command can report the
// last execution. Cross-process exclusivity during the read-modify-write
// comes from a gofrs/flock sidecar lock.
package runguard
