// Package scanner derives the per-run work set from blob listings. The
// presence or absence of a derived artifact is the only state consulted;
// there is no database or manifest to drift out of sync.
package scanner
