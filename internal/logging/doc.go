// Package logging provides the structured logging interface used across
// fibseq. Components depend on Logger; the zerolog adapter is the production
// backend and the standard-library adapter serves tests and embedders that
// already own a *log.Logger.
package logging
