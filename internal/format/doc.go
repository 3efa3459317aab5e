// Package format holds pure string formatting helpers for durations and
// large numbers.
package format
