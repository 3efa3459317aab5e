// Package app wires configuration, calculators, presentation, logging and
// metrics into the fibseq command.
package app
