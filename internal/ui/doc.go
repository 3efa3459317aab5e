// Package ui holds the console color themes and heading styles shared by
// the command-line presentation code.
package ui
