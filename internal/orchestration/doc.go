// Package orchestration runs one or more Fibonacci calculators concurrently
// and reconciles their results. Presentation is reached only through the
// ProgressReporter, ResultPresenter and ErrorHandler interfaces.
package orchestration
