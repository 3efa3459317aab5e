// Package fibonacci computes terms of the Fibonacci recurrence
// F(0)=0, F(1)=1, F(n)=F(n-1)+F(n-2).
//
// Compute and ComputeUint64 are the pure entry points. The Calculator
// interface wraps an algorithm with cancellation and progress reporting so
// that several algorithms can be run side by side and cross-checked.
package fibonacci
