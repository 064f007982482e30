// Package main provides the entry point for the resultcheck CLI.
//
// resultcheck compares the result files written by alternate computation
// variants against the sequential reference result, ignoring whitespace.
//
// Usage:
//
//	resultcheck
//	resultcheck --dir out/run1 --strict
//
// See --help for all available options.
package main

// main is the entry point for resultcheck.
func main() {
	Execute()
}
