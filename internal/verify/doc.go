// Package verify checks candidate result files against a reference result.
//
// A Verifier runs a fixed, ordered list of model.ComparisonCase values. Each
// case is normalized and compared independently and ends in exactly one
// outcome:
//
//	PASS   normalized contents are identical
//	FAIL   contents differ; the first 50 characters of each side are kept
//	ERROR  a file could not be read; the error text is kept
//
// Errors never leave the batch loop. Run always returns one result per case,
// in case order, even when cases run concurrently or the context is cancelled.
package verify
