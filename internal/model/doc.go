// Package model defines the data passed between the verifier, the report
// writers and the history store.
//
// This package contains the following main types:
//   - ComparisonCase: one (label, reference, candidate) triple
//   - Outcome: PASS, FAIL or ERROR
//   - CaseResult: the outcome of a single case with its diagnostics
//   - VerificationReport: every CaseResult of one pass, in case order
//
// The types are JSON-serializable for report output and database storage.
package model
