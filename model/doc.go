// Package model defines the value types shared across the rollscan pipeline.
//
// All extraction, matching, and aggregation operations ultimately produce
// these types, making them the primary API for consuming batch output:
//
//   - [VoterInfo] - one voter record recovered from a recognized page
//   - [SearchResult] - a query/record pair whose similarity cleared the threshold
//   - [ProcessingStats] - counters and error records for a completed batch
//
// Values are plain data. Nothing in this package performs I/O, and none of
// the types carry behavior beyond formatting helpers, so they are safe to
// serialize, compare, and pass across package boundaries.
package model
