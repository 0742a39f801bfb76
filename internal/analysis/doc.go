// Package analysis computes the KPIs, grouped views and recommendations of a
// sales report from an immutable dataset.
//
// Every aggregator reads the dataset and returns a new read-only view; none
// of them share state, so they can run in any order. Grouping is done once
// per dimension by the generic View type, which preserves first-appearance
// order of keys. All rankings are stable sorts over that order, so ties are
// broken deterministically.
//
// Derived ratios never produce NaN or Inf. A zero denominator yields a Ratio
// whose Err matches errors.ErrUndefined, and optional values such as a
// calendar month with no sales are NullFloat with Valid=false.
//
// Records with an empty grouping cell are grouped under dataset.UnknownKey,
// so every view partitions the full dataset.
package analysis
