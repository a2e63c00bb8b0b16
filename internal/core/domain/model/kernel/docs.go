// Package kernel provides the value objects shared by every aggregate of the
// dispatch domain.
//
// The package includes:
//   - UUID: identifiers for orders, drivers, shops, variants and ledger rows
//   - GeoPoint: a pickup or delivery position with an explicit unknown variant
//
// Both are immutable and safe for concurrent use.
package kernel
