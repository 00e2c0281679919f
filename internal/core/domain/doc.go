// Package domain defines the core entities for bookin.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DriveFile: A file listed from the storage provider
//   - DatabaseEntry: A page already present in the target database
//   - SyncRun: One execution of the sync job and its counters
//   - SyncedFile: Ledger row linking a file to the page created for it
//   - Settings: Validated job configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
