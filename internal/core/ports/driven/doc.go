// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TokenProvider: Mints or returns bearer tokens (service account, static secret)
//   - FileListerFactory / FileLister: Lists modified files from cloud storage
//   - EntryStore: Reads the latest entry and creates entries in the target database
//   - Throttle: Fixed-interval pacing between downstream writes
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - RunStore: Run history and synced-file ledger. Without it, runs are not
//     recorded and already-synced files are not skipped.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
