// Package connectors groups the clients for the external services a sync
// run talks to: Google Drive (google, google/drive) as the file source and
// Notion (notion) as the target database.
//
// Connectors translate API responses into domain types and API errors into
// domain sentinels. They hold no sync logic.
package connectors
