// Package google provides shared infrastructure for the Google Drive connector.
//
// This package contains:
//   - A static oauth2.TokenSource for a token minted up front
//   - Service factory for the Drive API client
//   - Error mapping for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Drive API quotas
//
// # Usage
//
// The access token comes from the service-account flow and is handed to the
// Drive client as a static token source:
//
//	ts := google.NewStaticTokenSource(accessToken)
//	svc, err := google.NewDriveService(ctx, ts)
//
// # OAuth2 Scopes
//
// The service account requests https://www.googleapis.com/auth/drive by
// default. The files it lists are the ones shared with the service account.
package google
