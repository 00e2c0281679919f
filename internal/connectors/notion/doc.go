// Package notion writes Drive files into a Notion database.
//
// Each file becomes one page with three properties:
//   - Name: title, the file name
//   - id: rich text, the Drive file ID
//   - url: URL, the file's web view link
//
// The page cover is the file thumbnail, or a fixed default image when Drive
// has none. Writes are spaced by a Throttle to stay under Notion's request
// rate limit.
package notion
