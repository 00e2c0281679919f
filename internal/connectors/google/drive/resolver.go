package drive

import "github.com/wim-web/bookin/internal/core/domain"

// ResolveWebURL returns the link stored on a database entry for file.
// Prefers the web view link from the API, then falls back to the canonical
// file URL built from the ID.
func ResolveWebURL(file domain.DriveFile) string {
	if file.WebViewLink != "" {
		return file.WebViewLink
	}

	if file.ID != "" {
		return "https://drive.google.com/file/d/" + file.ID + "/view"
	}

	return ""
}
