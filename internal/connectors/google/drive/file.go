package drive

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/wim-web/bookin/internal/core/domain"
)

// MimeTypeFolder is the MIME type Drive uses for folders.
const MimeTypeFolder = "application/vnd.google-apps.folder"

// listFields selects only what a database entry needs.
const listFields googleapi.Field = "nextPageToken, files(id, name, mimeType, webViewLink, thumbnailLink, modifiedTime)"

// BuildQuery returns the files.list search filter.
// Folders and trashed files are always excluded. A non-zero since adds a
// strict modifiedTime lower bound; folderIDs are OR-joined as parents.
func BuildQuery(since time.Time, folderIDs []string) string {
	clauses := []string{
		"trashed = false",
		fmt.Sprintf("mimeType != '%s'", MimeTypeFolder),
	}

	if !since.IsZero() {
		clauses = append(clauses, fmt.Sprintf("modifiedTime > '%s'", since.UTC().Format(time.RFC3339)))
	}

	if len(folderIDs) > 0 {
		parents := make([]string, 0, len(folderIDs))
		for _, id := range folderIDs {
			parents = append(parents, fmt.Sprintf("'%s' in parents", escapeQuery(id)))
		}
		if len(parents) == 1 {
			clauses = append(clauses, parents[0])
		} else {
			clauses = append(clauses, "("+strings.Join(parents, " or ")+")")
		}
	}

	return strings.Join(clauses, " and ")
}

// escapeQuery escapes a value for a single-quoted query string literal.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// ToDomainFile converts a Drive API file to a domain.DriveFile.
func ToDomainFile(file *drive.File) (domain.DriveFile, error) {
	var modified time.Time
	if file.ModifiedTime != "" {
		t, err := time.Parse(time.RFC3339, file.ModifiedTime)
		if err != nil {
			return domain.DriveFile{}, fmt.Errorf("parse modifiedTime of %s: %w", file.Id, err)
		}
		modified = t
	}

	f := domain.DriveFile{
		ID:            file.Id,
		Name:          file.Name,
		MimeType:      file.MimeType,
		WebViewLink:   file.WebViewLink,
		ThumbnailLink: file.ThumbnailLink,
		ModifiedTime:  modified,
	}
	f.WebViewLink = ResolveWebURL(f)
	return f, nil
}
