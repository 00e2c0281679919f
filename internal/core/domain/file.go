package domain

import "time"

// DriveFile is the metadata of one file listed from cloud storage.
type DriveFile struct {
	// ID is the provider's file identifier.
	ID string
	// Name is the display name.
	Name string
	// MimeType is the provider-reported content type.
	MimeType string
	// WebViewLink opens the file in a browser.
	WebViewLink string
	// ThumbnailLink is a preview image URL. Empty when the provider has none.
	ThumbnailLink string
	// ModifiedTime is the last modification time.
	ModifiedTime time.Time
}

// HasThumbnail reports whether a preview image is available.
func (f DriveFile) HasThumbnail() bool {
	return f.ThumbnailLink != ""
}

// FilePage is one page of a paginated file listing.
type FilePage struct {
	Files []DriveFile
	// NextPageToken is empty on the last page.
	NextPageToken string
}

// HasMore reports whether another page follows.
func (p FilePage) HasMore() bool {
	return p.NextPageToken != ""
}
