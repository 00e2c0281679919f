package notion

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"

	"github.com/wim-web/bookin/internal/core/domain"
	"github.com/wim-web/bookin/internal/core/ports/driven"
	"github.com/wim-web/bookin/internal/logger"
)

// Ensure Client implements the EntryStore interface.
var _ driven.EntryStore = (*Client)(nil)

// Database property names.
const (
	PropertyName = "Name"
	PropertyID   = "id"
	PropertyURL  = "url"
)

// Client reads and writes entries of one Notion database.
type Client struct {
	api          *notionapi.Client
	databaseID   notionapi.DatabaseID
	defaultCover string
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// NewClient creates a client for the database in settings.
// token is the integration secret.
func NewClient(token string, settings domain.NotionSettings, opts ...ClientOption) *Client {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	// A 429 fails the write instead of being retried.
	apiOpts := []notionapi.ClientOption{notionapi.WithRetry(1)}
	if settings.Version != "" {
		apiOpts = append(apiOpts, notionapi.WithVersion(settings.Version))
	}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, notionapi.WithHTTPClient(o.httpClient))
	}

	cover := settings.DefaultCover
	if cover == "" {
		cover = domain.DefaultCoverURL
	}

	return &Client{
		api:          notionapi.NewClient(notionapi.Token(token), apiOpts...),
		databaseID:   notionapi.DatabaseID(settings.DatabaseID),
		defaultCover: cover,
	}
}

// LatestEntry returns the most recently created entry, or nil when the
// database is empty.
func (c *Client) LatestEntry(ctx context.Context) (*domain.DatabaseEntry, error) {
	resp, err := c.api.Database.Query(ctx, c.databaseID, &notionapi.DatabaseQueryRequest{
		Sorts: []notionapi.SortObject{
			{Timestamp: notionapi.TimestampCreated, Direction: notionapi.SortOrderDESC},
		},
		PageSize: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("query database %s: %w", c.databaseID, WrapError(err))
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}

	page := resp.Results[0]
	return &domain.DatabaseEntry{
		ID:             string(page.ID),
		FileID:         richTextContent(page.Properties[PropertyID]),
		CreatedTime:    page.CreatedTime,
		LastEditedTime: page.LastEditedTime,
	}, nil
}

// CreateEntry creates a page for file and returns the page ID.
func (c *Client) CreateEntry(ctx context.Context, file domain.DriveFile) (string, error) {
	page, err := c.api.Page.Create(ctx, c.pageRequest(file))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrWriteEntry, WrapError(err))
	}
	logger.Debug("Notion page %s created for %s", page.ID, file.ID)
	return string(page.ID), nil
}

// pageRequest builds the create request for file.
func (c *Client) pageRequest(file domain.DriveFile) *notionapi.PageCreateRequest {
	cover := c.defaultCover
	if file.HasThumbnail() {
		cover = file.ThumbnailLink
	}

	return &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: c.databaseID,
		},
		Properties: notionapi.Properties{
			PropertyName: notionapi.TitleProperty{
				Title: []notionapi.RichText{{Text: &notionapi.Text{Content: file.Name}}},
			},
			PropertyID: notionapi.RichTextProperty{
				RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: file.ID}}},
			},
			PropertyURL: notionapi.URLProperty{
				URL: file.WebViewLink,
			},
		},
		Cover: &notionapi.Image{
			Type:     notionapi.FileTypeExternal,
			External: &notionapi.FileObject{URL: cover},
		},
	}
}

// richTextContent returns the plain content of a rich text property.
func richTextContent(p notionapi.Property) string {
	var parts []notionapi.RichText
	switch v := p.(type) {
	case *notionapi.RichTextProperty:
		parts = v.RichText
	case notionapi.RichTextProperty:
		parts = v.RichText
	default:
		return ""
	}

	var s string
	for _, rt := range parts {
		switch {
		case rt.PlainText != "":
			s += rt.PlainText
		case rt.Text != nil:
			s += rt.Text.Content
		}
	}
	return s
}
