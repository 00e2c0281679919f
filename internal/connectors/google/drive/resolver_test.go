package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wim-web/bookin/internal/core/domain"
)

func TestResolveWebURL(t *testing.T) {
	tests := []struct {
		name string
		file domain.DriveFile
		want string
	}{
		{
			name: "web view link takes precedence",
			file: domain.DriveFile{ID: "1abc123", WebViewLink: "https://docs.google.com/document/d/1abc123/edit"},
			want: "https://docs.google.com/document/d/1abc123/edit",
		},
		{
			name: "web view link for spreadsheet",
			file: domain.DriveFile{ID: "2xyz789", WebViewLink: "https://docs.google.com/spreadsheets/d/2xyz789/edit"},
			want: "https://docs.google.com/spreadsheets/d/2xyz789/edit",
		},
		{
			name: "fallback to file URL when link empty",
			file: domain.DriveFile{ID: "1abc123def456"},
			want: "https://drive.google.com/file/d/1abc123def456/view",
		},
		{
			name: "no ID and no link returns empty",
			file: domain.DriveFile{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveWebURL(tt.file))
		})
	}
}
