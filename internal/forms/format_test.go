// format_test.go - Tests for display helpers
package forms

import (
	"testing"
	"time"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{500, "500 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1234, "1.21 KB"},
		{1048576, "1 MB"},
		{52428800, "50 MB"},
		{1073741824, "1 GB"},
		{3221225472, "3 GB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.bytes); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatUploadedAt(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatUploadedAt(at); got != "Jan 1, 2025, 12:00 AM" {
		t.Errorf("FormatUploadedAt = %q", got)
	}

	at = time.Date(2025, 11, 23, 16, 5, 0, 0, time.UTC)
	if got := FormatUploadedAt(at); got != "Nov 23, 2025, 4:05 PM" {
		t.Errorf("FormatUploadedAt = %q", got)
	}
}
