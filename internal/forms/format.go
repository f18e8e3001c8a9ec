// format.go - Display helpers for file sizes and upload timestamps
package forms

import (
	"math"
	"strconv"
	"time"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with binary (1024-based) units and at
// most two decimals, trailing zeros dropped: 0 -> "0 Bytes", 1024 -> "1 KB",
// 1536 -> "1.5 KB".
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}

	v := float64(bytes) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100

	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// FormatUploadedAt renders a timestamp as month/day/year plus hour:minute,
// e.g. "Jan 1, 2025, 12:00 AM".
func FormatUploadedAt(t time.Time) string {
	return t.Format("Jan 2, 2006, 3:04 PM")
}
