package gitlog

import (
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// DefaultDateFormat is the strftime layout used for display dates when
// DATE_FORMAT is not configured.
const DefaultDateFormat = "%Y-%m-%d"

// FormatDate renders t with a strftime layout such as "%Y-%m-%d" or
// "%A, %b %d %Y". An empty layout falls back to DefaultDateFormat.
func FormatDate(layout string, t time.Time) string {
	if strings.TrimSpace(layout) == "" {
		layout = DefaultDateFormat
	}
	return strftime.Format(layout, t)
}
