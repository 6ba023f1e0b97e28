package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or
// underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition: replaces
// non-alphanumeric chars (except - _) with _, collapses runs, truncates.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized download filename:
// extraction_{id}_{YYYY-MM-DD}.{ext}
func BuildFilename(id string, ext string) string {
	return fmt.Sprintf("extraction_%s_%s.%s", SanitizeFilename(id), time.Now().Format("2006-01-02"), ext)
}
