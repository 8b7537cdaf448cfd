package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// TimestampedFilename builds a safe storage name for an uploaded file:
// originalname_timestamp.extension, with anything outside [a-zA-Z0-9-_.]
// replaced by underscores.
func TimestampedFilename(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	timestamp := time.Now().Unix()
	filename := fmt.Sprintf("%s_%d%s", base, timestamp, ext)

	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, filename)
}
