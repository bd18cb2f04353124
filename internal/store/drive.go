package store

import (
	"fmt"
	"regexp"
)

// The three sharing-link shapes Google Drive hands out.
var drivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9-_]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9-_]+)`),
	regexp.MustCompile(`folders/([a-zA-Z0-9-_]+)`),
}

// ExtractDriveFileID pulls the file identifier out of a Google Drive sharing
// URL. The second return is false when no pattern matches.
func ExtractDriveFileID(rawURL string) (string, bool) {
	for _, pattern := range drivePatterns {
		if match := pattern.FindStringSubmatch(rawURL); match != nil {
			return match[1], true
		}
	}
	return "", false
}

func DrivePreviewURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/file/d/%s/preview", fileID)
}
