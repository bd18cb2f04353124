package store

import (
	"fmt"
	"math/rand"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/teamspace/backend/internal/models"
)

var (
	imageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	}
	videoExtensions = map[string]bool{
		".mp4": true, ".mov": true, ".avi": true, ".mkv": true,
	}
)

// DetectFileType maps MIME type and filename extension to one of the three
// viewer kinds. Anything that is not an image or a video renders in the PDF
// viewer. Content is never inspected.
func DetectFileType(mimeType, filename string) models.FileType {
	ext := strings.ToLower(path.Ext(filename))
	switch {
	case strings.HasPrefix(mimeType, "image/") || imageExtensions[ext]:
		return models.FileTypeImage
	case strings.HasPrefix(mimeType, "video/") || videoExtensions[ext]:
		return models.FileTypeVideo
	default:
		return models.FileTypePDF
	}
}

const storagePrefix = "uploads"

const keyAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewStorageKey builds a collision-resistant object key from the upload time
// and a random suffix, keeping the original extension.
func NewStorageKey(filename string) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = keyAlphabet[rand.Intn(len(keyAlphabet))]
	}
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%d-%s.%s", storagePrefix, time.Now().UnixMilli(), suffix, strings.ToLower(ext))
}

// objectKeyFromURL recovers the storage key ("uploads/<name>") from a stored
// public file URL.
func objectKeyFromURL(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", err
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return "", fmt.Errorf("no storage key in url path %q", parsed.Path)
	}
	return strings.Join(segments[len(segments)-2:], "/"), nil
}
