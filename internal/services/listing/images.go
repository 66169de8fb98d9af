package listing

import (
	"path/filepath"
	"strings"

	"matmarket/internal/domain"
)

// imageExts are the upload types collaborators accept.
var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// AcceptedImage reports whether name has an accepted image extension.
func AcceptedImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// FilterImages keeps the blobs with accepted image extensions and returns the
// names of the ones it dropped.
func FilterImages(blobs []domain.Blob) (kept []domain.Blob, skipped []string) {
	for _, b := range blobs {
		if AcceptedImage(b.Name) {
			kept = append(kept, b)
			continue
		}
		skipped = append(skipped, b.Name)
	}
	return kept, skipped
}
