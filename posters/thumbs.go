package posters

import (
	"bytes"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const thumbDir = "static/posterpic"

// saveThumbnail writes a resized preview of the generated poster and
// returns its serving path. Thumbnails are best effort; a failure is
// logged and the poster keeps only its inline image data.
func saveThumbnail(posterID string, image []byte) string {
	img, err := imaging.Decode(bytes.NewReader(image))
	if err != nil {
		log.Printf("Failed to decode poster %s for thumbnail: %v", posterID, err)
		return ""
	}

	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		log.Printf("Failed to create thumbnail dir: %v", err)
		return ""
	}

	thumb := imaging.Resize(img, 512, 0, imaging.Lanczos)
	path := filepath.Join(thumbDir, posterID+".jpg")
	if err := imaging.Save(thumb, path); err != nil {
		log.Printf("Failed to save thumbnail for poster %s: %v", posterID, err)
		return ""
	}

	return "/" + path
}
