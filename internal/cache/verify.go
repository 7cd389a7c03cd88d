package cache

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
)

// ErrNotImage is returned when downloaded content is not a supported image.
var ErrNotImage = errors.New("not an image")

var imageExts = []string{".jpg", ".png", ".gif", ".webp"}

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func isImageExt(ext string) bool {
	return slices.Contains(imageExts, ext)
}

// sniffImage checks the first bytes of a file and returns the extension to
// store it under.
func sniffImage(head []byte) (string, error) {
	ct := http.DetectContentType(head)
	if ext, ok := extByType[ct]; ok {
		return ext, nil
	}
	return "", fmt.Errorf("%w: detected %s", ErrNotImage, ct)
}
