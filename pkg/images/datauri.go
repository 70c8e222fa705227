package images

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const genericMime = "application/octet-stream"

// DataURI encodes data as a self-contained data URI. When the declared type
// is missing or generic the content is sniffed instead.
func DataURI(declared string, data []byte) string {
	mime := baseType(declared)
	if mime == "" || mime == genericMime {
		mime = baseType(mimetype.Detect(data).String())
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// storedTypes are the image types kept on disk and served from /images.
// SVG is left out since browsers run scripts embedded in it.
var storedTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
	"image/avif": ".avif",
}

// ImageExt sniffs the leading bytes of a payload and returns the file
// extension for it. ok is false unless the content is a stored image type.
func ImageExt(head []byte) (ext string, ok bool) {
	ext, ok = storedTypes[baseType(mimetype.Detect(head).String())]
	return ext, ok
}

func baseType(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}
