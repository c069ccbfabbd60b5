package storage

import (
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var extensionPattern = regexp.MustCompile(`^[a-z0-9]{1,10}$`)

var canonicalImageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/tiff": ".tif",
}

// NormalizeMediaType lower-cases a Content-Type value and drops its parameters.
func NormalizeMediaType(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}

// DetectContentType sniffs content and returns its media type without parameters.
func DetectContentType(content []byte) string {
	return NormalizeMediaType(mimetype.Detect(content).String())
}

// StoredExtension picks the extension for a stored file: the client's
// extension when it is short and alphanumeric, else the canonical one for
// contentType. The result includes the dot, or is empty.
func StoredExtension(originalName string, contentType string) string {
	extension := strings.ToLower(strings.TrimPrefix(path.Ext(BaseName(originalName)), "."))
	if extensionPattern.MatchString(extension) {
		return "." + extension
	}
	return canonicalImageExtensions[NormalizeMediaType(contentType)]
}

// BaseName strips any client supplied directory components.
func BaseName(originalName string) string {
	base := strings.TrimSpace(originalName)
	if index := strings.LastIndexAny(base, `/\`); index >= 0 {
		base = base[index+1:]
	}
	return base
}
