package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

// MaxUploadBytes caps a single candidate portrait.
const MaxUploadBytes = 8 << 20

var (
	ErrEmpty           = errors.New("image is empty")
	ErrTooLarge        = fmt.Errorf("image exceeds %d MB", MaxUploadBytes>>20)
	ErrExtension       = errors.New("image extension not allowed")
	ErrContentMismatch = errors.New("image content does not match its extension")
	ErrUnsupportedMIME = errors.New("image type not allowed")
)

// Magic byte prefixes per allowed extension.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}},
}

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Validate checks an uploaded portrait in three layers: extension whitelist,
// magic bytes, then the MIME type sniffed from content. It returns the sniffed MIME.
func Validate(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if len(data) > MaxUploadBytes {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	signatures, ok := magicBytes[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrExtension, ext)
	}

	matched := false
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			matched = true
			break
		}
	}
	if !matched {
		return "", ErrContentMismatch
	}

	mime := http.DetectContentType(data)
	if !allowedMIME[mime] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMIME, mime)
	}
	return mime, nil
}
