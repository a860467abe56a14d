package upload

import (
	"fmt"
	"mime/multipart"
	"path"
	"regexp"
	"strings"
)

const (
	DefaultMaxFileSize int64 = 50 << 20
	DefaultMaxFiles          = 10
	maxFilenameLength        = 255
)

var allowedExtensions = map[string]bool{
	"pdf":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"dwg":  true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

type Limits struct {
	MaxFileSize int64
	MaxFiles    int
}

func DefaultLimits() Limits {
	return Limits{MaxFileSize: DefaultMaxFileSize, MaxFiles: DefaultMaxFiles}
}

// Ext returns the lowercased extension without the leading dot.
func Ext(filename string) string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
}

func AllowedExtension(filename string) bool {
	return allowedExtensions[Ext(filename)]
}

// SanitizeFilename strips any path components, replaces characters outside
// [a-zA-Z0-9._-] and caps the length, preserving the extension.
func SanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "")
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" || name == "." {
		name = "file"
	}
	if len(name) > maxFilenameLength {
		ext := path.Ext(name)
		keep := maxFilenameLength - len(ext)
		if keep < 1 {
			keep = 1
		}
		name = name[:keep] + ext
	}
	return name
}

// ValidateFiles checks count, per-file size and the extension whitelist.
func ValidateFiles(files []*multipart.FileHeader, limits Limits) error {
	if limits.MaxFiles > 0 && len(files) > limits.MaxFiles {
		return fmt.Errorf("too many files: %d exceeds the limit of %d", len(files), limits.MaxFiles)
	}
	for _, fh := range files {
		if !AllowedExtension(fh.Filename) {
			return fmt.Errorf("file type %q is not allowed for %q", Ext(fh.Filename), fh.Filename)
		}
		if limits.MaxFileSize > 0 && fh.Size > limits.MaxFileSize {
			return fmt.Errorf("file %q exceeds the size limit of %d bytes", fh.Filename, limits.MaxFileSize)
		}
	}
	return nil
}
