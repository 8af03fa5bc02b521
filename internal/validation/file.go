package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// ImageConstraints defines validation rules for elder photos
var ImageConstraints = FileConstraints{
	AllowedMimeTypes: map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
	},
	AllowedExtensions: map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
	},
	MaxSize: 10 << 20, // 10MB, phone cameras produce large files
}

// ValidateFile validates a multipart upload against one or more constraint
// sets. The file must match at least one of them.
func ValidateFile(header *multipart.FileHeader, constraints ...FileConstraints) error {
	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ValidateUpload(header.Filename, header.Size, file, constraints...)
}

// ValidateUpload checks size, extension and sniffed content type. r is
// rewound afterwards when it supports seeking.
func ValidateUpload(filename string, size int64, r io.Reader, constraints ...FileConstraints) error {
	if len(constraints) == 0 {
		return fmt.Errorf("no file constraints provided")
	}

	// Read first 512 bytes for magic number detection
	buffer := make([]byte, 512)
	n, err := io.ReadFull(r, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("failed to read file: %w", err)
	}

	seeker, ok := r.(io.Seeker)
	if ok {
		_, err = seeker.Seek(0, io.SeekStart)
		if err != nil {
			return fmt.Errorf("failed to reset file pointer: %w", err)
		}
	}

	// Detected from content, so a renamed file cannot pass as an image
	detectedType := http.DetectContentType(buffer[:n])
	ext := strings.ToLower(filepath.Ext(filename))

	var lastErr error
	for _, c := range constraints {
		lastErr = c.check(size, detectedType, ext)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (c FileConstraints) check(size int64, detectedType, ext string) error {
	if size > c.MaxSize {
		maxMB := c.MaxSize / (1 << 20)
		return Invalid("file", fmt.Sprintf("is too large (maximum size is %d MB)", maxMB))
	}

	if !c.AllowedMimeTypes[detectedType] {
		return Invalid("file", fmt.Sprintf("has an unsupported type (detected: %s)", detectedType))
	}

	if !c.AllowedExtensions[ext] {
		return Invalid("file", fmt.Sprintf("has an unsupported extension %q", ext))
	}

	return nil
}
