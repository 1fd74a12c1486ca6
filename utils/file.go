package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var (
	ErrFileTooLarge     = errors.New("file size exceeds maximum allowed size")
	ErrInvalidImageType = errors.New("invalid file type. Only jpg, jpeg, png, gif, webp allowed")
)

func ValidateImage(fileHeader *multipart.FileHeader, maxSize int64) error {
	if fileHeader.Size > maxSize {
		return ErrFileTooLarge
	}
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
		return ErrInvalidImageType
	}
	return nil
}

// ImageFilename builds a unique, space-free name that keeps the original extension.
func ImageFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = strings.ReplaceAll(base, " ", "_")
	if len(base) > 100 {
		base = base[:100]
	}
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)
}
