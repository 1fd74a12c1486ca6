package libs

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/PhanMy23520965/LaLuneBakery/utils"
)

// LocalImageStore keeps uploads on disk below dir; they are served under urlPrefix.
type LocalImageStore struct {
	dir       string
	urlPrefix string
	maxSize   int64
}

func NewLocalImageStore(dir, urlPrefix string, maxSize int64) (*LocalImageStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "products"), os.ModePerm); err != nil {
		return nil, fmt.Errorf("gagal membuat folder: %w", err)
	}
	return &LocalImageStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/"), maxSize: maxSize}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, header *multipart.FileHeader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := utils.ValidateImage(header, s.maxSize); err != nil {
		return "", err
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	filename := utils.ImageFilename(header.Filename)
	dst, err := os.Create(filepath.Join(s.dir, "products", filename))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return s.urlPrefix + "/products/" + filename, nil
}

// Delete removes a file previously returned by Save. References outside the
// upload prefix (seeded /images paths, remote URLs) are ignored.
func (s *LocalImageStore) Delete(ctx context.Context, ref string) error {
	if !strings.HasPrefix(ref, s.urlPrefix+"/") {
		return nil
	}
	rel := filepath.Clean(strings.TrimPrefix(ref, s.urlPrefix+"/"))
	if strings.HasPrefix(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
