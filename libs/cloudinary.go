package libs

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/PhanMy23520965/LaLuneBakery/utils"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

type ImageStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, ref string) error
}

type CloudinaryConfig struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	MaxSize   int64
}

type CloudinaryImageStore struct {
	cld    *cloudinary.Cloudinary
	folder  string
	maxSize int64
	logger  *zap.Logger
}

func NewCloudinaryImageStore(cfg CloudinaryConfig, logger *zap.Logger) (*CloudinaryImageStore, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cfg.CloudName != "" && cfg.APIKey != "" && cfg.APISecret != "":
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	case cfg.URL != "":
		cld, err = cloudinary.NewFromURL(cfg.URL)
	default:
		return nil, errors.New("cloudinary credentials not configured")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	folder := cfg.Folder
	if folder == "" {
		folder = "products"
	}
	return &CloudinaryImageStore{cld: cld, folder: folder, maxSize: cfg.MaxSize, logger: logger}, nil
}

func (s *CloudinaryImageStore) Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if s.maxSize > 0 {
		if err := utils.ValidateImage(fileHeader, s.maxSize); err != nil {
			return "", err
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(fileHeader.Filename, path.Ext(fileHeader.Filename))
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       strings.ReplaceAll(name, " ", "_"),
		Folder:         s.folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if resp == nil || (resp.SecureURL == "" && resp.URL == "") {
		return "", errors.New("cloudinary returned no URL")
	}

	s.logger.Info("Image uploaded to Cloudinary", zap.String("public_id", resp.PublicID))
	if resp.SecureURL != "" {
		return resp.SecureURL, nil
	}
	return resp.URL, nil
}

func (s *CloudinaryImageStore) Delete(ctx context.Context, ref string) error {
	publicID := cloudinaryPublicID(ref)
	if publicID == "" {
		return nil
	}

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	if result != nil && result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary deletion failed: %s", result.Result)
	}
	return nil
}

// cloudinaryPublicID extracts "folder/name" from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v123/products/cake.png.
func cloudinaryPublicID(ref string) string {
	i := strings.Index(ref, "/upload/")
	if i < 0 {
		return ""
	}
	rest := ref[i+len("/upload/"):]
	parts := strings.Split(rest, "/")
	if len(parts) > 1 && strings.HasPrefix(parts[0], "v") && strings.Trim(parts[0][1:], "0123456789") == "" {
		parts = parts[1:]
	}
	id := strings.Join(parts, "/")
	return strings.TrimSuffix(id, path.Ext(id))
}
