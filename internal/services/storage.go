package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rewardof/FieldBookingApp/internal/models"
)

type StorageConfig struct {
	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	Bucket       string
	UploadDir    string
	BaseURL      string
}

// StoredObject describes a saved upload.
type StoredObject struct {
	Path        string
	URL         string
	Size        int64
	ContentType string
}

// Storage writes uploads to S3 when AWS credentials are configured and to
// the local upload directory otherwise.
type Storage struct {
	cfg      StorageConfig
	s3Client *s3.S3
	uploader *s3manager.Uploader
	useS3    bool
	log      *zap.Logger
}

// InitStorage initializes either S3 or local storage based on configuration
func InitStorage(cfg StorageConfig, log *zap.Logger) (*Storage, error) {
	st := &Storage{cfg: cfg, log: log.Named("storage")}

	if cfg.AWSRegion != "" && cfg.AWSAccessKey != "" && cfg.AWSSecretKey != "" {
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("S3 bucket name not configured")
		}
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.AWSRegion),
			Credentials: credentials.NewStaticCredentials(
				cfg.AWSAccessKey,
				cfg.AWSSecretKey,
				"", // Token (optional)
			),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}

		st.s3Client = s3.New(sess)
		st.uploader = s3manager.NewUploader(sess)
		st.useS3 = true

		st.log.Info("AWS S3 storage initialized", zap.String("bucket", cfg.Bucket))
		return st, nil
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	st.log.Warn("AWS S3 not configured, using local file storage", zap.String("dir", cfg.UploadDir))
	return st, nil
}

func (s *Storage) IsUsingS3() bool {
	return s.useS3
}

// UploadImage stores file under folder and returns where it went.
func (s *Storage) UploadImage(ctx context.Context, file *multipart.FileHeader, folder string) (*StoredObject, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	buffer := bytes.NewBuffer(nil)
	if _, err := io.Copy(buffer, src); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	contentType := http.DetectContentType(buffer.Bytes())
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("content type %q: %w", contentType, models.ErrUnsupportedFileType)
	}

	key := fmt.Sprintf("%s/%s/%s%s", folder, time.Now().UTC().Format("2006/01/02"), uuid.NewString(), strings.ToLower(filepath.Ext(file.Filename)))
	obj := &StoredObject{Path: key, Size: int64(buffer.Len()), ContentType: contentType}

	if s.useS3 {
		err = s.uploadToS3(ctx, key, buffer.Bytes(), contentType)
	} else {
		err = s.uploadLocally(key, buffer.Bytes())
	}
	if err != nil {
		return nil, err
	}
	obj.URL = s.GetImageURL(key)
	return obj, nil
}

func (s *Storage) uploadToS3(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func (s *Storage) uploadLocally(key string, data []byte) error {
	path := filepath.Join(s.cfg.UploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create folder directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

// GetImageURL returns the public URL for a stored key.
func (s *Storage) GetImageURL(key string) string {
	key = filepath.ToSlash(key)
	if s.useS3 {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.AWSRegion, key)
	}
	return fmt.Sprintf("%s/uploads/%s", strings.TrimRight(s.cfg.BaseURL, "/"), key)
}

// DeleteImage removes a stored key.
func (s *Storage) DeleteImage(ctx context.Context, key string) error {
	if s.useS3 {
		_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    aws.String(key),
		})
		return err
	}
	err := os.Remove(filepath.Join(s.cfg.UploadDir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
