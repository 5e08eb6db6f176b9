package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"family_law_portal_go/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StorageProvider keeps generated documents (invoice PDFs, exports)
type StorageProvider interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error) // reader, content-type
	Delete(ctx context.Context, key string) error
	// LinkFor returns a URL a recipient can download the object from
	LinkFor(ctx context.Context, key string, expiration time.Duration) (string, error)
	Name() string
}

// NewStorage returns R2 storage when fully configured and reachable,
// otherwise local disk under cfg.UploadDir.
func NewStorage(cfg *config.Config) StorageProvider {
	if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" {
		log.Printf("Storage: local filesystem (%s)", cfg.UploadDir)
		return NewLocalStorage(cfg.UploadDir)
	}

	r2, err := NewR2Storage(cfg)
	if err != nil {
		log.Printf("[WARNING] Failed to initialize R2 storage: %v. Falling back to local storage.", err)
		return NewLocalStorage(cfg.UploadDir)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := r2.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(r2.bucket)}); err != nil {
		log.Printf("[WARNING] R2 bucket connection test failed: %v. Falling back to local storage.", err)
		return NewLocalStorage(cfg.UploadDir)
	}

	log.Printf("Storage: Cloudflare R2 (bucket %s)", cfg.R2BucketName)
	return r2
}

// R2Storage stores objects in a Cloudflare R2 bucket through the S3 API
type R2Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	publicURL string
}

func NewR2Storage(cfg *config.Config) (*R2Storage, error) {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)

	creds := credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.R2BucketName,
		publicURL: cfg.R2PublicURL,
	}, nil
}

func (r *R2Storage) Name() string { return "r2" }

func (r *R2Storage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to R2: %w", err)
	}
	return nil
}

func (r *R2Storage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	result, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get object from R2: %w", err)
	}
	return result.Body, aws.ToString(result.ContentType), nil
}

func (r *R2Storage) Delete(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

// LinkFor prefers the bucket's public URL and presigns otherwise
func (r *R2Storage) LinkFor(ctx context.Context, key string, expiration time.Duration) (string, error) {
	if r.publicURL != "" {
		return strings.TrimSuffix(r.publicURL, "/") + "/" + key, nil
	}
	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return req.URL, nil
}

// LocalStorage keeps objects on disk under baseDir
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

func (l *LocalStorage) Name() string { return "local" }

func (l *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(l.baseDir, clean), nil
}

func (l *LocalStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	fullPath, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (l *LocalStorage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	fullPath, err := l.path(key)
	if err != nil {
		return nil, "", err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(key)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return file, contentType, nil
}

func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// LinkFor has nothing public to point at for local files
func (l *LocalStorage) LinkFor(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return "", nil
}

// InvoicePDFKey is the storage key of an invoice's rendered PDF
func InvoicePDFKey(number string) string {
	if strings.HasPrefix(number, "INV-") && len(number) >= 8 {
		return fmt.Sprintf("invoices/%s/%s.pdf", number[4:8], number)
	}
	return "invoices/" + number + ".pdf"
}
