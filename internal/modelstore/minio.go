// Package modelstore syncs model artifacts between object storage and the local model directory.
package modelstore

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"MentalHealthSentiment_WebProject/internal/sentiment"
)

// Artifacts are the files that make up one model.
var Artifacts = []string{sentiment.VectorizerFile, sentiment.ClassifierFile}

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	Region    string
	UseSSL    bool
}

// objectClient is the part of *minio.Client the store uses.
type objectClient interface {
	FGetObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.GetObjectOptions) error
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
}

type Store struct {
	client objectClient
	bucket string
	prefix string
	region string
	logger *zap.Logger
}

// New MinIO 클라이언트 생성
func New(opts Options, logger *zap.Logger) (*Store, error) {
	cli, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("modelstore: %w", err)
	}
	return newStore(cli, opts, logger), nil
}

func newStore(cli objectClient, opts Options, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: cli, bucket: opts.Bucket, prefix: opts.Prefix, region: opts.Region, logger: logger}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Fetch downloads every artifact into dir. All objects land in .download files first
// and are renamed only when the whole set arrived, so a failed fetch keeps the previous pair.
func (s *Store) Fetch(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("modelstore: create %s: %w", dir, err)
	}
	temps := make([]string, 0, len(Artifacts))
	cleanup := func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}
	for _, name := range Artifacts {
		tmp := filepath.Join(dir, name) + ".download"
		temps = append(temps, tmp)
		if err := s.client.FGetObject(ctx, s.bucket, s.key(name), tmp, minio.GetObjectOptions{}); err != nil {
			cleanup()
			return fmt.Errorf("modelstore: fetch %s: %w", s.key(name), err)
		}
	}
	for i, name := range Artifacts {
		dst := filepath.Join(dir, name)
		if err := os.Rename(temps[i], dst); err != nil {
			cleanup()
			return fmt.Errorf("modelstore: install %s: %w", dst, err)
		}
		s.logger.Info("Fetch(): artifact downloaded", zap.String("bucket", s.bucket), zap.String("key", s.key(name)), zap.String("path", dst))
	}
	return nil
}

// Publish uploads the artifacts in dir, creating the bucket when it does not exist yet.
func (s *Store) Publish(ctx context.Context, dir string) error {
	// 버킷이 없으면 생성
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("modelstore: bucket check: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("modelstore: make bucket: %w", err)
		}
	}

	for _, name := range Artifacts {
		src := filepath.Join(dir, name)
		if _, err := os.Stat(src); err != nil {
			return fmt.Errorf("modelstore: %w", err)
		}
		if _, err := s.client.FPutObject(ctx, s.bucket, s.key(name), src, minio.PutObjectOptions{
			ContentType: "application/json",
		}); err != nil {
			return fmt.Errorf("modelstore: upload %s: %w", s.key(name), err)
		}
		s.logger.Info("Publish(): artifact uploaded", zap.String("bucket", s.bucket), zap.String("key", s.key(name)))
	}
	return nil
}
