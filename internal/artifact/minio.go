package artifact

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioOpts func(c *minioConfig)

type minioConfig struct {
	endpoint        string
	bucket          string
	accessKey       string
	secretAccessKey string
	useSSL          bool
}

func newMinioConfig(opts ...MinioOpts) *minioConfig {
	cfg := &minioConfig{
		useSSL: false,
	}

	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// MinioStore keeps resume artifacts in a s3 compatible bucket.
type MinioStore struct {
	cfg    *minioConfig
	client *minio.Client
}

var _ Store = (*MinioStore)(nil)

func NewMinioStore(opts ...MinioOpts) (*MinioStore, error) {
	cfg := newMinioConfig(opts...)

	minioClient, err := minio.New(cfg.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.accessKey, cfg.secretAccessKey, ""),
		Secure: cfg.useSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinioStore{cfg: cfg, client: minioClient}, nil
}

func (s *MinioStore) Save(ctx context.Context, applicantID uuid.UUID, filename string, reader io.Reader) (string, error) {
	name, err := ValidateFilename(filename)
	if err != nil {
		return "", err
	}

	key := objectName(applicantID, name)
	_, err = s.client.PutObject(ctx, s.cfg.bucket, key, reader, -1, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *MinioStore) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	object, err := s.client.GetObject(ctx, s.cfg.bucket, location, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	// GetObject is lazy. Stat to surface a missing key now.
	if _, err := object.Stat(); err != nil {
		object.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return object, nil
}

func (s *MinioStore) Delete(ctx context.Context, location string) error {
	return s.client.RemoveObject(ctx, s.cfg.bucket, location, minio.RemoveObjectOptions{})
}

func WithEndpoint(endpoint string) MinioOpts {
	return func(c *minioConfig) {
		c.endpoint = endpoint
	}
}

func WithBucket(bucket string) MinioOpts {
	return func(c *minioConfig) {
		c.bucket = bucket
	}
}

func WithAccessKey(accessKey string) MinioOpts {
	return func(c *minioConfig) {
		c.accessKey = accessKey
	}
}

func WithSecretKey(secretKey string) MinioOpts {
	return func(c *minioConfig) {
		c.secretAccessKey = secretKey
	}
}

func WithSSL(useSSL bool) MinioOpts {
	return func(c *minioConfig) {
		c.useSSL = useSSL
	}
}
