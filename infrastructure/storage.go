package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
)

// ObjectStorage talks to an S3 compatible store (AWS S3, Cloudflare R2,
// MinIO) and hands out public URLs for stored objects. Without a public base
// or endpoint, URLs use the AWS virtual-hosted form
// https://<bucket>.s3.<region>.amazonaws.com/<key>.
type ObjectStorage struct {
	client    *s3.Client
	publicURL string
	region    string
}

func NewObjectStorage(ctx context.Context, cfg *Config) (*ObjectStorage, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = cfg.S3PathStyle
	})

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = cfg.S3Endpoint
	}
	return &ObjectStorage{
		client:    client,
		publicURL: strings.TrimRight(publicURL, "/"),
		region:    cfg.S3Region,
	}, nil
}

// Upload stores data under bucket/key and returns its public URL.
func (s *ObjectStorage) Upload(ctx context.Context, bucket, key string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(mimetype.Detect(data).String()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}
	return s.PublicURL(bucket, key), nil
}

// Download reads a whole object.
func (s *ObjectStorage) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ObjectStorage) PublicURL(bucket, key string) string {
	if s.publicURL == "" {
		return fmt.Sprintf("https://%s.%s/%s", bucket, s.awsHost(), key)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, bucket, key)
}

// awsHost is the S3 host for the configured region. "auto" is an R2 region
// and has no AWS host of its own.
func (s *ObjectStorage) awsHost() string {
	if s.region == "" || s.region == "auto" {
		return "s3.amazonaws.com"
	}
	return "s3." + s.region + ".amazonaws.com"
}

// Locate reports the bucket and key behind a URL produced by PublicURL.
func (s *ObjectStorage) Locate(rawURL string) (bucket, key string, ok bool) {
	if s == nil {
		return "", "", false
	}
	if s.publicURL == "" {
		return s.locateVirtualHosted(rawURL)
	}
	rest, found := strings.CutPrefix(rawURL, s.publicURL+"/")
	if !found {
		return "", "", false
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func (s *ObjectStorage) locateVirtualHosted(rawURL string) (bucket, key string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "https" {
		return "", "", false
	}
	bucket, found := strings.CutSuffix(u.Host, "."+s.awsHost())
	key = strings.TrimPrefix(u.Path, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
