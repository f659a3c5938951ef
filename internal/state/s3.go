package state

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3 stores each value as a small object under Prefix/key.
type S3 struct {
	Client *minio.Client
	Bucket string
	Prefix string
}

type S3Options struct {
	Endpoint        string
	Region          string
	Bucket          string
	Prefix          string
	AccessKey       string
	SecretKey       string
	SessionToken    string
	UseSSL          bool
	ForcePathStyle  bool
	TLSInsecureSkip bool
}

func NewS3(opts S3Options) (*S3, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.TLSInsecureSkip {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	lookup := minio.BucketLookupDNS
	if opts.ForcePathStyle {
		lookup = minio.BucketLookupPath
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, opts.SessionToken),
		Secure:       opts.UseSSL,
		Region:       opts.Region,
		Transport:    transport,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, err
	}
	return &S3{Client: client, Bucket: opts.Bucket, Prefix: opts.Prefix}, nil
}

func (s *S3) objectKey(key string) string {
	if s.Prefix == "" {
		return key
	}
	return path.Join(strings.Trim(s.Prefix, "/"), key)
}

func (s *S3) Get(ctx context.Context, key string) (string, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, s.objectKey(key), minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", nil
		}
		return "", fmt.Errorf("s3 get %s: %w", key, err)
	}
	return string(data), nil
}

func (s *S3) Set(ctx context.Context, key, value string) error {
	_, err := s.Client.PutObject(ctx, s.Bucket, s.objectKey(key), strings.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "text/plain", UserMetadata: map[string]string{"bells-state": "true"}})
	if err != nil {
		return fmt.Errorf("s3 set %s: %w", key, err)
	}
	return nil
}

func (s *S3) Ping(ctx context.Context) error {
	ok, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", s.Bucket)
	}
	return nil
}

func (s *S3) Close() error { return nil }
