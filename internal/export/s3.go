package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the slice of the S3 client the uploader needs.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader writes exported files to an S3 bucket.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	up := export.NewS3Uploader(s3.NewFromConfig(cfg), "my-bucket", "sites/acme/")
type S3Uploader struct {
	client S3API
	bucket string
	prefix string
}

func NewS3Uploader(client S3API, bucket, prefix string) *S3Uploader {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Uploader{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Uploader) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.prefix + key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 upload failed: %w", err)
	}
	return nil
}
