package out

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	recordout "healthlog/internal/modules/record/port/out"
)

type S3Options struct {
	Bucket          string
	Key             string
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

// S3BlobStorage keeps the document as a single object in an S3-compatible
// bucket (AWS S3 or MinIO).
type S3BlobStorage struct {
	client *s3.Client
	bucket string
	key    string
}

var _ recordout.BlobStorage = (*S3BlobStorage)(nil)

// NewS3BlobStorage resolves credentials from the default AWS chain unless
// static keys are given. optFns are applied to the client after opts.
func NewS3BlobStorage(ctx context.Context, opts S3Options, optFns ...func(*s3.Options)) (*S3BlobStorage, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	if opts.Key == "" {
		return nil, fmt.Errorf("s3 object key required")
	}
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.PathStyle {
			o.UsePathStyle = true
		}
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		for _, fn := range optFns {
			fn(o)
		}
	})
	return &S3BlobStorage{client: client, bucket: opts.Bucket, key: opts.Key}, nil
}

func (s *S3BlobStorage) Save(ctx context.Context, payload []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}

func (s *S3BlobStorage) Load(ctx context.Context) ([]byte, bool, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()
	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return payload, true, nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var respErr *awshttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}
