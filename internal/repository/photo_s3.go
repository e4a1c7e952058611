package repository

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/ochoaluis/gymkeeper/internal/config"
)

// PhotoS3Repository stores member photos in an S3-compatible object
// store (SeaweedFS/MinIO), implementing domain.FileRepository.
type PhotoS3Repository struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewPhotoS3Repository creates a new photo repository. The endpoint is
// overridden so self-hosted S3-compatible stores work; those stores
// still expect signed requests, hence the static placeholder
// credentials.
func NewPhotoS3Repository(ctx context.Context, cfg appConfig.S3Config) (*PhotoS3Repository, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("any", "any", "")),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // required by most S3-compatible stores
	})

	repo := &PhotoS3Repository{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.Endpoint,
	}

	if err := repo.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// Upload saves a photo and returns the URL stored on the member record.
func (r *PhotoS3Repository) Upload(ctx context.Context, file []byte, filename string, contentType string) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(filename),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", r.publicURL, r.bucket, filename), nil
}

// ensureBucket checks if the bucket exists, creating it if necessary
func (r *PhotoS3Repository) ensureBucket(ctx context.Context) error {
	_, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(r.bucket),
	})
	if err != nil {
		_, err = r.client.CreateBucket(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(r.bucket),
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", r.bucket, err)
		}
	}
	return nil
}
