package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Config options for the S3 resolver
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket holding media objects
	Prefix          string // Optional key prefix prepended to media ids
	Layout          string // Key layout: "flat" (default) or "sharded"
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
}

// HeadObjectAPI is the subset of the S3 client used by S3Resolver
type HeadObjectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Resolver checks media ids against objects in an S3 bucket. The object
// key for a media id comes from the resolver's KeyLayout.
type S3Resolver struct {
	client HeadObjectAPI
	bucket string
	layout KeyLayout
}

// NewS3 creates a resolver with its own S3 client
func NewS3(ctx context.Context, config Config) (*S3Resolver, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if config.Region == "" {
		config.Region = "us-east-1"
	}
	layout, err := ParseLayout(config.Layout, config.Prefix)
	if err != nil {
		return nil, err
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(config.Region)}
	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	resolver := NewS3WithClient(s3.NewFromConfig(awsCfg, s3Options...), config.Bucket, config.Prefix)
	resolver.layout = layout
	return resolver, nil
}

// NewS3WithClient creates a resolver over an existing client using a flat
// key layout under prefix.
func NewS3WithClient(client HeadObjectAPI, bucket, prefix string) *S3Resolver {
	return &S3Resolver{client: client, bucket: bucket, layout: FlatLayout{Prefix: prefix}}
}

// WithLayout replaces the resolver's key layout
func (r *S3Resolver) WithLayout(layout KeyLayout) *S3Resolver {
	r.layout = layout
	return r
}

// Exists reports whether the object for mediaID is present in the bucket.
func (r *S3Resolver) Exists(ctx context.Context, mediaID string) (bool, error) {
	if strings.TrimSpace(mediaID) == "" {
		return false, nil
	}
	_, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.layout.Key(mediaID)),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check media %s: %w", mediaID, err)
}

// isNotFound matches both the typed SDK error and the bare API error code
// some S3-compatible services return for HEAD requests.
func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
