package s3

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"docmanager-api/config"
	"docmanager-api/internal/domain/document"
)

// objectAPI is the part of *awss3.Client the service needs.
type objectAPI interface {
	PutObject(ctx context.Context, in *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *awss3.DeleteObjectInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
}

type Client struct {
	logger        *zap.Logger
	api           objectAPI
	region        string
	bucket        string
	publicBaseURL string
	publicRead    bool
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,
) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	logger.Info("s3 client configured",
		zap.String("bucket", cfg.BucketUploads),
		zap.String("region", cfg.Region),
		zap.String("endpoint", cfg.Endpoint),
	)

	return newClient(logger, api, cfg), nil
}

func newClient(logger *zap.Logger, api objectAPI, cfg config.S3) *Client {
	return &Client{
		logger:        logger,
		api:           api,
		region:        cfg.Region,
		bucket:        cfg.BucketUploads,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		publicRead:    cfg.PublicRead,
	}
}

// Put writes obj under obj.Key. Reusing a key overwrites the object.
func (c *Client) Put(ctx context.Context, obj document.Object) (document.StorageRef, error) {
	in := &awss3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(obj.Key),
		Body:          obj.Body,
		ContentLength: aws.Int64(obj.Size),
		ContentType:   aws.String(obj.ContentType),
	}
	if obj.DisplayName != "" {
		in.ContentDisposition = aws.String(mime.FormatMediaType("inline", map[string]string{"filename": obj.DisplayName}))
	}
	if c.publicRead {
		in.ACL = types.ObjectCannedACLPublicRead
	}

	if _, err := c.api.PutObject(ctx, in); err != nil {
		return document.StorageRef{}, fmt.Errorf("s3 put %s: %w", obj.Key, err)
	}

	return document.StorageRef{
		Bucket: c.bucket,
		Key:    obj.Key,
		URL:    c.GetPublicURL(obj.Key),
	}, nil
}

// Delete removes key. A missing object counts as deleted.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.api.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			c.logger.Warn("s3 object already absent", zap.String("key", key))
			return nil
		}
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}

	return nil
}

func (c *Client) GetPublicURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if c.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", c.publicBaseURL, c.bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, escaped)
}

func (c *Client) GetBucket() string { return c.bucket }

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
