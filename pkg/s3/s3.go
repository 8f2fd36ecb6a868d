package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultPresignTTL is how long a presigned GET URL stays valid.
const DefaultPresignTTL = time.Hour

var ErrMissingBucket = errors.New("s3: bucket is required")

// IPresigner turns stored object keys into URLs a client can fetch.
type IPresigner interface {
	PresignGetURL(ctx context.Context, key string) (string, error)
}

// Config describes the bucket holding item photos. Endpoint and the static
// keys are optional; without keys the default AWS credential chain is used.
type Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PresignTTL      time.Duration
}

// Presigner signs GET requests for objects of one bucket.
type Presigner struct {
	client *s3.PresignClient
	bucket string
	ttl    time.Duration
}

var _ IPresigner = (*Presigner)(nil)

// New loads the AWS configuration and builds a Presigner.
func New(ctx context.Context, cfg Config) (*Presigner, error) {
	if cfg.Bucket == "" {
		return nil, ErrMissingBucket
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(staticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}

	return &Presigner{
		client: s3.NewPresignClient(client),
		bucket: cfg.Bucket,
		ttl:    ttl,
	}, nil
}

// PresignGetURL returns a time-limited URL for key. Empty keys yield an empty
// URL; keys that are already absolute URLs are returned unchanged.
func (p *Presigner) PresignGetURL(ctx context.Context, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", nil
	}
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key, nil
	}

	req, err := p.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}
	return req.URL, nil
}

func staticCredentials(accessKeyID, secret string) aws.CredentialsProviderFunc {
	return func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     accessKeyID,
			SecretAccessKey: secret,
			Source:          "StaticConfig",
		}, nil
	}
}
