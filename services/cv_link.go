package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/westley-wess/portfolio/config"
)

// ObjectPresigner is the part of the S3 presign client the CV link uses
type ObjectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// CVLinker resolves the URL of the downloadable CV. With a bucket configured
// the link is a short-lived presigned S3 URL, otherwise the static
// PROFILE_CV_URL is returned as is.
type CVLinker struct {
	presigner ObjectPresigner
	bucket    string
	key       string
	expiry    time.Duration
	staticURL string
}

// NewCVLinker reads PROFILE_CV_S3_BUCKET, PROFILE_CV_S3_KEY,
// PROFILE_CV_URL_EXPIRY and PROFILE_CV_URL
func NewCVLinker(ctx context.Context, cfg map[string]string) (*CVLinker, error) {
	l := &CVLinker{
		bucket:    config.GetString(cfg, "PROFILE_CV_S3_BUCKET", ""),
		key:       config.GetString(cfg, "PROFILE_CV_S3_KEY", ""),
		expiry:    config.GetDuration(cfg, "PROFILE_CV_URL_EXPIRY", 15*time.Minute),
		staticURL: config.GetString(cfg, "PROFILE_CV_URL", ""),
	}
	if l.bucket == "" || l.key == "" {
		return l, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	l.presigner = s3.NewPresignClient(s3.NewFromConfig(awsCfg))
	return l, nil
}

func NewCVLinkerWithPresigner(presigner ObjectPresigner, bucket, key string, expiry time.Duration) *CVLinker {
	return &CVLinker{presigner: presigner, bucket: bucket, key: key, expiry: expiry}
}

// URL returns the CV link, or "" when nothing is configured
func (l *CVLinker) URL(ctx context.Context) (string, error) {
	if l.presigner == nil {
		return l.staticURL, nil
	}

	req, err := l.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.key),
	}, s3.WithPresignExpires(l.expiry))
	if err != nil {
		return "", fmt.Errorf("presign cv object %s/%s: %w", l.bucket, l.key, err)
	}
	return req.URL, nil
}
