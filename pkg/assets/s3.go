package assets

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the part of *s3.Client used to fetch manifests.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// LoadS3 reads a JSON manifest stored at bucket/key.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	m, err := assets.LoadS3(ctx, s3.NewFromConfig(cfg), "builds", "web/manifest.json")
func LoadS3(ctx context.Context, client ObjectGetter, bucket, key string) (*Manifest, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("assets: get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("assets: read s3://%s/%s: %w", bucket, key, err)
	}
	return Parse(data)
}
