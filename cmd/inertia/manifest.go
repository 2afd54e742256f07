package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	inerr "github.com/vango-dev/inertia/internal/errors"
	"github.com/vango-dev/inertia/pkg/assets"
)

func manifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Work with asset manifests",
	}
	cmd.AddCommand(manifestVersionCmd())
	return cmd
}

func manifestVersionCmd() *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "version <manifest.json|s3://bucket/key>",
		Short: "Print the asset version of a manifest",
		Long: `Version prints the asset version derived from a manifest. Pages
carry this version, and clients with a different one reload.

Examples:
  inertia manifest version dist/manifest.json
  inertia manifest version s3://builds/web/manifest.json --region eu-west-1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManifest(cmd.Context(), args[0], region)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.Version())
			success(cmd, "%d entries", m.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "us-east-1", "S3 region")
	return cmd
}

// loadManifest reads a manifest from a path or an s3:// URL. S3 manifests
// are fetched anonymously.
func loadManifest(ctx context.Context, location, region string) (*assets.Manifest, error) {
	var (
		m   *assets.Manifest
		err error
	)
	if rest, ok := strings.CutPrefix(location, "s3://"); ok {
		bucket, key, found := strings.Cut(rest, "/")
		if !found || bucket == "" || key == "" {
			return nil, inerr.New("E081").WithDetail(fmt.Sprintf("%q is not an s3://bucket/key URL", location))
		}
		if ctx == nil {
			ctx = context.Background()
		}
		m, err = assets.LoadS3(ctx, anonymousS3(region), bucket, key)
	} else {
		m, err = assets.Load(location)
	}
	if err != nil {
		return nil, inerr.New("E081").WithDetail(err.Error()).Wrap(err)
	}
	return m, nil
}

func anonymousS3(region string) *s3.Client {
	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.AnonymousCredentials{},
	})
}
