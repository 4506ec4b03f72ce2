package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/tour/app/components"
	"github.com/vango-dev/tour/internal/errors"
	"github.com/vango-dev/tour/pkg/publish"
)

func publishCmd(opts *globalOptions) *cobra.Command {
	var (
		bucket       string
		prefix       string
		region       string
		endpoint     string
		cacheControl string
		roots        []string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload static snapshots of the widgets to S3",
		Long: `Render each root widget as a static page and upload it to
<bucket>/<prefix>/<root>/index.html.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY
and AWS_SESSION_TOKEN. Use --endpoint for S3-compatible stores.

Examples:
  tour publish --bucket tour-snapshots
  tour publish --bucket snaps --prefix v2 --root counter --root form
  tour publish --bucket local --endpoint http://localhost:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			pc := cfg.Publish
			flags := cmd.Flags()
			if flags.Changed("bucket") {
				pc.Bucket = bucket
			}
			if flags.Changed("prefix") {
				pc.Prefix = prefix
			}
			if flags.Changed("region") {
				pc.Region = region
			}
			if flags.Changed("endpoint") {
				pc.Endpoint = endpoint
			}
			if flags.Changed("cache-control") {
				pc.CacheControl = cacheControl
			}
			if pc.Bucket == "" {
				return errors.New("E060").WithSuggestion("Pass --bucket or set publish.bucket in tour.yaml")
			}

			selected := components.Roots
			if len(roots) > 0 {
				selected = selected[:0:0]
				for _, name := range roots {
					r, err := lookupRoot(name)
					if err != nil {
						return err
					}
					selected = append(selected, r)
				}
			}

			client := publish.NewClient(publish.ClientConfig{
				Region:   pc.Region,
				Endpoint: pc.Endpoint,
			})
			p, err := publish.New(client, publish.Config{
				Bucket:       pc.Bucket,
				Prefix:       pc.Prefix,
				CacheControl: pc.CacheControl,
				Title:        cfg.Server.Title,
			})
			if err != nil {
				return err
			}
			p.SetLogger(cfg.NewLogger(cmd.ErrOrStderr()))

			for _, r := range selected {
				res, err := p.Publish(cmd.Context(), r.Name, r.New)
				if err != nil {
					return errors.FromError(err, "E062")
				}
				success(cmd.OutOrStdout(), "%s → %s (%d bytes)", r.Name, res.URI(), res.Size)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Destination bucket")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix")
	cmd.Flags().StringVar(&region, "region", "", "Bucket region (default: AWS_REGION or us-east-1)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Custom S3 endpoint")
	cmd.Flags().StringVar(&cacheControl, "cache-control", "", "Cache-Control header for uploaded pages")
	cmd.Flags().StringSliceVarP(&roots, "root", "r", nil, "Roots to publish (default: all)")

	return cmd
}
