package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hiccup/pkg/publish"
)

func publishCmd(a *app) *cobra.Command {
	var (
		bucket      string
		prefix      string
		out         string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "publish [dir]",
		Short: "Render every document and store the pages",
		Long: `Render every document below a directory and store the HTML pages.

site/blog/post.json is stored as blog/post.html. Pages go to the S3
bucket from --bucket or [publish].bucket; without a bucket, or with
--out, they are written to a local directory instead.

S3 credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY
and AWS_SESSION_TOKEN.

Examples:
  hiccup publish --out dist
  hiccup publish --bucket my-site --prefix www
  hiccup publish docs --concurrency 16`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("bucket") {
				a.cfg.Publish.Bucket = bucket
			}
			if flags.Changed("prefix") {
				a.cfg.Publish.Prefix = prefix
			}
			if flags.Changed("concurrency") {
				a.cfg.Publish.Concurrency = concurrency
			}
			if out != "" {
				a.cfg.Publish.Bucket = ""
				a.cfg.Publish.OutputDir = out
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			dir := a.cfg.RootPath()
			if len(args) == 1 {
				dir = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runPublish(ctx, dir)
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "S3 bucket (default from hiccup.toml)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write pages to this directory instead of S3")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "Pages rendered and stored at once")

	return cmd
}

func (a *app) runPublish(ctx context.Context, dir string) error {
	pages, err := publish.Collect(dir)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		a.warn("No documents found in %s", dir)
		return nil
	}

	store, target, err := a.store()
	if err != nil {
		return err
	}

	publisher := publish.NewPublisher(publish.Config{
		Store:       store,
		Renderer:    a.renderer(),
		Concurrency: a.cfg.Publish.Concurrency,
		Defaults:    a.cfg.PageDefaults(),
		Logger:      a.logger,
	})

	n, err := publisher.Publish(ctx, pages)
	if err != nil {
		a.errorMsg("Published %d of %d pages", n, len(pages))
		return err
	}
	a.success("Published %d pages to %s", n, target)
	return nil
}

// store returns the configured destination and a description of it.
func (a *app) store() (publish.Store, string, error) {
	cfg := a.cfg.Publish
	if cfg.Bucket == "" {
		dir := a.cfg.OutputPath()
		store, err := publish.NewDirStore(dir)
		if err != nil {
			return nil, "", err
		}
		return store, dir, nil
	}

	client := publish.NewS3Client(publish.S3Options{
		Region:    cfg.Region,
		Endpoint:  cfg.Endpoint,
		PathStyle: cfg.PathStyle,
	})
	store, err := publish.NewS3Store(client, cfg.Bucket, cfg.Prefix)
	if err != nil {
		return nil, "", err
	}
	return store, "s3://" + cfg.Bucket + "/" + cfg.Prefix, nil
}
