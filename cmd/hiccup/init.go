package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hiccup/internal/templates"
)

func initCmd(a *app) *cobra.Command {
	var (
		template string
		name     string
		lang     string
		bucket   string
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a new site",
		Long: `Create a hiccup.toml and starter documents in a directory.

Templates:
  minimal   A config file and a single page (default)
  blog      Home page, post index and a first post with a stylesheet

Existing files are never overwritten.

Examples:
  hiccup init
  hiccup init notes --template blog --name "My Notes"
  hiccup init site --bucket my-site`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return a.runInit(dir, template, templates.Config{
				SiteName: name,
				Lang:     lang,
				Bucket:   bucket,
			})
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "minimal", "Site template (minimal, blog)")
	cmd.Flags().StringVar(&name, "name", "", "Site name (default: directory name)")
	cmd.Flags().StringVar(&lang, "lang", "", "Default page language (default: en)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket for publish")

	return cmd
}

func (a *app) runInit(dir, templateName string, cfg templates.Config) error {
	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return err
	}

	files, err := tmpl.Create(abs, cfg)
	if err != nil {
		return err
	}

	a.printBanner()
	for _, f := range files {
		a.info("created %s", f)
	}
	a.success("Created %s site in %s", templateName, dir)
	a.info("")
	a.info("Next steps:")
	if dir != "." {
		a.info("  cd %s", dir)
	}
	a.info("  hiccup serve")
	return nil
}
