// Package templates provides site scaffolding templates.
//
// # Available Templates
//
//   - minimal: A config file and a single page
//   - blog: Home page, post index and a first post with a stylesheet
//
// # Usage
//
//	tmpl, err := templates.Get("blog")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	files, err := tmpl.Create(dir, templates.Config{SiteName: "Notes"})
//
// # Template Variables
//
//	{{.SiteName}}  - Site name, used for titles and headings
//	{{.Lang}}      - Default page language
//	{{.Bucket}}    - S3 bucket for publishing, optional
//
// Values are inserted with the json function so they stay valid inside
// JSON documents and hiccup.toml.
package templates
