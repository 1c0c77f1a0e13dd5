// Package publish renders documents and stores the resulting HTML.
//
// A Publisher renders pages concurrently and hands each result to a
// Store. Two stores are provided:
//
//   - DirStore writes files below a local directory
//   - S3Store uploads objects to an S3 bucket
//
// Example:
//
//	pages, err := publish.Collect("site")
//	client, err := publish.NewS3Client(publish.S3Options{Region: "eu-central-1"})
//	store, err := publish.NewS3Store(client, "my-bucket", "www/")
//	n, err := publish.NewPublisher(publish.Config{Store: store}).Publish(ctx, pages)
package publish
