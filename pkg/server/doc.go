// Package server is the preview server: it renders data-literal documents
// from a directory on every request.
//
// A request for /blog/post renders site/blog/post.json (or .msgpack, .mp);
// a request for a directory renders its index document. Other files are
// served as they are, so stylesheets and images next to the documents work.
//
//	srv := server.New(&server.ServerConfig{
//	    Address: ":3000",
//	    Root:    "site",
//	    Metrics: true,
//	    Reload:  true,
//	})
//	err := srv.Run(ctx)
//
// Documents that fail to decode or render answer 422 with the error text;
// the failure is also recorded for the metrics and tracing middleware.
package server
