// Package config loads hiccup.toml, the project configuration.
//
// Every key is optional; missing keys keep the defaults from New.
//
// # Configuration File Structure
//
//	[server]
//	host = "localhost"
//	port = 3000
//	root = "site"
//	reload = true
//	reload_interval = "250ms"
//	watch = ["styles"]
//
//	[page]
//	lang = "en"
//	title = "My Site"
//
//	[render]
//	max_depth = 1024
//
//	[publish]
//	bucket = "my-site"
//	prefix = "www"
//	region = "eu-west-1"
//	concurrency = 8
//	output_dir = "dist"
//
//	[metrics]
//	enabled = true
//	namespace = "hiccup"
//
//	[log]
//	level = "info"
//	format = "text"
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
