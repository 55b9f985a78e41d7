// Package configs provides the embedded configuration template for wikigen.
//
// The template is embedded at build time with go:embed so it ships inside
// the binary regardless of how wikigen is installed. It is written to
// .wikigen.yaml by `wikigen init` and documents every setting with its
// default; see internal/config for the load order (defaults, file,
// WIKIGEN_* environment overrides).
package configs

import _ "embed"

// ConfigTemplate is the annotated project configuration written by
// `wikigen init`.
//
//go:embed config.example.yaml
var ConfigTemplate string
