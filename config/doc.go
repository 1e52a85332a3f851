// Package config loads vlist configuration and builds the program logger.
//
// Defaults live in the embedded config.yaml.tmpl, which is expanded with
// gencfg before use. A user file is decoded on top of the defaults with
// unknown keys rejected, then sanitized and validated.
package config
