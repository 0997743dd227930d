// Package docs bundles the long-form guide with the plz binary.
package docs

import "embed"

// FS contains the Markdown guide served by 'plz docs'.
//
//go:embed guide
var FS embed.FS
