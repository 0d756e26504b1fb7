// Package web holds the embedded frontend shell for gator-probe.
package web

import "embed"

// StaticFS contains index.html and the assets it loads.
//
//go:embed static
var StaticFS embed.FS
