// Package web embeds the gallery frontend served by the webserver.
package web

import "embed"

// Assets holds the built frontend under dist/.
//
//go:embed dist
var Assets embed.FS
