// Package web embeds the landing page.
package web

import _ "embed"

// IndexHTML is the single-page client served at "/".
//
//go:embed index.html
var IndexHTML []byte
