// Package static bundles the web UI so the server works out of the box
// without a separate asset directory.
package static

import "embed"

//go:embed index.html app.js style.css
var FS embed.FS
