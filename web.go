//go:build !tinygo

package pitchfork

import "embed"

// WebFS holds the web assets shared by all things: the websocket
// helper, the head template, and base styles.  Things layer their own
// assets on top with a CompositeFS.
//
//go:embed web
var WebFS embed.FS
