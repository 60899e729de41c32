// Package assets embeds the data files shipped with the binary.
package assets

import "embed"

// Bombs holds the bomb layouts under bombs/.
//
//go:embed bombs/*.json
var Bombs embed.FS
