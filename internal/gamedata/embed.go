// Package gamedata embeds the monster definition data and provides typed
// loaders and a spawn registry over it.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
