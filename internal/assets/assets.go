// Package assets holds data compiled into the binary.
package assets

import "golang.org/x/image/font/gofont/gomono"

// FontTTF is the last-resort monospace font.
var FontTTF = gomono.TTF
