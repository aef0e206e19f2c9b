package render

import "github.com/rook-computer/codeshot/internal/theme"

// Panel chrome, in logical units before export scaling.
const (
	ControlRadius       = 6
	ControlSpacing      = 20
	LineNumberGap       = 10
	titleBarDarken      = 0.1
	titleBaselineFactor = 0.35
)

// Window control colors do not follow the theme.
var (
	ControlClose    = theme.MustParseHex("#ff5f56")
	ControlMinimize = theme.MustParseHex("#ffbd2e")
	ControlZoom     = theme.MustParseHex("#27ca3f")
)

// Backdrop tuning.
const (
	backdropBrightness = 60
	backdropJitter     = 30
	noiseStrength      = 15
)

// Drop shadow tuning.
const (
	shadowLayers = 6
	shadowOffset = 8
	shadowSpread = 2
	shadowAlpha  = 14
)
