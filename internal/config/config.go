package config

import (
	"errors"
	"fmt"

	"github.com/rook-computer/codeshot/internal/theme"
)

// ErrInvalid marks configuration values rejected before any drawing starts.
var ErrInvalid = errors.New("invalid configuration")

// Output size limits. Every scaled length must fit MaxDimension and the whole
// canvas must fit MaxCanvasPixels.
const (
	MaxExportSize   = 16
	MaxDimension    = 32768
	MaxScaledFont   = 1024
	MaxCanvasPixels = 64 << 20
)

const (
	FontEngineOpenType = "opentype"
	FontEngineFreeType = "freetype"
)

// RenderConfig holds every option of a single render call.
// Pixel quantities are logical; the export scale is applied at draw time.
type RenderConfig struct {
	Width            uint32  `json:"width" yaml:"width"`
	Height           *uint32 `json:"height,omitempty" yaml:"height,omitempty"`
	Padding          uint32  `json:"padding" yaml:"padding"`
	LineHeight       float32 `json:"line_height" yaml:"line_height"`
	FontSize         float32 `json:"font_size" yaml:"font_size"`
	FontFamily       string  `json:"font_family" yaml:"font_family"`
	BackgroundColor  string  `json:"background_color" yaml:"background_color"`
	WindowControls   bool    `json:"window_controls" yaml:"window_controls"`
	WindowTitle      *string `json:"window_title,omitempty" yaml:"window_title,omitempty"`
	LineNumbers      bool    `json:"line_numbers" yaml:"line_numbers"`
	DropShadow       bool    `json:"drop_shadow" yaml:"drop_shadow"`
	BorderRadius     float32 `json:"border_radius" yaml:"border_radius"`
	ExportSize       float32 `json:"export_size" yaml:"export_size"`
	PanelPadding     uint32  `json:"panel_padding" yaml:"panel_padding"`
	GradientBackdrop bool    `json:"gradient_backdrop" yaml:"gradient_backdrop"`
	NoiseEffect      bool    `json:"noise_effect" yaml:"noise_effect"`

	FontPath   string `json:"font_path,omitempty" yaml:"font_path,omitempty"`
	FontEngine string `json:"font_engine,omitempty" yaml:"font_engine,omitempty"`
	TabWidth   uint32 `json:"tab_width" yaml:"tab_width"`
	SourceURL  string `json:"source_url,omitempty" yaml:"source_url,omitempty"`
}

// Default returns the documented defaults: a 1200 wide panel at 2x export
// with chrome, gradient backdrop and noise enabled.
func Default() RenderConfig {
	return RenderConfig{
		Width:            1200,
		Padding:          64,
		LineHeight:       1.25,
		FontSize:         18,
		FontFamily:       "Fira Code",
		BackgroundColor:  "#1e1e1e",
		WindowControls:   true,
		DropShadow:       true,
		BorderRadius:     8,
		ExportSize:       2,
		PanelPadding:     80,
		GradientBackdrop: true,
		NoiseEffect:      true,
		FontEngine:       FontEngineOpenType,
		TabWidth:         4,
	}
}

// Validate reports the first rejected field wrapped in ErrInvalid.
func (c RenderConfig) Validate() error {
	switch {
	case c.Width == 0:
		return fmt.Errorf("%w: width must be positive", ErrInvalid)
	case c.Height != nil && *c.Height == 0:
		return fmt.Errorf("%w: height must be positive when set", ErrInvalid)
	case !(c.ExportSize > 0):
		return fmt.Errorf("%w: export_size must be positive (got %v)", ErrInvalid, c.ExportSize)
	case !(c.FontSize > 0):
		return fmt.Errorf("%w: font_size must be positive (got %v)", ErrInvalid, c.FontSize)
	case !(c.LineHeight > 0):
		return fmt.Errorf("%w: line_height must be positive (got %v)", ErrInvalid, c.LineHeight)
	case c.BorderRadius < 0:
		return fmt.Errorf("%w: border_radius must not be negative", ErrInvalid)
	case c.ExportSize > MaxExportSize:
		return fmt.Errorf("%w: export_size must be at most %d (got %v)", ErrInvalid, MaxExportSize, c.ExportSize)
	case float64(c.FontSize)*float64(c.ExportSize) > MaxScaledFont:
		return fmt.Errorf("%w: font_size scaled by export_size exceeds %d", ErrInvalid, MaxScaledFont)
	}
	type length struct {
		name string
		v    uint32
	}
	lengths := []length{{"width", c.Width}, {"padding", c.Padding}, {"panel_padding", c.PanelPadding}}
	if c.Height != nil {
		lengths = append(lengths, length{"height", *c.Height})
	}
	for _, l := range lengths {
		if float64(l.v)*float64(c.ExportSize) > MaxDimension {
			return fmt.Errorf("%w: %s scaled by export_size exceeds %d pixels", ErrInvalid, l.name, MaxDimension)
		}
	}
	if _, err := theme.ParseHex(c.BackgroundColor); err != nil {
		return fmt.Errorf("%w: background_color: %w", ErrInvalid, err)
	}
	switch c.FontEngine {
	case "", FontEngineOpenType, FontEngineFreeType:
	default:
		return fmt.Errorf("%w: unknown font_engine %q", ErrInvalid, c.FontEngine)
	}
	return nil
}

// Background returns the parsed background color. Call Validate first.
func (c RenderConfig) Background() theme.Color {
	bg, err := theme.ParseHex(c.BackgroundColor)
	if err != nil {
		return theme.Color{R: 0x1e, G: 0x1e, B: 0x1e}
	}
	return bg
}

// ActualWidth is the panel width in output pixels.
func (c RenderConfig) ActualWidth() uint32 {
	return uint32(float32(c.Width) * c.ExportSize)
}

// ActualHeight is the panel height in output pixels. An explicit Height wins
// over the content-driven total.
func (c RenderConfig) ActualHeight(total uint32) uint32 {
	height := total
	if c.Height != nil {
		height = *c.Height
	}
	return uint32(float32(height) * c.ExportSize)
}

func (c RenderConfig) ScaledPadding() uint32 {
	return uint32(float32(c.Padding) * c.ExportSize)
}

func (c RenderConfig) ScaledFontSize() float32 {
	return c.FontSize * c.ExportSize
}

func (c RenderConfig) ScaledPanelPadding() uint32 {
	return uint32(float32(c.PanelPadding) * c.ExportSize)
}

// Scale multiplies a logical length by the export factor, truncating.
func (c RenderConfig) Scale(v float32) int {
	return int(v * c.ExportSize)
}

// Title returns the window title, or "" when none is set.
func (c RenderConfig) Title() string {
	if c.WindowTitle == nil {
		return ""
	}
	return *c.WindowTitle
}
