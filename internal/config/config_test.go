package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func uint32Ptr(v uint32) *uint32 { return &v }
func stringPtr(v string) *string { return &v }

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := cfg.ActualWidth(); got != 2400 {
		t.Errorf("ActualWidth() = %d, want 2400", got)
	}
	if got := cfg.ScaledPanelPadding(); got != 160 {
		t.Errorf("ScaledPanelPadding() = %d, want 160", got)
	}
	if got := cfg.ScaledPadding(); got != 128 {
		t.Errorf("ScaledPadding() = %d, want 128", got)
	}
	if got := cfg.ScaledFontSize(); got != 36 {
		t.Errorf("ScaledFontSize() = %v, want 36", got)
	}
	if cfg.Title() != "" {
		t.Errorf("Title() = %q, want empty", cfg.Title())
	}
}

func TestActualHeight(t *testing.T) {
	cfg := Default()
	if got := cfg.ActualHeight(300); got != 600 {
		t.Errorf("auto ActualHeight(300) = %d, want 600", got)
	}
	cfg.Height = uint32Ptr(500)
	if got := cfg.ActualHeight(300); got != 1000 {
		t.Errorf("explicit ActualHeight(300) = %d, want 1000", got)
	}
	cfg.ExportSize = 1.5
	if got := cfg.ActualHeight(0); got != 750 {
		t.Errorf("ActualHeight at 1.5x = %d, want 750", got)
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*RenderConfig)
		ok     bool
	}{
		{"width at the limit", func(c *RenderConfig) { c.Width = MaxDimension / 2 }, true},
		{"width overflowing when scaled", func(c *RenderConfig) { c.Width = 3_000_000_000 }, false},
		{"width past the limit", func(c *RenderConfig) { c.Width = MaxDimension/2 + 1 }, false},
		{"height past the limit", func(c *RenderConfig) { c.Height = uint32Ptr(MaxDimension) }, false},
		{"padding past the limit", func(c *RenderConfig) { c.Padding = MaxDimension }, false},
		{"panel padding past the limit", func(c *RenderConfig) { c.PanelPadding = MaxDimension }, false},
		{"export size past the limit", func(c *RenderConfig) { c.ExportSize = MaxExportSize + 1 }, false},
		{"font size past the limit", func(c *RenderConfig) { c.FontSize = MaxScaledFont }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want func() RenderConfig
	}{
		{
			name: "empty body keeps defaults",
			in:   "",
			want: Default,
		},
		{
			name: "empty object keeps defaults",
			in:   "{}",
			want: Default,
		},
		{
			name: "partial override",
			in:   `{"width": 800, "line_numbers": true, "window_title": "main.rs", "unknown_field": 1}`,
			want: func() RenderConfig {
				cfg := Default()
				cfg.Width = 800
				cfg.LineNumbers = true
				cfg.WindowTitle = stringPtr("main.rs")
				return cfg
			},
		},
		{
			name: "explicit height and disabled effects",
			in:   `{"height": 400, "gradient_backdrop": false, "noise_effect": false, "export_size": 1}`,
			want: func() RenderConfig {
				cfg := Default()
				cfg.Height = uint32Ptr(400)
				cfg.GradientBackdrop = false
				cfg.NoiseEffect = false
				cfg.ExportSize = 1
				return cfg
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSON([]byte(tt.in))
			if err != nil {
				t.Fatalf("ParseJSON error: %v", err)
			}
			if diff := cmp.Diff(tt.want(), got); diff != "" {
				t.Errorf("ParseJSON mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseJSONInvalid(t *testing.T) {
	for _, in := range []string{
		`{"width": "wide"}`,
		`{"background_color": "#12345"}`,
		`{"background_color": "zzzzzz"}`,
		`{"width": 0}`,
		`{"export_size": 0}`,
		`{"font_size": -1}`,
		`{"height": 0}`,
		`{"font_engine": "cairo"}`,
		`not json`,
	} {
		if _, err := ParseJSON([]byte(in)); !errors.Is(err, ErrInvalid) {
			t.Errorf("ParseJSON(%s) error = %v, want ErrInvalid", in, err)
		}
	}
}

func TestParseYAML(t *testing.T) {
	in := `
width: 640
padding: 32
line_numbers: true
background_color: "#000000"
font_engine: freetype
`
	got, err := ParseYAML([]byte(in))
	if err != nil {
		t.Fatalf("ParseYAML error: %v", err)
	}
	want := Default()
	want.Width = 640
	want.Padding = 32
	want.LineNumbers = true
	want.BackgroundColor = "#000000"
	want.FontEngine = FontEngineFreeType
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseYAML mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromConfigHome(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(EnvConfigHome, tmpDir)

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load without file: %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Load without file should return defaults (-want +got):\n%s", diff)
	}

	dir := filepath.Join(tmpDir, "codeshot")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("width: 900\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Width != 900 {
		t.Errorf("Width = %d, want 900", got.Width)
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := os.WriteFile(path, []byte(`{"font_size": 24}`), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.FontSize != 24 {
		t.Errorf("FontSize = %v, want 24", got.FontSize)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("LoadFile on a missing file should fail")
	}
}
