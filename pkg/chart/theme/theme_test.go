package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0.5rem", 8, false},
		{"1rem", 16, false},
		{"12px", 12, false},
		{" 4 ", 4, false},
		{"1.5", 1.5, false},
		{"", 0, true},
		{"auto", 0, true},
		{"-2px", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseLength(tt.in, RootFontSize)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLength(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLength(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToHex(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#85888d", "#85888d"},
		{"rgb(133, 136, 141)", "#85888d"},
		{"rgba(255,255,255,0.5)", "#ffffff"},
		{"transparent", "transparent"},
	}
	for _, tt := range tests {
		if got := ToHex(tt.in); got != tt.want {
			t.Errorf("ToHex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithAlpha(t *testing.T) {
	tests := []struct {
		in     string
		alpha  float64
		want   string
		wantOK bool
	}{
		{"#000", 0.5, "rgba(0, 0, 0, 0.5)", true},
		{"#d5d6d8", 1, "rgba(213, 214, 216, 1)", true},
		{"rgba(0, 0, 0, 0.15)", 0.5, "rgba(0, 0, 0, 0.5)", true},
		{"red", 0.5, "", false},
	}
	for _, tt := range tests {
		got, ok := WithAlpha(tt.in, tt.alpha)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("WithAlpha(%q, %v) = (%q, %v), want (%q, %v)", tt.in, tt.alpha, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSeriesColor(t *testing.T) {
	tok := Default()
	if got := tok.SeriesColor(0); got != tok.Series[0] {
		t.Errorf("SeriesColor(0) = %q, want %q", got, tok.Series[0])
	}
	if got := tok.SeriesColor(len(tok.Series)); got != tok.Series[0] {
		t.Errorf("SeriesColor(len) = %q, want wrap to %q", got, tok.Series[0])
	}
	if got := (Tokens{}).SeriesColor(3); got != "" {
		t.Errorf("empty palette SeriesColor = %q, want empty", got)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "tokens.toml", "[colors]\naxis = \"#000000\"\n\n[spacing]\ntick_padding = \"0.25rem\"\nlegend_padding = 10\n"},
		{"yaml", "tokens.yaml", "colors:\n  axis: \"#000000\"\nspacing:\n  tick_padding: 0.25rem\n  legend_padding: 10\n"},
		{"json", "tokens.json", `{"colors": {"axis": "#000000"}, "spacing": {"tick_padding": "0.25rem", "legend_padding": 10}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			tok, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if tok.Colors.Axis != "#000000" {
				t.Errorf("Colors.Axis = %q, want #000000", tok.Colors.Axis)
			}
			if tok.Spacing.TickPadding != 4 {
				t.Errorf("Spacing.TickPadding = %v, want 4", tok.Spacing.TickPadding)
			}
			if tok.Spacing.LegendPadding != 10 {
				t.Errorf("Spacing.LegendPadding = %v, want 10", tok.Spacing.LegendPadding)
			}
			if tok.Colors.Gridline != Default().Colors.Gridline {
				t.Errorf("Colors.Gridline = %q, want default", tok.Colors.Gridline)
			}
		})
	}
}
