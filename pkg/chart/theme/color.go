package theme

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	rgbPattern = regexp.MustCompile(`rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)`)
	hexPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// ToHex converts an rgb()/rgba() color to #rrggbb. Hex colors and anything
// unrecognized are returned unchanged.
func ToHex(color string) string {
	if strings.HasPrefix(color, "#") {
		return color
	}
	m := rgbPattern.FindStringSubmatch(color)
	if m == nil {
		return color
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, c := range m[1:] {
		n, _ := strconv.Atoi(c)
		fmt.Fprintf(&b, "%02x", min(n, 255))
	}
	return b.String()
}

// WithAlpha returns color as rgba() with the given alpha. It accepts
// rgb()/rgba() and 3 or 6 digit hex colors; ok is false for anything else.
func WithAlpha(color string, alpha float64) (string, bool) {
	color = strings.TrimSpace(color)
	if m := rgbPattern.FindStringSubmatch(color); m != nil {
		return fmt.Sprintf("rgba(%s, %s, %s, %s)", m[1], m[2], m[3], formatAlpha(alpha)), true
	}
	m := hexPattern.FindStringSubmatch(color)
	if m == nil {
		return "", false
	}
	hex := m[1]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	r, _ := strconv.ParseUint(hex[0:2], 16, 8)
	g, _ := strconv.ParseUint(hex[2:4], 16, 8)
	bl, _ := strconv.ParseUint(hex[4:6], 16, 8)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, bl, formatAlpha(alpha)), true
}

func formatAlpha(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}
