package theme

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chartfit/pkg/errors"
)

// RootFontSize is the pixel size of 1rem.
const RootFontSize = 16

var lengthPattern = regexp.MustCompile(`^([\d.]+)\s*(rem|px)?$`)

// ParseLength converts a CSS length ("0.5rem", "12px", "12") to pixels,
// using root as the size of 1rem.
func ParseLength(s string, root float64) (float64, error) {
	m := lengthPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, errors.New(errors.ErrCodeInvalidFormat, "invalid length %q", s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid length %q", s)
	}
	if m[2] == "rem" {
		v *= root
	}
	return v, nil
}

// Length is a pixel size that token files may give as a number or as a CSS
// length string.
type Length float64

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Length) UnmarshalText(b []byte) error {
	v, err := ParseLength(string(b), RootFontSize)
	if err != nil {
		return err
	}
	*l = Length(v)
	return nil
}

// UnmarshalJSON accepts a JSON number or a CSS length string.
func (l *Length) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*l = Length(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "length must be a number or string")
	}
	return l.UnmarshalText([]byte(s))
}

// UnmarshalYAML accepts a YAML number or a CSS length string.
func (l *Length) UnmarshalYAML(n *yaml.Node) error {
	return l.UnmarshalText([]byte(n.Value))
}
