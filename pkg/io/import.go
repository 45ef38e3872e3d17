package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chartfit/pkg/errors"
)

// Format identifies a file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateSpecFilename(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatJSON, nil
	}
}

// Read decodes r into v using format f. Keys absent from the input leave the
// corresponding fields of v untouched. Read does not close r.
func Read(r io.Reader, f Format, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "read input")
	}
	return Decode(data, f, v)
}

// Decode decodes data into v using format f.
func Decode(data []byte, f Format, v any) error {
	var err error
	switch f {
	case FormatTOML:
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(v)
	case FormatYAML:
		err = yaml.Unmarshal(data, v)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(v)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported format %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	return nil
}

// ImportFile reads the file at path and decodes it into v, choosing the
// decoder from the extension. Missing files yield FILE_NOT_FOUND; syntax
// errors yield INVALID_FORMAT.
func ImportFile(path string, v any) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	if err := Decode(data, f, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", path)
	}
	return nil
}
