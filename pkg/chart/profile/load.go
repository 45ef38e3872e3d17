package profile

import (
	"github.com/matzehuels/chartfit/pkg/errors"
	"github.com/matzehuels/chartfit/pkg/io"
)

// Load reads a profile file (TOML, YAML or JSON by extension) on top of
// [Default] and validates the result. Fields the file leaves out keep their
// default values.
func Load(path string) (*Profile, error) {
	p := Default()
	if err := io.ImportFile(path, p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "profile %s", path)
	}
	return p, nil
}

// LoadOrDefault loads the profile at path, or returns [Default] when path is empty.
func LoadOrDefault(path string) (*Profile, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
