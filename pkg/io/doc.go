// Package io reads and writes the files chartfit works with: chart specs,
// tuning profiles and theme token files.
//
// # Formats
//
// The decoder is picked from the file extension:
//
//   - .toml: github.com/BurntSushi/toml
//   - .yaml, .yml: gopkg.in/yaml.v3
//   - .json: encoding/json
//
// Decoding happens on top of whatever the target already holds, so callers
// pre-populate defaults and let the file override only the keys it sets:
//
//	p := profile.Default()
//	if err := io.ImportFile("profile.toml", p); err != nil {
//	    return err
//	}
//
// # Output
//
// Built chart configurations are always written as indented JSON with
// [WriteJSON] or [ExportJSON], the shape a chart library consumes. [Write]
// encodes profiles and themes back into any of the three formats.
package io
