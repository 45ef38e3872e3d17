package cache

// Keyer generates cache keys. Implementations must be deterministic: equal
// inputs always produce equal keys.
type Keyer interface {
	// SizingKey identifies a sizing result. mode names the estimator
	// ("horizontal" or "responsive"); request is any JSON-encodable value
	// holding every input of the computation.
	SizingKey(mode string, request any, opts SizingKeyOpts) string

	// ConfigKey identifies a built chart configuration for a spec.
	ConfigKey(specHash string, opts ConfigKeyOpts) string
}

// SizingKeyOpts holds the inputs of a sizing result besides the request.
type SizingKeyOpts struct {
	ProfileHash string `json:"profile"`
}

// ConfigKeyOpts holds the inputs of a chart configuration besides the spec.
type ConfigKeyOpts struct {
	ProfileHash string `json:"profile"`
	TokensHash  string `json:"tokens"`
	Compact     bool   `json:"compact,omitempty"`
}

// DefaultKeyer hashes every input into a prefixed SHA-256 key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SizingKey returns "sizing:<mode>:<hash>".
func (DefaultKeyer) SizingKey(mode string, request any, opts SizingKeyOpts) string {
	return hashKey("sizing:"+mode, request, opts)
}

// ConfigKey returns "config:<hash>".
func (DefaultKeyer) ConfigKey(specHash string, opts ConfigKeyOpts) string {
	return hashKey("config", specHash, opts)
}

var _ Keyer = DefaultKeyer{}
