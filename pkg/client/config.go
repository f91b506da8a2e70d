package client

// Config is the effective configuration of a single request.
type Config struct {
	// CORS adds the Access-Control-Allow-Origin header and marks the request mode as "cors".
	CORS bool
	// ExtraHeaders are merged over the default headers.
	ExtraHeaders map[string]string
	// UseDefaultHeaders controls whether the JSON Accept and Content-Type headers are sent.
	UseDefaultHeaders bool
}

// PartialConfig is the caller-supplied configuration. Nil fields are absent
// and fall back to the defaults.
type PartialConfig struct {
	CORS              *bool
	ExtraHeaders      map[string]string
	UseDefaultHeaders *bool
}

// ConfigOption sets one field of a PartialConfig.
type ConfigOption func(*PartialConfig)

// CORS enables or disables cross-origin mode for the request.
func CORS(enabled bool) ConfigOption {
	return func(p *PartialConfig) {
		p.CORS = &enabled
	}
}

// ExtraHeaders replaces the request's extra headers with headers.
func ExtraHeaders(headers map[string]string) ConfigOption {
	return func(p *PartialConfig) {
		p.ExtraHeaders = headers
	}
}

// UseDefaultHeaders toggles the default JSON headers.
func UseDefaultHeaders(enabled bool) ConfigOption {
	return func(p *PartialConfig) {
		p.UseDefaultHeaders = &enabled
	}
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		CORS:              false,
		ExtraHeaders:      map[string]string{},
		UseDefaultHeaders: true,
	}
}

// Resolve merges p over the defaults field by field. ExtraHeaders is taken
// wholesale from p when present; it is neither copied nor merged key by key.
func Resolve(p PartialConfig) Config {
	cfg := DefaultConfig()

	if p.CORS != nil {
		cfg.CORS = *p.CORS
	}
	if p.ExtraHeaders != nil {
		cfg.ExtraHeaders = p.ExtraHeaders
	}
	if p.UseDefaultHeaders != nil {
		cfg.UseDefaultHeaders = *p.UseDefaultHeaders
	}

	return cfg
}

// ResolveOptions applies opts to an empty PartialConfig and resolves it.
func ResolveOptions(opts ...ConfigOption) Config {
	var p PartialConfig
	for _, opt := range opts {
		opt(&p)
	}
	return Resolve(p)
}
