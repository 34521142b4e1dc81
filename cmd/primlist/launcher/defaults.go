package launcher

// DefaultConfig returns the configuration used when neither a config file
// nor a flag overrides a value.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Format:    "text",
			Verbosity: 3,
		},
		Encode: EncodeConfig{
			Kind:     "long",
			Format:   "parcel",
			Compress: "none",
		},
	}
}
