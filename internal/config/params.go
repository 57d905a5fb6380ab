package config

const (
	// BinaryName is the name of the CLI binary.
	BinaryName = "ocpplayer"

	// EnvPrefix is the environment variable prefix used by the config system.
	// Example: OCPP_HOME, OCPP_DECK_SIZE, OCPP_STORE_BACKEND.
	EnvPrefix = "OCPP"

	// ConfigFileName is read from the home directory when present.
	ConfigFileName = "config.toml"

	// DefaultHome is relative to the working directory.
	DefaultHome = ".ocpplayer"
)
