package logging

// Config defines the logging section of the todos config file.
type Config struct {
	// Level is the minimum level to output ("debug", "info", "warn", "error").
	// TODOS_LOG_LEVEL overrides it.
	Level string `koanf:"level"`

	// Format is "text" (default) or "json".
	Format string `koanf:"format"`

	// File, when set, receives every log line in addition to stderr.
	File string `koanf:"file"`

	// Stderr is "auto" (default), "always" or "never". In auto mode
	// structured logs only reach stderr when debugging or when stderr is not
	// a terminal, since the interactive list owns the screen.
	Stderr string `koanf:"stderr"`
}
