package logging

// Config is the "logging" section of jwtview.yml.
type Config struct {
	// Level is the minimum level to output ("debug", "info", "warn", "error").
	// JWTVIEW_LOG_LEVEL overrides it.
	Level string `yaml:"level"`

	// ReportCaller includes file, line and function in each entry.
	// JWTVIEW_LOG_CALLER=true enables it too.
	ReportCaller bool `yaml:"report_caller"`

	File   FileSinkConfig `yaml:"file"`
	Format FormatConfig   `yaml:"format"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	Enabled bool   `yaml:"enabled"`
	// Path defaults to $XDG_STATE_HOME/jwtview/logs/jwtview.log.
	Path    string `yaml:"path"`
	Format  string `yaml:"format,omitempty"` // "text" (default) or "json"
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset is "default", "simple" or "json".
	Preset           string `yaml:"preset"`
	DisableTimestamp bool   `yaml:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component"`
	// StructuredToStderr is "auto" (default), "always" or "never". In auto
	// mode entries reach stderr only with debug on or when stderr is not a
	// terminal, so they never draw over the viewer.
	StructuredToStderr string `yaml:"structured_to_stderr"`
}
