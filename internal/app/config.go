package app

// Config holds all the configuration an App instance needs to run.
type Config struct {
	PipelinePath string
	DataPath     string
	Mode         string
	Outputs      []string
	LogFormat    string
	LogLevel     string
}
