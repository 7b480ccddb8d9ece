package main

// Exit codes used by all scholar commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing site.yml, invalid paths)
	ExitDataError   = 3 // Data error (malformed bibliography or data files)
)
