package shell

// Exported for testing.
var (
	NewLineWriter      = newLineWriter
	ResolveEnvironment = resolveEnvironment
	LookPath           = lookPath
)
