package model

// Command represents a parsed REPL command with its operation and arguments.
type Command struct {
	Operation string
	Args      []string
	Flags     map[string]bool
}

// HasFlag reports whether the command carried the named --flag.
func (c Command) HasFlag(name string) bool {
	return c.Flags[name]
}
