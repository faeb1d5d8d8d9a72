package testutil

// StaticLocator is a locator with fixed answers.
type StaticLocator struct {
	Command string
	Script  string
}

func (s StaticLocator) CommandPath() string { return s.Command }
func (s StaticLocator) ScriptPath() string  { return s.Script }
