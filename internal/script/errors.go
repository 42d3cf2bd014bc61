package script

import "fmt"

// ConfigErrorKind identifies the kind of configuration record that was
// not recognized.
type ConfigErrorKind int

const (
	// UnknownFilterKind: a filter descriptor named no built-in filter.
	UnknownFilterKind ConfigErrorKind = iota
	// UnknownActionKind: an action record named no built-in action.
	UnknownActionKind
)

// ConfigError reports an unrecognized tagged record in a script file.
// Unknown kinds fail the load; they are never silently ignored.
type ConfigError struct {
	Kind ConfigErrorKind
	Name string
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case UnknownFilterKind:
		return fmt.Sprintf("unknown filter kind %q", e.Name)
	case UnknownActionKind:
		return fmt.Sprintf("unknown action kind %q", e.Name)
	}
	return fmt.Sprintf("config error %d: %q", int(e.Kind), e.Name)
}
