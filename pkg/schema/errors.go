package schema

import "fmt"

// ValidationError reports a single failed check with the dotted path of the
// offending field. Array elements appear as numeric path segments.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Reason
	}

	return fmt.Sprintf("[%s]: %s", e.Path, e.Reason)
}

func newError(path, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}

	return parent + "." + key
}
