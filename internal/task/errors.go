package task

import "fmt"

// DuplicateTargetError reports a second registration under an existing name.
type DuplicateTargetError struct {
	Name string
}

func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("target %q is already registered", e.Name)
}

// UnknownTargetError reports a name that is not in the registry. Referrer is
// set when the name was reached through another target's dependency list.
type UnknownTargetError struct {
	Name     string
	Referrer string
}

func (e *UnknownTargetError) Error() string {
	if e.Referrer != "" {
		return fmt.Sprintf("unknown target %q (required by %q)", e.Name, e.Referrer)
	}
	return fmt.Sprintf("unknown target %q", e.Name)
}
