package dag

import (
	"fmt"
	"strings"
)

// CycleError reports a dependency cycle reachable from the requested root.
// Path holds the names from the root to the repeated node, which appears
// again at the end.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Path, " -> "))
}
