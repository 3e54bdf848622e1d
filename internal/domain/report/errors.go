package report

import (
	"errors"
	"fmt"
)

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidSideEffect = errors.New("invalid cagnotte action")
)

// InvalidTransitionError is returned when an action is attempted from a
// status that does not allow it, carrying both so the caller can render a
// precise message.
type InvalidTransitionError struct {
	Status Status
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("action %q is not allowed on a report with status %q", e.Action, e.Status)
}
