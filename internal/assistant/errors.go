package assistant

import "errors"

var (
	// ErrLayout reports a structural conflict in the element tree.
	ErrLayout = errors.New("layout error")

	// ErrPageNotOpen is returned by operations that need a live page while no window is open.
	ErrPageNotOpen = errors.New("page not open")

	// ErrTimeout is returned when the window did not close within the allotted time.
	ErrTimeout = errors.New("timeout")

	// ErrSessionActive is returned when Display is called while a window session is running.
	ErrSessionActive = errors.New("window session already active")

	// ErrOperationPending is returned when the mailbox already holds an operation.
	ErrOperationPending = errors.New("operation already pending")

	// ErrNoChangeEvents is returned when a named element does not emit change events.
	ErrNoChangeEvents = errors.New("element does not emit change events")
)
