package checkout

type Status string

const (
	StatusIdle             Status = "IDLE"
	StatusSessionRequested Status = "SESSION_REQUESTED"
	StatusRedirecting      Status = "REDIRECTING"
	StatusSucceeded        Status = "SUCCEEDED"
	StatusCancelled        Status = "CANCELLED"
	StatusFailed           Status = "FAILED"
)

// allowedTransitions maps each status to the statuses it may move to.
// Terminal attempt outcomes loop back to IDLE so the user can start a
// fresh checkout manually. REDIRECTING also permits a new
// SESSION_REQUESTED: a user who abandons the hosted payment page never
// reaches the success or cancel destinations, and their next checkout
// is treated as implicit abandonment of the stale attempt.
var allowedTransitions = map[Status][]Status{
	StatusIdle:             {StatusSessionRequested},
	StatusSessionRequested: {StatusRedirecting, StatusFailed},
	StatusRedirecting:      {StatusSucceeded, StatusCancelled, StatusSessionRequested},
	StatusSucceeded:        {StatusIdle},
	StatusCancelled:        {StatusIdle},
	StatusFailed:           {StatusIdle},
}

// CanTransitionTo reports whether moving from one status to another is allowed.
func CanTransitionTo(from, to Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status ends a checkout attempt.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusCancelled || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
