package sim

import "errors"

// ErrInvalidConfig is returned when a Scheduler is constructed from a
// configuration that fails validation (for example zero CPU cores).
var ErrInvalidConfig = errors.New("invalid scheduler config")

// ErrInvalidTransition marks a lifecycle transition the state machine
// does not allow, such as admitting a non-New thread or touching a
// Terminated one. The Scheduler's own call order never produces these;
// they surface only when transitions are invoked directly.
var ErrInvalidTransition = errors.New("invalid thread state transition")
