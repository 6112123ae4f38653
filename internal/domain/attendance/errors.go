package attendance

import "errors"

// Clock event domain errors
var (
	ErrAlreadyClockedIn = errors.New("an open clock-in already exists")
	ErrNotClockedIn     = errors.New("no open clock-in to close")
	ErrEventNotFound    = errors.New("clock event not found")
)
