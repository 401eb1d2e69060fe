package identity

import "errors"

// Sentinel kinds for identity errors.
var (
	ErrUnresolved = errors.New("user unresolved")
)
