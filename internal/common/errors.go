package common

import "errors"

// ErrNoSession indicates an operation that needs a stored session was
// invoked while no user is logged in.
var ErrNoSession = errors.New("no active session")
