package testutil

import "errors"

// ErrSimulated is returned by test doubles to drive error paths.
var ErrSimulated = errors.New("simulated error for testing")
