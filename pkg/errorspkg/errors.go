// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// ErrStoreUnavailable indicates that a balance store access failed.
// It is surfaced to users as a generic "try again" failure.
var ErrStoreUnavailable = errors.New("store unavailable")
