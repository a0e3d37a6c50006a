package model

import "errors"

// ErrNotFound is returned when a requested record does not exist or is not
// visible to the caller. Ownership mismatches map to the same error so that
// someone else's note is indistinguishable from a missing one.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write violates a uniqueness constraint,
// such as two concurrent registrations racing on the same email.
var ErrConflict = errors.New("conflict")
