package domain

import "errors"

// Policy and lookup failures surfaced by the usecases. Handlers map these to
// HTTP statuses; anything not in this list is an infrastructure fault.
var (
	ErrNotFound                   = errors.New("not found")
	ErrInvalidCapacity            = errors.New("capacity must be at least 1")
	ErrCapacityExceeded           = errors.New("room is full")
	ErrExitLimitExceeded          = errors.New("lifetime room exit limit reached")
	ErrCreatorMustTransferOrClose = errors.New("creator must hand over or close the room before leaving")
	ErrNotMember                  = errors.New("user is not a member of the room")
	ErrForbidden                  = errors.New("forbidden")
	ErrStoreUnavailable           = errors.New("store unavailable")
)
