package repository

import "errors"

// Domain-specific errors for the persistence layer. Not-found is a domain
// outcome, not a store failure: the resilient gateways pass these through
// untouched instead of falling back to the volatile store.
var (
	// ErrMemberNotFound is returned when a member is not found.
	ErrMemberNotFound = errors.New("member not found")
	// ErrAttendanceNotFound is returned when an attendance record is not found.
	ErrAttendanceNotFound = errors.New("attendance record not found")
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrDirectoryUserNotFound is returned when a directory user is not found.
	ErrDirectoryUserNotFound = errors.New("directory user not found")
)

// IsNotFound reports whether err is one of the gateway not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMemberNotFound) ||
		errors.Is(err, ErrAttendanceNotFound) ||
		errors.Is(err, ErrNotificationNotFound) ||
		errors.Is(err, ErrDirectoryUserNotFound)
}
