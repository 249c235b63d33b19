package domain

import "errors"

var (
	// ErrDuplicateSession is returned when a connection claims an identity
	// already bound to a different live connection. The newcomer is refused,
	// the incumbent keeps its session.
	ErrDuplicateSession = errors.New("user already logged in from another session")
)
