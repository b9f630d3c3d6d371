package services

import "errors"

var (
	// ErrAuthFailed covers both unknown username and wrong PIN so a caller
	// can't probe which usernames exist.
	ErrAuthFailed = errors.New("invalid credentials")

	// ErrRejected is returned whenever a ledger operation precondition is
	// unmet. The operation mutates nothing; user-facing messaging is the
	// presentation layer's job.
	ErrRejected = errors.New("operation rejected")

	// ErrNoSession is returned when an operation runs without a logged-in
	// account.
	ErrNoSession = errors.New("no active session")
)
