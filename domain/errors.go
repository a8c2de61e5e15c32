package domain

import "errors"

// ErrDuplicateSession is returned when a caller-supplied session id is
// already in use.
var ErrDuplicateSession = errors.New("session id already exists")

// ErrSessionNotFound is returned when a session does not exist or has
// expired. The prescribed recovery is starting a new session.
var ErrSessionNotFound = errors.New("session not found")
