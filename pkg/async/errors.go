package async

import "errors"

var (
	ErrTimeout   = errors.New("async: timeout waiting for result")
	ErrNoFutures = errors.New("async: no futures provided")
)
