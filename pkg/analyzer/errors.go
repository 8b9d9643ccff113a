package analyzer

import (
	"errors"
	"fmt"
)

// Package-level error definitions for token analysis.
var (
	ErrFormat        = errors.New("invalid token format")
	ErrPartCount     = errors.New("expected 3 parts")
	ErrMalformedJSON = errors.New("malformed JSON")
	ErrDecode        = errors.New("invalid segment encoding")
	ErrTruncated     = errors.New("truncated segment")
	ErrInvalidUTF8   = errors.New("segment is not valid UTF-8")
	ErrInvalidExp    = errors.New("exp claim is not a valid timestamp")
	ErrMAC           = errors.New("mac computation failed")
)

// FormatError reports a token that does not have the compact
// header.payload.signature shape or whose segments are not JSON objects.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	return ErrFormat.Error() + ": " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is makes every FormatError match ErrFormat.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// DecodeError reports a segment that is not valid base64url.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", ErrDecode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes every DecodeError match ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
