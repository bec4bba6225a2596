package domain

import "errors"

var (
	ErrInputSelection          = errors.New("exactly one input type must be provided")
	ErrDesignNotFound          = errors.New("design not found")
	ErrInputTooShort           = errors.New("free text input is too short")
	ErrNoRecognizableData      = errors.New("no recognizable design data in text")
	ErrOracleUnavailable       = errors.New("validation oracle unavailable")
	ErrMalformedOracleResponse = errors.New("malformed oracle response")
)
