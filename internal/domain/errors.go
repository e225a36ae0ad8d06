package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Transfer errors
	ErrInvalidAmount = errors.New("amount must be positive")

	// Gateway errors
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrMalformedResponse = errors.New("malformed response body")
	ErrNoToken           = errors.New("auth response did not contain a token")
)
