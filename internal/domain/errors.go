package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Catalog errors
	ErrMsgItemNotFound = "item not found"

	// Session errors
	ErrMsgSessionNotActive  = "session is not active"
	ErrMsgUnknownCharacter  = "unknown character"
	ErrMsgSendInFlight      = "a message is already in flight"
	ErrMsgEmptyMessage      = "message is empty"

	// Developer command errors
	ErrMsgInvalidCommand   = "unknown command"
	ErrMsgValueOutOfRange  = "value out of range"
	ErrMsgValueNotNumeric  = "value is not a number"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Catalog errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Session errors
	ErrSessionNotActive = errors.New(ErrMsgSessionNotActive)
	ErrUnknownCharacter = errors.New(ErrMsgUnknownCharacter)
	ErrSendInFlight     = errors.New(ErrMsgSendInFlight)
	ErrEmptyMessage     = errors.New(ErrMsgEmptyMessage)

	// Developer command errors
	ErrInvalidCommand  = errors.New(ErrMsgInvalidCommand)
	ErrValueOutOfRange = errors.New(ErrMsgValueOutOfRange)
	ErrValueNotNumeric = errors.New(ErrMsgValueNotNumeric)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
