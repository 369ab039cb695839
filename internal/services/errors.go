package services

import "errors"

var (
	// ErrInvalidPrice is returned for an item with a negative price.
	ErrInvalidPrice = errors.New("price must not be negative")
	// ErrSlotOutOfRange is returned for a grid position outside the page.
	ErrSlotOutOfRange = errors.New("grid position out of range")
	// ErrInvalidSettings is returned when a settings update is rejected.
	ErrInvalidSettings = errors.New("invalid settings")
	// ErrInvalidPIN is returned for a PIN that is not 4 to 8 digits.
	ErrInvalidPIN = errors.New("PIN must be 4 to 8 digits")
	// ErrCashNotRemovable is returned when deleting or disabling cash.
	ErrCashNotRemovable = errors.New("cash payment type cannot be removed or disabled")
	// ErrTicketNotFound is returned for an unknown saved ticket.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrNameRequired is returned when renaming a ticket to a blank name.
	ErrNameRequired = errors.New("name is required")
	// ErrMergeNeedsTwo is returned when fewer than two tickets are merged.
	ErrMergeNeedsTwo = errors.New("at least two tickets are required to merge")
	// ErrWrongPIN is returned when an unlock attempt does not match.
	ErrWrongPIN = errors.New("wrong PIN")
	// ErrTooManyAttempts is returned when unlock attempts are throttled.
	ErrTooManyAttempts = errors.New("too many PIN attempts, try again later")
	// ErrInvalidToken is returned for a missing, expired or forged report token.
	ErrInvalidToken = errors.New("invalid report token")
)
