package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrBidConflict     = errors.New("concurrent bid update conflict")
)

// business logic errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrBidTooLow          = errors.New("bid amount too low")
	ErrAuctionClosed      = errors.New("auction already closed")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// auth gate errors
var (
	ErrMissingToken = errors.New("authorization token required")
	ErrInvalidToken = errors.New("invalid or expired token")
)
