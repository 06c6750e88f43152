package usecases

import "errors"

// Sentinel errors the HTTP layer maps onto status codes.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrNotAuthorized      = errors.New("user not authorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified, please verify your email")
	ErrEmailTaken         = errors.New("user already exists")
	ErrAlreadyVerified    = errors.New("user already verified, please login")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
)
