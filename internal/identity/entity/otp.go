package entity

import (
	"errors"
	"time"
)

var (
	// ErrOTPAlreadyUsed is returned by the store when the conditional consume
	// lost to a concurrent verifier.
	ErrOTPAlreadyUsed = errors.New("identity: otp already used")

	// ErrOTPMismatch is returned by the store when the row no longer holds the
	// code being consumed.
	ErrOTPMismatch = errors.New("identity: otp mismatch")

	// ErrOTPExpired is returned by the store when the row expired before it
	// could be consumed.
	ErrOTPExpired = errors.New("identity: otp expired")
)

const (
	OTPMin = 100000
	OTPMax = 999999
)

// OTP is the single live passcode of an email. CodeDigest is the HMAC of
// the plaintext code.
type OTP struct {
	Email      string
	CodeDigest string
	ExpiresAt  time.Time
	Used       bool
}
