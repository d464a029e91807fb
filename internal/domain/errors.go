package domain

import "errors"

// Common domain errors
var (
	ErrLoginRequired          = errors.New("login required")
	ErrSessionExpired         = errors.New("session expired")
	ErrBusy                   = errors.New("operation already in progress")
	ErrInvalidAmount          = errors.New("invalid payment amount")
	ErrWidgetUnavailable      = errors.New("payment widget unavailable")
	ErrInvalidPaymentResponse = errors.New("invalid payment response")
	ErrVerificationFailed     = errors.New("payment verification failed")
	ErrIntentNotReady         = errors.New("payment intent not ready")
)
