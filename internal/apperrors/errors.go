package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrAdmissionDenied indicates that a business rule rejected the creation of a credit.
var ErrAdmissionDenied = errors.New("credit admission denied")

// ErrUnknownClientType indicates that the client directory returned a client
// category the admission policy has no handler for.
var ErrUnknownClientType = errors.New("unknown client type")

// ErrPaymentExceedsBalance indicates that a payment would drive the
// outstanding balance of a credit below zero.
var ErrPaymentExceedsBalance = errors.New("payment amount exceeds outstanding balance")

// ErrServiceUnavailable is returned by the per-operation fallback paths when
// the resilience boundary around an operation has tripped.
var ErrServiceUnavailable = errors.New("service temporarily unavailable")
