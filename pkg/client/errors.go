package client

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrThrottled is returned when the rate limiter refuses to send a request.
	ErrThrottled = errors.New("request blocked: rate limit exhausted")
)

// ErrorClass represents a classification of request failures.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 responses and requests refused by the limiter.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// RequestError is a failed catalog request. Nothing is retried.
type RequestError struct {
	Endpoint   string
	StatusCode int
	ErrorClass ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog %s error (status %d) on %s: %s: %v",
			e.ErrorClass, e.StatusCode, e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("catalog %s error (status %d) on %s: %s",
		e.ErrorClass, e.StatusCode, e.Endpoint, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// DecodeError means the response arrived but its body did not match the expected shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Endpoint, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a request failure (network, status or throttling).
func IsTransport(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) || errors.Is(err, ErrThrottled)
}

// IsDecode reports whether err is a malformed response body.
func IsDecode(err error) bool {
	var decErr *DecodeError
	return errors.As(err, &decErr)
}

// ClassOf returns the error class of err, or "" if it is not a RequestError.
func ClassOf(err error) ErrorClass {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.ErrorClass
	}
	if errors.Is(err, ErrThrottled) {
		return ErrorClassRateLimit
	}
	return ""
}
