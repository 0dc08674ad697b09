package stealth

import (
	"errors"
	"fmt"
)

var (
	// ErrBitCountRange is returned when a prefix bit count outside of
	// 0..MaxBitCount is requested.
	ErrBitCountRange = errors.New("bit count must be between 0 and 32")

	// ErrTooManySpendKeys is returned when an address is built with more
	// spend keys than fit in the one byte count field.
	ErrTooManySpendKeys = errors.New("too many spend keys")

	// ErrMissingScanKey is returned when an address is built without a
	// scan key.
	ErrMissingScanKey = errors.New("missing scan key")

	// ErrMissingSpendKey is returned when an address is built with a nil
	// spend key.
	ErrMissingSpendKey = errors.New("missing spend key")

	// ErrNoNonce is returned when no metadata nonce satisfies a prefix for
	// the given ephemeral key.
	ErrNoNonce = errors.New("no nonce satisfies the prefix, use another " +
		"ephemeral key")

	// ErrUnknownNet is returned when a network has no stealth address
	// version byte.
	ErrUnknownNet = errors.New("unknown network for stealth addresses")

	// ErrWrongNet is returned when a decoded stealth address carries the
	// version byte of a different network.
	ErrWrongNet = errors.New("stealth address is for the wrong network")
)

// ErrorCode identifies a kind of address payload decoding failure.
type ErrorCode int

const (
	// ErrTruncated indicates the payload ended before a field could be
	// read completely.
	ErrTruncated ErrorCode = iota

	// ErrInvalidPubKey indicates a 33 byte key field did not hold a valid
	// compressed public key.
	ErrInvalidPubKey

	// ErrBitCountOutOfRange indicates the prefix bit count byte exceeds
	// MaxBitCount.
	ErrBitCountOutOfRange
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrTruncated:          "ErrTruncated",
	ErrInvalidPubKey:      "ErrInvalidPubKey",
	ErrBitCountOutOfRange: "ErrBitCountOutOfRange",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// DecodeError describes the first failure hit while parsing a stealth
// address payload.  Offset is the position of the field that could not be
// read and Err, when set, is the underlying error.
type DecodeError struct {
	ErrorCode ErrorCode
	Field     string
	Offset    int
	Err       error
}

// Error satisfies the error interface and prints human-readable errors.
func (e *DecodeError) Error() string {
	s := fmt.Sprintf("%v: %s at offset %d", e.ErrorCode, e.Field, e.Offset)
	if e.Err != nil {
		return s + ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying error, if any.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsErrorCode returns whether err is a *DecodeError with a matching code.
func IsErrorCode(err error, code ErrorCode) bool {
	var e *DecodeError
	return errors.As(err, &e) && e.ErrorCode == code
}
