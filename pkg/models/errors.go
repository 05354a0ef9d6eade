package models

import "errors"

// Contract violations surfaced to the caller. Data-quality problems inside
// candidate records never produce errors; they resolve to sentinel values.
var (
	// ErrUnknownRecordKind indicates a record-kind discriminator outside
	// investor/incubator.
	ErrUnknownRecordKind = errors.New("unknown record kind")

	// ErrUnknownFilter indicates a filter toggle referencing a criterion the
	// scorer does not produce.
	ErrUnknownFilter = errors.New("unknown filter criterion")
)

// IsContractError reports whether err is a caller error that should map to a
// 400 response rather than a retryable failure.
func IsContractError(err error) bool {
	return errors.Is(err, ErrUnknownRecordKind) || errors.Is(err, ErrUnknownFilter)
}
