package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameters indicates that wrong input has been provided.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrMalformedEncoding indicates an encoded value could not be decoded. It is the parent of all decoding errors.
	ErrMalformedEncoding = errors.New("malformed encoding")

	// ErrInvalidLength indicates that a provided encoded data piece is not of the expected length.
	ErrInvalidLength = fmt.Errorf("%w: invalid encoding length", ErrMalformedEncoding)

	// ErrInvalidScalarEncoding indicates a scalar encoding has the wrong length or is not reduced modulo the order.
	ErrInvalidScalarEncoding = fmt.Errorf("%w: invalid scalar encoding", ErrMalformedEncoding)

	// ErrInvalidPointEncoding indicates a group element encoding has the wrong length or is not a valid point.
	ErrInvalidPointEncoding = fmt.Errorf("%w: invalid point encoding", ErrMalformedEncoding)

	// ErrIndexOverflow indicates an encoded participant index does not fit in 64 bits.
	ErrIndexOverflow = fmt.Errorf("%w: index exceeds 8 bytes", ErrMalformedEncoding)

	// ErrCommitmentMismatch indicates a row polynomial is not consistent with its commitment.
	ErrCommitmentMismatch = errors.New("row does not match its commitment")

	// ErrInsufficientShares indicates less than threshold+1 distinct shares were provided for interpolation.
	ErrInsufficientShares = errors.New("insufficient number of shares")

	// ErrDuplicateIndex indicates two shares claim the same participant index.
	ErrDuplicateIndex = errors.New("duplicate participant index")

	// ErrZeroIndex indicates a share was given the reserved index 0.
	ErrZeroIndex = errors.New("participant index cannot be 0")

	// ErrLengthMismatch indicates that the rows and commitments provided for aggregation do not pair up.
	ErrLengthMismatch = errors.New("number of rows and commitments differ")

	// ErrNoContribution indicates that aggregation was called without any dealer contribution.
	ErrNoContribution = errors.New("no dealer contribution provided")

	// ErrWrongReceiver indicates a dealer package is addressed to another participant.
	ErrWrongReceiver = errors.New("package is addressed to another participant")

	// ErrInvalidSignatureShare indicates a signature share does not verify against its public key share.
	ErrInvalidSignatureShare = errors.New("signature share does not match")
)
