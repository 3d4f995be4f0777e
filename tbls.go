// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package tbls implements (t, n) threshold BLS signatures over BLS12-381, with public keys in G1 and signatures in G2.
// Key shares are produced either by the distributed key generation in the dkg package, or by a trusted dealer using
// the debug package. Any t+1 participants can produce a signature verifying under the group public key.
package tbls

import (
	"fmt"

	"github.com/bytemare/tbls/commitment"
	"github.com/bytemare/tbls/internal"
	"github.com/bytemare/tbls/internal/shamir"
)

type (
	// Polynomial is a univariate polynomial over the BLS12-381 scalar field, low degree first. Rows of the key
	// generation are polynomials.
	Polynomial = shamir.Polynomial

	// Share is the evaluation of a polynomial at a participant index.
	Share = shamir.Share

	// Commitment is the Feldman commitment to a Polynomial in G1.
	Commitment = commitment.Commitment
)

var (
	// ErrInvalidParameters indicates that wrong input has been provided.
	ErrInvalidParameters = internal.ErrInvalidParameters

	// ErrMalformedEncoding indicates an encoded value could not be decoded.
	ErrMalformedEncoding = internal.ErrMalformedEncoding

	// ErrInvalidLength indicates that a provided encoded data piece is not of the expected length.
	ErrInvalidLength = internal.ErrInvalidLength

	// ErrInvalidScalarEncoding indicates a scalar encoding has the wrong length or is not reduced modulo the order.
	ErrInvalidScalarEncoding = internal.ErrInvalidScalarEncoding

	// ErrInvalidPointEncoding indicates a group element encoding has the wrong length or is not on the curve.
	ErrInvalidPointEncoding = internal.ErrInvalidPointEncoding

	// ErrIndexOverflow indicates an encoded participant index does not fit in 64 bits.
	ErrIndexOverflow = internal.ErrIndexOverflow

	// ErrCommitmentMismatch indicates a row polynomial is not consistent with its commitment.
	ErrCommitmentMismatch = internal.ErrCommitmentMismatch

	// ErrInsufficientShares indicates less than threshold+1 distinct shares were provided.
	ErrInsufficientShares = internal.ErrInsufficientShares

	// ErrDuplicateIndex indicates two shares claim the same participant index.
	ErrDuplicateIndex = internal.ErrDuplicateIndex

	// ErrZeroIndex indicates a share was given the reserved index 0.
	ErrZeroIndex = internal.ErrZeroIndex

	// ErrLengthMismatch indicates that the rows and commitments provided for aggregation do not pair up.
	ErrLengthMismatch = internal.ErrLengthMismatch

	// ErrNoContribution indicates that aggregation was called without any dealer contribution.
	ErrNoContribution = internal.ErrNoContribution

	// ErrInvalidSignatureShare indicates a signature share does not verify against its public key share.
	ErrInvalidSignatureShare = internal.ErrInvalidSignatureShare

	errThresholdTooHigh   = fmt.Errorf("%w: threshold must be lower than the number of participants", ErrInvalidParameters)
	errUnknownParticipant = fmt.Errorf("%w: participant identifier out of range", ErrInvalidParameters)
)

const (
	// SecretKeyLength is the byte size of an encoded secret key or secret key share.
	SecretKeyLength = internal.ScalarLength

	// PublicKeyLength is the byte size of an encoded public key or public key share.
	PublicKeyLength = internal.G1Length

	// SignatureLength is the byte size of an encoded signature or signature share.
	SignatureLength = internal.G2Length
)

// Configuration holds the parameters of a key generation epoch. Threshold is the degree t of the sharing
// polynomials, so that t+1 of the MaxParticipants participants are needed to sign or to reconstruct the secret.
type Configuration struct {
	Threshold       uint
	MaxParticipants uint64
}

// Verify returns an error if the configuration is not usable. A threshold of 0 is valid, and lets any single
// participant sign.
func (c *Configuration) Verify() error {
	if uint64(c.Threshold) >= c.MaxParticipants {
		return fmt.Errorf("%w: threshold %d, participants %d", errThresholdTooHigh, c.Threshold, c.MaxParticipants)
	}

	return nil
}

// VerifyIdentifier returns an error if id is not a valid participant index for the configuration.
func (c *Configuration) VerifyIdentifier(id uint64) error {
	if id == 0 {
		return ErrZeroIndex
	}

	if id > c.MaxParticipants {
		return fmt.Errorf("%w: %d", errUnknownParticipant, id)
	}

	return nil
}

// ValidateKeyShare returns an error if the key share does not fit the configuration, or if its public key share does
// not match the public key set when one is given.
func (c *Configuration) ValidateKeyShare(k *KeyShare, pks *PublicKeySet) error {
	if err := c.VerifyIdentifier(k.ID); err != nil {
		return err
	}

	if k.Secret.IsZero() {
		return fmt.Errorf("%w: secret key share of participant %d is zero", ErrInvalidParameters, k.ID)
	}

	if pks != nil && !pks.VerifyKeyShare(k) {
		return fmt.Errorf("%w: participant %d", ErrCommitmentMismatch, k.ID)
	}

	return nil
}

// RecoverGroupSecret returns the group secret from at least t+1 participant key shares. This is not recommended, as
// combining distributed secret shares puts the group secret at risk.
func (c *Configuration) RecoverGroupSecret(keyShares []*KeyShare) (*SecretKey, error) {
	shares := make([]shamir.Share, len(keyShares))
	for i, k := range keyShares {
		shares[i] = shamir.Share{ID: k.ID, Secret: k.Secret}
	}

	defer func() {
		for i := range shares {
			shares[i].Secret.SetZero()
		}
	}()

	secret, err := shamir.Combine(shares, c.Threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct group secret: %w", err)
	}

	return &SecretKey{Secret: secret}, nil
}
