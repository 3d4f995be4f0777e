// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package tbls

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/bytemare/tbls/internal"
)

// Coordinator collects signature shares and combines them into a group signature.
type Coordinator struct {
	// LambdaRegistry records the interpolating values for the different combinations of signers, so that they are
	// computed once per set of signers.
	LambdaRegistry internal.LambdaRegistry

	configuration *Configuration
	publicKeys    *PublicKeySet
}

// Coordinator returns a new coordinator for the configuration and the group's public key set.
func (c *Configuration) Coordinator(pks *PublicKeySet) (*Coordinator, error) {
	if err := c.Verify(); err != nil {
		return nil, err
	}

	if pks == nil || pks.Threshold() != c.Threshold {
		return nil, fmt.Errorf("%w: public key set does not match the threshold", ErrInvalidParameters)
	}

	return &Coordinator{
		LambdaRegistry: make(internal.LambdaRegistry),
		configuration:  c,
		publicKeys:     pks,
	}, nil
}

// PublicKey returns the group public key.
func (c *Coordinator) PublicKey() bls12381.G1Affine {
	return c.publicKeys.PublicKey()
}

// VerifySignatureShare returns an error if the signature share is not valid for msg under the public key share of
// its signer.
func (c *Coordinator) VerifySignatureShare(msg []byte, share *SignatureShare) error {
	if err := c.configuration.VerifyIdentifier(share.SignerIndex); err != nil {
		return err
	}

	if !share.Verify(c.publicKeys.PublicKeyShare(share.SignerIndex), msg) {
		return fmt.Errorf("%w: participant %d", ErrInvalidSignatureShare, share.SignerIndex)
	}

	return nil
}

// Combine interpolates at least t+1 signature shares of msg in the exponent and returns the group signature. If
// verify is set, each share is verified before combination and the resulting signature is verified against the group
// public key; this is recommended when the origin of the shares is not trusted.
func (c *Coordinator) Combine(msg []byte, shares []*SignatureShare, verify bool) (*Signature, error) {
	ids := make([]uint64, len(shares))

	for i, share := range shares {
		if err := c.configuration.VerifyIdentifier(share.SignerIndex); err != nil {
			return nil, err
		}

		if verify {
			if err := c.VerifySignatureShare(msg, share); err != nil {
				return nil, err
			}
		}

		ids[i] = share.SignerIndex
	}

	if err := internal.ValidateIndexes(ids, c.configuration.Threshold); err != nil {
		return nil, err
	}

	lambdas, err := c.LambdaRegistry.GetOrNew(ids)
	if err != nil {
		return nil, err
	}

	sig := combineInExponent(shares, lambdas)

	if verify && !c.Verify(msg, sig) {
		return nil, fmt.Errorf("%w: combined signature does not verify", ErrInvalidSignatureShare)
	}

	return sig, nil
}

// CombineRound is Combine for signature shares produced with SignRound.
func (c *Coordinator) CombineRound(msg []byte, round uint64, shares []*SignatureShare, verify bool) (*Signature, error) {
	return c.Combine(internal.RoundMessage(msg, round), shares, verify)
}

// Verify returns whether sig is a valid signature of msg under the group public key.
func (c *Coordinator) Verify(msg []byte, sig *Signature) bool {
	pk := c.publicKeys.PublicKey()
	return sig.Verify(&pk, msg)
}

// CombineSignatureShares interpolates signature shares at 0 in the exponent, without verifying them. At least
// threshold+1 shares with distinct non-zero identifiers are required.
func CombineSignatureShares(shares []*SignatureShare, threshold uint) (*Signature, error) {
	ids := make([]uint64, len(shares))
	for i, share := range shares {
		ids[i] = share.SignerIndex
	}

	if err := internal.ValidateIndexes(ids, threshold); err != nil {
		return nil, err
	}

	lambdas, err := internal.LagrangeCoefficients(ids)
	if err != nil {
		return nil, err
	}

	return combineInExponent(shares, lambdas), nil
}

func combineInExponent(shares []*SignatureShare, lambdas []fr.Element) *Signature {
	var sig bls12381.G2Affine

	for i, share := range shares {
		term := internal.MulG2(&share.Signature, &lambdas[i])
		sig = internal.AddG2(&sig, &term)
	}

	return &Signature{Point: sig}
}
