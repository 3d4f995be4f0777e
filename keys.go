// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package tbls

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/bytemare/tbls/commitment"
	"github.com/bytemare/tbls/internal"
)

// SecretKey is a full BLS secret key, e.g. a reconstructed group secret.
type SecretKey struct {
	Secret fr.Element
}

// PublicKey returns g1 * secret.
func (s *SecretKey) PublicKey() bls12381.G1Affine {
	return internal.BaseG1(&s.Secret)
}

// Sign returns the BLS signature of msg.
func (s *SecretKey) Sign(msg []byte) *Signature {
	return &Signature{Point: sign(&s.Secret, msg)}
}

// Zeroize overwrites the secret with zero.
func (s *SecretKey) Zeroize() {
	s.Secret.SetZero()
}

// KeyShare is a participant's secret key share for an epoch, identified with the participant's index.
type KeyShare struct {
	ID     uint64
	Secret fr.Element
}

// PublicKeyShare returns the public key share matching the secret key share.
func (k *KeyShare) PublicKeyShare() *PublicKeyShare {
	return &PublicKeyShare{
		ID:        k.ID,
		PublicKey: internal.BaseG1(&k.Secret),
	}
}

// Zeroize overwrites the secret share with zero.
func (k *KeyShare) Zeroize() {
	k.Secret.SetZero()
}

// PublicKeyShare specifies the public key of a participant identified with ID.
type PublicKeyShare struct {
	ID        uint64
	PublicKey bls12381.G1Affine
}

// PublicKeySet holds the commitment to the group's sharing polynomial, from which the group public key and every
// participant's public key share derive.
type PublicKeySet struct {
	commitment commitment.Commitment
}

// NewPublicKeySet returns a public key set for the summed commitment. The commitment is copied.
func NewPublicKeySet(c commitment.Commitment) *PublicKeySet {
	return &PublicKeySet{commitment: c.Copy()}
}

// PublicKey returns the group public key.
func (p *PublicKeySet) PublicKey() bls12381.G1Affine {
	return p.commitment.PublicKey()
}

// PublicKeyShare returns the public key share of participant id.
func (p *PublicKeySet) PublicKeyShare(id uint64) *PublicKeyShare {
	return &PublicKeyShare{
		ID:        id,
		PublicKey: p.commitment.EvaluateAt(id),
	}
}

// Threshold returns the degree of the committed polynomial.
func (p *PublicKeySet) Threshold() uint {
	return p.commitment.Degree()
}

// Commitment returns a copy of the underlying commitment.
func (p *PublicKeySet) Commitment() commitment.Commitment {
	return p.commitment.Copy()
}

// VerifyKeyShare returns whether the key share is consistent with the public key set.
func (p *PublicKeySet) VerifyKeyShare(k *KeyShare) bool {
	return commitment.VerifyShare(k.ID, &k.Secret, p.commitment)
}
