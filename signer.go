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

	"github.com/bytemare/tbls/internal"
)

// Signature is a BLS signature in G2.
type Signature struct {
	Point bls12381.G2Affine
}

// SignatureShare is a participant's partial signature and its identifier.
type SignatureShare struct {
	Signature   bls12381.G2Affine
	SignerIndex uint64
}

func sign(secret *fr.Element, msg []byte) bls12381.G2Affine {
	h := internal.HashToG2(msg)
	return internal.MulG2(&h, secret)
}

// Sign produces the participant's signature share of msg, i.e. H(msg) * secret.
func (k *KeyShare) Sign(msg []byte) *SignatureShare {
	return &SignatureShare{
		Signature:   sign(&k.Secret, msg),
		SignerIndex: k.ID,
	}
}

// SignRound produces the participant's signature share of msg bound to round, i.e. H(msg || be64(round)) * secret.
// This is used for verifiable round-tagged outputs like randomness beacons.
func (k *KeyShare) SignRound(msg []byte, round uint64) *SignatureShare {
	return k.Sign(internal.RoundMessage(msg, round))
}

// Verify returns whether sig is a valid signature of msg under the public key pk.
func Verify(pk *bls12381.G1Affine, msg []byte, sig *bls12381.G2Affine) bool {
	h := internal.HashToG2(msg)
	return internal.VerifyPairing(pk, &h, sig)
}

// VerifyRound returns whether sig is a valid round-tagged signature of msg under the public key pk.
func VerifyRound(pk *bls12381.G1Affine, msg []byte, round uint64, sig *bls12381.G2Affine) bool {
	return Verify(pk, internal.RoundMessage(msg, round), sig)
}

// Verify returns whether the signature is valid for msg under the public key pk.
func (s *Signature) Verify(pk *bls12381.G1Affine, msg []byte) bool {
	return Verify(pk, msg, &s.Point)
}

// Verify returns whether the signature share is valid for msg under the public key share.
func (s *SignatureShare) Verify(pks *PublicKeyShare, msg []byte) bool {
	return pks.ID == s.SignerIndex && Verify(&pks.PublicKey, msg, &s.Signature)
}
