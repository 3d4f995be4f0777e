// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package debug provides tools for key generation and verification for debugging purposes. They might be helpful for
// setups and investigations, but are not recommended to be used with production data (e.g. centralized key generation
// or recovery reveals the group's secret key in one spot, which goes against the principle in a decentralized setup).
package debug

import (
	"io"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/bytemare/tbls"
	"github.com/bytemare/tbls/commitment"
	"github.com/bytemare/tbls/internal"
	"github.com/bytemare/tbls/internal/shamir"
)

// TrustedDealerKeygen uses Shamir and Verifiable Secret Sharing to create secret shares of an input group secret.
// These shares should be distributed securely to relevant participants. Note that this is centralized and combines
// the shared secret at some point. To use a decentralized dealer-less key generation, use the dkg package.
// If secret is nil, a random secret is generated. A nil rng defaults to crypto/rand.
func TrustedDealerKeygen(
	conf *tbls.Configuration,
	secret *fr.Element,
	rng io.Reader,
) ([]*tbls.KeyShare, *tbls.PublicKeySet, error) {
	if err := conf.Verify(); err != nil {
		return nil, nil, err
	}

	if secret == nil {
		// If no secret provided, generated a new random secret.
		s := internal.RandomScalar(rng)
		secret = &s

		defer s.SetZero()
	}

	privateKeyShares, poly := shamir.Shard(secret, conf.Threshold, conf.MaxParticipants, rng)
	defer poly.Zeroize()

	shares := make([]*tbls.KeyShare, len(privateKeyShares))
	for i, k := range privateKeyShares {
		shares[i] = &tbls.KeyShare{ID: k.ID, Secret: k.Secret}
	}

	return shares, tbls.NewPublicKeySet(commitment.Commit(poly)), nil
}

// RecoverGroupSecret returns the groups secret from at least t+1 participant key shares. This is not recommended,
// as combining all distributed secret shares can put the group secret at risk.
func RecoverGroupSecret(conf *tbls.Configuration, keyShares []*tbls.KeyShare) (*tbls.SecretKey, error) {
	return conf.RecoverGroupSecret(keyShares)
}

// RecoverPublicKeys returns the group public key as well those from all participants.
func RecoverPublicKeys(max uint64, com commitment.Commitment) (bls12381.G1Affine, []*tbls.PublicKeyShare) {
	pks := tbls.NewPublicKeySet(com)
	keys := make([]*tbls.PublicKeyShare, max)

	for i := uint64(1); i <= max; i++ {
		keys[i-1] = pks.PublicKeyShare(i)
	}

	return pks.PublicKey(), keys
}

// VerifyVSS allows verification of a participant's secret share given a VSS commitment to the secret polynomial.
func VerifyVSS(share *tbls.KeyShare, com commitment.Commitment) bool {
	return commitment.VerifyShare(share.ID, &share.Secret, com)
}
