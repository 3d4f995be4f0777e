// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package host exposes the threshold BLS operations over fixed-width byte encodings, for hosts that exchange raw
// buffers: 32 byte big-endian scalars, 48 byte compressed G1 public keys and commitment elements, and 96 byte
// compressed G2 signatures.
package host

import (
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/bytemare/tbls"
	"github.com/bytemare/tbls/commitment"
	"github.com/bytemare/tbls/dkg"
	"github.com/bytemare/tbls/internal"
	"github.com/bytemare/tbls/internal/shamir"
)

func decodeSecret(sk []byte) (*fr.Element, error) {
	s, err := internal.DecodeScalar(sk)
	if err != nil {
		return nil, fmt.Errorf("secret key: %w", err)
	}

	return s, nil
}

func signMessage(sk, msg []byte) ([]byte, error) {
	s, err := decodeSecret(sk)
	if err != nil {
		return nil, err
	}

	k := &tbls.KeyShare{Secret: *s}
	defer k.Zeroize()
	s.SetZero()

	sig := k.Sign(msg)

	return internal.EncodeG2(&sig.Signature), nil
}

// Sign returns the signature share of msg under the secret key share sk.
func Sign(sk, msg []byte) ([]byte, error) {
	return signMessage(sk, msg)
}

// SignRound returns the signature share of msg || be64(round) under the secret key share sk.
func SignRound(sk, msg []byte, round uint64) ([]byte, error) {
	return signMessage(sk, internal.RoundMessage(msg, round))
}

// PublicKeyShare returns the public key share of the secret key share sk.
func PublicKeyShare(sk []byte) ([]byte, error) {
	s, err := decodeSecret(sk)
	if err != nil {
		return nil, err
	}

	pk := internal.BaseG1(s)
	s.SetZero()

	return internal.EncodeG1(&pk), nil
}

// DeriveIndividualPublicKey returns the public key of the secret key sk.
func DeriveIndividualPublicKey(sk []byte) ([]byte, error) {
	return PublicKeyShare(sk)
}

// BivarShare holds a dealer's encoded output: Rows[i] is the row of participant i+1, and Commitments[i] the
// commitment to row i, starting at row 0.
type BivarShare struct {
	Rows        [][]byte
	Commitments [][]byte
}

// GenerateBivarShare generates a dealer's contribution for totalNodes participants with polynomials of the given
// degree. A nil rng defaults to crypto/rand.
func GenerateBivarShare(degree uint, totalNodes uint64, rng io.Reader) (*BivarShare, error) {
	conf := &tbls.Configuration{Threshold: degree, MaxParticipants: totalNodes}

	dealer, err := dkg.NewDealer(conf, 1, rng)
	if err != nil {
		return nil, err
	}

	deal := dealer.Deal()
	defer deal.Zeroize()

	share := &BivarShare{
		Rows:        make([][]byte, len(deal.Rows)),
		Commitments: make([][]byte, len(deal.Commitments)),
	}

	for i, row := range deal.Rows {
		share.Rows[i] = row.Encode()
	}

	for i, com := range deal.Commitments {
		share.Commitments[i] = com.Encode()
	}

	return share, nil
}

func decodeCommitments(commits [][]byte) ([]commitment.Commitment, error) {
	coms := make([]commitment.Commitment, len(commits))

	for i, c := range commits {
		com, err := commitment.Decode(c)
		if err != nil {
			return nil, fmt.Errorf("commitment %d: %w", i, err)
		}

		coms[i] = com
	}

	return coms, nil
}

// VerifyAndAggregate verifies each row against the commitment at the same position, and returns the encoded sum of
// the rows' values at 0, i.e. the participant's secret key share.
func VerifyAndAggregate(rows, commits [][]byte) ([]byte, error) {
	polys := make([]shamir.Polynomial, 0, len(rows))

	defer func() {
		for _, p := range polys {
			p.Zeroize()
		}
	}()

	for i, r := range rows {
		p, err := shamir.DecodePolynomial(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		polys = append(polys, p)
	}

	coms, err := decodeCommitments(commits)
	if err != nil {
		return nil, err
	}

	secret, err := dkg.Aggregate(polys, coms)
	if err != nil {
		return nil, err
	}

	out := internal.EncodeScalar(&secret)
	secret.SetZero()

	return out, nil
}

// DeriveGroupPublicKey returns the encoded group public key implied by the dealers' row 0 commitments.
func DeriveGroupPublicKey(commits [][]byte) ([]byte, error) {
	coms, err := decodeCommitments(commits)
	if err != nil {
		return nil, err
	}

	pk, err := dkg.GroupPublicKey(coms)
	if err != nil {
		return nil, err
	}

	return internal.EncodeG1(&pk), nil
}

func decodeIndexes(indexes [][]byte, n int) ([]uint64, error) {
	if len(indexes) != n {
		return nil, fmt.Errorf("%w: %d indexes, %d values", internal.ErrLengthMismatch, len(indexes), n)
	}

	ids := make([]uint64, len(indexes))

	for i, index := range indexes {
		id, err := internal.DecodeIndex(index)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}

		ids[i] = id
	}

	return ids, nil
}

// Interpolate reconstructs the secret at 0 from the secret shares at the given indexes. Indexes are little-endian
// buffers of at most 8 bytes. At least threshold+1 distinct indexes are required.
func Interpolate(indexes, shares [][]byte, threshold uint) ([]byte, error) {
	ids, err := decodeIndexes(indexes, len(shares))
	if err != nil {
		return nil, err
	}

	points := make([]shamir.Share, len(shares))

	defer func() {
		for i := range points {
			points[i].Secret.SetZero()
		}
	}()

	for i, s := range shares {
		secret, err := internal.DecodeScalar(s)
		if err != nil {
			return nil, fmt.Errorf("share %d: %w", i, err)
		}

		points[i] = shamir.Share{ID: ids[i], Secret: *secret}
		secret.SetZero()
	}

	p, err := shamir.Interpolate(points, threshold)
	if err != nil {
		return nil, err
	}

	defer p.Zeroize()

	sk := p.EvaluateAt(0)
	out := internal.EncodeScalar(&sk)
	sk.SetZero()

	return out, nil
}

// InterpolateSignatures combines the signature shares at the given indexes into the group signature. Indexes are
// encoded as in Interpolate.
func InterpolateSignatures(indexes, signatures [][]byte, threshold uint) ([]byte, error) {
	ids, err := decodeIndexes(indexes, len(signatures))
	if err != nil {
		return nil, err
	}

	shares := make([]*tbls.SignatureShare, len(signatures))

	for i, s := range signatures {
		sig, err := internal.DecodeG2(s)
		if err != nil {
			return nil, fmt.Errorf("signature share %d: %w", i, err)
		}

		shares[i] = &tbls.SignatureShare{Signature: *sig, SignerIndex: ids[i]}
	}

	sig, err := tbls.CombineSignatureShares(shares, threshold)
	if err != nil {
		return nil, err
	}

	return sig.Encode(), nil
}
