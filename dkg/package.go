// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package dkg

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/bytemare/tbls/commitment"
	"github.com/bytemare/tbls/internal"
	"github.com/bytemare/tbls/internal/shamir"
)

// Package is the envelope a dealer sends to a participant. The Row is secret and must be sent over a confidential
// channel.
type Package struct {
	Row              []byte `cbor:"3,keyasint"`
	Commitment       []byte `cbor:"4,keyasint"`
	PublicCommitment []byte `cbor:"5,keyasint"`
	Dealer           uint64 `cbor:"1,keyasint"`
	Receiver         uint64 `cbor:"2,keyasint"`
}

// rawPackage has no methods so that cbor doesn't pick up Package's BinaryMarshaler.
type rawPackage Package

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}

	if decMode, err = (cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}).DecMode(); err != nil {
		panic(err)
	}
}

// MarshalBinary returns the deterministic CBOR encoding of p.
func (p *Package) MarshalBinary() ([]byte, error) {
	out, err := encMode.Marshal((*rawPackage)(p))
	if err != nil {
		return nil, fmt.Errorf("failed to encode package: %w", err)
	}

	return out, nil
}

// UnmarshalBinary decodes the output of MarshalBinary into p.
func (p *Package) UnmarshalBinary(data []byte) error {
	var raw rawPackage
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: package: %w", internal.ErrMalformedEncoding, err)
	}

	if raw.Dealer == 0 || raw.Receiver == 0 {
		return fmt.Errorf("%w: package", internal.ErrZeroIndex)
	}

	*p = Package(raw)

	return nil
}

// decode returns the row, its commitment, and the dealer's row 0 commitment.
func (p *Package) decode() (shamir.Polynomial, commitment.Commitment, commitment.Commitment, error) {
	row, err := shamir.DecodePolynomial(p.Row)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("row from dealer %d: %w", p.Dealer, err)
	}

	com, err := commitment.Decode(p.Commitment)
	if err != nil {
		row.Zeroize()
		return nil, nil, nil, fmt.Errorf("row commitment from dealer %d: %w", p.Dealer, err)
	}

	public, err := commitment.Decode(p.PublicCommitment)
	if err != nil {
		row.Zeroize()
		return nil, nil, nil, fmt.Errorf("public commitment from dealer %d: %w", p.Dealer, err)
	}

	return row, com, public, nil
}

// Zeroize overwrites the encoded row with zeroes.
func (p *Package) Zeroize() {
	clear(p.Row)
}
