// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package dkg implements a multi-dealer distributed key generation for threshold BLS, based on symmetric bivariate
// polynomials and Feldman commitments.
//
// Each dealer samples a symmetric bivariate polynomial B of degree t, and sends the row B(i, Y) together with its
// commitment and the commitment to the row B(0, Y) to each participant i. A participant verifies every received row,
// and its key share is the sum over all dealers of B(i, 0). The group public key is the sum of the row 0 commitments
// evaluated at 0.
package dkg

import (
	"fmt"
	"io"

	"github.com/bytemare/tbls"
	"github.com/bytemare/tbls/commitment"
	"github.com/bytemare/tbls/internal"
	"github.com/bytemare/tbls/internal/shamir"
)

var (
	// ErrLengthMismatch indicates that the rows and commitments provided for aggregation do not pair up.
	ErrLengthMismatch = internal.ErrLengthMismatch

	// ErrNoContribution indicates that aggregation was called without any dealer contribution.
	ErrNoContribution = internal.ErrNoContribution

	// ErrWrongReceiver indicates a dealer package is addressed to another participant.
	ErrWrongReceiver = internal.ErrWrongReceiver

	errRowDegree = fmt.Errorf("%w: row degree does not match the threshold", internal.ErrInvalidParameters)
)

// Dealer produces one contribution to the key generation.
type Dealer struct {
	rng           io.Reader
	configuration *tbls.Configuration
	Identifier    uint64
}

// NewDealer returns a dealer for the configuration. The rng must be cryptographically secure, and a nil rng defaults
// to crypto/rand.
func NewDealer(conf *tbls.Configuration, id uint64, rng io.Reader) (*Dealer, error) {
	if err := conf.Verify(); err != nil {
		return nil, err
	}

	if id == 0 {
		return nil, fmt.Errorf("invalid dealer identifier: %w", internal.ErrZeroIndex)
	}

	return &Dealer{
		rng:           internal.Reader(rng),
		configuration: conf,
		Identifier:    id,
	}, nil
}

// Deal is a dealer's output for one epoch. It holds secret rows and must be zeroized once distributed.
type Deal struct {
	// Rows holds the row polynomials for the participants 1..n, in that order.
	Rows []shamir.Polynomial

	// Commitments holds the commitments to the rows 0..n, in that order.
	Commitments []commitment.Commitment

	// Bivariate is the commitment to the whole bivariate polynomial.
	Bivariate *commitment.Bivariate

	Dealer uint64
}

// Deal samples a fresh bivariate polynomial, and returns the rows and row commitments for all participants. The
// bivariate polynomial is zeroized before returning.
func (d *Dealer) Deal() *Deal {
	n := d.configuration.MaxParticipants

	b := shamir.RandomBivariate(d.configuration.Threshold, d.rng)
	defer b.Zeroize()

	bc := commitment.CommitBivariate(b)
	deal := &Deal{
		Rows:        make([]shamir.Polynomial, n),
		Commitments: make([]commitment.Commitment, n+1),
		Bivariate:   bc,
		Dealer:      d.Identifier,
	}

	deal.Commitments[0] = bc.Row(0)

	for i := uint64(1); i <= n; i++ {
		deal.Rows[i-1] = b.Row(i)
		deal.Commitments[i] = bc.Row(i)
	}

	return deal
}

// Row returns the row polynomial for participant id, or nil if id is out of range.
func (d *Deal) Row(id uint64) shamir.Polynomial {
	if id == 0 || id > uint64(len(d.Rows)) {
		return nil
	}

	return d.Rows[id-1]
}

// PublicCommitment returns the commitment to row 0, the dealer's contribution to the group public key.
func (d *Deal) PublicCommitment() commitment.Commitment {
	return d.Commitments[0]
}

// Package returns the package destined to participant id.
func (d *Deal) Package(id uint64) (*Package, error) {
	if d.Row(id) == nil {
		return nil, fmt.Errorf("%w: no row for participant %d", internal.ErrInvalidParameters, id)
	}

	return d.pack(id), nil
}

// pack builds the package of participant id, which must be in 1..n.
func (d *Deal) pack(id uint64) *Package {
	return &Package{
		Dealer:           d.Dealer,
		Receiver:         id,
		Row:              d.Rows[id-1].Encode(),
		Commitment:       d.Commitments[id].Encode(),
		PublicCommitment: d.Commitments[0].Encode(),
	}
}

// Packages returns the packages for all participants, in order.
func (d *Deal) Packages() []*Package {
	packages := make([]*Package, len(d.Rows))
	for i := range packages {
		packages[i] = d.pack(uint64(i) + 1)
	}

	return packages
}

// Zeroize overwrites all rows with zeroes.
func (d *Deal) Zeroize() {
	for _, row := range d.Rows {
		row.Zeroize()
	}
}
