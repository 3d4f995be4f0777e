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
	"runtime"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"

	"github.com/bytemare/tbls"
	"github.com/bytemare/tbls/commitment"
	"github.com/bytemare/tbls/internal"
	"github.com/bytemare/tbls/internal/shamir"
)

// VerifyRow returns whether row is the polynomial committed to by com.
func VerifyRow(row shamir.Polynomial, com commitment.Commitment) bool {
	return commitment.Verify(row, com)
}

func checkContributions(rows []shamir.Polynomial, commits []commitment.Commitment) error {
	if len(rows) != len(commits) {
		return fmt.Errorf("%w: %d rows, %d commitments", ErrLengthMismatch, len(rows), len(commits))
	}

	if len(rows) == 0 {
		return ErrNoContribution
	}

	return nil
}

func mismatch(position int) error {
	return fmt.Errorf("%w: dealer %d", internal.ErrCommitmentMismatch, position)
}

// sumAtZero folds the rows into the sum of their values at 0.
func sumAtZero(rows []shamir.Polynomial) fr.Element {
	var sum fr.Element

	for _, row := range rows {
		v := row.EvaluateAt(0)
		sum.Add(&sum, &v)
		v.SetZero()
	}

	return sum
}

// Aggregate verifies every row against its commitment, and returns the sum of the rows' values at 0, i.e. a
// participant's secret key share. A single failing row aborts the whole batch, and the returned error names the
// position of the faulty dealer in the input. The caller may retry excluding that dealer.
func Aggregate(rows []shamir.Polynomial, commits []commitment.Commitment) (fr.Element, error) {
	if err := checkContributions(rows, commits); err != nil {
		return fr.Element{}, err
	}

	for i := range rows {
		if !VerifyRow(rows[i], commits[i]) {
			return fr.Element{}, mismatch(i)
		}
	}

	return sumAtZero(rows), nil
}

// AggregateConcurrent is Aggregate with the row verifications spread over up to GOMAXPROCS goroutines. On failure,
// the lowest faulty position is reported, as Aggregate would.
func AggregateConcurrent(rows []shamir.Polynomial, commits []commitment.Commitment) (fr.Element, error) {
	if err := checkContributions(rows, commits); err != nil {
		return fr.Element{}, err
	}

	invalid := make([]bool, len(rows))

	var pool errgroup.Group
	pool.SetLimit(runtime.GOMAXPROCS(0))

	for i := range rows {
		pool.Go(func() error {
			invalid[i] = !VerifyRow(rows[i], commits[i])
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return fr.Element{}, err
	}

	for i, bad := range invalid {
		if bad {
			return fr.Element{}, mismatch(i)
		}
	}

	return sumAtZero(rows), nil
}

// SumCommitments returns the sum of the dealers' row 0 commitments, i.e. the commitment to the group's sharing
// polynomial.
func SumCommitments(commits []commitment.Commitment) (commitment.Commitment, error) {
	if len(commits) == 0 {
		return nil, ErrNoContribution
	}

	sum := commitment.Commitment{}
	for _, com := range commits {
		sum = sum.Add(com)
	}

	return sum, nil
}

// GroupPublicKey returns the group public key implied by the dealers' row 0 commitments.
func GroupPublicKey(commits []commitment.Commitment) (bls12381.G1Affine, error) {
	sum, err := SumCommitments(commits)
	if err != nil {
		return bls12381.G1Affine{}, err
	}

	return sum.EvaluateAt(0), nil
}

// PublicKeySet returns the group's public key set from the dealers' row 0 commitments. Every commitment must match
// the configuration's threshold.
func PublicKeySet(conf *tbls.Configuration, commits []commitment.Commitment) (*tbls.PublicKeySet, error) {
	for i, com := range commits {
		if uint(len(com)) != conf.Threshold+1 {
			return nil, fmt.Errorf("%w: commitment %d has %d elements", errRowDegree, i, len(com))
		}
	}

	sum, err := SumCommitments(commits)
	if err != nil {
		return nil, err
	}

	return tbls.NewPublicKeySet(sum), nil
}
