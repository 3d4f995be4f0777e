// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"encoding/hex"
	"fmt"

	"github.com/bytemare/hash"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ValidateIndexes returns an error if an index is 0, if an index appears more than once, or if there are less than
// threshold+1 indexes.
func ValidateIndexes(ids []uint64, threshold uint) error {
	visited := make(map[uint64]struct{}, len(ids))

	for _, id := range ids {
		if id == 0 {
			return ErrZeroIndex
		}

		if _, ok := visited[id]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateIndex, id)
		}

		visited[id] = struct{}{}
	}

	if uint64(len(visited)) < uint64(threshold)+1 {
		return fmt.Errorf("%w: got %d, need %d", ErrInsufficientShares, len(visited), uint64(threshold)+1)
	}

	return nil
}

// LagrangeCoefficients returns, for each index i in ids, the interpolating value at 0:
// λᵢ = ∏ⱼ≠ᵢ xⱼ / (xⱼ - xᵢ).
// The indexes must be non-zero and distinct.
func LagrangeCoefficients(ids []uint64) ([]fr.Element, error) {
	if err := ValidateIndexes(ids, 0); err != nil {
		return nil, err
	}

	xs := make([]fr.Element, len(ids))
	for i, id := range ids {
		xs[i].SetUint64(id)
	}

	lambdas := make([]fr.Element, len(ids))

	var numerator, denominator, diff fr.Element

	for i := range xs {
		numerator.SetOne()
		denominator.SetOne()

		for j := range xs {
			if i == j {
				continue
			}

			numerator.Mul(&numerator, &xs[j])
			diff.Sub(&xs[j], &xs[i])
			denominator.Mul(&denominator, &diff)
		}

		denominator.Inverse(&denominator)
		lambdas[i].Mul(&numerator, &denominator)
	}

	return lambdas, nil
}

// LambdaRegistry records the interpolating values of participant sets, so that they are computed only once per set of
// participants. The coefficients are in the same order as the participant list they were computed for. A registry is
// not safe for concurrent use.
type LambdaRegistry map[string][]fr.Element

const lambdaRegistryKeyDomainSeparator = "TBLS-participants"

func lambdaRegistryKey(participants []uint64) string {
	a := fmt.Sprint(lambdaRegistryKeyDomainSeparator, participants)
	return hex.EncodeToString(hash.SHA256.New().Hash(0, []byte(a))) // Length = 32 bytes, 64 in hex string
}

// New computes and records the interpolating values for the participants.
func (l LambdaRegistry) New(participants []uint64) ([]fr.Element, error) {
	lambdas, err := LagrangeCoefficients(participants)
	if err != nil {
		return nil, err
	}

	l.Set(participants, lambdas)

	return lambdas, nil
}

// Get returns the recorded interpolating values for the participants, or nil if there are none.
func (l LambdaRegistry) Get(participants []uint64) []fr.Element {
	return l[lambdaRegistryKey(participants)]
}

// GetOrNew returns the recorded interpolating values for the participants, and computes them if they are not yet
// registered.
func (l LambdaRegistry) GetOrNew(participants []uint64) ([]fr.Element, error) {
	lambdas := l.Get(participants)
	if lambdas == nil {
		return l.New(participants)
	}

	return lambdas, nil
}

// Set records the interpolating values for the participants.
func (l LambdaRegistry) Set(participants []uint64, lambdas []fr.Element) {
	l[lambdaRegistryKey(participants)] = lambdas
}

// Delete removes the interpolating values of the participants from the registry.
func (l LambdaRegistry) Delete(participants []uint64) {
	key := lambdaRegistryKey(participants)
	for i := range l[key] {
		l[key][i].SetZero()
	}

	delete(l, key)
}
