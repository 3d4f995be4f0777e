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

	"go.uber.org/zap"

	"github.com/bytemare/tbls"
	"github.com/bytemare/tbls/commitment"
	"github.com/bytemare/tbls/internal"
	"github.com/bytemare/tbls/internal/shamir"
)

// Node is a participant receiving the dealers' packages and computing its key share.
type Node struct {
	logger        *zap.Logger
	configuration *tbls.Configuration
	Identifier    uint64
	concurrent    bool
}

// Option configures a Node.
type Option func(*Node)

// WithLogger sets the logger used to report rejected dealers. Secret material is never logged.
func WithLogger(logger *zap.Logger) Option {
	return func(n *Node) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithConcurrentVerification makes the node verify rows concurrently during aggregation.
func WithConcurrentVerification() Option {
	return func(n *Node) {
		n.concurrent = true
	}
}

// NewNode returns the node of participant id.
func NewNode(conf *tbls.Configuration, id uint64, opts ...Option) (*Node, error) {
	if err := conf.Verify(); err != nil {
		return nil, err
	}

	if err := conf.VerifyIdentifier(id); err != nil {
		return nil, err
	}

	n := &Node{
		logger:        zap.NewNop(),
		configuration: conf,
		Identifier:    id,
	}

	for _, opt := range opts {
		opt(n)
	}

	n.logger = n.logger.With(zap.Uint64("node", id))

	return n, nil
}

// VerifyPackage decodes and verifies a dealer's package, and returns the row and the dealer's row 0 commitment.
// The row must match its commitment, and its constant term must match the row 0 commitment evaluated at the node's
// index, which binds the row to the dealer's public contribution by symmetry.
func (n *Node) VerifyPackage(pkg *Package) (shamir.Polynomial, commitment.Commitment, error) {
	if pkg.Receiver != n.Identifier {
		return nil, nil, fmt.Errorf("%w: package for %d from dealer %d", ErrWrongReceiver, pkg.Receiver, pkg.Dealer)
	}

	row, com, public, err := pkg.decode()
	if err != nil {
		return nil, nil, err
	}

	if uint(len(row)) != n.configuration.Threshold+1 || len(public) != len(row) {
		row.Zeroize()
		return nil, nil, fmt.Errorf("%w: dealer %d", errRowDegree, pkg.Dealer)
	}

	if !VerifyRow(row, com) {
		row.Zeroize()
		return nil, nil, fmt.Errorf("%w: dealer %d", internal.ErrCommitmentMismatch, pkg.Dealer)
	}

	expected := public.EvaluateAt(n.Identifier)
	if !com[0].Equal(&expected) {
		row.Zeroize()
		return nil, nil, fmt.Errorf("%w: dealer %d row is not consistent with its public commitment",
			internal.ErrCommitmentMismatch, pkg.Dealer)
	}

	return row, public, nil
}

func (n *Node) aggregate(rows []shamir.Polynomial, commits []commitment.Commitment) (*tbls.KeyShare, error) {
	aggregate := Aggregate
	if n.concurrent {
		aggregate = AggregateConcurrent
	}

	secret, err := aggregate(rows, commits)
	if err != nil {
		return nil, err
	}

	return &tbls.KeyShare{ID: n.Identifier, Secret: secret}, nil
}

// Aggregate verifies the rows against their commitments and returns the node's key share. Any failing row aborts
// the aggregation.
func (n *Node) Aggregate(rows []shamir.Polynomial, commits []commitment.Commitment) (*tbls.KeyShare, error) {
	k, err := n.aggregate(rows, commits)
	if err != nil {
		n.logger.Warn("aggregation rejected", zap.Int("dealers", len(rows)), zap.Error(err))
		return nil, err
	}

	n.logger.Debug("key share aggregated", zap.Int("dealers", len(rows)))

	return k, nil
}

// AggregatePackages verifies the packages of all dealers, and returns the node's key share and the group's public
// key set. All packages are verified, every rejected dealer is logged, and the first rejection is returned.
func (n *Node) AggregatePackages(packages []*Package) (*tbls.KeyShare, *tbls.PublicKeySet, error) {
	if len(packages) == 0 {
		return nil, nil, ErrNoContribution
	}

	rows := make([]shamir.Polynomial, 0, len(packages))
	publics := make([]commitment.Commitment, 0, len(packages))
	dealers := make(map[uint64]struct{}, len(packages))

	defer func() {
		for _, row := range rows {
			row.Zeroize()
		}
	}()

	var first error

	for _, pkg := range packages {
		if _, ok := dealers[pkg.Dealer]; ok {
			err := fmt.Errorf("%w: dealer %d", internal.ErrDuplicateIndex, pkg.Dealer)
			n.logger.Warn("dealer rejected", zap.Uint64("dealer", pkg.Dealer), zap.Error(err))

			if first == nil {
				first = err
			}

			continue
		}

		dealers[pkg.Dealer] = struct{}{}

		row, public, err := n.VerifyPackage(pkg)
		if err != nil {
			n.logger.Warn("dealer rejected", zap.Uint64("dealer", pkg.Dealer), zap.Error(err))

			if first == nil {
				first = err
			}

			continue
		}

		rows = append(rows, row)
		publics = append(publics, public)
	}

	if first != nil {
		return nil, nil, first
	}

	secret := sumAtZero(rows)

	pks, err := PublicKeySet(n.configuration, publics)
	if err != nil {
		secret.SetZero()
		return nil, nil, err
	}

	n.logger.Debug("key share aggregated", zap.Int("dealers", len(rows)))

	return &tbls.KeyShare{ID: n.Identifier, Secret: secret}, pks, nil
}
