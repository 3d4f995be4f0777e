// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package dkg_test

import (
	"fmt"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bytemare/tbls"
	"github.com/bytemare/tbls/commitment"
	"github.com/bytemare/tbls/dkg"
	"github.com/bytemare/tbls/internal"
	"github.com/bytemare/tbls/internal/shamir"
)

func makeDeals(t *testing.T, conf *tbls.Configuration, dealers int, seed string) []*dkg.Deal {
	t.Helper()

	deals := make([]*dkg.Deal, dealers)

	for i := range deals {
		rng := internal.NewSeededReader([]byte(fmt.Sprintf("%s-%d", seed, i)))
		dealer, err := dkg.NewDealer(conf, uint64(i)+1, rng)
		require.NoError(t, err)

		deals[i] = dealer.Deal()
	}

	return deals
}

func contributions(deals []*dkg.Deal, id uint64) ([]shamir.Polynomial, []commitment.Commitment) {
	rows := make([]shamir.Polynomial, len(deals))
	commits := make([]commitment.Commitment, len(deals))

	for i, deal := range deals {
		rows[i] = deal.Row(id).Copy()
		commits[i] = deal.Commitments[id]
	}

	return rows, commits
}

func publicCommitments(deals []*dkg.Deal) []commitment.Commitment {
	commits := make([]commitment.Commitment, len(deals))
	for i, deal := range deals {
		commits[i] = deal.PublicCommitment()
	}

	return commits
}

// Three dealers, five participants, degree two: participants 1, 3, and 4 recover the sum of the dealers' secrets.
func TestDKG_Scenario(t *testing.T) {
	conf := &tbls.Configuration{Threshold: 2, MaxParticipants: 5}
	deals := makeDeals(t, conf, 3, "scenario")

	keyShares := make([]*tbls.KeyShare, conf.MaxParticipants)

	for id := uint64(1); id <= conf.MaxParticipants; id++ {
		node, err := dkg.NewNode(conf, id)
		require.NoError(t, err)

		rows, commits := contributions(deals, id)
		for i := range rows {
			require.True(t, dkg.VerifyRow(rows[i], commits[i]))
		}

		keyShares[id-1], err = node.Aggregate(rows, commits)
		require.NoError(t, err)
		require.Equal(t, id, keyShares[id-1].ID)
	}

	// the dealers read their randomness only to sample their bivariate polynomial, so the same seeds give the
	// polynomials back, and the expected secret is the sum of their values at (0, 0)
	var expected fr.Element

	for i := range deals {
		b := shamir.RandomBivariate(conf.Threshold, internal.NewSeededReader([]byte(fmt.Sprintf("scenario-%d", i))))
		s := b.Evaluate(0, 0)
		expected.Add(&expected, &s)

		require.True(t, deals[i].PublicCommitment().Equal(commitment.Commit(b.Row(0))))
	}

	secret, err := conf.RecoverGroupSecret([]*tbls.KeyShare{keyShares[0], keyShares[2], keyShares[3]})
	require.NoError(t, err)
	require.True(t, secret.Secret.Equal(&expected))

	// the group public key commits to the same secret
	pk, err := dkg.GroupPublicKey(publicCommitments(deals))
	require.NoError(t, err)

	expectedPK := secret.PublicKey()
	require.True(t, pk.Equal(&expectedPK))

	// every key share matches the public key set
	pks, err := dkg.PublicKeySet(conf, publicCommitments(deals))
	require.NoError(t, err)

	for _, k := range keyShares {
		require.NoError(t, conf.ValidateKeyShare(k, pks))
	}

	// and signing works end to end
	coordinator, err := conf.Coordinator(pks)
	require.NoError(t, err)

	msg := []byte("scenario")
	sig, err := coordinator.Combine(msg, []*tbls.SignatureShare{
		keyShares[4].Sign(msg), keyShares[1].Sign(msg), keyShares[0].Sign(msg),
	}, true)
	require.NoError(t, err)
	require.True(t, tbls.Verify(&pk, msg, &sig.Point))
}

func TestDeal(t *testing.T) {
	conf := &tbls.Configuration{Threshold: 3, MaxParticipants: 7}
	deal := makeDeals(t, conf, 1, "deal")[0]

	require.Len(t, deal.Rows, 7)
	require.Len(t, deal.Commitments, 8)
	require.Nil(t, deal.Row(0))
	require.Nil(t, deal.Row(8))

	for id := uint64(0); id <= conf.MaxParticipants; id++ {
		require.True(t, deal.Commitments[id].Equal(deal.Bivariate.Row(id)))
		require.Len(t, deal.Commitments[id], 4)
	}

	_, err := deal.Package(0)
	require.ErrorIs(t, err, tbls.ErrInvalidParameters)

	_, err = deal.Package(8)
	require.ErrorIs(t, err, tbls.ErrInvalidParameters)

	packages := deal.Packages()
	require.Len(t, packages, 7)

	for i, pkg := range packages {
		id := uint64(i) + 1
		single, err := deal.Package(id)
		require.NoError(t, err)
		require.Equal(t, single, pkg)
		require.Equal(t, id, pkg.Receiver)
		require.Equal(t, deal.Dealer, pkg.Dealer)
	}

	deal.Zeroize()

	for _, row := range deal.Rows {
		require.True(t, row.IsZero())
	}
}

func TestNewDealer_Bad(t *testing.T) {
	_, err := dkg.NewDealer(&tbls.Configuration{Threshold: 3, MaxParticipants: 3}, 1, nil)
	require.ErrorIs(t, err, tbls.ErrInvalidParameters)

	_, err = dkg.NewDealer(&tbls.Configuration{Threshold: 1, MaxParticipants: 3}, 0, nil)
	require.ErrorIs(t, err, tbls.ErrZeroIndex)

	_, err = dkg.NewNode(&tbls.Configuration{Threshold: 1, MaxParticipants: 3}, 4)
	require.ErrorIs(t, err, tbls.ErrInvalidParameters)
}

func TestAggregate_Tamper(t *testing.T) {
	conf := &tbls.Configuration{Threshold: 2, MaxParticipants: 5}
	deals := makeDeals(t, conf, 3, "tamper")
	rows, commits := contributions(deals, 2)

	one := internal.ScalarFromUint64(1)

	for c := range rows[1] {
		tampered := make([]shamir.Polynomial, len(rows))
		copy(tampered, rows)
		tampered[1] = rows[1].Copy()
		tampered[1][c].Add(&tampered[1][c], &one)

		require.False(t, dkg.VerifyRow(tampered[1], commits[1]))

		_, err := dkg.Aggregate(tampered, commits)
		require.ErrorIs(t, err, tbls.ErrCommitmentMismatch)
		require.ErrorContains(t, err, "dealer 1")

		_, err = dkg.AggregateConcurrent(tampered, commits)
		require.ErrorIs(t, err, tbls.ErrCommitmentMismatch)
		require.ErrorContains(t, err, "dealer 1")
	}
}

func TestAggregate_Bad(t *testing.T) {
	conf := &tbls.Configuration{Threshold: 1, MaxParticipants: 3}
	deals := makeDeals(t, conf, 2, "bad")
	rows, commits := contributions(deals, 1)

	_, err := dkg.Aggregate(rows, commits[:1])
	require.ErrorIs(t, err, dkg.ErrLengthMismatch)

	_, err = dkg.Aggregate(nil, nil)
	require.ErrorIs(t, err, dkg.ErrNoContribution)

	_, err = dkg.AggregateConcurrent(nil, nil)
	require.ErrorIs(t, err, dkg.ErrNoContribution)

	_, err = dkg.GroupPublicKey(nil)
	require.ErrorIs(t, err, dkg.ErrNoContribution)

	_, err = dkg.PublicKeySet(&tbls.Configuration{Threshold: 2, MaxParticipants: 3}, publicCommitments(deals))
	require.ErrorIs(t, err, tbls.ErrInvalidParameters)
}

func TestAggregateConcurrent(t *testing.T) {
	conf := &tbls.Configuration{Threshold: 4, MaxParticipants: 9}
	deals := makeDeals(t, conf, 16, "concurrent")

	for _, id := range []uint64{1, 5, 9} {
		rows, commits := contributions(deals, id)

		sequential, err := dkg.Aggregate(rows, commits)
		require.NoError(t, err)

		concurrent, err := dkg.AggregateConcurrent(rows, commits)
		require.NoError(t, err)
		require.True(t, sequential.Equal(&concurrent))
	}

	// several faulty dealers: the lowest position is reported
	rows, commits := contributions(deals, 3)
	commits[12], commits[5] = commits[5], commits[12]

	_, err := dkg.AggregateConcurrent(rows, commits)
	require.ErrorIs(t, err, tbls.ErrCommitmentMismatch)
	require.ErrorContains(t, err, "dealer 5")
}

func TestPackage_CBOR(t *testing.T) {
	conf := &tbls.Configuration{Threshold: 2, MaxParticipants: 4}
	deal := makeDeals(t, conf, 1, "cbor")[0]

	pkg, err := deal.Package(3)
	require.NoError(t, err)

	enc, err := pkg.MarshalBinary()
	require.NoError(t, err)

	// deterministic encoding
	again, err := pkg.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, enc, again)

	decoded := new(dkg.Package)
	require.NoError(t, decoded.UnmarshalBinary(enc))
	require.Equal(t, pkg, decoded)

	node, err := dkg.NewNode(conf, 3)
	require.NoError(t, err)

	row, public, err := node.VerifyPackage(decoded)
	require.NoError(t, err)
	require.True(t, row.Equal(deal.Row(3)))
	require.True(t, public.Equal(deal.PublicCommitment()))

	require.ErrorIs(t, decoded.UnmarshalBinary([]byte{0xff, 0x00}), tbls.ErrMalformedEncoding)

	zero := *pkg
	zero.Dealer = 0
	enc, err = zero.MarshalBinary()
	require.NoError(t, err)
	require.ErrorIs(t, decoded.UnmarshalBinary(enc), tbls.ErrZeroIndex)

	pkg.Zeroize()
	require.Equal(t, make([]byte, len(pkg.Row)), pkg.Row)
}

func TestVerifyPackage_Bad(t *testing.T) {
	conf := &tbls.Configuration{Threshold: 2, MaxParticipants: 4}
	deals := makeDeals(t, conf, 2, "verify")

	node, err := dkg.NewNode(conf, 2)
	require.NoError(t, err)

	// addressed to another participant
	pkg, err := deals[0].Package(3)
	require.NoError(t, err)

	_, _, err = node.VerifyPackage(pkg)
	require.ErrorIs(t, err, dkg.ErrWrongReceiver)

	// a row and commitment swapped from another participant pass the Feldman check, but not the symmetric check
	pkg.Receiver = 2
	_, _, err = node.VerifyPackage(pkg)
	require.ErrorIs(t, err, tbls.ErrCommitmentMismatch)
	require.ErrorContains(t, err, "public commitment")

	// a row with the commitment of another dealer
	pkg, err = deals[0].Package(2)
	require.NoError(t, err)

	pkg.Commitment = deals[1].Commitments[2].Encode()
	_, _, err = node.VerifyPackage(pkg)
	require.ErrorIs(t, err, tbls.ErrCommitmentMismatch)

	// the public commitment of another dealer
	pkg, err = deals[0].Package(2)
	require.NoError(t, err)

	pkg.PublicCommitment = deals[1].PublicCommitment().Encode()
	_, _, err = node.VerifyPackage(pkg)
	require.ErrorIs(t, err, tbls.ErrCommitmentMismatch)

	// malformed row
	pkg, err = deals[0].Package(2)
	require.NoError(t, err)

	pkg.Row = pkg.Row[1:]
	_, _, err = node.VerifyPackage(pkg)
	require.ErrorIs(t, err, tbls.ErrMalformedEncoding)

	// wrong degree
	other := makeDeals(t, &tbls.Configuration{Threshold: 3, MaxParticipants: 4}, 1, "degree")[0]
	pkg, err = other.Package(2)
	require.NoError(t, err)

	_, _, err = node.VerifyPackage(pkg)
	require.ErrorIs(t, err, tbls.ErrInvalidParameters)
}

func TestAggregatePackages(t *testing.T) {
	conf := &tbls.Configuration{Threshold: 2, MaxParticipants: 5}
	deals := makeDeals(t, conf, 4, "packages")

	keyShares := make([]*tbls.KeyShare, 0, 3)

	var pks *tbls.PublicKeySet

	for _, id := range []uint64{5, 2, 4} {
		node, err := dkg.NewNode(conf, id, dkg.WithConcurrentVerification())
		require.NoError(t, err)

		packages := make([]*dkg.Package, len(deals))
		for i, deal := range deals {
			packages[i], err = deal.Package(id)
			require.NoError(t, err)
		}

		k, p, err := node.AggregatePackages(packages)
		require.NoError(t, err)
		require.NoError(t, conf.ValidateKeyShare(k, p))

		rows, commits := contributions(deals, id)
		expected, err := dkg.Aggregate(rows, commits)
		require.NoError(t, err)
		require.True(t, k.Secret.Equal(&expected))

		keyShares = append(keyShares, k)
		pks = p
	}

	secret, err := conf.RecoverGroupSecret(keyShares)
	require.NoError(t, err)

	pk, expected := secret.PublicKey(), pks.PublicKey()
	require.True(t, pk.Equal(&expected))
}

func TestAggregatePackages_Logging(t *testing.T) {
	conf := &tbls.Configuration{Threshold: 1, MaxParticipants: 3}
	deals := makeDeals(t, conf, 3, "logging")

	core, logs := observer.New(zapcore.DebugLevel)

	node, err := dkg.NewNode(conf, 1, dkg.WithLogger(zap.New(core)))
	require.NoError(t, err)

	packages := make([]*dkg.Package, 0, 4)
	for _, deal := range deals {
		pkg, err := deal.Package(1)
		require.NoError(t, err)

		packages = append(packages, pkg)
	}

	// dealer 2 sends a bad commitment, and dealer 3 sends twice
	packages[1].Commitment = deals[0].Commitments[1].Encode()
	packages = append(packages, packages[2])

	_, _, err = node.AggregatePackages(packages)
	require.ErrorIs(t, err, tbls.ErrCommitmentMismatch)
	require.ErrorContains(t, err, "dealer 2")

	rejected := logs.FilterMessage("dealer rejected").AllUntimed()
	require.Len(t, rejected, 2)
	require.Equal(t, uint64(2), rejected[0].ContextMap()["dealer"])
	require.Equal(t, uint64(3), rejected[1].ContextMap()["dealer"])
	require.Equal(t, uint64(1), rejected[0].ContextMap()["node"])
	require.Equal(t, zapcore.WarnLevel, rejected[0].Level)

	// nothing was aggregated
	require.Zero(t, logs.FilterMessage("key share aggregated").Len())

	// successful aggregation is logged at debug level
	_, _, err = node.AggregatePackages(packages[:1])
	require.NoError(t, err)
	require.Equal(t, 1, logs.FilterMessage("key share aggregated").Len())

	_, _, err = node.AggregatePackages(nil)
	require.ErrorIs(t, err, dkg.ErrNoContribution)
}

func TestNode_AggregateLogging(t *testing.T) {
	conf := &tbls.Configuration{Threshold: 1, MaxParticipants: 3}
	deals := makeDeals(t, conf, 2, "node logging")
	core, logs := observer.New(zapcore.InfoLevel)

	node, err := dkg.NewNode(conf, 2, dkg.WithLogger(zap.New(core)), dkg.WithLogger(nil))
	require.NoError(t, err)

	rows, commits := contributions(deals, 2)
	commits[0], commits[1] = commits[1], commits[0]

	_, err = node.Aggregate(rows, commits)
	require.ErrorIs(t, err, tbls.ErrCommitmentMismatch)
	require.Equal(t, 1, logs.FilterMessage("aggregation rejected").Len())
}
