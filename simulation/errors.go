// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

// Package simulation drives a lending market into prepared states: it injects
// liquidity, opens borrow positions, grants permissions, reports health factors
// and swaps price sources for scaled mock feeds.
package simulation

import (
	"fmt"

	"github.com/0xsoniclabs/marketsim/utils/fixedpoint"
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInvalidFraction = errors.New("fraction exceeds 10000 basis points")
	ErrZeroPrice       = errors.New("asset price is zero")
	ErrAmountOverflow  = fixedpoint.ErrOverflow
	ErrNoAuthority     = errors.New("no authority account configured")
)

// OperationError names the ledger operation that failed together with the
// actor it was issued for and, where relevant, the asset.
type OperationError struct {
	Op    string
	Actor common.Address
	Asset common.Address
	Err   error
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Asset != (common.Address{}) {
		msg += fmt.Sprintf(" of %v", e.Asset)
	}
	if e.Actor != (common.Address{}) {
		msg += fmt.Sprintf(" by %v", e.Actor)
	}
	return fmt.Sprintf("%v failed: %v", msg, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func newOperationError(op string, actor common.Address, asset common.Address, err error) error {
	return &OperationError{Op: op, Actor: actor, Asset: asset, Err: err}
}
