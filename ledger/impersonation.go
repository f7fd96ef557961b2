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

package ledger

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// PrivilegedFunding is the native balance (100 ETH) given to an impersonated
// identity so it can pay for its transactions.
var PrivilegedFunding = uint256.MustFromHex("0x56bc75e2d63100000")

// WithImpersonation acquires account for the duration of use: the account is
// impersonated, funded with PrivilegedFunding and released again once use returns.
// Nothing about the identity outlives the call.
func WithImpersonation(ctx context.Context, env Environment, account common.Address, use func(Signer) error) (err error) {
	signer, err := env.Impersonate(ctx, account)
	if err != nil {
		return errors.Wrapf(err, "cannot impersonate %v", account)
	}
	defer func() {
		if stopErr := env.StopImpersonating(ctx, account); stopErr != nil {
			err = errors.Join(err, errors.Wrapf(stopErr, "cannot stop impersonating %v", account))
		}
	}()

	if err = env.FundBalance(ctx, account, PrivilegedFunding); err != nil {
		return errors.Wrapf(err, "cannot fund %v", account)
	}
	return use(signer)
}
