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

//go:generate mockgen -source ledger.go -destination ledger_mock.go -package ledger

import (
	"context"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	ErrReverted              = errors.New("transaction reverted")
	ErrUnauthorized          = errors.New("caller is not authorized")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientGas       = errors.New("sender cannot pay for gas")
	ErrUnknownContract       = errors.New("unknown contract")
	ErrLengthMismatch        = errors.New("array lengths do not match")
)

// RateMode is the interest rate mode of a borrow position.
type RateMode uint8

const (
	RateModeNone     RateMode = 0
	RateModeStable   RateMode = 1
	RateModeVariable RateMode = 2
)

// NoReferral is the referral code used for every deposit and borrow.
const NoReferral uint16 = 0

// Role is a permission of the Arc permission manager.
type Role uint64

const (
	RoleDepositor Role = iota
	RoleBorrower
	RoleLiquidator
	RoleStableRateManager
)

var roleNames = map[Role]string{
	RoleDepositor:         "depositor",
	RoleBorrower:          "borrower",
	RoleLiquidator:        "liquidator",
	RoleStableRateManager: "stable-rate-manager",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return strconv.FormatUint(uint64(r), 10)
}

// ParseRole accepts a role name as printed by String or the role's number.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for role, name := range roleNames {
		if strings.EqualFold(s, name) {
			return role, nil
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Newf("unknown role %q", s)
	}
	return Role(n), nil
}

// Asset describes a token listed in the pool.
type Asset struct {
	Symbol  string
	Address common.Address
}

func (a Asset) String() string {
	if a.Symbol != "" {
		return a.Symbol
	}
	return a.Address.Hex()
}

// AccountSnapshot is the result of getUserAccountData. Quote-currency values
// carry 18 decimals, thresholds are in basis points.
type AccountSnapshot struct {
	TotalCollateral      *uint256.Int
	TotalDebt            *uint256.Int
	AvailableBorrowPower *uint256.Int
	LiquidationThreshold *uint256.Int
	Ltv                  *uint256.Int
	// HealthFactor is kept as big.Int so values above 2^256-1 stay observable.
	HealthFactor *big.Int
}

// Signer is an identity able to authorize ledger operations.
type Signer interface {
	Address() common.Address
}

// Account is a Signer backed by an account the ledger accepts transactions from,
// either unlocked or impersonated.
type Account common.Address

func (a Account) Address() common.Address {
	return common.Address(a)
}

// Tokens gives access to ERC20 contracts. Approve returns after confirmation.
type Tokens interface {
	BalanceOf(ctx context.Context, token common.Address, owner common.Address) (*uint256.Int, error)
	Decimals(ctx context.Context, token common.Address) (uint8, error)
	Symbol(ctx context.Context, token common.Address) (string, error)
	Approve(ctx context.Context, owner Signer, token common.Address, spender common.Address, amount *uint256.Int) error
}

// Pool is a lending pool. Deposit and Borrow return after confirmation.
type Pool interface {
	Address() common.Address
	Deposit(ctx context.Context, from Signer, asset common.Address, amount *uint256.Int, onBehalfOf common.Address, referralCode uint16) error
	Borrow(ctx context.Context, from Signer, asset common.Address, amount *uint256.Int, rateMode RateMode, referralCode uint16, onBehalfOf common.Address) error
	GetUserAccountData(ctx context.Context, account common.Address) (AccountSnapshot, error)
}

// PriceOracle is the protocol's price oracle. SetAssetSources repoints all
// given assets in one confirmed call.
type PriceOracle interface {
	Address() common.Address
	GetAssetPrice(ctx context.Context, asset common.Address) (*uint256.Int, error)
	Owner(ctx context.Context) (common.Address, error)
	SetAssetSources(ctx context.Context, from Signer, assets []common.Address, sources []common.Address) error
}

// PermissionManager assigns roles; roles[i] is granted to users[i].
type PermissionManager interface {
	Address() common.Address
	AddPermissions(ctx context.Context, from Signer, roles []Role, users []common.Address) error
}

// Environment covers the privileged test-node operations.
type Environment interface {
	Impersonate(ctx context.Context, account common.Address) (Signer, error)
	StopImpersonating(ctx context.Context, account common.Address) error
	FundBalance(ctx context.Context, account common.Address, amount *uint256.Int) error
	DeployMockFeed(ctx context.Context, price *uint256.Int) (common.Address, error)
}

// Ledger is the full collaborator surface of one execution environment.
type Ledger interface {
	Tokens
	Environment
	Pool(address common.Address) Pool
	PriceOracle(address common.Address) PriceOracle
	PermissionManager(address common.Address) PermissionManager
	Close()
}
