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
	"bytes"
	"context"
	"encoding/binary"
	"math/big"
	"sort"
	"sync"

	"github.com/0xsoniclabs/marketsim/utils/fixedpoint"
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
	"golang.org/x/exp/maps"
)

// Call is one journal entry of a MemoryLedger write.
type Call struct {
	Method string
	From   common.Address
	Args   []any
}

// ReserveConfig describes a token listed in the memory pool.
type ReserveConfig struct {
	Symbol   string
	Decimals uint8
	// Price is the initial oracle price in quote currency (18 decimals).
	Price *uint256.Int
	// Ltv and LiquidationThreshold are in basis points.
	Ltv                  uint64
	LiquidationThreshold uint64
}

type reserve struct {
	ReserveConfig
	balances   map[common.Address]*uint256.Int
	allowances map[common.Address]map[common.Address]*uint256.Int
	deposits   map[common.Address]*uint256.Int
	debts      map[common.Address]*uint256.Int
}

// MemoryLedger is a deterministic in-process ledger with one pool, one oracle and
// one permission manager. Writes are journaled and applied atomically. It serves
// dry runs of the harness and tests.
type MemoryLedger struct {
	mu sync.Mutex

	poolAddress       common.Address
	oracleAddress     common.Address
	permissionAddress common.Address
	oracleOwner       common.Address
	whitelister       common.Address

	reserves     map[common.Address]*reserve
	sources      map[common.Address]common.Address
	feeds        map[common.Address]*uint256.Int
	native       map[common.Address]*uint256.Int
	unlocked     map[common.Address]bool
	impersonated map[common.Address]bool
	permissions  map[common.Address]map[Role]bool
	deployments  uint64

	journal []Call
	reverts map[string]error
}

// MemoryLedgerConfig holds the well-known addresses of a MemoryLedger.
type MemoryLedgerConfig struct {
	Pool              common.Address
	Oracle            common.Address
	PermissionManager common.Address
	OracleOwner       common.Address
	Whitelister       common.Address
}

// NewMemoryLedger creates an empty ledger with the given contract addresses.
func NewMemoryLedger(cfg MemoryLedgerConfig) *MemoryLedger {
	return &MemoryLedger{
		poolAddress:       cfg.Pool,
		oracleAddress:     cfg.Oracle,
		permissionAddress: cfg.PermissionManager,
		oracleOwner:       cfg.OracleOwner,
		whitelister:       cfg.Whitelister,
		reserves:          make(map[common.Address]*reserve),
		sources:           make(map[common.Address]common.Address),
		feeds:             make(map[common.Address]*uint256.Int),
		native:            make(map[common.Address]*uint256.Int),
		unlocked:          make(map[common.Address]bool),
		impersonated:      make(map[common.Address]bool),
		permissions:       make(map[common.Address]map[Role]bool),
		reverts:           make(map[string]error),
	}
}

// AddReserve lists token in the pool with the given configuration.
func (l *MemoryLedger) AddReserve(token common.Address, cfg ReserveConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cfg.Price == nil {
		cfg.Price = new(uint256.Int)
	}
	l.reserves[token] = &reserve{
		ReserveConfig: cfg,
		balances:      make(map[common.Address]*uint256.Int),
		allowances:    make(map[common.Address]map[common.Address]*uint256.Int),
		deposits:      make(map[common.Address]*uint256.Int),
		debts:         make(map[common.Address]*uint256.Int),
	}
}

// Mint credits amount of token to owner.
func (l *MemoryLedger) Mint(token common.Address, owner common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, err := l.reserve(token)
	if err != nil {
		return err
	}
	r.balances[owner] = add(r.balances[owner], amount)
	return nil
}

// Unlock registers account as a signer that pays no gas (a funded dev account).
func (l *MemoryLedger) Unlock(account common.Address) Signer {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.unlocked[account] = true
	return Account(account)
}

// SetRevert makes every following call of method fail with err; a nil err clears it.
func (l *MemoryLedger) SetRevert(method string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err == nil {
		delete(l.reverts, method)
		return
	}
	l.reverts[method] = err
}

// Journal returns the confirmed writes in the order they were applied.
func (l *MemoryLedger) Journal() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Call(nil), l.journal...)
}

// Calls returns the journal entries of method.
func (l *MemoryLedger) Calls(method string) []Call {
	var res []Call
	for _, c := range l.Journal() {
		if c.Method == method {
			res = append(res, c)
		}
	}
	return res
}

// HasRole reports whether user was granted role.
func (l *MemoryLedger) HasRole(user common.Address, role Role) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.permissions[user][role]
}

// Deposited returns the pool deposit of account in token.
func (l *MemoryLedger) Deposited(token common.Address, account common.Address) *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if r, ok := l.reserves[token]; ok {
		return value(r.deposits[account])
	}
	return new(uint256.Int)
}

// Debt returns the variable debt of account in token.
func (l *MemoryLedger) Debt(token common.Address, account common.Address) *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if r, ok := l.reserves[token]; ok {
		return value(r.debts[account])
	}
	return new(uint256.Int)
}

// Source returns the price feed currently assigned to asset, the zero address
// meaning the reserve's own price.
func (l *MemoryLedger) Source(asset common.Address) common.Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sources[asset]
}

// NativeBalance returns the gas balance of account.
func (l *MemoryLedger) NativeBalance(account common.Address) *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return value(l.native[account])
}

// IsImpersonated reports whether account is currently impersonated.
func (l *MemoryLedger) IsImpersonated(account common.Address) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.impersonated[account]
}

func (l *MemoryLedger) Close() {
	// nothing to release
}

func (l *MemoryLedger) Pool(address common.Address) Pool {
	return memoryPool{ledger: l, address: address}
}

func (l *MemoryLedger) PriceOracle(address common.Address) PriceOracle {
	return memoryOracle{ledger: l, address: address}
}

func (l *MemoryLedger) PermissionManager(address common.Address) PermissionManager {
	return memoryPermissionManager{ledger: l, address: address}
}

// ---- Tokens ----

func (l *MemoryLedger) BalanceOf(ctx context.Context, token common.Address, owner common.Address) (*uint256.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(ctx, "balanceOf"); err != nil {
		return nil, err
	}
	r, err := l.reserve(token)
	if err != nil {
		return nil, err
	}
	return value(r.balances[owner]), nil
}

func (l *MemoryLedger) Decimals(ctx context.Context, token common.Address) (uint8, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(ctx, "decimals"); err != nil {
		return 0, err
	}
	r, err := l.reserve(token)
	if err != nil {
		return 0, err
	}
	return r.Decimals, nil
}

func (l *MemoryLedger) Symbol(ctx context.Context, token common.Address) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(ctx, "symbol"); err != nil {
		return "", err
	}
	r, err := l.reserve(token)
	if err != nil {
		return "", err
	}
	return r.Symbol, nil
}

func (l *MemoryLedger) Approve(ctx context.Context, owner Signer, token common.Address, spender common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	from := owner.Address()
	if err := l.write(ctx, "approve", from); err != nil {
		return err
	}
	r, err := l.reserve(token)
	if err != nil {
		return err
	}
	if r.allowances[from] == nil {
		r.allowances[from] = make(map[common.Address]*uint256.Int)
	}
	r.allowances[from][spender] = value(amount)
	l.record("approve", from, token, spender, value(amount))
	return nil
}

// ---- Environment ----

func (l *MemoryLedger) Impersonate(ctx context.Context, account common.Address) (Signer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(ctx, "impersonate"); err != nil {
		return nil, err
	}
	l.impersonated[account] = true
	l.record("impersonate", account)
	return Account(account), nil
}

func (l *MemoryLedger) StopImpersonating(ctx context.Context, account common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(ctx, "stopImpersonating"); err != nil {
		return err
	}
	delete(l.impersonated, account)
	l.record("stopImpersonating", account)
	return nil
}

func (l *MemoryLedger) FundBalance(ctx context.Context, account common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(ctx, "setBalance"); err != nil {
		return err
	}
	l.native[account] = value(amount)
	l.record("setBalance", account, value(amount))
	return nil
}

func (l *MemoryLedger) DeployMockFeed(ctx context.Context, price *uint256.Int) (common.Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(ctx, "deployMockFeed"); err != nil {
		return common.Address{}, err
	}

	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], l.deployments)
	l.deployments++

	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte("MockAggregator"))
	hash.Write(nonce[:])
	feed := common.BytesToAddress(hash.Sum(nil)[12:])

	l.feeds[feed] = value(price)
	l.record("deployMockFeed", common.Address{}, feed, value(price))
	return feed, nil
}

// ---- internals ----

// read checks cancellation and injected reverts for calls that need no sender.
func (l *MemoryLedger) read(ctx context.Context, method string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := l.reverts[method]; ok {
		return errors.Wrapf(err, "%v", method)
	}
	return nil
}

// write additionally requires the sender to be able to pay for gas.
func (l *MemoryLedger) write(ctx context.Context, method string, from common.Address) error {
	if err := l.read(ctx, method); err != nil {
		return err
	}
	if l.unlocked[from] {
		return nil
	}
	if l.impersonated[from] && !value(l.native[from]).IsZero() {
		return nil
	}
	return errors.Wrapf(ErrInsufficientGas, "%v from %v", method, from)
}

func (l *MemoryLedger) record(method string, from common.Address, args ...any) {
	l.journal = append(l.journal, Call{Method: method, From: from, Args: args})
}

func (l *MemoryLedger) reserve(token common.Address) (*reserve, error) {
	r, ok := l.reserves[token]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownContract, "token %v", token)
	}
	return r, nil
}

// price returns the oracle price of token, following a repointed source.
func (l *MemoryLedger) price(token common.Address) (*uint256.Int, error) {
	r, err := l.reserve(token)
	if err != nil {
		return nil, err
	}
	if feed, ok := l.sources[token]; ok {
		if p, ok := l.feeds[feed]; ok {
			return value(p), nil
		}
		return nil, errors.Wrapf(ErrUnknownContract, "price feed %v", feed)
	}
	return value(r.Price), nil
}

// sortedReserves lists reserve addresses in byte order for deterministic sums.
func (l *MemoryLedger) sortedReserves() []common.Address {
	keys := maps.Keys(l.reserves)
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].Bytes(), keys[j].Bytes()) < 0
	})
	return keys
}

// accountData computes getUserAccountData from deposits, debts and prices.
// Sums that do not fit 256 bits fail with fixedpoint.ErrOverflow; the health
// factor is exact and may exceed MaxUint256.
func (l *MemoryLedger) accountData(account common.Address) (AccountSnapshot, error) {
	collateral := new(uint256.Int)
	debt := new(uint256.Int)
	weightedLtv := new(uint256.Int)
	weightedThreshold := new(uint256.Int)

	for _, token := range l.sortedReserves() {
		r := l.reserves[token]
		p, err := l.price(token)
		if err != nil {
			return AccountSnapshot{}, err
		}
		unit, err := fixedpoint.Pow10(r.Decimals)
		if err != nil {
			return AccountSnapshot{}, err
		}
		if d := value(r.deposits[account]); !d.IsZero() {
			quote, overflow := new(uint256.Int).MulDivOverflow(d, p, unit)
			if overflow || addProduct(collateral, quote, 1) ||
				addProduct(weightedLtv, quote, r.Ltv) ||
				addProduct(weightedThreshold, quote, r.LiquidationThreshold) {
				return AccountSnapshot{}, errors.Wrapf(fixedpoint.ErrOverflow, "collateral of %v", account)
			}
		}
		if d := value(r.debts[account]); !d.IsZero() {
			quote, overflow := new(uint256.Int).MulDivOverflow(d, p, unit)
			if overflow || addProduct(debt, quote, 1) {
				return AccountSnapshot{}, errors.Wrapf(fixedpoint.ErrOverflow, "debt of %v", account)
			}
		}
	}

	snapshot := AccountSnapshot{
		TotalCollateral:      collateral,
		TotalDebt:            debt,
		AvailableBorrowPower: new(uint256.Int),
		LiquidationThreshold: new(uint256.Int),
		Ltv:                  new(uint256.Int),
		HealthFactor:         fixedpoint.MaxUint256.ToBig(),
	}
	if collateral.IsZero() {
		if !debt.IsZero() {
			snapshot.HealthFactor.SetUint64(0)
		}
		return snapshot, nil
	}

	snapshot.Ltv.Div(weightedLtv, collateral)
	snapshot.LiquidationThreshold.Div(weightedThreshold, collateral)

	borrowable, err := fixedpoint.PercentMul(collateral, fixedpoint.BasisPoints(snapshot.Ltv.Uint64()))
	if err != nil {
		return AccountSnapshot{}, err
	}
	if borrowable.Gt(debt) {
		snapshot.AvailableBorrowPower.Sub(borrowable, debt)
	}
	if !debt.IsZero() {
		adjusted, err := fixedpoint.PercentMul(collateral, fixedpoint.BasisPoints(snapshot.LiquidationThreshold.Uint64()))
		if err != nil {
			return AccountSnapshot{}, err
		}
		wad, err := fixedpoint.Pow10(fixedpoint.WadDecimals)
		if err != nil {
			return AccountSnapshot{}, err
		}
		hf := new(big.Int).Mul(adjusted.ToBig(), wad.ToBig())
		snapshot.HealthFactor = hf.Quo(hf, debt.ToBig())
	}
	return snapshot, nil
}

// addProduct sets sum to sum + a*b and reports whether that overflows.
func addProduct(sum, a *uint256.Int, b uint64) bool {
	product, overflow := new(uint256.Int).MulOverflow(a, uint256.NewInt(b))
	if overflow {
		return true
	}
	_, overflow = sum.AddOverflow(sum, product)
	return overflow
}

func value(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(v)
}

func add(a, b *uint256.Int) *uint256.Int {
	return new(uint256.Int).Add(value(a), value(b))
}

// ---- Pool ----

type memoryPool struct {
	ledger  *MemoryLedger
	address common.Address
}

func (p memoryPool) Address() common.Address {
	return p.address
}

func (p memoryPool) check() error {
	if p.address != p.ledger.poolAddress {
		return errors.Wrapf(ErrUnknownContract, "pool %v", p.address)
	}
	return nil
}

func (p memoryPool) Deposit(ctx context.Context, from Signer, asset common.Address, amount *uint256.Int, onBehalfOf common.Address, referralCode uint16) error {
	l := p.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	sender := from.Address()
	if err := l.write(ctx, "deposit", sender); err != nil {
		return err
	}
	if err := p.check(); err != nil {
		return err
	}
	if amount.IsZero() {
		return errors.Wrap(ErrReverted, "deposit amount must be greater than 0")
	}
	r, err := l.reserve(asset)
	if err != nil {
		return err
	}

	allowance := value(r.allowances[sender][p.address])
	if allowance.Lt(amount) {
		return errors.Wrapf(ErrInsufficientAllowance, "deposit of %v %v by %v", amount, r.Symbol, sender)
	}
	balance := value(r.balances[sender])
	if balance.Lt(amount) {
		return errors.Wrapf(ErrInsufficientBalance, "deposit of %v %v by %v", amount, r.Symbol, sender)
	}

	r.balances[sender] = new(uint256.Int).Sub(balance, amount)
	if !allowance.Eq(fixedpoint.MaxUint256) {
		r.allowances[sender][p.address] = new(uint256.Int).Sub(allowance, amount)
	}
	r.deposits[onBehalfOf] = add(r.deposits[onBehalfOf], amount)
	l.record("deposit", sender, asset, value(amount), onBehalfOf, referralCode)
	return nil
}

func (p memoryPool) Borrow(ctx context.Context, from Signer, asset common.Address, amount *uint256.Int, rateMode RateMode, referralCode uint16, onBehalfOf common.Address) error {
	l := p.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	sender := from.Address()
	if err := l.write(ctx, "borrow", sender); err != nil {
		return err
	}
	if err := p.check(); err != nil {
		return err
	}
	if rateMode != RateModeVariable && rateMode != RateModeStable {
		return errors.Wrapf(ErrReverted, "invalid interest rate mode %d", rateMode)
	}
	if amount.IsZero() {
		return errors.Wrap(ErrReverted, "borrow amount must be greater than 0")
	}
	r, err := l.reserve(asset)
	if err != nil {
		return err
	}

	data, err := l.accountData(onBehalfOf)
	if err != nil {
		return err
	}
	p1, err := l.price(asset)
	if err != nil {
		return err
	}
	unit, err := fixedpoint.Pow10(r.Decimals)
	if err != nil {
		return err
	}
	quote, overflow := new(uint256.Int).MulDivOverflow(amount, p1, unit)
	if overflow || quote.Gt(data.AvailableBorrowPower) {
		return errors.Wrapf(ErrReverted, "collateral cannot cover borrow of %v %v", amount, r.Symbol)
	}

	r.debts[onBehalfOf] = add(r.debts[onBehalfOf], amount)
	r.balances[sender] = add(r.balances[sender], amount)
	l.record("borrow", sender, asset, value(amount), rateMode, referralCode, onBehalfOf)
	return nil
}

func (p memoryPool) GetUserAccountData(ctx context.Context, account common.Address) (AccountSnapshot, error) {
	l := p.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(ctx, "getUserAccountData"); err != nil {
		return AccountSnapshot{}, err
	}
	if err := p.check(); err != nil {
		return AccountSnapshot{}, err
	}
	return l.accountData(account)
}

// ---- PriceOracle ----

type memoryOracle struct {
	ledger  *MemoryLedger
	address common.Address
}

func (o memoryOracle) Address() common.Address {
	return o.address
}

func (o memoryOracle) check() error {
	if o.address != o.ledger.oracleAddress {
		return errors.Wrapf(ErrUnknownContract, "price oracle %v", o.address)
	}
	return nil
}

func (o memoryOracle) GetAssetPrice(ctx context.Context, asset common.Address) (*uint256.Int, error) {
	l := o.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(ctx, "getAssetPrice"); err != nil {
		return nil, err
	}
	if err := o.check(); err != nil {
		return nil, err
	}
	return l.price(asset)
}

func (o memoryOracle) Owner(ctx context.Context) (common.Address, error) {
	l := o.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(ctx, "owner"); err != nil {
		return common.Address{}, err
	}
	if err := o.check(); err != nil {
		return common.Address{}, err
	}
	return l.oracleOwner, nil
}

func (o memoryOracle) SetAssetSources(ctx context.Context, from Signer, assets []common.Address, sources []common.Address) error {
	l := o.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	sender := from.Address()
	if err := l.write(ctx, "setAssetSources", sender); err != nil {
		return err
	}
	if err := o.check(); err != nil {
		return err
	}
	if sender != l.oracleOwner {
		return errors.Wrapf(ErrUnauthorized, "setAssetSources from %v", sender)
	}
	if len(assets) != len(sources) {
		return errors.Wrapf(ErrLengthMismatch, "%d assets, %d sources", len(assets), len(sources))
	}
	for _, source := range sources {
		if _, ok := l.feeds[source]; !ok {
			return errors.Wrapf(ErrUnknownContract, "price feed %v", source)
		}
	}
	for i, asset := range assets {
		l.sources[asset] = sources[i]
	}
	l.record("setAssetSources", sender, append([]common.Address(nil), assets...), append([]common.Address(nil), sources...))
	return nil
}

// ---- PermissionManager ----

type memoryPermissionManager struct {
	ledger  *MemoryLedger
	address common.Address
}

func (m memoryPermissionManager) Address() common.Address {
	return m.address
}

func (m memoryPermissionManager) AddPermissions(ctx context.Context, from Signer, roles []Role, users []common.Address) error {
	l := m.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	sender := from.Address()
	if err := l.write(ctx, "addPermissions", sender); err != nil {
		return err
	}
	if m.address != l.permissionAddress {
		return errors.Wrapf(ErrUnknownContract, "permission manager %v", m.address)
	}
	if sender != l.whitelister {
		return errors.Wrapf(ErrUnauthorized, "addPermissions from %v", sender)
	}
	if len(roles) != len(users) {
		return errors.Wrapf(ErrLengthMismatch, "%d roles, %d users", len(roles), len(users))
	}
	for i, user := range users {
		if l.permissions[user] == nil {
			l.permissions[user] = make(map[Role]bool)
		}
		l.permissions[user][roles[i]] = true
	}
	l.record("addPermissions", sender, append([]Role(nil), roles...), append([]common.Address(nil), users...))
	return nil
}
