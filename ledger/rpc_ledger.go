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
	"math/big"
	"time"

	"github.com/0xsoniclabs/marketsim/logger"
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/holiman/uint256"
)

const defaultReceiptPollInterval = 100 * time.Millisecond

// RpcLedgerConfig configures an RpcLedger.
type RpcLedgerConfig struct {
	// Deployer sends the mock feed deployments; eth_accounts[0] if zero.
	Deployer common.Address
	// MockFeed is the MockAggregator artifact; DeployMockFeed fails without it.
	MockFeed *Artifact
	// ReceiptPollInterval defaults to 100ms.
	ReceiptPollInterval time.Duration
}

// RpcLedger talks to a hardhat-compatible development node (hardhat, anvil) over
// JSON-RPC. Transactions are sent with eth_sendTransaction from unlocked or
// impersonated accounts and each call returns once its receipt is available.
type RpcLedger struct {
	rpc          *rpc.Client
	client       *ethclient.Client
	deployer     common.Address
	feedCode     []byte
	pollInterval time.Duration
	log          logger.Logger
}

// NewRpcLedger dials url and returns a ledger backed by the node behind it.
func NewRpcLedger(ctx context.Context, url string, cfg RpcLedgerConfig, log logger.Logger) (*RpcLedger, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot dial %v", url)
	}
	l, err := newRpcLedger(ctx, client, cfg, log)
	if err != nil {
		client.Close()
		return nil, err
	}
	return l, nil
}

func newRpcLedger(ctx context.Context, client *rpc.Client, cfg RpcLedgerConfig, log logger.Logger) (*RpcLedger, error) {
	l := &RpcLedger{
		rpc:          client,
		client:       ethclient.NewClient(client),
		deployer:     cfg.Deployer,
		pollInterval: cfg.ReceiptPollInterval,
		log:          log,
	}
	if l.pollInterval <= 0 {
		l.pollInterval = defaultReceiptPollInterval
	}
	if cfg.MockFeed != nil {
		code, err := cfg.MockFeed.Code()
		if err != nil {
			return nil, err
		}
		l.feedCode = code
	}
	if l.deployer == (common.Address{}) {
		var accounts []common.Address
		if err := client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
			return nil, errors.Wrap(err, "cannot list node accounts")
		}
		if len(accounts) > 0 {
			l.deployer = accounts[0]
		}
	}
	return l, nil
}

func (l *RpcLedger) Close() {
	l.rpc.Close()
}

func (l *RpcLedger) Pool(address common.Address) Pool {
	return rpcPool{ledger: l, address: address}
}

func (l *RpcLedger) PriceOracle(address common.Address) PriceOracle {
	return rpcOracle{ledger: l, address: address}
}

func (l *RpcLedger) PermissionManager(address common.Address) PermissionManager {
	return rpcPermissionManager{ledger: l, address: address}
}

// ---- Tokens ----

func (l *RpcLedger) BalanceOf(ctx context.Context, token common.Address, owner common.Address) (*uint256.Int, error) {
	out, err := l.call(ctx, token, erc20ABI, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return toUint256(out[0])
}

func (l *RpcLedger) Decimals(ctx context.Context, token common.Address) (uint8, error) {
	out, err := l.call(ctx, token, erc20ABI, "decimals")
	if err != nil {
		return 0, err
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, errors.Newf("unexpected decimals type %T", out[0])
	}
	return decimals, nil
}

func (l *RpcLedger) Symbol(ctx context.Context, token common.Address) (string, error) {
	out, err := l.call(ctx, token, erc20ABI, "symbol")
	if err != nil {
		return "", err
	}
	symbol, ok := out[0].(string)
	if !ok {
		return "", errors.Newf("unexpected symbol type %T", out[0])
	}
	return symbol, nil
}

func (l *RpcLedger) Approve(ctx context.Context, owner Signer, token common.Address, spender common.Address, amount *uint256.Int) error {
	_, err := l.transact(ctx, owner.Address(), &token, erc20ABI, "approve", spender, amount.ToBig())
	return err
}

// ---- Environment ----

func (l *RpcLedger) Impersonate(ctx context.Context, account common.Address) (Signer, error) {
	if err := l.rpc.CallContext(ctx, nil, "hardhat_impersonateAccount", account); err != nil {
		return nil, err
	}
	return Account(account), nil
}

func (l *RpcLedger) StopImpersonating(ctx context.Context, account common.Address) error {
	return l.rpc.CallContext(ctx, nil, "hardhat_stopImpersonatingAccount", account)
}

func (l *RpcLedger) FundBalance(ctx context.Context, account common.Address, amount *uint256.Int) error {
	return l.rpc.CallContext(ctx, nil, "hardhat_setBalance", account, hexutil.EncodeBig(amount.ToBig()))
}

func (l *RpcLedger) DeployMockFeed(ctx context.Context, price *uint256.Int) (common.Address, error) {
	if len(l.feedCode) == 0 {
		return common.Address{}, errors.New("no MockAggregator artifact configured")
	}
	if l.deployer == (common.Address{}) {
		return common.Address{}, errors.New("no deployer account available")
	}
	args, err := mockAggregatorABI.Pack("", price.ToBig())
	if err != nil {
		return common.Address{}, errors.Wrap(err, "cannot encode MockAggregator constructor")
	}
	code := append(append([]byte(nil), l.feedCode...), args...)

	receipt, err := l.send(ctx, l.deployer, nil, code, "deploy MockAggregator")
	if err != nil {
		return common.Address{}, err
	}
	return receipt.ContractAddress, nil
}

// ---- internals ----

// call executes a read-only contract method and returns its decoded outputs.
func (l *RpcLedger) call(ctx context.Context, to common.Address, contract abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot encode %v", method)
	}
	raw, err := l.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "%v on %v failed", method, to)
	}
	out, err := contract.Unpack(method, raw)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode %v result", method)
	}
	if len(out) == 0 {
		return nil, errors.Newf("%v returned no values", method)
	}
	return out, nil
}

// transact sends a contract method call from sender and waits for its receipt.
func (l *RpcLedger) transact(ctx context.Context, from common.Address, to *common.Address, contract abi.ABI, method string, args ...interface{}) (*types.Receipt, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot encode %v", method)
	}
	return l.send(ctx, from, to, data, method)
}

type sendTxArgs struct {
	From common.Address `json:"from"`
	To   *common.Address `json:"to,omitempty"`
	Data hexutil.Bytes   `json:"data"`
}

func (l *RpcLedger) send(ctx context.Context, from common.Address, to *common.Address, data []byte, what string) (*types.Receipt, error) {
	var hash common.Hash
	if err := l.rpc.CallContext(ctx, &hash, "eth_sendTransaction", sendTxArgs{From: from, To: to, Data: data}); err != nil {
		return nil, errors.Wrapf(err, "cannot send %v from %v", what, from)
	}
	l.log.Debugf("%v from %v sent; tx %v", what, from, hash)

	receipt, err := l.waitMined(ctx, hash)
	if err != nil {
		return nil, errors.Wrapf(err, "%v; tx %v", what, hash)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, errors.Wrapf(ErrReverted, "%v from %v; tx %v", what, from, hash)
	}
	return receipt, nil
}

// waitMined polls for the receipt of hash until it exists or ctx is done.
func (l *RpcLedger) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()
	for {
		receipt, err := l.client.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func toUint256(v interface{}) (*uint256.Int, error) {
	b, ok := v.(*big.Int)
	if !ok {
		return nil, errors.Newf("unexpected value type %T", v)
	}
	res, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.Newf("value %v exceeds 256 bits", b)
	}
	return res, nil
}

// ---- Pool ----

type rpcPool struct {
	ledger  *RpcLedger
	address common.Address
}

func (p rpcPool) Address() common.Address {
	return p.address
}

func (p rpcPool) Deposit(ctx context.Context, from Signer, asset common.Address, amount *uint256.Int, onBehalfOf common.Address, referralCode uint16) error {
	_, err := p.ledger.transact(ctx, from.Address(), &p.address, lendingPoolABI, "deposit", asset, amount.ToBig(), onBehalfOf, referralCode)
	return err
}

func (p rpcPool) Borrow(ctx context.Context, from Signer, asset common.Address, amount *uint256.Int, rateMode RateMode, referralCode uint16, onBehalfOf common.Address) error {
	_, err := p.ledger.transact(ctx, from.Address(), &p.address, lendingPoolABI, "borrow", asset, amount.ToBig(), big.NewInt(int64(rateMode)), referralCode, onBehalfOf)
	return err
}

func (p rpcPool) GetUserAccountData(ctx context.Context, account common.Address) (AccountSnapshot, error) {
	out, err := p.ledger.call(ctx, p.address, lendingPoolABI, "getUserAccountData", account)
	if err != nil {
		return AccountSnapshot{}, err
	}
	if len(out) != 6 {
		return AccountSnapshot{}, errors.Newf("getUserAccountData returned %d values", len(out))
	}
	values := make([]*uint256.Int, 5)
	for i := range values {
		if values[i], err = toUint256(out[i]); err != nil {
			return AccountSnapshot{}, err
		}
	}
	hf, ok := out[5].(*big.Int)
	if !ok {
		return AccountSnapshot{}, errors.Newf("unexpected health factor type %T", out[5])
	}
	return AccountSnapshot{
		TotalCollateral:      values[0],
		TotalDebt:            values[1],
		AvailableBorrowPower: values[2],
		LiquidationThreshold: values[3],
		Ltv:                  values[4],
		HealthFactor:         hf,
	}, nil
}

// ---- PriceOracle ----

type rpcOracle struct {
	ledger  *RpcLedger
	address common.Address
}

func (o rpcOracle) Address() common.Address {
	return o.address
}

func (o rpcOracle) GetAssetPrice(ctx context.Context, asset common.Address) (*uint256.Int, error) {
	out, err := o.ledger.call(ctx, o.address, priceOracleABI, "getAssetPrice", asset)
	if err != nil {
		return nil, err
	}
	return toUint256(out[0])
}

func (o rpcOracle) Owner(ctx context.Context) (common.Address, error) {
	out, err := o.ledger.call(ctx, o.address, priceOracleABI, "owner")
	if err != nil {
		return common.Address{}, err
	}
	owner, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, errors.Newf("unexpected owner type %T", out[0])
	}
	return owner, nil
}

func (o rpcOracle) SetAssetSources(ctx context.Context, from Signer, assets []common.Address, sources []common.Address) error {
	_, err := o.ledger.transact(ctx, from.Address(), &o.address, priceOracleABI, "setAssetSources", assets, sources)
	return err
}

// ---- PermissionManager ----

type rpcPermissionManager struct {
	ledger  *RpcLedger
	address common.Address
}

func (m rpcPermissionManager) Address() common.Address {
	return m.address
}

func (m rpcPermissionManager) AddPermissions(ctx context.Context, from Signer, roles []Role, users []common.Address) error {
	encoded := make([]*big.Int, len(roles))
	for i, role := range roles {
		encoded[i] = new(big.Int).SetUint64(uint64(role))
	}
	_, err := m.ledger.transact(ctx, from.Address(), &m.address, permissionManagerABI, "addPermissions", encoded, users)
	return err
}
