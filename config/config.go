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

package config

import (
	"strings"

	"github.com/0xsoniclabs/marketsim/ledger"
	"github.com/0xsoniclabs/marketsim/utils/fixedpoint"
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
)

const (
	InjectCommand        = "inject"
	BorrowCommand        = "borrow"
	GrantCommand         = "grant"
	HealthCommand        = "health"
	ReplaceOracleCommand = "replace-oracle"
	// RunCommand executes every step the scenario has inputs for on one ledger.
	RunCommand = "run"
)

const (
	DefaultDepositFraction = fixedpoint.PercentageFactor
	DefaultBorrowFraction  = fixedpoint.BasisPoints(9500)
)

// Config is the resolved configuration of one command run.
type Config struct {
	AppName     string
	CommandName string
	LogLevel    string

	RpcUrl           string
	DryRun           bool
	Scenario         string
	MockFeedArtifact string

	Pool              common.Address
	Oracle            common.Address
	OracleOwner       common.Address // dry runs only
	PermissionManager common.Address
	Whitelister       common.Address
	Deployer          common.Address

	Assets     []ledger.Asset
	Reserves   []Reserve
	Balances   []Balance
	Depositors []common.Address
	Borrowers  []common.Address
	Roles      []ledger.Role
	Grantees   []common.Address
	Accounts   []common.Address

	DepositFraction   fixedpoint.BasisPoints
	BorrowFraction    fixedpoint.BasisPoints
	Factor            fixedpoint.BasisPoints
	FactorSet         bool
	ContinueOnFailure bool
	ReportConcurrency int
}

// Reserve is a scenario asset with the parameters a dry-run pool lists it with.
type Reserve struct {
	Asset                ledger.Asset
	Decimals             uint8
	Price                *uint256.Int
	Ltv                  uint64
	LiquidationThreshold uint64
}

// Balance is an initial token balance of a dry run.
type Balance struct {
	Account common.Address
	Token   common.Address
	Amount  *uint256.Int
}

// NewConfig resolves the flags of ctx, the scenario file they name and the
// command defaults into a validated Config.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := createConfigFromFlags(ctx)

	scenario := &Scenario{}
	if cfg.Scenario != "" {
		var err error
		if scenario, err = LoadScenario(cfg.Scenario); err != nil {
			return nil, err
		}
	}

	if err := cfg.resolve(ctx, scenario); err != nil {
		return nil, err
	}
	cfg.setDefaults(ctx, scenario)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve parses addresses and lists; a flag given on the command line wins
// over the scenario value.
func (cfg *Config) resolve(ctx *cli.Context, scenario *Scenario) error {
	var errs []error
	address := func(flag cli.StringFlag, fallback string) common.Address {
		addr, err := parseOptionalAddress(pick(getFlagValue(ctx, flag).(string), fallback))
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "--%v", flag.Name))
		}
		return addr
	}
	addresses := func(flag cli.StringSliceFlag, fallback []string) []common.Address {
		res, err := ParseAddresses(pickList(getFlagValue(ctx, flag).([]string), fallback))
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "--%v", flag.Name))
		}
		return res
	}

	cfg.Pool = address(PoolFlag, scenario.Pool)
	cfg.Oracle = address(OracleFlag, scenario.Oracle)
	cfg.PermissionManager = address(PermissionManagerFlag, scenario.PermissionManager)
	cfg.Whitelister = address(WhitelisterFlag, scenario.Whitelister)
	cfg.Deployer = address(DeployerFlag, scenario.Deployer)
	if owner, err := parseOptionalAddress(scenario.OracleOwner); err != nil {
		errs = append(errs, errors.Wrap(err, "oracleOwner"))
	} else {
		cfg.OracleOwner = owner
	}

	cfg.Depositors = addresses(DepositorFlag, scenario.Depositors)
	cfg.Borrowers = addresses(BorrowerFlag, scenario.Borrowers)
	cfg.Grantees = addresses(GranteeFlag, scenario.Grantees)
	cfg.Accounts = addresses(AccountFlag, scenario.Accounts)

	if cfg.MockFeedArtifact == "" {
		cfg.MockFeedArtifact = scenario.MockFeedArtifact
	}

	reserves, err := parseReserves(scenario.Assets)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.Reserves = reserves

	if specs := getFlagValue(ctx, AssetFlag).([]string); len(specs) > 0 {
		if cfg.Assets, err = ParseAssets(specs); err != nil {
			errs = append(errs, errors.Wrapf(err, "--%v", AssetFlag.Name))
		}
	} else {
		for _, r := range reserves {
			cfg.Assets = append(cfg.Assets, r.Asset)
		}
	}

	for _, name := range pickList(getFlagValue(ctx, RoleFlag).([]string), scenario.Roles) {
		role, err := ledger.ParseRole(name)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "--%v", RoleFlag.Name))
			continue
		}
		cfg.Roles = append(cfg.Roles, role)
	}

	if cfg.Balances, err = parseBalances(scenario.Balances, reserves); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// setDefaults resolves the basis-point parameters. A --fraction flag sets the
// fraction of every step; a scenario may set both at once with fraction or
// each one with depositFraction and borrowFraction.
func (cfg *Config) setDefaults(ctx *cli.Context, scenario *Scenario) {
	cfg.DepositFraction = lastBasisPoints(DefaultDepositFraction, scenario.Fraction, scenario.DepositFraction)
	cfg.BorrowFraction = lastBasisPoints(DefaultBorrowFraction, scenario.Fraction, scenario.BorrowFraction)
	if ctx.IsSet(FractionFlag.Name) {
		fraction := fixedpoint.BasisPoints(getFlagValue(ctx, FractionFlag).(uint64))
		cfg.DepositFraction, cfg.BorrowFraction = fraction, fraction
	}

	switch {
	case ctx.IsSet(FactorFlag.Name):
		cfg.Factor, cfg.FactorSet = fixedpoint.BasisPoints(getFlagValue(ctx, FactorFlag).(uint64)), true
	case scenario.Factor != nil:
		cfg.Factor, cfg.FactorSet = fixedpoint.BasisPoints(*scenario.Factor), true
	}
}

// lastBasisPoints returns the last of values that is given, or fallback.
func lastBasisPoints(fallback fixedpoint.BasisPoints, values ...*uint64) fixedpoint.BasisPoints {
	res := fallback
	for _, v := range values {
		if v != nil {
			res = fixedpoint.BasisPoints(*v)
		}
	}
	return res
}

// FractionFor returns the fraction the step command runs with.
func (cfg *Config) FractionFor(command string) fixedpoint.BasisPoints {
	switch command {
	case InjectCommand:
		return cfg.DepositFraction
	case BorrowCommand:
		return cfg.BorrowFraction
	}
	return 0
}

// validate checks that the command has everything it needs and reports all
// missing values at once.
func (cfg *Config) validate() error {
	var errs []error
	requireAddress := func(addr common.Address, flag string) {
		if addr == (common.Address{}) {
			errs = append(errs, errors.Newf("missing --%v", flag))
		}
	}
	requireList := func(n int, flag string) {
		if n == 0 {
			errs = append(errs, errors.Newf("at least one --%v is required", flag))
		}
	}

	if !cfg.DryRun && cfg.RpcUrl == "" {
		errs = append(errs, errors.Newf("either --%v or --%v is required", RpcUrlFlag.Name, DryRunFlag.Name))
	}
	if cfg.ReportConcurrency < 0 {
		errs = append(errs, errors.Newf("--%v must not be negative", ReportConcurrencyFlag.Name))
	}

	requireFraction := func(what string, fraction fixedpoint.BasisPoints) {
		if fraction > fixedpoint.PercentageFactor {
			errs = append(errs, errors.Newf("%v fraction %d exceeds %d basis points", what, fraction, fixedpoint.PercentageFactor))
		}
	}

	inject := func() {
		requireFraction("deposit", cfg.DepositFraction)
		requireAddress(cfg.Pool, PoolFlag.Name)
		requireList(len(cfg.Assets), AssetFlag.Name)
		requireList(len(cfg.Depositors), DepositorFlag.Name)
	}
	borrow := func() {
		requireFraction("borrow", cfg.BorrowFraction)
		requireAddress(cfg.Pool, PoolFlag.Name)
		requireAddress(cfg.Oracle, OracleFlag.Name)
		requireList(len(cfg.Assets), AssetFlag.Name)
		requireList(len(cfg.Borrowers), BorrowerFlag.Name)
	}
	grant := func() {
		requireAddress(cfg.PermissionManager, PermissionManagerFlag.Name)
		requireAddress(cfg.Whitelister, WhitelisterFlag.Name)
		requireList(len(cfg.Roles), RoleFlag.Name)
		requireList(len(cfg.Grantees), GranteeFlag.Name)
	}
	health := func() {
		requireAddress(cfg.Pool, PoolFlag.Name)
		requireList(len(cfg.Accounts), AccountFlag.Name)
	}
	replaceOracle := func() {
		requireAddress(cfg.Oracle, OracleFlag.Name)
		requireList(len(cfg.Assets), AssetFlag.Name)
		if !cfg.FactorSet {
			errs = append(errs, errors.Newf("missing --%v", FactorFlag.Name))
		}
		if !cfg.DryRun && cfg.MockFeedArtifact == "" {
			errs = append(errs, errors.Newf("missing --%v", MockFeedArtifactFlag.Name))
		}
	}

	checks := map[string]func(){
		GrantCommand:         grant,
		InjectCommand:        inject,
		BorrowCommand:        borrow,
		ReplaceOracleCommand: replaceOracle,
		HealthCommand:        health,
	}
	if check, ok := checks[cfg.CommandName]; ok {
		check()
	}
	if cfg.CommandName == RunCommand {
		steps := cfg.Steps()
		if len(steps) == 0 {
			errs = append(errs, errors.New("the scenario configures no step to run"))
		}
		for _, step := range steps {
			checks[step]()
		}
	}
	return errors.Join(errs...)
}

// Steps lists, in execution order, the commands a run performs: every command
// whose actors or parameters are configured.
func (cfg *Config) Steps() []string {
	var steps []string
	if len(cfg.Roles) > 0 || len(cfg.Grantees) > 0 {
		steps = append(steps, GrantCommand)
	}
	if len(cfg.Depositors) > 0 {
		steps = append(steps, InjectCommand)
	}
	if len(cfg.Borrowers) > 0 {
		steps = append(steps, BorrowCommand)
	}
	if cfg.FactorSet {
		steps = append(steps, ReplaceOracleCommand)
	}
	if len(cfg.Accounts) > 0 {
		steps = append(steps, HealthCommand)
	}
	return steps
}

// ParseAddress accepts a 0x-prefixed or bare 20-byte hex address.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Newf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

func ParseAddresses(values []string) ([]common.Address, error) {
	res := make([]common.Address, 0, len(values))
	for _, v := range values {
		addr, err := ParseAddress(v)
		if err != nil {
			return nil, err
		}
		res = append(res, addr)
	}
	return res, nil
}

func parseOptionalAddress(s string) (common.Address, error) {
	if strings.TrimSpace(s) == "" {
		return common.Address{}, nil
	}
	return ParseAddress(s)
}

// ParseAsset accepts SYMBOL:0xADDRESS or a plain address.
func ParseAsset(s string) (ledger.Asset, error) {
	symbol, addr, found := strings.Cut(s, ":")
	if !found {
		symbol, addr = "", s
	}
	address, err := ParseAddress(addr)
	if err != nil {
		return ledger.Asset{}, errors.Wrapf(err, "asset %q", s)
	}
	return ledger.Asset{Symbol: strings.TrimSpace(symbol), Address: address}, nil
}

func ParseAssets(specs []string) ([]ledger.Asset, error) {
	assets := make([]ledger.Asset, 0, len(specs))
	for _, spec := range specs {
		asset, err := ParseAsset(spec)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

func parseReserves(assets []ScenarioAsset) ([]Reserve, error) {
	reserves := make([]Reserve, 0, len(assets))
	for _, a := range assets {
		address, err := ParseAddress(a.Address)
		if err != nil {
			return nil, errors.Wrapf(err, "scenario asset %v", a.Symbol)
		}
		price := new(uint256.Int)
		if a.Price != "" {
			if price, err = uint256.FromDecimal(a.Price); err != nil {
				return nil, errors.Wrapf(err, "price of scenario asset %v", a.Symbol)
			}
		}
		if a.Ltv > uint64(fixedpoint.PercentageFactor) || a.LiquidationThreshold > uint64(fixedpoint.PercentageFactor) {
			return nil, errors.Newf("scenario asset %v: ltv and liquidationThreshold are basis points", a.Symbol)
		}
		reserves = append(reserves, Reserve{
			Asset:                ledger.Asset{Symbol: a.Symbol, Address: address},
			Decimals:             a.Decimals,
			Price:                price,
			Ltv:                  a.Ltv,
			LiquidationThreshold: a.LiquidationThreshold,
		})
	}
	return reserves, nil
}

func parseBalances(balances []ScenarioBalance, reserves []Reserve) ([]Balance, error) {
	res := make([]Balance, 0, len(balances))
	for _, b := range balances {
		account, err := ParseAddress(b.Account)
		if err != nil {
			return nil, errors.Wrap(err, "scenario balance")
		}
		token, err := lookupToken(b.Asset, reserves)
		if err != nil {
			return nil, err
		}
		amount, err := uint256.FromDecimal(b.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "scenario balance of %v", b.Account)
		}
		res = append(res, Balance{Account: account, Token: token, Amount: amount})
	}
	return res, nil
}

// lookupToken resolves a scenario asset reference given by symbol or address.
func lookupToken(ref string, reserves []Reserve) (common.Address, error) {
	for _, r := range reserves {
		if r.Asset.Symbol != "" && strings.EqualFold(r.Asset.Symbol, ref) {
			return r.Asset.Address, nil
		}
	}
	if common.IsHexAddress(ref) {
		return common.HexToAddress(ref), nil
	}
	return common.Address{}, errors.Newf("scenario balance refers to unknown asset %q", ref)
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func pickList(values, fallback []string) []string {
	if len(values) > 0 {
		return values
	}
	return fallback
}
