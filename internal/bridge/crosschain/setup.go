package crosschain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/lisaaztec/dev-rel/internal/bridge/artifacts"
	"github.com/lisaaztec/dev-rel/internal/bridge/l1"
	"github.com/lisaaztec/dev-rel/internal/bridge/l2"
	"github.com/lisaaztec/dev-rel/internal/logger"
)

// The rollup-side collaborators are consumed through interfaces so the
// orchestration depends only on the operations it performs.
type (
	// Wallet deploys contracts on the rollup for a single account.
	Wallet interface {
		Address() l2.Address
		DeployToken(ctx context.Context, admin l2.Address) (Token, l2.Tx, error)
		DeployBridge(ctx context.Context, token l2.Address, portal common.Address) (Bridge, l2.Tx, error)
	}

	// Token is the deployed rollup token the orchestration links up.
	Token interface {
		Address() l2.Address
		Admin(ctx context.Context) (l2.Address, error)
		SetMinter(ctx context.Context, minter l2.Address, allowed bool) (l2.Tx, error)
		IsMinter(ctx context.Context, candidate l2.Address) (bool, error)
	}

	// Bridge is the deployed rollup bridge the orchestration links up.
	Bridge interface {
		Address() l2.Address
		Token(ctx context.Context) (l2.Address, error)
	}
)

// rollupWallet adapts the concrete rollup wallet to the Wallet interface.
type rollupWallet struct {
	wallet *l2.Wallet
}

// NewRollupWallet wraps a connected rollup wallet for use by Setup.
func NewRollupWallet(wallet *l2.Wallet) Wallet {
	return rollupWallet{wallet: wallet}
}

func (r rollupWallet) Address() l2.Address {
	return r.wallet.Address()
}

func (r rollupWallet) DeployToken(ctx context.Context, admin l2.Address) (Token, l2.Tx, error) {
	return r.wallet.DeployToken(ctx, admin)
}

func (r rollupWallet) DeployBridge(ctx context.Context, token l2.Address, portal common.Address) (Bridge, l2.Tx, error) {
	return r.wallet.DeployBridge(ctx, token, portal)
}

// Config carries the caller-supplied parameters of a bridge bootstrap.
type Config struct {
	// RegistryAddress is the rollup's L1 address registry, handed to the
	// portal at initialization.
	RegistryAddress common.Address
	// Owner is the rollup account that becomes the token admin.
	Owner l2.Address
	// AssetAddress, when set, is an existing L1 asset to custody; no new
	// asset is deployed.
	AssetAddress *common.Address
}

// Deployment bundles the live handles produced by a successful bootstrap.
// Ownership of all of them passes to the caller.
type Deployment struct {
	Token         Token
	Bridge        Bridge
	PortalAddress common.Address
	Portal        *l1.TokenPortal
	Asset         *l1.PortalERC20
}

/*
Setup deploys and links the token bridge pair across both chains:

 1. deploy (or adopt) the L1 asset,
 2. deploy the L1 portal,
 3. deploy the rollup token and its bridge, attached to the portal,
 4. grant the bridge minting rights and initialize the portal with
    (registry, asset, bridge).

Each step consumes the previous step's output, so a failure leaves every
later step unexecuted. Nothing is rolled back: deployed contracts stay on
chain, and re-running always deploys fresh ones.
*/
type Setup struct {
	wallet    Wallet
	auth      *bind.TransactOpts
	backend   l1.Backend
	contracts map[artifacts.ContractName]artifacts.CompiledContract
	cfg       Config
	logger    *slog.Logger
}

// NewSetup assembles a bridge bootstrap from its collaborators.
func NewSetup(
	wallet Wallet,
	auth *bind.TransactOpts,
	backend l1.Backend,
	contracts map[artifacts.ContractName]artifacts.CompiledContract,
	cfg Config,
) *Setup {
	return &Setup{
		wallet:    wallet,
		auth:      auth,
		backend:   backend,
		contracts: contracts,
		cfg:       cfg,
		logger:    logger.Named("crosschain_setup"),
	}
}

// Execute runs the full bootstrap and returns the deployed handles. Any
// error aborts the remaining steps and propagates unchanged.
func (s *Setup) Execute(ctx context.Context) (*Deployment, error) {
	asset, err := s.prepareAsset(ctx)
	if err != nil {
		return nil, err
	}

	portal, err := s.deployPortal(ctx)
	if err != nil {
		return nil, err
	}

	token, bridge, err := s.deployRollupContracts(ctx, portal.Address())
	if err != nil {
		return nil, err
	}

	if err := s.grantMinter(ctx, token, bridge); err != nil {
		return nil, err
	}

	if err := s.initializePortal(ctx, portal, asset, bridge); err != nil {
		return nil, err
	}

	s.logger.Info("bridge bootstrap completed",
		"token", token.Address(),
		"bridge", bridge.Address(),
		"portal", portal.Address().Hex(),
		"asset", asset.Address().Hex(),
	)

	return &Deployment{
		Token:         token,
		Bridge:        bridge,
		PortalAddress: portal.Address(),
		Portal:        portal,
		Asset:         asset,
	}, nil
}

// prepareAsset deploys a fresh test asset, or binds a handle to the
// caller-supplied one.
func (s *Setup) prepareAsset(ctx context.Context) (*l1.PortalERC20, error) {
	artifact := s.contracts[artifacts.ContractNamePortalERC20]

	if s.cfg.AssetAddress != nil {
		s.logger.Info("using existing L1 asset", "address", s.cfg.AssetAddress.Hex())
		return l1.NewPortalERC20(*s.cfg.AssetAddress, artifact.ABI, s.backend), nil
	}

	address, err := l1.DeployContract(ctx, s.auth, s.backend, artifact.ABI, artifact.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy L1 asset: %w", err)
	}

	s.logger.Info("deployed L1 asset", "address", address.Hex())

	return l1.NewPortalERC20(address, artifact.ABI, s.backend), nil
}

// deployPortal deploys a fresh portal. The portal is not yet initialized
// and not yet linked to anything.
func (s *Setup) deployPortal(ctx context.Context) (*l1.TokenPortal, error) {
	artifact := s.contracts[artifacts.ContractNameTokenPortal]

	address, err := l1.DeployContract(ctx, s.auth, s.backend, artifact.ABI, artifact.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy L1 portal: %w", err)
	}

	s.logger.Info("deployed L1 portal", "address", address.Hex())

	return l1.NewTokenPortal(address, artifact.ABI, s.backend), nil
}

// deployRollupContracts deploys the token and its bridge on the rollup and
// validates their on-chain state before anything else mutates it.
func (s *Setup) deployRollupContracts(ctx context.Context, portal common.Address) (Token, Bridge, error) {
	token, tokenTx, err := s.wallet.DeployToken(ctx, s.cfg.Owner)
	if err != nil {
		return nil, nil, err
	}
	if err := waitMined(ctx, "token deployment", tokenTx); err != nil {
		return nil, nil, err
	}

	s.logger.Info("deployed rollup token", "address", token.Address())

	bridge, bridgeTx, err := s.wallet.DeployBridge(ctx, token.Address(), portal)
	if err != nil {
		return nil, nil, err
	}
	if err := waitMined(ctx, "bridge deployment", bridgeTx); err != nil {
		return nil, nil, err
	}

	s.logger.Info("deployed rollup bridge", "address", bridge.Address())

	admin, err := token.Admin(ctx)
	if err != nil {
		return nil, nil, err
	}
	if admin != s.cfg.Owner {
		return nil, nil, fmt.Errorf("token admin %s does not match configured owner %s", admin, s.cfg.Owner)
	}

	tokenRef, err := bridge.Token(ctx)
	if err != nil {
		return nil, nil, err
	}
	if tokenRef != token.Address() {
		return nil, nil, fmt.Errorf("bridge token reference %s does not match deployed token %s", tokenRef, token.Address())
	}

	return token, bridge, nil
}

// grantMinter grants the bridge minting rights on the token and verifies the
// grant took effect.
func (s *Setup) grantMinter(ctx context.Context, token Token, bridge Bridge) error {
	tx, err := token.SetMinter(ctx, bridge.Address(), true)
	if err != nil {
		return err
	}
	if err := waitMined(ctx, "minter grant", tx); err != nil {
		return err
	}

	allowed, err := token.IsMinter(ctx, bridge.Address())
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("bridge %s was not granted minter rights on token %s", bridge.Address(), token.Address())
	}

	s.logger.Info("granted bridge minter rights", "bridge", bridge.Address())

	return nil
}

// initializePortal writes the portal's permanent configuration and reads it
// back to confirm the cross-chain link closed.
func (s *Setup) initializePortal(ctx context.Context, portal *l1.TokenPortal, asset *l1.PortalERC20, bridge Bridge) error {
	tx, err := portal.Initialize(s.auth, s.cfg.RegistryAddress, asset.Address(), bridge.Address())
	if err != nil {
		return err
	}

	receipt, err := bind.WaitMined(ctx, s.backend, tx)
	if err != nil {
		return fmt.Errorf("failed to wait for portal initialization %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("portal initialization transaction %s reverted", tx.Hash().Hex())
	}

	stored, err := portal.L2Bridge(ctx)
	if err != nil {
		return err
	}
	if l2.Address(stored) != bridge.Address() {
		return fmt.Errorf("portal stores bridge %s, expected %s", l2.Address(stored), bridge.Address())
	}

	s.logger.Info("initialized L1 portal",
		"registry", s.cfg.RegistryAddress.Hex(),
		"asset", asset.Address().Hex(),
		"bridge", bridge.Address(),
	)

	return nil
}

// waitMined waits for the transaction to reach a terminal status and
// requires it to be mined.
func waitMined(ctx context.Context, op string, tx l2.Tx) error {
	receipt, err := tx.Wait(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if receipt.Status != l2.TxStatusMined {
		return &l2.StatusError{Op: op, Want: l2.TxStatusMined, Got: receipt.Status}
	}

	return nil
}
