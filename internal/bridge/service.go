package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/lisaaztec/dev-rel/configs"
	"github.com/lisaaztec/dev-rel/internal/bridge/artifacts"
	"github.com/lisaaztec/dev-rel/internal/bridge/crosschain"
	"github.com/lisaaztec/dev-rel/internal/bridge/l1"
	"github.com/lisaaztec/dev-rel/internal/bridge/l2"
	"github.com/lisaaztec/dev-rel/internal/bridge/output"
	"github.com/lisaaztec/dev-rel/internal/logger"
)

// Execute runs the full bridge bootstrap: load artifacts, connect to both
// chains, deploy and link the contract pair, then write the deployment
// summary.
func Execute(ctx context.Context, cfg configs.Bridge) error {
	log := logger.Named("bridge_service")

	log.Info("loading contract artifacts", "path", cfg.ArtifactsPath)
	contracts, err := artifacts.Load(cfg.ArtifactsPath)
	if err != nil {
		return err
	}

	log.Info("waiting for L1 RPC", "url", cfg.L1.RPCURL)
	if err := l1.WaitForRPC(ctx, cfg.L1.RPCURL); err != nil {
		return err
	}

	client, err := l1.Dial(ctx, cfg.L1.RPCURL)
	if err != nil {
		return err
	}
	defer client.Close()

	auth, deployer, err := l1.TransactorFromKey(ctx, client, cfg.L1.PrivateKey)
	if err != nil {
		return err
	}

	log.Info("connecting to rollup node", "url", cfg.L2.NodeURL)
	l2Client, err := l2.Dial(ctx, cfg.L2.NodeURL)
	if err != nil {
		return err
	}
	defer l2Client.Close()

	owner, err := l2.AddressFromHex(cfg.L2.OwnerAddress)
	if err != nil {
		return err
	}
	wallet := l2.NewWallet(l2Client, owner)

	registry := common.HexToAddress(cfg.RegistryAddress)
	setupCfg := crosschain.Config{
		RegistryAddress: registry,
		Owner:           owner,
	}
	if cfg.AssetAddress != "" {
		asset := common.HexToAddress(cfg.AssetAddress)
		setupCfg.AssetAddress = &asset
	}

	setup := crosschain.NewSetup(crosschain.NewRollupWallet(wallet), auth, client, contracts, setupCfg)
	deployment, err := setup.Execute(ctx)
	if err != nil {
		return err
	}

	if err := mintInitial(ctx, cfg, auth, client, deployment, deployer, log); err != nil {
		return err
	}

	if err := output.NewGenerator().Generate(cfg.OutputPath, cfg.L1.RPCURL, cfg.L2.NodeURL, registry, deployment, contracts); err != nil {
		return err
	}

	log.Info("wrote deployment summary", "path", cfg.OutputPath)

	return nil
}

// mintInitial optionally seeds the deployer with the freshly deployed test
// asset so deposits can be exercised right away.
func mintInitial(ctx context.Context, cfg configs.Bridge, auth *bind.TransactOpts, backend l1.Backend, deployment *crosschain.Deployment, deployer common.Address, log *slog.Logger) error {
	if cfg.MintInitial == "" || cfg.MintInitial == "0" {
		return nil
	}
	if cfg.AssetAddress != "" {
		log.Info("skipping initial mint for externally supplied asset", "address", cfg.AssetAddress)
		return nil
	}

	amount, ok := new(big.Int).SetString(cfg.MintInitial, 10)
	if !ok {
		return fmt.Errorf("invalid mint-initial amount: %s", cfg.MintInitial)
	}

	tx, err := deployment.Asset.Mint(auth, deployer, amount)
	if err != nil {
		return err
	}

	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return fmt.Errorf("failed to wait for mint transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("mint transaction %s reverted", tx.Hash().Hex())
	}

	balance, err := deployment.Asset.BalanceOf(ctx, deployer)
	if err != nil {
		return err
	}

	log.Info("minted initial asset balance", "holder", deployer.Hex(), "balance", balance)

	return nil
}
