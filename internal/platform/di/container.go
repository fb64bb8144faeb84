// internal/platform/di/container.go
package di

import (
	"context"
	"log"
	"net/http"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"

	"aiqx/internal/adapters/in/http/api"
	"aiqx/internal/adapters/in/http/api/handler"
	fsrepo "aiqx/internal/adapters/out/firestore"
	"aiqx/internal/adapters/out/gcs"
	"aiqx/internal/adapters/out/mail"
	"aiqx/internal/adapters/out/pinning"
	"aiqx/internal/application/usecase"
	tokdom "aiqx/internal/domain/token"
	"aiqx/internal/infra/config"
	"aiqx/internal/infra/evm"
	"aiqx/internal/infra/solana"
)

// Container is the dependency bundle main.go consumes. The goal is to keep
// main.go as thin as possible: build everything here, register routes, close
// resources on shutdown.
type Container struct {
	Deps api.Deps

	fs      *firestore.Client
	storage *storage.Client
}

// Close releases the shared clients. Safe to call on a partially built
// container.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.fs != nil {
		_ = c.fs.Close()
	}
	if c.storage != nil {
		_ = c.storage.Close()
	}
}

// Build wires external clients, repositories, usecases and handlers.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{}

	// ------------------------------------------------------------
	// 1. External resources
	// ------------------------------------------------------------

	var (
		deployRepo tokdom.DeploymentRepository
		opsRepo    tokdom.OperationRepository
	)
	if cfg.GoogleCloudProject != "" {
		fs, err := firestore.NewClient(ctx, cfg.GoogleCloudProject)
		if err != nil {
			log.Printf("[di] firestore unavailable, persistence disabled: %v", err)
		} else {
			c.fs = fs
			deployRepo = fsrepo.NewDeploymentRepositoryFS(fs)
			opsRepo = fsrepo.NewOperationRepositoryFS(fs)
		}
	}

	var mirror usecase.LogoMirror
	if st, err := storage.NewClient(ctx); err != nil {
		log.Printf("[di] cloud storage unavailable, logo mirror disabled: %v", err)
	} else {
		c.storage = st
		mirror = gcs.NewLogoMirrorGCS(st, cfg.LogoBucket)
	}

	var pinner usecase.MetadataPinner
	if cfg.PinningBaseURL != "" {
		pinner = pinning.NewHTTPPinner(cfg.PinningBaseURL, cfg.PinningAPIKey)
	}

	var notifier usecase.Notifier
	if cfg.SendGridAPIKey != "" && cfg.NotifyTo != "" {
		notifier = mail.NewSendGridNotifier(cfg.SendGridAPIKey, cfg.NotifyFrom, cfg.NotifyTo)
	}

	// ------------------------------------------------------------
	// 2. Chain layer
	// ------------------------------------------------------------

	network := cfg.SolanaNetwork
	chain := solana.NewClient(network, cfg.RPCOverride(network))
	signers := solana.DefaultSignerRegistry()
	deployer := solana.NewDeployer(chain, signers, network)
	tools := solana.NewTools(chain, signers, network)

	compiler := evm.NewSolidityCompiler()
	if cfg.SolcPath != "" {
		compiler.SolcPath = cfg.SolcPath
	}

	// ------------------------------------------------------------
	// 3. Usecases and handlers
	// ------------------------------------------------------------

	deployUC := usecase.NewDeployTokenUsecase(deployRepo, deployer, pinner)
	deployUC.Mirror = mirror
	deployUC.Notifier = notifier

	toolUC := usecase.NewToolUsecase(tools, opsRepo, network)
	queryUC := usecase.NewTokenQueryUsecase(deployRepo)
	contractUC := usecase.NewContractUsecase(compiler)

	c.Deps = api.Deps{
		Deploy:   handler.NewDeployHandler(deployUC),
		Tokens:   handler.NewTokenHandler(queryUC, deployUC),
		Upload:   handler.NewUploadHandler(pinner),
		Metadata: handler.NewMetadataHandler(pinner),
		RPCProxy: handler.NewRPCProxyHandler(cfg.RPCOverrides),
		Contract: handler.NewContractHandler(contractUC),
		Tools:    handler.NewToolsHandler(toolUC),
	}
	return c, nil
}

// Register mounts the handler set onto mux.
func (c *Container) Register(mux *http.ServeMux) {
	api.Register(mux, c.Deps)
}
