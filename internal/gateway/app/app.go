package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"siteforge/internal/artifact"
	"siteforge/internal/blueprint"
	"siteforge/internal/deploy"
	"siteforge/internal/gateway/config"
	"siteforge/internal/gateway/handler"
	"siteforge/internal/gateway/server"
	"siteforge/internal/gateway/session"
	"siteforge/internal/graph"
	"siteforge/internal/llm"
	"siteforge/internal/projectstore"
)

// App owns every long-lived component of the API process.
type App struct {
	cfg    *config.Config
	server *server.Server
	llm    llm.Client
	store  *projectstore.Store
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cli, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	store := buildStore(cfg)
	archive := buildArchive(cfg)
	engine := graph.NewEngine(cli, blueprint.NewRandomIDSource())
	engine.Store = store
	engine.Deployer = buildDeployer(cfg, archive)

	sessions := session.NewStore()
	chat := handler.NewChatHandler(engine, sessions)
	projects := handler.NewProjectHandler(store)
	archives := handler.NewArchiveHandler(nil)
	if archive != nil {
		archives = handler.NewArchiveHandler(archive)
	}

	return &App{
		cfg:    cfg,
		server: server.New(cfg.Port, server.NewMux(chat, projects, archives)),
		llm:    cli,
		store:  store,
	}, nil
}

func buildLLM(cfg *config.Config) (llm.Client, error) {
	var base llm.Client
	if cfg.LLM.APIKey == "" {
		log.Printf("[app] GEMINI_API_KEY not set, using offline canned responses")
		base = llm.NewOfflineClient()
	} else {
		cli, err := llm.NewGeminiClient(context.Background(), cfg.LLM.Model)
		if err != nil {
			return nil, fmt.Errorf("init llm client: %w", err)
		}
		base = cli
	}
	return llm.Wrap(base,
		llm.Logging(),
		llm.Retry(3, 500*time.Millisecond),
		llm.Timeout(120*time.Second),
	), nil
}

func buildStore(cfg *config.Config) *projectstore.Store {
	if cfg.Store.DSN == "" {
		log.Printf("[app] PROJECT_STORE_PG_DSN not set, using in-memory project store")
		return projectstore.New()
	}
	store, err := projectstore.NewPostgres(cfg.Store.DSN)
	if err != nil {
		log.Printf("[app] postgres unavailable (%v), using in-memory project store", err)
		return projectstore.New()
	}
	return store
}

func buildArchive(cfg *config.Config) *artifact.S3Store {
	if !cfg.Artifact.Enabled {
		return nil
	}
	archive, err := artifact.NewS3Store(artifact.S3Config{
		Endpoint:  cfg.Artifact.Endpoint,
		Region:    cfg.Artifact.Region,
		AccessKey: cfg.Artifact.AccessKey,
		SecretKey: cfg.Artifact.SecretKey,
		Bucket:    cfg.Artifact.Bucket,
		UseSSL:    cfg.Artifact.UseSSL,
	})
	if err != nil {
		log.Printf("[app] bundle archive disabled: %v", err)
		return nil
	}
	return archive
}

func buildDeployer(cfg *config.Config, archive *artifact.S3Store) graph.Deployer {
	client := deploy.NewPagesClient(cfg.Pages.AccountID, cfg.Pages.APIToken)
	if cfg.Pages.BaseURL != "" {
		client.BaseURL = cfg.Pages.BaseURL
	}
	d := deploy.NewPagesDeployer(client)
	if archive != nil {
		d.Archive = archive
	}
	return d
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.llm.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if cerr := a.store.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
