package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"mianshictl/internal/api"
	"mianshictl/internal/config"
	"mianshictl/internal/logger"
	"mianshictl/internal/session"
	"mianshictl/internal/transcript"
)

type runtimeEnv struct {
	Config      *config.Config
	Manager     *config.Manager
	Client      *api.Client
	Sessions    *session.Store
	Logger      *logrus.Logger
	dataDir     string
	transcripts *transcript.Store
}

func (e *runtimeEnv) Close() {
	if e.transcripts != nil {
		if err := e.transcripts.Close(); err != nil {
			e.Logger.WithError(err).Warn("failed to close transcript archive")
		}
	}
}

// Transcripts opens the archive on first use; meeting and auth commands
// never pay the sqlite/bleve startup cost.
func (e *runtimeEnv) Transcripts(ctx context.Context) (*transcript.Store, error) {
	if e.transcripts != nil {
		return e.transcripts, nil
	}
	if err := os.MkdirAll(e.dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	store, err := transcript.NewStore(ctx, e.dataDir)
	if err != nil {
		return nil, err
	}
	e.transcripts = store
	return store, nil
}

func prepareRuntimeEnv(ctx context.Context) (*runtimeEnv, error) {
	var manager *config.Manager
	if dir := os.Getenv("MIANSHICTL_CONFIG_DIR"); dir != "" {
		manager = config.NewManagerAt(dir)
	} else {
		var err error
		manager, err = config.NewManager()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize config manager: %w", err)
		}
	}

	cfg, err := manager.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.LogLevel)

	baseURL := cfg.BaseURL
	if env := os.Getenv("MIANSHI_BASE_URL"); baseURL == "" && env != "" {
		baseURL = env
	}

	sessions := session.NewStore(manager.Dir())
	if err := sessions.Load(); err != nil {
		// A broken session file should not brick the CLI; treat as logged out.
		log.WithError(err).Warn("could not read stored session, continuing logged out")
	}

	httpClient := &http.Client{}
	if cfg.RequestTimeout > 0 {
		httpClient.Timeout = time.Duration(cfg.RequestTimeout) * time.Second
	} else {
		httpClient.Timeout = 60 * time.Second
	}

	notifier := &terminalNotifier{}
	client, err := api.NewClient(api.ClientConfig{
		BaseURL:    baseURL,
		Session:    sessions,
		HTTPClient: httpClient,
		Logger:     log,
		Notifier:   notifier,
		Navigator:  &terminalNavigator{},
		Loading:    newLoadingIndicator(),
	})
	if err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = manager.Dir()
	}

	return &runtimeEnv{
		Config:   cfg,
		Manager:  manager,
		Client:   client,
		Sessions: sessions,
		Logger:   log,
		dataDir:  dataDir,
	}, nil
}
