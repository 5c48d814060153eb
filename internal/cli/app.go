package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/evilvant/ai-terraform-atlantis/internal/config"
	"github.com/evilvant/ai-terraform-atlantis/internal/gitcontext"
	"github.com/evilvant/ai-terraform-atlantis/internal/provider"
	"github.com/evilvant/ai-terraform-atlantis/internal/store"
)

type appKey struct{}

type App struct {
	Config   config.Config
	Provider provider.Runner
	Git      gitcontext.Runner
	Store    *store.Store
}

func withApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func getApp(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("internal error: app not initialized")
	}
	return app, nil
}

func initApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var prov provider.Runner
	var git gitcontext.Runner = gitcontext.ExecRunner{}

	if os.Getenv("TFRISK_MOCK") == "1" {
		switch os.Getenv("TFRISK_PROVIDER_ERR") {
		case "auth":
			prov = &provider.ErrRunner{Err: &provider.AuthError{Err: errors.New("simulated credential failure")}}
		case "transport":
			prov = &provider.ErrRunner{Err: &provider.TransportError{Err: errors.New("simulated endpoint failure")}}
		default:
			fixture := os.Getenv("TFRISK_PROVIDER_FIXTURE")
			if fixture == "" {
				fixture = filepath.Join("testdata", "provider", "verdict.json")
			}
			prov = provider.NewFakeRunner(fixture)
		}
		if dir := os.Getenv("TFRISK_GIT_FIXTURES"); dir != "" {
			git = gitcontext.NewFixtureRunner(dir)
		} else {
			git = gitcontext.NullRunner{}
		}
	} else {
		prov, err = provider.NewBedrockRunner(context.Background(), provider.BedrockOptions{
			Region:              cfg.Region,
			ModelID:             cfg.ModelID,
			InferenceProfileARN: cfg.InferenceProfileARN,
			InferenceProfileID:  cfg.InferenceProfileID,
			AttemptTimeout:      cfg.Timeout,
			MaxAttempts:         cfg.MaxRetries,
		})
		if err != nil {
			return nil, err
		}
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Provider: prov,
		Git:      git,
		Store:    st,
	}, nil
}
