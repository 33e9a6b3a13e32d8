// Package cli implements the interactive life-logger client: a small REPL
// over the auth and journal services.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/LorenzoDOrtona/life-logger/internal/client/config"
	"github.com/LorenzoDOrtona/life-logger/internal/client/services"
	"github.com/LorenzoDOrtona/life-logger/internal/logging"
	"github.com/LorenzoDOrtona/life-logger/internal/remote"
	"github.com/LorenzoDOrtona/life-logger/internal/remote/github"
	"github.com/LorenzoDOrtona/life-logger/internal/remote/memory"
	"github.com/LorenzoDOrtona/life-logger/internal/remote/s3"
	"github.com/LorenzoDOrtona/life-logger/internal/remote/vault"
	"github.com/LorenzoDOrtona/life-logger/internal/session"
)

// App wires the configured remote store and the services into the REPL.
// sess and journal are nil until a successful login.
type App struct {
	config  *config.Config
	auth    *services.AuthService
	store   remote.Store
	sess    *session.Session
	journal *services.JournalService
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		config: cfg,
		auth:   services.NewAuthService(store, cfg.RegistryPath, cfg.InviteCode, log),
		store:  store,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// buildStore constructs the versioned store named by cfg.Backend.
func buildStore(ctx context.Context, cfg *config.Config) (remote.Store, error) {
	switch cfg.Backend {
	case config.BackendGithub:
		return github.New(github.Config{
			Token:   cfg.GithubToken,
			Owner:   cfg.GithubOwner,
			Repo:    cfg.GithubRepo,
			Branch:  cfg.GithubBranch,
			BaseURL: cfg.GithubBaseURL,
			Timeout: cfg.RequestTimeout,
		}), nil
	case config.BackendS3:
		return s3.New(ctx, s3.Config{
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3Endpoint,
			Timeout:      cfg.RequestTimeout,
		})
	case config.BackendVault:
		return vault.New(vault.Config{
			Endpoint: cfg.VaultEndpoint,
			Secret:   cfg.VaultSecret,
			ClientID: cfg.VaultClientID,
			Timeout:  cfg.RequestTimeout,
		}), nil
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// Run starts the REPL and blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to life-logger (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.sess != nil
}

func (a *App) status() string {
	if a.sess == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.sess.Username)
}
