// Package config assembles client settings from defaults, an optional JSON
// file, environment variables and command-line flags. Later sources win.
package config

import "time"

// Backend names accepted in the Backend field.
const (
	BackendGithub = "github"
	BackendS3     = "s3"
	BackendVault  = "vault"
	BackendMemory = "memory"
)

// Config holds runtime settings for the life-logger CLI.
//
// Secrets (tokens, keys, the invite code) are never compiled in; they come
// from the JSON config file or the environment.
type Config struct {
	// Backend selects the versioned store implementation:
	// github, s3, vault or memory.
	Backend string

	// RequestTimeout bounds every remote call.
	RequestTimeout time.Duration

	// RegistryPath is the object holding the user registry.
	RegistryPath string

	// JournalDir is the prefix under which per-user journals live.
	JournalDir string

	// InviteCode must be presented at registration.
	InviteCode string

	GithubToken   string
	GithubOwner   string
	GithubRepo    string
	GithubBranch  string
	GithubBaseURL string

	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string

	VaultEndpoint string
	VaultClientID string
	VaultSecret   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = BackendGithub
	c.RequestTimeout = 30 * time.Second
	c.RegistryPath = "users.yaml"
	c.JournalDir = "journals"
	c.GithubBranch = "main"
	c.S3Region = "us-east-1"
	c.VaultClientID = "life-logger"
}

// LoadConfig builds a Config by layering defaults, the JSON file named by
// -c/-config, environment variables, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
