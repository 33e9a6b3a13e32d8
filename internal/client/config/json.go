package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/LorenzoDOrtona/life-logger/internal/flagx"
	"github.com/LorenzoDOrtona/life-logger/internal/timex"
)

// JsonConfig is the unmarshalling DTO for the JSON config file. It uses
// timex.Duration so intervals can be written as "30s" or as nanoseconds.
// Absent fields keep their current (default) values.
type JsonConfig struct {
	Backend        *string         `json:"backend"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	RegistryPath   *string         `json:"registry_path"`
	JournalDir     *string         `json:"journal_dir"`
	InviteCode     *string         `json:"invite_code"`

	GithubToken   *string `json:"github_token"`
	GithubOwner   *string `json:"github_owner"`
	GithubRepo    *string `json:"github_repo"`
	GithubBranch  *string `json:"github_branch"`
	GithubBaseURL *string `json:"github_base_url"`

	S3AccessKey *string `json:"s3_access_key"`
	S3SecretKey *string `json:"s3_secret_key"`
	S3Bucket    *string `json:"s3_bucket"`
	S3Region    *string `json:"s3_region"`
	S3Endpoint  *string `json:"s3_endpoint"`

	VaultEndpoint *string `json:"vault_endpoint"`
	VaultClientID *string `json:"vault_client_id"`
	VaultSecret   *string `json:"vault_secret"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// No flag means no file and the function is a no-op. Read or unmarshal
// errors panic; the caller decides whether to recover.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&cfg.Backend, jc.Backend)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	setString(&cfg.RegistryPath, jc.RegistryPath)
	setString(&cfg.JournalDir, jc.JournalDir)
	setString(&cfg.InviteCode, jc.InviteCode)

	setString(&cfg.GithubToken, jc.GithubToken)
	setString(&cfg.GithubOwner, jc.GithubOwner)
	setString(&cfg.GithubRepo, jc.GithubRepo)
	setString(&cfg.GithubBranch, jc.GithubBranch)
	setString(&cfg.GithubBaseURL, jc.GithubBaseURL)

	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)

	setString(&cfg.VaultEndpoint, jc.VaultEndpoint)
	setString(&cfg.VaultClientID, jc.VaultClientID)
	setString(&cfg.VaultSecret, jc.VaultSecret)
}
