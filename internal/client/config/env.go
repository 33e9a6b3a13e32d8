package config

import "os"

// parseEnv overlays secret-bearing fields from the environment so tokens
// never have to live in a file on shared machines.
func parseEnv(cfg *Config) {
	overlay := map[string]*string{
		"LIFELOGGER_GITHUB_TOKEN":  &cfg.GithubToken,
		"LIFELOGGER_S3_ACCESS_KEY": &cfg.S3AccessKey,
		"LIFELOGGER_S3_SECRET_KEY": &cfg.S3SecretKey,
		"LIFELOGGER_VAULT_SECRET":  &cfg.VaultSecret,
		"LIFELOGGER_INVITE_CODE":   &cfg.InviteCode,
	}

	for name, dst := range overlay {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}
}
