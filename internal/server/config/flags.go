package config

import (
	"flag"
	"os"

	"github.com/LorenzoDOrtona/life-logger/internal/flagx"
)

// parseEnv overlays secrets from the environment.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("VAULTD_SECRET_KEY"); ok {
		cfg.SecretKey = v
	}
	if v, ok := os.LookupEnv("VAULTD_DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
}

// parseFlags overlays selected fields from command-line flags.
//
// Supported flags:
//
//	-a string   bind address, e.g. :8080
//	-d string   PostgreSQL DSN
//	-inmemory   keep objects in memory instead of Postgres (dev only)
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-inmemory"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to listen on")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.BoolVar(&cfg.InMemory, "inmemory", cfg.InMemory, "use the in-memory repository")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
