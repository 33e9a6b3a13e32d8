package config

import (
	"flag"
	"os"
	"time"

	"github.com/LorenzoDOrtona/life-logger/internal/flagx"
)

// parseFlags overlays selected fields from command-line flags.
//
// Supported flags:
//
//	-b string   store backend: github, s3, vault or memory
//	-e string   vaultd endpoint, e.g. http://localhost:8080
//	-t int      remote request timeout in seconds
//
// os.Args is filtered down to these flags first so flags owned by other
// packages do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-e", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "store backend (github|s3|vault|memory)")
	fs.StringVar(&cfg.VaultEndpoint, "e", cfg.VaultEndpoint, "vaultd endpoint")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
