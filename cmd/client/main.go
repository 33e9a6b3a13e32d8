package main

import (
	"context"
	"log"

	"github.com/LorenzoDOrtona/life-logger/internal/client/cli"
	"github.com/LorenzoDOrtona/life-logger/internal/client/config"
	"github.com/LorenzoDOrtona/life-logger/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg, logging.NewDefault())
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
