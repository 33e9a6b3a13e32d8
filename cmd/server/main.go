package main

import (
	"context"
	"log"

	"github.com/LorenzoDOrtona/life-logger/internal/logging"
	"github.com/LorenzoDOrtona/life-logger/internal/server"
	"github.com/LorenzoDOrtona/life-logger/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg, logging.NewDefault())
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
