package main

import (
	"context"
	"log"
	"os"

	"github.com/s-r-jones/deep-dive-air/internal/server"
	"github.com/s-r-jones/deep-dive-air/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg, os.Stdout)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
