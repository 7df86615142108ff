package main

import (
	"context"
	"log"
	"os"

	"github.com/dangolden/bidsmart/internal/buildinfo"
	"github.com/dangolden/bidsmart/internal/client/cli"
	"github.com/dangolden/bidsmart/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
