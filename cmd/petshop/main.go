package main

import (
	"context"
	"time"

	"github.com/pawdoc/petshop/config"
	"github.com/pawdoc/petshop/internal/app"
	"github.com/pawdoc/petshop/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	shopService := app.New(sigCtx, cfg)

	shopService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	shopService.Close(ctx)
}
