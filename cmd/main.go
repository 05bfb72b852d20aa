package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/soulstoneaddons/bepinex-installer/internal/interfaces/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.DefaultStreams())
	stop()
	os.Exit(code)
}
