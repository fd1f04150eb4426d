package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	fserrors "github.com/twitter/fssnap/common/errors"
	"github.com/twitter/fssnap/common/log/hooks"
	"github.com/twitter/fssnap/snapshot/cli"
)

func main() {
	log.AddHook(hooks.NewContextHook())

	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Infof("Received %v, stopping scan", sig)
		cancel()
	}()

	cmd := cli.MakeCLI(ctx, cli.NewDefaultInjector())
	if err := cmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(int(fserrors.ExitCodeOf(err)))
	}
}
