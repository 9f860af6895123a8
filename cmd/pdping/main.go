package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/pdping/internal/runner"
)

func main() {
	options := runner.ParseOptions()
	pdpingRunner, err := runner.NewRunner(options)
	if err != nil {
		gologger.Fatal().Msgf("Could not create runner: %s\n", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup close handler
	go func() {
		<-c
		fmt.Fprintln(os.Stderr, "\r- Ctrl+C pressed in Terminal, finishing outstanding probes...")
		cancel()
	}()

	err = pdpingRunner.Run(ctx)
	if err != nil {
		gologger.Fatal().Msgf("Could not run pdping: %s\n", err)
	}
}
