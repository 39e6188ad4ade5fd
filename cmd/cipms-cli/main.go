// Command cipms-cli is a terminal client for the placement dashboard.
// It keeps one session per process and persists it in a local SQLite file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(openEnv).ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errNotSignedIn) {
			fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		}
		os.Exit(1) //nolint:forbidigo // CLI must exit with failure status when a command fails
	}
}
