package main

import (
	"context"
	"sync"

	"github.com/spf13/cobra"
)

var (
	cleanupMu  sync.Mutex
	cleanupFns []func()
)

// setupRun starts tracing and profiling before any subcommand runs.
func setupRun(cmd *cobra.Command, args []string) error {
	if cmd.Context() == nil {
		cmd.SetContext(context.Background())
	}
	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	stopProf, err := setupProfiling(cmd)
	if err != nil {
		stopTrace()
		return err
	}
	cleanupMu.Lock()
	cleanupFns = append(cleanupFns, stopProf, stopTrace)
	cleanupMu.Unlock()
	return nil
}

// teardownRun runs registered cleanups once, in registration order.
// PersistentPostRun is skipped when a command fails, so main calls it too.
func teardownRun(*cobra.Command) {
	cleanupMu.Lock()
	fns := cleanupFns
	cleanupFns = nil
	cleanupMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
