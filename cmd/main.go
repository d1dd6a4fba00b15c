package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/aucscore/internal/cli"
	"github.com/okian/aucscore/pkg/logger"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// run executes the command line and flushes logs before returning the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := cli.Execute(ctx, args, stdout, stderr)
	if err := logger.Sync(); err != nil {
		_, _ = io.WriteString(stderr, "failed to sync logger: "+err.Error()+"\n")
	}
	return code
}
