// Command jwtaudit inspects JSON Web Tokens for common weaknesses.
//
// Usage:
//
//	jwtaudit analyze [-json] [token ...]   analyze tokens given as arguments or read from stdin
//	jwtaudit watch [-json]                 analyze each stdin line, printing only the newest result
//	jwtaudit serve                         run the HTTP API
//
// Configuration is read from the environment (APP_ENV, LOG_LEVEL, LOG_FORMAT,
// ANALYZE_TIMEOUT, MAX_TOKEN_BYTES, SERVER_*) and an optional .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/jwtaudit/core/config"
	"github.com/dmitrymomot/jwtaudit/pkg/analyzer"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage error")

const usage = `Usage: jwtaudit <command> [flags]

Commands:
  analyze [-json] [token ...]  analyze tokens (stdin when none given)
  watch [-json]                analyze stdin line by line, newest result wins
  serve                        run the HTTP API
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// cli bundles the process streams and loaded settings a command runs with.
type cli struct {
	cfg    Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	var cfg Config
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintf(stderr, "jwtaudit: %v\n", err)
		return exitError
	}
	c := cli{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr}

	var err error
	switch args[0] {
	case "analyze":
		err = runAnalyze(ctx, c, args[1:])
	case "watch":
		err = runWatch(ctx, c, args[1:])
	case "serve":
		err = runServe(ctx, c, args[1:])
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "jwtaudit: unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	default:
		fmt.Fprintf(stderr, "jwtaudit: %v\n", err)
		return exitError
	}
}

func newAnalyzer(c cli) *analyzer.Analyzer {
	return analyzer.New(analyzer.WithLogger(newLogger(c.cfg, c.stderr)))
}
