package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrymomot/jwtaudit/pkg/analyzer"
	"github.com/dmitrymomot/jwtaudit/pkg/async"
	"github.com/dmitrymomot/jwtaudit/pkg/report"
)

var errTokenTooLarge = errors.New("token exceeds MAX_TOKEN_BYTES")

func runAnalyze(ctx context.Context, c cli, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	asJSON := fs.Bool("json", false, "print the JSON summary instead of the text report")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	tokens := fs.Args()
	if len(tokens) == 0 {
		token, err := readToken(c.stdin, c.cfg.MaxTokenBytes)
		if err != nil {
			return err
		}
		tokens = []string{token}
	}

	a := newAnalyzer(c)
	futures := make([]*async.Future[*analyzer.Result], len(tokens))
	for i, token := range tokens {
		futures[i] = a.AnalyzeAsync(ctx, token)
	}
	results, err := async.WaitAll(futures...)
	if err != nil {
		return err
	}

	for i, res := range results {
		if i > 0 && !*asJSON {
			fmt.Fprintln(c.stdout)
		}
		if *asJSON {
			err = report.WriteJSON(c.stdout, res)
		} else {
			err = report.WriteText(c.stdout, res)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func readToken(r io.Reader, limit int64) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if int64(len(b)) > limit {
		return "", errTokenTooLarge
	}
	return string(b), nil
}
