package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrymomot/jwtaudit/core/logger"
	"github.com/dmitrymomot/jwtaudit/pkg/analyzer"
	"github.com/dmitrymomot/jwtaudit/pkg/async"
	"github.com/dmitrymomot/jwtaudit/pkg/report"
)

// runWatch analyzes every stdin line in the background. A result is printed
// only if no newer line was read while it was computed.
func runWatch(ctx context.Context, c cli, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	asJSON := fs.Bool("json", false, "print one JSON summary per result")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	log := newLogger(c.cfg, c.stderr)
	a := analyzer.New(analyzer.WithLogger(log))

	var (
		latest async.Latest[*analyzer.Result]
		wg     sync.WaitGroup
		outMu  sync.Mutex
		outErr error
	)
	// Delivery and output share a lock so a stale result never prints after a newer one.
	deliver := func(ticket uint64, res *analyzer.Result) {
		outMu.Lock()
		defer outMu.Unlock()
		if !latest.Deliver(ticket, res) || outErr != nil {
			return
		}
		if *asJSON {
			outErr = report.WriteJSON(c.stdout, res)
		} else {
			outErr = report.WriteLine(c.stdout, res)
		}
	}

	scanner := bufio.NewScanner(c.stdin)
	scanner.Buffer(make([]byte, 0, 4096), int(c.cfg.MaxTokenBytes))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		ticket := latest.Begin()
		future := a.AnalyzeAsync(ctx, line)
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := future.Await()
			if err != nil {
				log.ErrorContext(ctx, "analysis failed", logger.Component("watch"), logger.Error(err))
				return
			}
			deliver(ticket, res)
		}()
	}
	wg.Wait()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return outErr
}
