// Package report turns analysis results into what people read: a threat tier,
// a coarse score and a text rendering.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrymomot/jwtaudit/pkg/analyzer"
)

// Score maps a tier to the coarse 0-10 rating shown next to it.
// It is a display heuristic and carries no more information than the tier.
func Score(tier analyzer.Severity) string {
	switch tier {
	case analyzer.SeveritySafe:
		return "10/10"
	case analyzer.SeverityCritical:
		return "0/10"
	default:
		return "5/10"
	}
}

// Summary wraps a result with its tier and score.
type Summary struct {
	Result *analyzer.Result  `json:"result"`
	Tier   analyzer.Severity `json:"tier,omitempty"`
	Score  string            `json:"score,omitempty"`
}

// Summarize builds a Summary for res. A result without a parsed token has no
// tier and no score.
func Summarize(res *analyzer.Result) Summary {
	s := Summary{Result: res}
	if res.IsValid {
		s.Tier = res.Tier()
		s.Score = Score(s.Tier)
	}
	return s
}

// WriteJSON writes the summary of res as indented JSON.
func WriteJSON(w io.Writer, res *analyzer.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Summarize(res))
}

// WriteText writes a human-readable report of res.
func WriteText(w io.Writer, res *analyzer.Result) error {
	tw := &textWriter{w: w}

	switch {
	case res.Failed():
		tw.printf("error: %s\n", *res.Error)
		return tw.err
	case !res.IsValid:
		tw.printf("no token\n")
		return tw.err
	}

	s := Summarize(res)
	tw.printf("Threat level: %s (score %s)\n", s.Tier, s.Score)
	tw.printf("Algorithm:    %s\n", res.Meta.Algorithm)
	if exp := res.Meta.ExpirationInstant; exp != nil {
		tw.printf("Expires:      %s\n", exp.UTC().Format(time.RFC3339))
	} else {
		tw.printf("Expires:      never\n")
	}

	tw.printf("\nFindings (%d)\n", len(res.Findings))
	if len(res.Findings) == 0 {
		tw.printf("  none\n")
	}
	for _, f := range res.Findings {
		tw.printf("  [%-8s] %s: %s\n", f.Severity, f.Title, f.Description)
	}

	tw.section("Header", res.Header)
	tw.section("Payload", res.Payload)
	return tw.err
}

// WriteLine writes a one-line summary of res: tier, score, algorithm and
// finding IDs, or the parse error.
func WriteLine(w io.Writer, res *analyzer.Result) error {
	var err error
	switch {
	case res.Failed():
		_, err = fmt.Fprintf(w, "ERROR %s\n", *res.Error)
	case !res.IsValid:
		_, err = fmt.Fprintln(w, "EMPTY")
	default:
		ids := make([]string, len(res.Findings))
		for i, f := range res.Findings {
			ids[i] = f.ID
		}
		found := strings.Join(ids, ",")
		if found == "" {
			found = "-"
		}
		s := Summarize(res)
		_, err = fmt.Fprintf(w, "%s %s %s %s\n", s.Tier, s.Score, res.Meta.Algorithm, found)
	}
	return err
}

type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) section(title string, v any) {
	b, err := json.MarshalIndent(v, "  ", "  ")
	if err != nil {
		t.err = err
		return
	}
	t.printf("\n%s\n  %s\n", title, strings.TrimSpace(string(b)))
}
