package analyzer

import "time"

// Algorithm markers used in Meta when the header does not name an algorithm.
const (
	AlgorithmAbsent  = "None"
	AlgorithmUnknown = "Unknown"
)

// Meta carries values derived from the header and claims.
type Meta struct {
	Algorithm         string     `json:"algorithm"`
	ExpirationInstant *time.Time `json:"expirationInstant"`
}

// Result is the outcome of one analysis. It is built fresh per call.
type Result struct {
	IsValid   bool      `json:"isValid"`
	Header    *Header   `json:"header"`
	Payload   *Claims   `json:"payload"`
	Signature *string   `json:"signature"`
	Findings  []Finding `json:"findings"`
	Meta      Meta      `json:"meta"`
	Error     *string   `json:"error"`
}

// Tier returns the highest finding severity, or SeveritySafe.
func (r *Result) Tier() Severity {
	return TierOf(r.Findings)
}

// Failed reports whether the token could not be parsed.
func (r *Result) Failed() bool {
	return r.Error != nil
}

// HasFinding reports whether a finding with id was reported.
func (r *Result) HasFinding(id string) bool {
	for _, f := range r.Findings {
		if f.ID == id {
			return true
		}
	}
	return false
}

func emptyResult() *Result {
	return &Result{
		Findings: []Finding{},
		Meta:     Meta{Algorithm: AlgorithmUnknown},
	}
}

func failedResult(err error) *Result {
	r := emptyResult()
	msg := err.Error()
	r.Error = &msg
	return r
}

func aggregate(tok *Token, findings []Finding) *Result {
	if findings == nil {
		findings = []Finding{}
	}

	meta := Meta{Algorithm: AlgorithmAbsent}
	if alg, ok := tok.Header.Alg(); ok {
		meta.Algorithm = alg
	}
	if exp, ok, err := tok.Claims.Expiration(); ok && err == nil {
		meta.ExpirationInstant = &exp
	}

	header := tok.Header
	claims := tok.Claims
	signature := tok.Signature
	return &Result{
		IsValid:   true,
		Header:    &header,
		Payload:   &claims,
		Signature: &signature,
		Findings:  findings,
		Meta:      meta,
	}
}
