package analyzer

import (
	"fmt"
	"strings"
)

// Token is a compact token split into its segments with the first two decoded.
type Token struct {
	HeaderSegment  string
	PayloadSegment string
	// Signature is the third segment, still base64url encoded. It may be empty.
	Signature string

	Header Header
	Claims Claims
}

// SigningInput returns the exact bytes the signature was computed over.
func (t *Token) SigningInput() string {
	return t.HeaderSegment + "." + t.PayloadSegment
}

// Parse splits token into header, payload and signature and decodes the
// header and payload into JSON objects. The signature is not verified.
func Parse(token string) (*Token, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, &FormatError{
			Reason: fmt.Sprintf("%s, got %d", ErrPartCount, len(parts)),
			Err:    ErrPartCount,
		}
	}

	header, err := decodeObject(parts[0])
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	claims, err := decodeObject(parts[1])
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	return &Token{
		HeaderSegment:  parts[0],
		PayloadSegment: parts[1],
		Signature:      parts[2],
		Header:         Header{header},
		Claims:         Claims{claims},
	}, nil
}

func decodeObject(seg string) (Object, error) {
	s, err := DecodeSegmentString(seg)
	if err != nil {
		return Object{}, err
	}
	return ParseObject(s)
}
