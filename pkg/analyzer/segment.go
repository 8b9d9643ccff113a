package analyzer

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

var urlAlphabet = strings.NewReplacer("-", "+", "_", "/")

// DecodeSegment reverses base64url encoding with optional padding.
// Segments already using the standard alphabet are accepted as well.
// Whitespace and any other byte outside both alphabets is rejected.
func DecodeSegment(seg string) ([]byte, error) {
	for i := 0; i < len(seg); i++ {
		if !isSegmentByte(seg[i]) {
			return nil, &DecodeError{Err: base64.CorruptInputError(i)}
		}
	}

	// A single trailing sextet cannot encode a whole byte.
	if len(seg)%4 == 1 {
		return nil, &DecodeError{Err: ErrTruncated}
	}

	s := urlAlphabet.Replace(seg)
	if m := len(s) % 4; m != 0 {
		s += strings.Repeat("=", 4-m)
	}

	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return b, nil
}

func isSegmentByte(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '+', c == '/', c == '=':
		return true
	}
	return false
}

// DecodeSegmentString decodes a segment and requires the result to be UTF-8 text.
func DecodeSegmentString(seg string) (string, error) {
	b, err := DecodeSegment(seg)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &DecodeError{Err: ErrInvalidUTF8}
	}
	return string(b), nil
}
