// Package sanitize rewrites free-text FASTA definition lines into a canonical
// "key=value;" metadata form. Each origin database has its own ordered chain of
// patterns; a field that no pattern extracts is simply left out.
package sanitize

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedOrigin is returned by New for an origin without a rule chain.
var ErrUnsupportedOrigin = errors.New("unsupported origin")

// Origin names a source database.
type Origin string

const (
	OriginEnsembl Origin = "ensembl"
	OriginNCBI    Origin = "ncbi"
	OriginOther   Origin = "other"
)

// ParseOrigin normalizes a user-supplied origin name.
func ParseOrigin(s string) (Origin, error) {
	switch o := Origin(strings.ToLower(strings.TrimSpace(s))); o {
	case OriginEnsembl, OriginNCBI, OriginOther:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q (want ensembl | ncbi | other)", ErrUnsupportedOrigin, s)
	}
}

// Sanitizer extracts canonical fields from one origin's header convention.
type Sanitizer interface {
	Origin() Origin
	Extract(header string) Fields
	Sanitize(header string) string
}

// New returns the rule chain for origin. Only ensembl and ncbi have one.
func New(origin Origin) (Sanitizer, error) {
	switch origin {
	case OriginEnsembl:
		return ensembl{}, nil
	case OriginNCBI:
		return ncbi{}, nil
	default:
		return nil, fmt.Errorf("%w: %q has no header rules", ErrUnsupportedOrigin, origin)
	}
}

// firstMatch tries chain in order and returns the first non-empty result.
func firstMatch(s string, chain ...matcher) string {
	for _, m := range chain {
		if v := m(s); v != "" {
			return v
		}
	}
	return ""
}
