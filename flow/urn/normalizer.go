// Package urn canonicalizes raw, human-entered contact addresses into
// scheme-qualified URNs. Normalization is deterministic and side-effect
// free; the whatsapp mobile-prefix ambiguity is deliberately left to the
// contact resolver, which can consult the remote directory.
package urn

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
)

const DefaultCountryCode = "55"

// countryCodeless is the longest digit string assumed to lack a country
// code: 2-digit area code + optional mobile prefix + 8 subscriber digits.
const countryCodeless = 11

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// passthrough lists the schemes whose addresses are opaque handles carried
// through unchanged. Only whatsapp has channel-specific canonicalization.
var passthrough = map[string]bool{
	contractx.SchemeTelegram: true,
	"tel":                    true,
	"facebook":               true,
	"viber":                  true,
	"line":                   true,
}

// Recognized reports whether the scheme is one the normalizer can handle.
func Recognized(scheme string) bool {
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	return scheme == contractx.SchemeWhatsApp || passthrough[scheme]
}

type Option func(*Normalizer)

// WithCountryCode overrides the country code prepended to whatsapp numbers
// entered without one.
func WithCountryCode(code string) Option {
	return func(n *Normalizer) {
		trimmed := strings.TrimSpace(code)
		if trimmed != "" {
			n.countryCode = trimmed
		}
	}
}

type Normalizer struct {
	countryCode string
	phoneShape  *regexp.Regexp
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{countryCode: DefaultCountryCode}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	// country code (2 digits) + area code (2 digits) + optional mobile
	// prefix 9 + 8 subscriber digits
	n.phoneShape = regexp.MustCompile(fmt.Sprintf(`^%s[0-9]{2}9?[0-9]{8}$`, regexp.QuoteMeta(n.countryCode)))
	return n
}

// Normalize reduces raw address text plus a declared scheme to the single
// primary URN candidate. Unrecognized schemes and addresses that cannot be
// reduced to a plausible address of their scheme fail with
// ErrUnrecognizedScheme or ErrMalformedAddress respectively.
func (n *Normalizer) Normalize(scheme, rawAddress string) (contractx.URN, error) {
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	address := strings.TrimSpace(rawAddress)

	switch {
	case scheme == contractx.SchemeWhatsApp:
		canonical, err := n.canonicalPhone(address)
		if err != nil {
			return "", err
		}
		return contractx.NewURN(scheme, canonical), nil
	case passthrough[scheme]:
		if address == "" {
			return "", fmt.Errorf("%w: empty %s address", contractx.ErrMalformedAddress, scheme)
		}
		return contractx.NewURN(scheme, address), nil
	default:
		return "", fmt.Errorf("%w: %q", contractx.ErrUnrecognizedScheme, scheme)
	}
}

func (n *Normalizer) canonicalPhone(raw string) (string, error) {
	stripped := strings.Map(func(r rune) rune {
		switch {
		case r == '-' || r == '(' || r == ')' || r == '+':
			return -1
		case unicode.IsSpace(r):
			return -1
		}
		return r
	}, raw)

	if stripped == "" || !digitsOnly.MatchString(stripped) {
		return "", fmt.Errorf("%w: %q", contractx.ErrMalformedAddress, raw)
	}

	if len(stripped) <= countryCodeless {
		stripped = n.countryCode + stripped
	}

	if !n.phoneShape.MatchString(stripped) {
		return "", fmt.Errorf("%w: %q does not match shape %s", contractx.ErrMalformedAddress, raw, n.phoneShape)
	}

	return stripped, nil
}
