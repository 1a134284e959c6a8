// Package pwpolicy implements the client-side password policy and the
// advisory strength score shown while a password is being typed.
//
// The policy mirrors the backend acceptance rule exactly: the backend
// re-validates every password and rejects anything this package would
// reject. The score is independent of compliance and purely informational.
//
// All functions are pure and cheap enough to be called on every keystroke.
package pwpolicy

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Symbols is the fixed set of non-alphanumeric characters a password may use.
const Symbols = "!@#$%^&*()_-+=[]{}:;,.?~"

const (
	MinLength = 8
	MaxLength = 64

	// strongLength is the length at which the score earns its second point.
	strongLength = 12

	MaxScore = 4
)

// trivialPrefixes are penalized when a password starts with one of them
// (case-insensitive).
var trivialPrefixes = []string{"1234", "abcd", "qwer", "password", "admin", "1111", "0000"}

// ErrPolicy is returned by Validate for non-compliant passwords.
var ErrPolicy = errors.New("password does not satisfy the policy")

// Result is the outcome of Evaluate.
type Result struct {
	Compliant bool
	Score     int
}

// Checklist reports which individual criteria a password meets.
type Checklist struct {
	MinLength bool
	Lower     bool
	Upper     bool
	Digit     bool
	Symbol    bool
}

// Evaluate decides policy compliance and computes a 0..4 strength score.
func Evaluate(p string) Result {
	return Result{Compliant: compliant(p), Score: score(p)}
}

// Validate returns nil for a compliant password and an ErrPolicy-wrapping
// error describing the policy otherwise.
func Validate(p string) error {
	if compliant(p) {
		return nil
	}
	return fmt.Errorf("%w: it must be %d-%d characters long and include a lower-case letter, "+
		"an upper-case letter, a digit and one of %s", ErrPolicy, MinLength, MaxLength, Symbols)
}

// Check returns the per-criterion breakdown used by the strength meter.
func Check(p string) Checklist {
	return Checklist{
		MinLength: utf8.RuneCountInString(p) >= MinLength,
		Lower:     strings.ContainsFunc(p, isLower),
		Upper:     strings.ContainsFunc(p, isUpper),
		Digit:     strings.ContainsFunc(p, isDigit),
		Symbol:    strings.ContainsFunc(p, isSymbol),
	}
}

var labels = [MaxScore + 1]string{"very weak", "weak", "fair", "good", "strong"}

// Label returns the human-readable name of a score. Out-of-range scores are
// clamped.
func Label(score int) string {
	return labels[clamp(score)]
}

func compliant(p string) bool {
	// Every allowed character is ASCII, so the byte length equals the
	// character count for any password that passes the alphabet check.
	if len(p) < MinLength || len(p) > MaxLength {
		return false
	}
	for _, r := range p {
		if !isAllowed(r) {
			return false
		}
	}
	c := Check(p)
	return c.Lower && c.Upper && c.Digit && c.Symbol
}

func score(p string) int {
	if p == "" {
		return 0
	}

	n := utf8.RuneCountInString(p)
	s := 0
	if n >= MinLength {
		s++
	}
	if n >= strongLength {
		s++
	}

	kinds := 0
	c := Check(p)
	for _, ok := range []bool{c.Lower, c.Upper, c.Digit, c.Symbol} {
		if ok {
			kinds++
		}
	}
	if kinds >= 2 {
		s++
	}
	if kinds >= 3 {
		s++
	}

	if hasTrivialPrefix(p) {
		s -= 2
	}

	return clamp(s)
}

func hasTrivialPrefix(p string) bool {
	lp := strings.ToLower(p)
	for _, prefix := range trivialPrefixes {
		if strings.HasPrefix(lp, prefix) {
			return true
		}
	}
	return false
}

func clamp(s int) int {
	if s < 0 {
		return 0
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}

func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isSymbol(r rune) bool { return strings.ContainsRune(Symbols, r) }

func isAllowed(r rune) bool {
	return isLower(r) || isUpper(r) || isDigit(r) || isSymbol(r)
}
