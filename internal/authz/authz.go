// Package authz decides whether a caller holds the administrative
// capability. It is a boolean predicate on the caller's token; privileged
// handlers consult it before touching anything.
package authz

import "crypto/subtle"

type Checker interface {
	IsAdmin(token string) bool
}

// TokenChecker grants the capability to a fixed set of bearer tokens.
type TokenChecker struct {
	tokens []string
}

func NewTokenChecker(tokens []string) *TokenChecker {
	return &TokenChecker{tokens: tokens}
}

func (c *TokenChecker) IsAdmin(token string) bool {
	if token == "" {
		return false
	}
	ok := false
	for _, t := range c.tokens {
		// compare every candidate to keep timing independent of a match
		if subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
			ok = true
		}
	}
	return ok
}

// CheckerFunc adapts a plain function, mainly for tests.
type CheckerFunc func(token string) bool

func (f CheckerFunc) IsAdmin(token string) bool { return f(token) }
