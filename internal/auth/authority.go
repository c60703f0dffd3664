package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkoladic/portfolio-backend/pkg"
)

const (
	DefaultTTL = 24 * 7 * time.Hour

	// MinSecretLength - an installation with a shorter (or absent) signing
	// secret has no valid admin account at all, so nothing can ever log in
	MinSecretLength = 32

	SessionCookieName = "admin_session"

	tokenDelimiter = "."
	nonceSize      = 16 // bytes of entropy per issued token
)

// ErrSecretNotConfigured - issuing refused because the signing secret is
// missing or too weak. Surfaced to the client as a server error, not as
// bad credentials.
var ErrSecretNotConfigured = errors.New("session secret not configured or too weak")

type Admin struct {
	Username string
	Password string
}

// Config is the process-wide admin identity and signing material.
type Config struct {
	Admin  Admin
	Secret string
	// TTL of issued tokens, DefaultTTL when zero
	TTL time.Duration
}

func (c Config) operational() bool {
	return c.Admin.Username != "" &&
		c.Admin.Password != "" &&
		len(c.Secret) >= MinSecretLength
}

func (c Config) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultTTL
	}
	return c.TTL
}

// Authority issues and verifies self-contained, HMAC-signed admin session
// tokens. No session state is kept server-side: the whole session lives in
// the signed token, so restarts keep sessions alive and horizontal scaling
// needs no shared session store. The flip side: a single live token cannot
// be revoked, only all of them at once, by rotating the signing secret.
type Authority struct {
	configSource func() Config

	// ability to inject randomness and clock for unit and dev testing
	RandStringFunc func(s int) (string, error)
	NowFunc        func() time.Time
}

func NewAuthority(cfg Config) *Authority {
	return NewAuthorityWithSource(func() Config { return cfg })
}

// NewAuthorityWithSource reads the config through source on every call,
// so a secret rotated mid-process immediately invalidates all previously
// issued tokens.
func NewAuthorityWithSource(source func() Config) *Authority {
	return &Authority{
		configSource:   source,
		RandStringFunc: pkg.GenerateRandomString,
		NowFunc:        time.Now,
	}
}

// ValidateCredentials compares the supplied credentials against the
// configured admin identity. Refuses everything when the authority is not
// operational (fail closed, never a default secret). The comparison goes
// through keyed digests so its duration does not depend on how long a
// prefix the supplied password shares with the real one.
func (a *Authority) ValidateCredentials(username, password string) bool {
	if username == "" || password == "" {
		return false
	}

	cfg := a.configSource()
	if !cfg.operational() {
		return false
	}

	usernameOK := keyedDigestsEqual(username, cfg.Admin.Username, cfg.Secret)
	passwordOK := keyedDigestsEqual(password, cfg.Admin.Password, cfg.Secret)
	return usernameOK && passwordOK
}

func keyedDigestsEqual(supplied, expected, secret string) bool {
	suppliedDigest := sha256.Sum256([]byte(supplied + secret))
	expectedDigest := sha256.Sum256([]byte(expected + secret))
	return subtle.ConstantTimeCompare(suppliedDigest[:], expectedDigest[:]) == 1
}

// Issue creates a new session token for the configured admin. Two calls
// never produce the same token, the nonce takes care of that even within
// the same second.
func (a *Authority) Issue() (string, error) {
	cfg := a.configSource()
	if !cfg.operational() {
		return "", ErrSecretNotConfigured
	}

	nonce, err := a.RandStringFunc(nonceSize)
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	now := a.NowFunc()
	claim := SessionClaim{
		Subject:   cfg.Admin.Username,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(cfg.ttl()).Unix(),
		Nonce:     nonce,
	}

	encodedClaim, err := claim.Encode()
	if err != nil {
		return "", fmt.Errorf("encode claim: %w", err)
	}

	return encodedClaim + tokenDelimiter + sign(cfg.Secret, encodedClaim), nil
}

// Verify authenticates a presented token. Input may be missing, malformed
// or adversarially crafted - every failure mode collapses to false, the
// caller gets no hint whether the token was malformed, forged or expired.
func (a *Authority) Verify(token string) bool {
	cfg := a.configSource()
	if !cfg.operational() {
		return false
	}

	encodedClaim, providedSignature, found := strings.Cut(token, tokenDelimiter)
	if !found || encodedClaim == "" || providedSignature == "" {
		return false
	}
	if strings.Contains(providedSignature, tokenDelimiter) {
		return false
	}

	expectedSignature := sign(cfg.Secret, encodedClaim)
	if len(providedSignature) != len(expectedSignature) {
		return false
	}
	if !hmac.Equal([]byte(providedSignature), []byte(expectedSignature)) {
		return false
	}

	// claim fields are trusted only from here on, the signature checked out
	claim, err := DecodeSessionClaim(encodedClaim)
	if err != nil {
		return false
	}

	// admin identity rotated after issuance invalidates the token
	if claim.Subject != cfg.Admin.Username {
		return false
	}

	// expiry is strict and absolute, no grace period and no renewal
	if !a.NowFunc().Before(time.Unix(claim.ExpiresAt, 0)) {
		return false
	}

	return true
}

// TTL of tokens issued right now, used for the session cookie max-age.
func (a *Authority) TTL() time.Duration {
	return a.configSource().ttl()
}

func (a *Authority) IsLogged(_ context.Context, token string) (bool, error) {
	return a.Verify(token), nil
}

func sign(secret, encodedClaim string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(encodedClaim))
	return hex.EncodeToString(mac.Sum(nil))
}
