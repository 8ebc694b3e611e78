// Package auth verifies the operator's credentials before the record
// commands run.
package auth

import "strings"

// Config holds the configured login. PasswordHash is a bcrypt hash as
// produced by HashPassword.
type Config struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// Enabled reports whether credentials have been configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Username) != "" && c.PasswordHash != ""
}

// NewVerifier returns a bcrypt verifier for cfg, or AllowAll when no
// credentials are configured.
func NewVerifier(cfg Config) Verifier {
	if !cfg.Enabled() {
		return AllowAll{}
	}
	return &BcryptVerifier{Username: strings.TrimSpace(cfg.Username), PasswordHash: cfg.PasswordHash}
}
