// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"crypto/subtle"
)

// Default admin credentials.
const (
	DefaultUsername = "wassim1"
	DefaultPassword = "zed18666"
)

// Verifier checks a username and password pair.
type Verifier interface {
	Verify(ctx context.Context, username, password string) bool
}

// StaticVerifier accepts exactly one literal pair.
type StaticVerifier struct {
	Username string
	Password string
}

// DefaultVerifier returns the verifier for the built-in admin account.
func DefaultVerifier() StaticVerifier {
	return StaticVerifier{Username: DefaultUsername, Password: DefaultPassword}
}

// Verify compares both values in constant time. An empty configured
// username accepts nothing.
func (v StaticVerifier) Verify(_ context.Context, username, password string) bool {
	if v.Username == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.Password)) == 1
	return userOK && passOK
}

// HashVerifier accepts one username whose password matches an argon2id hash.
type HashVerifier struct {
	Username     string
	PasswordHash string
}

// Verify checks the username and the password against the hash. A
// malformed hash rejects every password.
func (v HashVerifier) Verify(_ context.Context, username, password string) bool {
	if v.Username == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) != 1 {
		return false
	}
	ok, err := CheckPassword(password, v.PasswordHash)
	return err == nil && ok
}
