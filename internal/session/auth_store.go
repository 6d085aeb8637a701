// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"fmt"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/senatec-go/internal/auth"
)

// AuthKey is the session key holding the encoded auth.Session.
const AuthKey = "senatec_auth"

// AuthStore keeps the admin session in the request's scs session. The
// context passed to its methods must come from a request that went
// through SessionManager.LoadAndSave.
type AuthStore struct {
	sm *scs.SessionManager
}

var _ auth.SessionStore = (*AuthStore)(nil)

// NewAuthStore returns an AuthStore over sm.
func NewAuthStore(sm *scs.SessionManager) *AuthStore {
	return &AuthStore{sm: sm}
}

// Load decodes the stored session.
func (s *AuthStore) Load(ctx context.Context) (auth.Session, bool, error) {
	if !s.sm.Exists(ctx, AuthKey) {
		return auth.Session{}, false, nil
	}
	raw := s.sm.GetString(ctx, AuthKey)
	sess, err := auth.DecodeSession([]byte(raw))
	if err != nil {
		return auth.Session{}, true, fmt.Errorf("decoding %s: %w", AuthKey, err)
	}
	return sess, true, nil
}

// Save renews the session token and stores sess.
func (s *AuthStore) Save(ctx context.Context, sess auth.Session) error {
	data, err := sess.Encode()
	if err != nil {
		return err
	}
	if err := s.sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	s.sm.Put(ctx, AuthKey, string(data))
	return nil
}

// Clear removes the stored session and renews the token.
func (s *AuthStore) Clear(ctx context.Context) error {
	s.sm.Remove(ctx, AuthKey)
	if err := s.sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	return nil
}
