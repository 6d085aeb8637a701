// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth holds the admin authentication state: the persisted
// session, credential verifiers and the Manager that ties them together.
package auth

import (
	"context"
	"log/slog"
)

// Manager restores, establishes and clears admin sessions.
type Manager struct {
	store    SessionStore
	verifier Verifier
	logger   *slog.Logger
}

// NewManager creates a Manager.
func NewManager(store SessionStore, verifier Verifier, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, verifier: verifier, logger: logger}
}

// Restore returns the persisted session, or the zero session when nothing
// is stored or the stored record cannot be read.
func (m *Manager) Restore(ctx context.Context) Session {
	s, ok, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn("discarding unreadable session", "category", "auth", "error", err)
		return Session{}
	}
	if !ok {
		return Session{}
	}
	return s
}

// Login persists an admin session when the verifier accepts the pair.
// Wrong credentials return false and leave the stored session unchanged.
func (m *Manager) Login(ctx context.Context, username, password string) bool {
	if !m.verifier.Verify(ctx, username, password) {
		m.logger.Info("login rejected", "username", username)
		return false
	}

	if err := m.store.Save(ctx, Session{Authenticated: true, Admin: true}); err != nil {
		m.logger.Error("failed to persist session", "category", "auth", "error", err)
		return false
	}

	m.logger.Info("admin logged in", "username", username)
	return true
}

// Logout clears the persisted session.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error("failed to clear session", "category", "auth", "error", err)
	}
}
