// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"encoding/json"
	"sync"
)

// Session is the visitor's authentication state.
type Session struct {
	Authenticated bool `json:"authenticated"`
	Admin         bool `json:"admin"`
}

// IsAdmin reports whether the session may use the admin panel.
func (s Session) IsAdmin() bool {
	return s.Authenticated && s.Admin
}

// Encode returns the persisted JSON form {"authenticated":..,"admin":..}.
func (s Session) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSession parses the persisted JSON form.
func DecodeSession(data []byte) (Session, error) {
	var s Session
	err := json.Unmarshal(data, &s)
	return s, err
}

// SessionStore persists one session per visitor. Implementations find the
// visitor from ctx.
type SessionStore interface {
	// Load returns the stored session and true, or false when nothing is
	// stored. A stored record that cannot be decoded is an error.
	Load(ctx context.Context) (Session, bool, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps a single encoded session in memory.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load decodes the stored session.
func (m *MemoryStore) Load(context.Context) (Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return Session{}, false, nil
	}
	s, err := DecodeSession(m.data)
	if err != nil {
		return Session{}, true, err
	}
	return s, true, nil
}

// Save stores the encoded session.
func (m *MemoryStore) Save(_ context.Context, s Session) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

// Clear removes the stored session.
func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	m.data = nil
	m.mu.Unlock()
	return nil
}

// SetRaw stores data verbatim.
func (m *MemoryStore) SetRaw(data []byte) {
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
}

// Raw returns the stored bytes, or nil when nothing is stored.
func (m *MemoryStore) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data
}
