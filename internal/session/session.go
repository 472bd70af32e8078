// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

// Package session tracks the user's authentication state. Sync only runs
// while a session is live; the provider announces transitions so the engine
// can be started and stopped accordingly.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crohrer/booksync/internal/logger"
)

// State is the session lifecycle state.
type State int

const (
	SignedOut State = iota
	SignedIn
)

func (s State) String() string {
	if s == SignedIn {
		return "signed-in"
	}
	return "signed-out"
}

// Provider exposes the current access token and a stream of state
// transitions.
type Provider interface {
	Token() string
	States() <-chan State
}

// Manager is the JWT-backed Provider. The token is stored as-is and handed to
// the remote transports; only the expiry claim is inspected, signature
// verification is the backend's job.
type Manager struct {
	log    *logger.Logger
	states chan State

	mu     sync.Mutex
	token  string
	expiry *time.Timer
}

func NewManager(log *logger.Logger) *Manager {
	return &Manager{
		log:    log,
		states: make(chan State, 4),
	}
}

// SetToken installs a new access token and announces the signed-in state.
// A token that is already expired is rejected. When the token carries an exp
// claim the manager signs itself out automatically at that moment.
func (m *Manager) SetToken(token string) error {
	expiresAt, err := tokenExpiry(token)
	if err != nil {
		return err
	}

	now := time.Now()
	if !expiresAt.IsZero() && !expiresAt.After(now) {
		return fmt.Errorf("token expired at %s", expiresAt.Format(time.RFC3339))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
	m.stopTimerLocked()
	if !expiresAt.IsZero() {
		m.expiry = time.AfterFunc(expiresAt.Sub(now), m.expire)
	}

	m.emit(SignedIn)
	m.log.Debug().Time("expires_at", expiresAt).Msg("session token installed")

	return nil
}

// Clear drops the token and announces the signed-out state.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" {
		return
	}

	m.token = ""
	m.stopTimerLocked()
	m.emit(SignedOut)
}

// Token returns the current access token, empty while signed out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// States returns the transition stream. A transition arriving while the
// buffer is full is dropped rather than queued.
func (m *Manager) States() <-chan State {
	return m.states
}

func (m *Manager) expire() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" {
		return
	}

	m.token = ""
	m.expiry = nil
	m.emit(SignedOut)
	m.log.Info().Msg("session token expired")
}

func (m *Manager) stopTimerLocked() {
	if m.expiry != nil {
		m.expiry.Stop()
		m.expiry = nil
	}
}

func (m *Manager) emit(s State) {
	select {
	case m.states <- s:
	default:
	}
}

// tokenExpiry reads the exp claim without verifying the signature. A token
// without exp yields the zero time.
func tokenExpiry(token string) (time.Time, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}

	expiresAt, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read token expiry: %w", err)
	}
	if expiresAt == nil {
		return time.Time{}, nil
	}

	return expiresAt.Time, nil
}
