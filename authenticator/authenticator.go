package authenticator

import (
	"errors"
	"fmt"
)

// ErrInvalidPassword is returned when a login attempt uses the wrong password
var ErrInvalidPassword = errors.New("incorrect password")

// sessionKey is where the gate keeps its state
const sessionKey = "admin_state"

// State is the admin gate state
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Verifier checks a candidate admin password
type Verifier interface {
	Verify(password string) bool
}

// SessionStore is the part of a session the gate needs
type SessionStore interface {
	Set(key, value interface{}) error
	Get(key interface{}) interface{}
	Delete(key interface{}) error
}

// RenewFunc replaces the session with one under a fresh ID, keeping its data
type RenewFunc func() (SessionStore, error)

// Gate is the admin access state machine. It starts anonymous and moves to
// authenticated only through Login with the correct password. Logout always
// returns to anonymous.
type Gate struct {
	store    SessionStore
	verifier Verifier
	renew    RenewFunc
}

// NewGate binds the gate to a per-client session
func NewGate(store SessionStore, verifier Verifier) *Gate {
	return &Gate{store: store, verifier: verifier}
}

// WithRenewal makes a successful Login move the session to a new ID first,
// so an ID issued before authentication never carries admin access.
func (g *Gate) WithRenewal(renew RenewFunc) *Gate {
	g.renew = renew
	return g
}

// State returns the current state
func (g *Gate) State() State {
	if state, ok := g.store.Get(sessionKey).(State); ok && state == StateAuthenticated {
		return StateAuthenticated
	}
	return StateAnonymous
}

// IsAuthenticated reports whether admin access is granted
func (g *Gate) IsAuthenticated() bool {
	return g.State() == StateAuthenticated
}

// Login grants access when password matches. A wrong password leaves the
// gate anonymous, even if it was authenticated before.
func (g *Gate) Login(password string) error {
	if !g.verifier.Verify(password) {
		if err := g.store.Delete(sessionKey); err != nil {
			return fmt.Errorf("failed to reset admin session: %w", err)
		}
		return ErrInvalidPassword
	}

	if g.renew != nil {
		store, err := g.renew()
		if err != nil {
			return fmt.Errorf("failed to renew admin session: %w", err)
		}
		g.store = store
	}

	if err := g.store.Set(sessionKey, StateAuthenticated); err != nil {
		return fmt.Errorf("failed to store admin session: %w", err)
	}
	return nil
}

// Logout returns the gate to anonymous
func (g *Gate) Logout() error {
	if err := g.store.Delete(sessionKey); err != nil {
		return fmt.Errorf("failed to clear admin session: %w", err)
	}
	return nil
}
