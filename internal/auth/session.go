package auth

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Makepad-fr/contactbook/internal/codec"
	"github.com/Makepad-fr/contactbook/internal/guard"
	"github.com/Makepad-fr/contactbook/internal/model"
	"github.com/Makepad-fr/contactbook/internal/store"
)

// SessionIDKey holds a per-login id used to correlate log lines.
const SessionIDKey = "session-id"

// Login stores u as the session token.
func Login(s store.Session, u model.User) error {
	token, err := codec.Encode(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	s.Set(guard.SessionKey, token)
	s.Set(SessionIDKey, uuid.NewString())
	return nil
}

// Logout destroys the session.
func Logout(s store.Session) {
	s.Clear()
}

// Current returns the logged in user, if any.
func Current(s store.Session) (model.User, bool) {
	token, ok := s.Get(guard.SessionKey)
	if !ok {
		return model.User{}, false
	}
	return codec.DecodeUser(token), true
}

// SessionID returns the id minted at login, or "" when logged out.
func SessionID(s store.Session) string {
	id, _ := s.Get(SessionIDKey)
	return id
}
