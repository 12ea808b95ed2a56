package auth

import (
	"context"
	"crypto/subtle"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Makepad-fr/contactbook/internal/model"
)

// ErrInvalidCredentials is returned when no reference entry matches.
var ErrInvalidCredentials = errors.New("invalid login credentials")

//go:embed data/users.json
var demoUsers []byte

type userList struct {
	Users []model.User `json:"users"`
}

// Source yields the credential reference list.
type Source interface {
	Users(ctx context.Context) ([]model.User, error)
}

// FileSource reads a users.json file wholesale on every call. When the file
// does not exist the embedded demo list is used instead.
type FileSource struct {
	Path string
}

func (f FileSource) Users(ctx context.Context) ([]model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read users: %w", err)
		}
		b = demoUsers
	}
	return ParseUsers(b)
}

// ParseUsers decodes a {"users": [...]} document.
func ParseUsers(b []byte) ([]model.User, error) {
	var ul userList
	if err := json.Unmarshal(b, &ul); err != nil {
		return nil, fmt.Errorf("parse users: %w", err)
	}
	return ul.Users, nil
}

// StaticSource is a fixed in-memory list.
type StaticSource []model.User

func (s StaticSource) Users(context.Context) ([]model.User, error) { return s, nil }

// Authenticator matches submitted credentials against a Source.
type Authenticator struct {
	source Source
	log    *zap.Logger
}

// NewAuthenticator returns an Authenticator over src.
func NewAuthenticator(src Source, log *zap.Logger) *Authenticator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Authenticator{source: src, log: log}
}

// Authenticate returns the first user whose username and password match.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	users, err := a.source.Users(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Username != username {
			continue
		}
		if IsHashed(u.Password) {
			if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
				return u, nil
			}
			continue
		}
		// Plaintext reference entries still work but are reported on each match.
		if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1 {
			a.log.Warn("plaintext password in credential file; replace it with `contactbook users hash`",
				zap.String("username", u.Username))
			return u, nil
		}
	}
	a.log.Info("login rejected", zap.String("username", username))
	return model.User{}, ErrInvalidCredentials
}

// IsHashed reports whether p looks like a bcrypt hash.
func IsHashed(p string) bool {
	return strings.HasPrefix(p, "$2a$") || strings.HasPrefix(p, "$2b$") || strings.HasPrefix(p, "$2y$")
}

// Hash returns a bcrypt hash suitable for the credential file.
func Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return string(b), nil
}
