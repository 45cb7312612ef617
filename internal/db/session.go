package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-ops/internal/auth"
	"github.com/ukydev/fleet-ops/internal/fixtures"
	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

// Supported UI languages.
const (
	LanguageEnglish = "en"
	LanguageArabic  = "ar"
)

// storedUser is the persisted shape of a user record. models.User drops the
// password hash from its JSON for API responses, so the user collection
// cannot round-trip through that type: rewriting it would erase every hash
// and lock every account out.
type storedUser struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"passwordHash"`
	Role         models.Role `json:"role"`
	Org          string      `json:"org"`
}

func toStoredUser(u models.User) storedUser {
	return storedUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Org:          u.Org,
	}
}

func (su storedUser) user() models.User {
	return models.User{
		ID:           su.ID,
		Name:         su.Name,
		Email:        su.Email,
		PasswordHash: su.PasswordHash,
		Role:         su.Role,
		Org:          su.Org,
	}
}

func seedUsers() []storedUser {
	fixed := fixtures.Users()
	out := make([]storedUser, 0, len(fixed))
	for _, u := range fixed {
		out = append(out, toStoredUser(u))
	}
	return out
}

// SessionStore handles login state. The authenticated user and token live
// under their own scalar keys next to the entity collections, so a session
// survives process restarts the same way the domain data does.
type SessionStore struct {
	store kv.Store
	users collection[storedUser]
	auth  *auth.Service
}

// NewSessionStore wires a session store over the given kv backend.
func NewSessionStore(store kv.Store, authService *auth.Service) *SessionStore {
	return &SessionStore{
		store: store,
		auth:  authService,
		users: collection[storedUser]{
			store: store,
			key:   keyUsers,
			kind:  "user",
			seed:  seedUsers,
			id:    func(u storedUser) string { return u.ID },
		},
	}
}

// Login verifies credentials against the user collection, issues a JWT and
// persists the session. Email matching is case-insensitive.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	if email == "" || password == "" {
		return nil, ValidationError{Field: "email", Reason: "email and password are required"}
	}
	if err := s.auth.ValidateEmail(email); err != nil {
		return nil, ValidationError{Field: "email", Reason: err.Error()}
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	var user *models.User
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			u := users[i].user()
			user = &u
			break
		}
	}
	if user == nil {
		return nil, auth.ErrInvalidCredentials
	}
	if !s.auth.CheckPassword(password, user.PasswordHash) {
		return nil, auth.ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode session user: %w", err)
	}
	if err := s.store.Set(ctx, keyUser, raw); err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, keyToken, []byte(token)); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("user logged in")

	return &models.LoginResponse{Token: token, User: *user}, nil
}

// Logout clears the persisted session. Logging out with no session is a no-op.
func (s *SessionStore) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, keyUser); err != nil && !errors.Is(err, kv.ErrNotFound) {
		return err
	}
	if err := s.store.Delete(ctx, keyToken); err != nil && !errors.Is(err, kv.ErrNotFound) {
		return err
	}
	return nil
}

// CurrentUser returns the persisted session user, or nil when nobody is
// logged in.
func (s *SessionStore) CurrentUser(ctx context.Context) (*models.User, error) {
	raw, err := s.store.Get(ctx, keyUser)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", kv.ErrCorrupt, keyUser, err)
	}
	return &user, nil
}

// Token returns the persisted session token, or "" when nobody is logged in.
func (s *SessionStore) Token(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, keyToken)
	if errors.Is(err, kv.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// IsAuthenticated reports whether a session exists and its token still
// validates.
func (s *SessionStore) IsAuthenticated(ctx context.Context) bool {
	token, err := s.Token(ctx)
	if err != nil || token == "" {
		return false
	}
	_, err = s.auth.ValidateToken(token)
	return err == nil
}

// Language returns the stored UI language, defaulting to English.
func (s *SessionStore) Language(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, keyLanguage)
	if errors.Is(err, kv.ErrNotFound) {
		return LanguageEnglish, nil
	}
	if err != nil {
		return LanguageEnglish, err
	}
	lang := string(raw)
	if lang != LanguageEnglish && lang != LanguageArabic {
		return LanguageEnglish, nil
	}
	return lang, nil
}

// SetLanguage stores the UI language preference.
func (s *SessionStore) SetLanguage(ctx context.Context, lang string) error {
	if lang != LanguageEnglish && lang != LanguageArabic {
		return ValidationError{Field: "language", Reason: "must be en or ar"}
	}
	return s.store.Set(ctx, keyLanguage, []byte(lang))
}

// Users lists all known users. Hashes stay in storage; the returned records
// carry none.
func (s *SessionStore) Users(ctx context.Context) ([]models.User, error) {
	stored, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(stored))
	for _, su := range stored {
		u := su.user()
		u.PasswordHash = ""
		out = append(out, u)
	}
	return out, nil
}

func (s *SessionStore) resetUsers(ctx context.Context) error {
	return s.users.reset(ctx)
}
