// Package auth manages the local credential registry and the active session.
// It is a simulated trust boundary over the key-value store, not a real one,
// but credentials are still stored bcrypt-hashed and the session record never
// carries the hash.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/grovetools/dash/pkg/kvstore"
)

const (
	usersKey   = "dashboard_users"
	sessionKey = "dashboard_current_user"
)

var (
	// ErrEmailTaken is returned by SignUp for a duplicate email.
	ErrEmailTaken = errors.New("auth: user with this email already exists")
	// ErrInvalidCredentials is returned by LogIn for an unknown email or a
	// wrong password; callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
)

// User identifies an authenticated account. All per-user dashboard state is
// keyed by ID.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// credential is the persisted registry record.
type credential struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"passwordHash"`
}

// Registry holds the credential list and the current session in the KV store.
type Registry struct {
	store kvstore.Store
}

// NewRegistry creates a registry over the given store.
func NewRegistry(store kvstore.Store) *Registry {
	return &Registry{store: store}
}

// SignUp registers a new account and makes it the active session. The email
// must not already be registered.
func (r *Registry) SignUp(email, password, name string) (User, error) {
	creds := r.credentials()
	for _, c := range creds {
		if c.Email == email {
			return User{}, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	cred := credential{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	creds = append(creds, cred)
	if err := r.saveCredentials(creds); err != nil {
		return User{}, err
	}

	user := User{ID: cred.ID, Email: cred.Email, Name: cred.Name}
	if err := r.setSession(user); err != nil {
		return User{}, err
	}
	return user, nil
}

// LogIn checks the credentials and, on success, replaces the active session.
// On failure any prior session is left untouched.
func (r *Registry) LogIn(email, password string) (User, error) {
	for _, c := range r.credentials() {
		if c.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
			return User{}, ErrInvalidCredentials
		}
		user := User{ID: c.ID, Email: c.Email, Name: c.Name}
		if err := r.setSession(user); err != nil {
			return User{}, err
		}
		return user, nil
	}
	return User{}, ErrInvalidCredentials
}

// LogOut clears the active session.
func (r *Registry) LogOut() error {
	if err := r.store.Remove(sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentUser returns the active session's user, or nil when logged out. A
// malformed session record reads as logged out.
func (r *Registry) CurrentUser() *User {
	raw, err := r.store.Get(sessionKey)
	if err != nil {
		return nil
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		return nil
	}
	return &user
}

// credentials loads the registry list, falling back to empty on a missing or
// malformed record.
func (r *Registry) credentials() []credential {
	raw, err := r.store.Get(usersKey)
	if err != nil {
		return nil
	}
	var creds []credential
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil
	}
	return creds
}

func (r *Registry) saveCredentials(creds []credential) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := r.store.Set(usersKey, string(data)); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (r *Registry) setSession(user User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.store.Set(sessionKey, string(data)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
