package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoSession means nobody is logged in.
var ErrNoSession = errors.New("no active session")

// Identity is the logged-in user as persisted between runs.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

type file struct {
	User          *Identity `json:"user,omitempty"`
	RememberEmail string    `json:"remember_email,omitempty"`
}

// Store persists the identity in a JSON file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the saved identity, or ErrNoSession when none is saved or it
// carries no email.
func (s *Store) Load() (Identity, error) {
	f, err := s.read()
	if err != nil {
		return Identity{}, err
	}
	if f.User == nil || strings.TrimSpace(f.User.Email) == "" {
		return Identity{}, ErrNoSession
	}
	return *f.User, nil
}

// Save stores id. With remember set, the email is also kept for the next
// login prompt; without it any remembered email is forgotten.
func (s *Store) Save(id Identity, remember bool) error {
	f, err := s.read()
	if err != nil {
		return err
	}
	f.User = &id
	f.RememberEmail = ""
	if remember {
		f.RememberEmail = id.Email
	}
	return s.write(f)
}

// Clear logs out, keeping a remembered email.
func (s *Store) Clear() error {
	f, err := s.read()
	if err != nil {
		return err
	}
	if f.RememberEmail == "" {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing session: %w", err)
		}
		return nil
	}
	f.User = nil
	return s.write(f)
}

// RememberedEmail returns the email saved with remember, if any.
func (s *Store) RememberedEmail() string {
	f, err := s.read()
	if err != nil {
		return ""
	}
	return f.RememberEmail
}

func (s *Store) read() (file, error) {
	var f file
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("reading session: %w", err)
	}
	if err := json.Unmarshal(data, &f); err != nil {
		// A corrupt file is treated as logged out.
		return file{}, nil
	}
	return f, nil
}

func (s *Store) write(f file) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}
