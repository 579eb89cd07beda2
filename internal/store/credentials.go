package store

import (
	"fmt"
	"log"

	"github.com/3ddruckrorbas/Druck/internal/fstore"
)

const passwordsDoc = "passwords"

// CredentialStore manages the set of valid admin passwords. The set is
// ordered, suppresses duplicates on insert and can never be emptied by
// removal.
type CredentialStore struct {
	files *fstore.Store
	seed  string
}

// NewCredentialStore creates a credential store backed by files. On
// first run the document is seeded with the configured default password.
func NewCredentialStore(files *fstore.Store, seed string) *CredentialStore {
	s := &CredentialStore{files: files, seed: seed}
	if !files.Exists(passwordsDoc) {
		if err := files.Save(passwordsDoc, []string{seed}); err != nil {
			log.Printf("seeding credential set: %v", err)
		}
	}
	return s
}

// Passwords returns the current credential set in insertion order.
func (s *CredentialStore) Passwords() ([]string, error) {
	var passwords []string
	if err := s.files.Load(passwordsDoc, &passwords, []string{s.seed}); err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	return passwords, nil
}

// Add appends a password to the set. Duplicates are suppressed without
// error; an empty password is rejected with ErrEmptyPassword. The
// updated set is returned.
func (s *CredentialStore) Add(password string) ([]string, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	passwords, err := s.Passwords()
	if err != nil {
		return nil, err
	}
	for _, p := range passwords {
		if p == password {
			return passwords, nil
		}
	}

	passwords = append(passwords, password)
	if err := s.files.Save(passwordsDoc, passwords); err != nil {
		return nil, err
	}
	return passwords, nil
}

// Remove deletes a password from the set and returns the updated set.
// Removing the sole remaining password fails with ErrLastCredential so
// admins cannot lock themselves out; removing an absent password is a
// no-op. The document is persisted only when a removal occurred.
func (s *CredentialStore) Remove(password string) ([]string, error) {
	passwords, err := s.Passwords()
	if err != nil {
		return nil, err
	}

	if len(passwords) == 1 && passwords[0] == password {
		return nil, ErrLastCredential
	}

	remaining := passwords[:0:0]
	for _, p := range passwords {
		if p != password {
			remaining = append(remaining, p)
		}
	}
	if len(remaining) == len(passwords) {
		return passwords, nil
	}

	if err := s.files.Save(passwordsDoc, remaining); err != nil {
		return nil, err
	}
	return remaining, nil
}
